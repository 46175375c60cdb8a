package tui

// Layout computes the dimensions for each pane.
type Layout struct {
	OutlineWidth int
	ContentWidth int
	Height       int
	StatusHeight int
}

// ComputeLayout calculates pane dimensions from the terminal size and the
// preferred outline width.
func ComputeLayout(totalWidth, totalHeight, outlineWidth int) Layout {
	// During live resizes some terminals momentarily report 0 (or even negative)
	// dimensions; clamp to avoid propagating invalid sizes into panes.
	if totalWidth < 1 {
		totalWidth = 1
	}
	if totalHeight < 3 { // content row, status bar, help line
		totalHeight = 3
	}

	l := Layout{
		StatusHeight: 2,
		Height:       totalHeight - 2,
	}

	l.OutlineWidth = outlineWidth
	if l.OutlineWidth > totalWidth/2 {
		l.OutlineWidth = totalWidth / 2
	}

	l.ContentWidth = totalWidth - l.OutlineWidth
	if l.ContentWidth < 1 {
		l.ContentWidth = 1
	}

	return l
}
