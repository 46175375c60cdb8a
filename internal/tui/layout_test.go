package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(120, 40, 32)
	assert.Equal(t, 32, l.OutlineWidth)
	assert.Equal(t, 88, l.ContentWidth)
	assert.Equal(t, 38, l.Height)
	assert.Equal(t, 2, l.StatusHeight)
}

func TestComputeLayout_NarrowTerminal(t *testing.T) {
	l := ComputeLayout(40, 10, 32)
	assert.Equal(t, 20, l.OutlineWidth)
	assert.Equal(t, 20, l.ContentWidth)
}

func TestComputeLayout_Degenerate(t *testing.T) {
	l := ComputeLayout(0, 0, 32)
	assert.Equal(t, 0, l.OutlineWidth)
	assert.Equal(t, 1, l.ContentWidth)
	assert.Equal(t, 1, l.Height)
}
