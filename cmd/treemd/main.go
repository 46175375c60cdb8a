package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/export"
	"github.com/pfassina/treemd/internal/logger"
	"github.com/pfassina/treemd/internal/markdown"
	"github.com/pfassina/treemd/internal/session"
	"github.com/pfassina/treemd/internal/tui"
)

var version = "dev"

type rootFlags struct {
	list    bool
	tree    bool
	count   bool
	links   bool
	filter  string
	level   int
	output  string
	section string
	debug   bool
}

func main() {
	cfg := config.Default()
	if _, err := config.LoadFile(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(&cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   "treemd FILE",
		Short: "Navigate markdown documents by their heading structure",
		Long: `treemd shows a markdown file as a tree of sections.

Browse interactively:    treemd README.md
List headings:           treemd -l README.md
Print one section:       treemd -s Installation README.md
Export the whole tree:   treemd -o json README.md`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.debug {
				cfg.Debug = true
				cfg.LogLevel = "debug"
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = f.output
			}
			if !config.ValidOutput(cfg.Output) {
				return fmt.Errorf("unknown output format %q", cfg.Output)
			}

			interactive := !f.list && !f.tree && !f.count && !f.links &&
				f.section == "" && f.filter == "" && f.level == 0 &&
				!cmd.Flags().Changed("output") &&
				args[0] != "-" && stdoutIsTerminal()
			if interactive {
				return runNavigator(*cfg, args[0])
			}
			return runQuery(cmd.OutOrStdout(), *cfg, f, args[0])
		},
	}

	root.Flags().BoolVarP(&f.list, "list", "l", false, "list headings")
	root.Flags().BoolVar(&f.tree, "tree", false, "print headings as a tree")
	root.Flags().BoolVar(&f.count, "count", false, "count headings by level")
	root.Flags().BoolVar(&f.links, "links", false, "list links in the document")
	root.Flags().StringVar(&f.filter, "filter", "", "keep headings containing text")
	root.Flags().IntVarP(&f.level, "level", "L", 0, "keep headings of one level (1-6)")
	root.Flags().StringVarP(&f.output, "output", "o", cfg.Output, "output format: plain|tree|json|yaml")
	root.Flags().StringVarP(&f.section, "section", "s", "", "print the section with this title or slug")
	root.Flags().BoolVar(&f.debug, "debug", false, "debug logging")

	root.AddCommand(atLineCmd(cfg))
	root.AddCommand(indexCmd(cfg))
	root.AddCommand(searchCmd(cfg))
	root.AddCommand(backlinksCmd(cfg))
	root.AddCommand(documentsCmd(cfg))
	root.AddCommand(serveCmd(cfg))
	root.AddCommand(configCmd(cfg))

	return root
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// readDocument parses path, or stdin when path is "-".
func readDocument(path string) (*markdown.Document, error) {
	if path != "-" {
		return markdown.ParseFile(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return markdown.Parse(string(data)), nil
}

func runQuery(w io.Writer, cfg config.Config, f rootFlags, path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	format := cfg.Output
	if f.tree && (format == config.OutputPlain || format == config.OutputTree) {
		format = config.OutputTree
	}
	styled := w == io.Writer(os.Stdout) && stdoutIsTerminal()
	p, err := export.NewPrinter(w, format, styled)
	if err != nil {
		return err
	}

	headings := doc.Headings
	filtered := f.filter != "" || f.level != 0
	if f.filter != "" {
		headings = export.FilterText(headings, f.filter)
	}
	if f.level != 0 {
		if headings, err = export.FilterLevel(headings, f.level); err != nil {
			return err
		}
	}

	source := path
	if path == "-" {
		source = ""
	}

	switch {
	case f.section != "":
		s, err := export.FindSection(markdown.Build(doc, source), f.section)
		if err != nil {
			return err
		}
		return p.Section(s)
	case f.count:
		return p.Counts(export.CountByLevel(headings))
	case f.links:
		return p.Links(markdown.ExtractLinks(doc.Content))
	case f.tree:
		return p.Tree(markdown.BuildTree(headings))
	case f.list || filtered:
		return p.Headings(headings)
	default:
		return p.Document(markdown.Build(doc, source))
	}
}

func runNavigator(cfg config.Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	logDir := filepath.Join(xdg.StateHome, "treemd")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	log, closeLog, err := logger.NewFileLogger(filepath.Join(logDir, "treemd.log"), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	// Query the terminal before bubbletea takes over stdin.
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}

	return tui.Run(path, tui.Options{
		Config: cfg,
		Logger: log,
		Store:  session.DefaultStore(),
		Style:  style,
	})
}

func atLineCmd(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "at-line FILE LINE",
		Short: "Print the heading whose section contains a line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var line int
			if _, err := fmt.Sscanf(args[1], "%d", &line); err != nil || line < 1 {
				return fmt.Errorf("invalid line %q", args[1])
			}
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			h, err := export.HeadingAtLine(doc.Headings, line)
			if err != nil {
				return err
			}
			p, err := export.NewPrinter(cmd.OutOrStdout(), output, false)
			if err != nil {
				return err
			}
			return p.Headings([]markdown.Heading{h})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", cfg.Output, "output format: plain|json|yaml")
	return cmd
}

func configCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.ConfigPath())
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveFile(*cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}
