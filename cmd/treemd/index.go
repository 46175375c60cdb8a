package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/index"
	"github.com/pfassina/treemd/internal/logger"
	"github.com/pfassina/treemd/internal/watcher"
)

func openIndex(cfg *config.Config) (*index.DB, error) {
	path := config.ExpandHome(cfg.IndexPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	return index.Open(path)
}

func stderrLogger(cfg *config.Config) (*logger.Logger, error) {
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	return logger.New(os.Stderr, level)
}

func indexCmd(cfg *config.Config) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "index DIR",
		Short: "Index the markdown files under a directory for search and backlinks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			log, err := stderrLogger(cfg)
			if err != nil {
				return err
			}
			db, err := openIndex(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			idx := index.NewIndexer(db, root, log)
			ctx := cmd.Context()

			start := time.Now()
			stats, err := idx.IndexAll(ctx)
			if err != nil {
				return err
			}
			log.IndexCompleted(root, stats.Indexed, stats.Skipped, time.Since(start))
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d, unchanged %d, failed %d\n",
				stats.Indexed, stats.Skipped, stats.Failed)

			if !watch {
				return nil
			}

			w, err := watcher.NewTree(root, func(ev watcher.Event) {
				if ev.Removed {
					if err := idx.RemoveFile(ev.Path); err != nil {
						log.FileError(ev.Path, err)
					}
					return
				}
				if _, err := idx.IndexFile(ev.Path); err != nil {
					log.FileError(ev.Path, err)
				}
			},
				watcher.WithDebounce(cfg.Debounce),
				watcher.WithErrorHandler(func(err error) {
					log.Error("watch failed", "root", root, "error", err)
				}),
			)
			if err != nil {
				return err
			}
			go w.Start()
			log.Info("watching for changes", "root", root)

			<-ctx.Done()
			return w.Stop()
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep the index current until interrupted")
	return cmd
}

func searchCmd(cfg *config.Config) *cobra.Command {
	var headings bool
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Full-text search over indexed sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openIndex(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if headings {
				results, err := db.SearchHeadings(args[0], limit)
				if err != nil {
					return fmt.Errorf("search headings: %w", err)
				}
				for _, r := range results {
					fmt.Fprintf(out, "%s:%d\t%s %s\n", r.Path, r.Line, strings.Repeat("#", r.Level), r.Text)
				}
				return nil
			}

			results, err := db.SearchSections(args[0], limit)
			if err != nil {
				return fmt.Errorf("search sections: %w", err)
			}
			for _, r := range results {
				fmt.Fprintf(out, "%s:%d\t%s\n\t%s\n", r.Path, r.Line, r.Title, r.Snippet)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&headings, "headings", false, "match heading text only")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum results")
	return cmd
}

func backlinksCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "backlinks FILE",
		Short: "List indexed documents that link to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openIndex(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			results, err := db.Backlinks(args[0])
			if err != nil {
				return fmt.Errorf("backlinks: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				target := r.Kind
				if r.Anchor != "" {
					target += " #" + r.Anchor
				}
				fmt.Fprintf(out, "%s@%d\t%s (%s)\n", r.SourcePath, r.Offset, r.Text, target)
			}
			return nil
		},
	}
}

func documentsCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List indexed documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openIndex(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			docs, err := db.ListDocuments(limit)
			if err != nil {
				return fmt.Errorf("list documents: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, d := range docs {
				fmt.Fprintf(out, "%s\t%s\t%d headings, %d words\n", d.Path, d.Title, d.HeadingCount, d.WordCount)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum documents (0 for the default)")
	return cmd
}
