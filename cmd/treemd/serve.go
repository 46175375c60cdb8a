package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	gssh "github.com/charmbracelet/ssh"
	"github.com/spf13/cobra"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/ssh"
)

func serveCmd(cfg *config.Config) *cobra.Command {
	var listen, hostKey string

	cmd := &cobra.Command{
		Use:   "serve DIR",
		Short: "Serve the navigator over SSH for the markdown files under DIR",
		Long: `Serve the navigator over SSH. Clients name the file to open as the
session command, relative to DIR:

  ssh -p 2222 localhost docs/guide.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			log, err := stderrLogger(cfg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(hostKey), 0700); err != nil {
				return fmt.Errorf("create host key dir: %w", err)
			}

			s, err := ssh.New(ssh.Options{
				Root:        root,
				Listen:      listen,
				HostKeyPath: hostKey,
				Config:      *cfg,
				Logger:      log,
			})
			if err != nil {
				return err
			}

			// Graceful shutdown on SIGINT/SIGTERM.
			go func() {
				<-cmd.Context().Done()
				if err := s.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "error closing server: %v\n", err)
				}
			}()

			log.Info("serving", "root", root, "addr", s.Addr())
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, gssh.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":2222", "listen address")
	cmd.Flags().StringVar(&hostKey, "host-key", filepath.Join(xdg.DataHome, "treemd", "ssh_host_key"), "host key path, created when missing")
	return cmd
}
