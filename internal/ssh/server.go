// Package ssh serves the navigator over SSH. Each session opens the file
// named by its command, resolved inside the served directory.
package ssh

import (
	"fmt"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bts "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/logger"
)

// Options configures a Server.
type Options struct {
	Root        string // directory sessions may browse
	Listen      string // e.g. ":2222"
	HostKeyPath string
	Config      config.Config
	Logger      *logger.Logger
}

// Server wraps a Wish SSH server.
type Server struct {
	server *ssh.Server
	root   string
}

// New creates a new SSH server.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	s, err := wish.NewServer(
		wish.WithAddress(opts.Listen),
		wish.WithHostKeyPath(opts.HostKeyPath),
		wish.WithMiddleware(
			bts.Middleware(NewHandler(opts.Root, opts.Config, opts.Logger)),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(opts.Logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}

	return &Server{server: s, root: opts.Root}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe starts the SSH server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Close stops the SSH server.
func (s *Server) Close() error {
	return s.server.Close()
}
