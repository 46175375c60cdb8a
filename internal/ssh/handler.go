package ssh

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bts "github.com/charmbracelet/wish/bubbletea"

	"github.com/pfassina/treemd/internal/config"
	"github.com/pfassina/treemd/internal/logger"
	"github.com/pfassina/treemd/internal/tui"
)

// DefaultDocument is opened when a session names no file.
const DefaultDocument = "README.md"

var ErrNotDocument = errors.New("not a markdown document")

// NewHandler returns a Bubble Tea handler for SSH sessions.
func NewHandler(root string, cfg config.Config, log *logger.Logger) bts.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		path, err := ResolveSessionPath(root, sess.Command())
		if err != nil {
			log.Warn("session rejected", "user", sess.User(), "error", err)
			wish.Fatalln(sess, err)
			return nil, nil
		}
		log.Info("session opened", "user", sess.User(), "path", path)

		m := tui.New(path, tui.Options{
			Config: cfg,
			Logger: log,
			Root:   root,
		})
		go func() {
			<-sess.Context().Done()
			m.Close()
		}()

		opts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		}
		opts = append(opts, bts.MakeOptions(sess)...)

		return m, opts
	}
}

// ResolveSessionPath maps a session command to a file under root. The name
// is cleaned as if rooted so ".." cannot leave the served directory.
func ResolveSessionPath(root string, args []string) (string, error) {
	name := DefaultDocument
	if len(args) > 0 && args[0] != "" {
		name = args[0]
	}

	path := filepath.Join(root, filepath.Clean("/"+filepath.ToSlash(name)))
	if filepath.Ext(path) != ".md" {
		return "", fmt.Errorf("%s: %w", name, ErrNotDocument)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: %w", name, ErrNotDocument)
	}
	return path, nil
}
