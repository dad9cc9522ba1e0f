package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akarsten/wakeline/internal/backup"
	"github.com/akarsten/wakeline/internal/logger"
	"github.com/akarsten/wakeline/internal/session"
	"github.com/akarsten/wakeline/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	// Snapshot the data file before the interactive session touches it.
	if _, err := os.Stat(ctx.Store.Path()); err == nil {
		if _, err := backup.NewManager(ctx.Store.Path()).Create(); err != nil {
			logger.Warn("automatic backup failed", "error", err)
		}
	}

	sess := session.New(ctx.Store, session.Options{
		Mirror:      ctx.Mirror,
		ExpiryHours: ctx.Config.ExpiryHours,
		// The running TUI is always the focused session.
		Focused: func() bool { return true },
	})
	sess.Startup()

	p := tea.NewProgram(
		tui.NewModel(sess, ctx.Config.Notifications),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
