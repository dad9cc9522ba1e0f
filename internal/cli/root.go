// Package cli holds the kong command tree. Every command receives the shared
// Context and drives the same session layer the TUI uses.
package cli

import (
	"time"

	"github.com/akarsten/wakeline/internal/config"
	"github.com/akarsten/wakeline/internal/session"
	"github.com/akarsten/wakeline/internal/storage"
)

type Context struct {
	Config config.Config
	Store  storage.Provider
	Mirror storage.Mirror
}

// startSession builds and starts a session over the context's store. Commands
// call this after any argument validation so a bad invocation never mutates
// the document.
func (ctx *Context) startSession() *session.Session {
	sess := session.New(ctx.Store, session.Options{
		Mirror:      ctx.Mirror,
		ExpiryHours: ctx.Config.ExpiryHours,
		// CLI one-shots are unfocused by definition, so expired days
		// can auto-complete here.
		Focused: func() bool { return false },
		Now:     time.Now,
	})
	sess.Startup()
	return sess
}
