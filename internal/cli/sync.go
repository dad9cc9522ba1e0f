package cli

import (
	"fmt"

	"github.com/akarsten/wakeline/internal/storage"
)

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *Context) error {
	if ctx.Mirror == nil {
		return fmt.Errorf("no mirror configured; set mirror.enabled and mirror.dsn in the config file")
	}

	merged, adopted := storage.SyncWithMirror(ctx.Store, ctx.Mirror)
	if adopted {
		fmt.Printf("Pulled newer copy from mirror (%d days).\n", len(merged.Days))
	} else {
		fmt.Printf("Local copy is current; pushed %d days to mirror.\n", len(merged.Days))
	}
	return nil
}
