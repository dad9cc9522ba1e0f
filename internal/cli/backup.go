package cli

import (
	"fmt"
	"path/filepath"

	"github.com/akarsten/wakeline/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())
	path, err := m.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", m.BackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n",
			b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())
	if err := m.Restore(c.Path); err != nil {
		return err
	}
	fmt.Printf("Restored data from %s\n", filepath.Base(c.Path))
	return nil
}
