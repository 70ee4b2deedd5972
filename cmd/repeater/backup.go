package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"repeater/internal/backup"
)

func newBackupCmd() *cobra.Command {
	var retain int

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the card database to a timestamped ZIP file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.Close(); err != nil {
				return fmt.Errorf("close store before backup: %w", err)
			}
			st = nil

			mgr := backup.NewManager(dbPath, filepath.Join(dataDir, "backups"))
			path, err := mgr.Create(time.Now())
			if err != nil {
				return fmt.Errorf("backup: %w", err)
			}
			fmt.Printf("backup written to %s\n", path)

			if retain > 0 {
				if err := mgr.Prune(retain); err != nil {
					return fmt.Errorf("prune old backups: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&retain, "retain", 0, "delete backups beyond the N most recent (0 = keep all)")
	return cmd
}
