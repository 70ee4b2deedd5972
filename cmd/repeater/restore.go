package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"repeater/internal/backup"
)

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup.zip>",
		Short: "Replace the card database with one from a backup ZIP file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.Close(); err != nil {
				return fmt.Errorf("close store before restore: %w", err)
			}
			st = nil

			mgr := backup.NewManager(dbPath, "")
			if err := mgr.Restore(args[0]); err != nil {
				return fmt.Errorf("restore: %w", err)
			}
			fmt.Printf("database restored from %s\n", args[0])
			return nil
		},
	}
}
