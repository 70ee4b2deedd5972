package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"repeater/internal/indexer"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index [paths...]",
		Short: "Scan decks and record any new cards",
		Long:  "Walk the given paths (or the configured deck paths) for Q:/A:, cloze, and inline cards, and register any not already known to the store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := deckPaths(args)
			if err != nil {
				return err
			}

			indexed, parseErrs, err := indexer.Index(paths, st, time.Now())
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			var newCount int
			for _, c := range indexed {
				if c.Status == indexer.StatusNew {
					newCount++
				}
			}
			fmt.Printf("indexed %d card(s) across %d path(s), %d new\n", len(indexed), len(paths), newCount)

			for _, e := range parseErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
			}
			return nil
		},
	}
}
