package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"repeater/internal/indexer"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Show how many cards are new, due, or upcoming",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := deckPaths(args)
			if err != nil {
				return err
			}

			now := time.Now()
			_, parseErrs, err := indexer.Index(paths, st, now)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			for _, e := range parseErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
			}

			sum, err := st.Summary(now)
			if err != nil {
				return fmt.Errorf("summary: %w", err)
			}

			fmt.Printf("new:              %d\n", sum.New)
			fmt.Printf("due now:          %d\n", sum.DueNow)
			fmt.Printf("overdue:          %d\n", sum.Overdue)
			fmt.Printf("later today:      %d\n", sum.UpcomingToday)
			fmt.Printf("later this week:  %d\n", sum.UpcomingWeek)
			return nil
		},
	}
}
