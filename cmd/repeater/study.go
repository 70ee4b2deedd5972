package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"repeater/internal/card"
	"repeater/internal/indexer"
	"repeater/internal/queue"
	"repeater/internal/scheduler"
	"repeater/internal/store"
)

func newStudyCmd() *cobra.Command {
	var cardLimit, newCardLimit int
	var shuffleSeed int64
	var shuffle bool

	cmd := &cobra.Command{
		Use:   "study [paths...]",
		Short: "Drill due and new cards from the session queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := deckPaths(args)
			if err != nil {
				return err
			}

			now := time.Now()
			indexed, parseErrs, err := indexer.Index(paths, st, now)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			for _, e := range parseErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", e)
			}
			if len(indexed) == 0 {
				fmt.Println("no cards found.")
				return nil
			}

			byHash := make(map[string]card.Card, len(indexed))
			candidates := make([]store.Candidate, len(indexed))
			for i, c := range indexed {
				byHash[c.Hash] = c.Card
				candidates[i] = store.Candidate{Hash: c.Hash, Order: c.SourceOrder}
			}

			caps := resolveCaps(cardLimit, newCardLimit, shuffle, shuffleSeed)
			seeded, err := st.QuerySessionCandidates(now, candidates, caps)
			if err != nil {
				return fmt.Errorf("seed session: %w", err)
			}
			if len(seeded) == 0 {
				fmt.Println("nothing is due. come back later.")
				return nil
			}

			return runSession(cmd, queue.New(seeded), byHash)
		},
	}

	cmd.Flags().IntVar(&cardLimit, "card-limit", 0, "cap the total number of cards this session (0 = configured or unlimited)")
	cmd.Flags().IntVar(&newCardLimit, "new-card-limit", 0, "cap the number of new cards this session (0 = configured or unlimited)")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "shuffle the capped session sequence")
	cmd.Flags().Int64Var(&shuffleSeed, "shuffle-seed", 0, "seed for --shuffle (0 picks the configured seed)")
	return cmd
}

func resolveCaps(cardLimit, newCardLimit int, shuffle bool, shuffleSeed int64) queue.Caps {
	caps := queue.Caps{}
	switch {
	case cardLimit > 0:
		caps.CardLimit = &cardLimit
	case cfg.CardLimit > 0:
		v := cfg.CardLimit
		caps.CardLimit = &v
	}
	switch {
	case newCardLimit > 0:
		caps.NewCardLimit = &newCardLimit
	case cfg.NewCardLimit > 0:
		v := cfg.NewCardLimit
		caps.NewCardLimit = &v
	}
	switch {
	case shuffle && shuffleSeed != 0:
		caps.ShuffleSeed = &shuffleSeed
	case cfg.ShuffleSeed != nil:
		caps.ShuffleSeed = cfg.ShuffleSeed
	case shuffle:
		v := time.Now().UnixNano()
		caps.ShuffleSeed = &v
	}
	return caps
}

// runSession drives the two-button Pass/Fail loop over q until it is empty,
// re-admitting cards whose computed interval fell under the learn-ahead window.
func runSession(cmd *cobra.Command, q *queue.Queue, byHash map[string]card.Card) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	reviewed := 0

	for q.Len() > 0 {
		hash := q.Next()
		c, ok := byHash[hash]
		if !ok {
			continue // re-admitted hash belonged to a card since removed from the decks
		}

		fmt.Fprintf(out, "\n[%d remaining] %s\n", q.Len()+1, c.Question)
		fmt.Fprint(out, "press enter to reveal > ")
		in.ReadString('\n')

		fmt.Fprintf(out, "%s\n", c.Answer)
		quality, err := readQuality(out, in)
		if err != nil {
			return err
		}

		state, err := st.Load(hash)
		if err != nil {
			return fmt.Errorf("load card state: %w", err)
		}

		now := time.Now()
		result := scheduler.Update(*state, quality, now)
		if err := st.UpdateAfterReview(result.State); err != nil {
			return fmt.Errorf("update after review: %w", err)
		}
		if result.Readmit {
			q.Readmit(hash)
		}
		reviewed++
	}

	fmt.Fprintf(out, "\nsession complete: %d review(s)\n", reviewed)
	return nil
}

func readQuality(out io.Writer, in *bufio.Reader) (card.Quality, error) {
	for {
		fmt.Fprint(out, "pass/fail (p/f) > ")
		line, err := in.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("read grade: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "p", "pass":
			return card.Pass, nil
		case "f", "fail":
			return card.Fail, nil
		}
		fmt.Fprintln(out, "please answer p(ass) or f(ail)")
	}
}
