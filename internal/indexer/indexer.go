// Package indexer walks input paths and coordinates the scanner, parser, and store
// to reconcile decks on disk with persisted card state.
package indexer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"repeater/internal/card"
	"repeater/internal/cardparser"
	"repeater/internal/repeatererr"
	"repeater/internal/scanner"
	"repeater/internal/scheduler"
	"repeater/internal/store"
)

var markdownExt = map[string]bool{".md": true, ".markdown": true}

// Status annotates an indexed card with its session relevance, computed from its
// freshly upserted state.
type Status int

const (
	StatusNew Status = iota
	StatusOverdue
	StatusDueNow
	StatusFuture
)

// Indexed is one successfully parsed and persisted card, annotated with status.
// Card.SourceOrder carries the global file-order-then-position rank used to seed
// new cards deterministically.
type Indexed struct {
	card.Card
	Status Status
}

// Index walks paths, parses every deck file it finds, and upserts every observed
// hash into st. Parse and file I/O errors are collected and returned alongside the
// successfully indexed cards rather than halting the walk; a store failure is
// returned immediately as fatal, since it leaves the database in an unknown state.
func Index(paths []string, st store.Store, now time.Time) ([]Indexed, []error, error) {
	files, fileErrs := enumerate(paths)

	var indexed []Indexed
	var parseErrs []error
	order := 0

	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			fileErrs = append(fileErrs, &repeatererr.FileIOError{Path: path, Err: err})
			continue
		}

		blocks := scanner.Scan(string(content))
		for _, b := range blocks {
			c, err := cardparser.Parse(b, path)
			if err != nil {
				parseErrs = append(parseErrs, err)
				continue
			}
			c.SourceOrder = order

			if err := st.UpsertNew(c.Hash, now); err != nil {
				return nil, append(fileErrs, parseErrs...), err
			}

			indexed = append(indexed, Indexed{Card: c})
			order++
		}
	}

	for i := range indexed {
		state, err := st.Load(indexed[i].Hash)
		if err != nil {
			return nil, append(fileErrs, parseErrs...), err
		}
		indexed[i].Status = classify(state, now)
	}

	return indexed, append(fileErrs, parseErrs...), nil
}

func classify(state *card.CardState, now time.Time) Status {
	if state.IsNew() || state.DueDate == nil {
		return StatusNew
	}
	due := *state.DueDate
	switch {
	case due.Before(now):
		return StatusOverdue
	case !due.After(now.Add(scheduler.LearnAheadThreshold)):
		return StatusDueNow
	default:
		return StatusFuture
	}
}

// enumerate resolves each input path into a sorted list of files to scan: a
// directory is walked recursively for Markdown extensions, a file is included
// directly regardless of extension.
func enumerate(paths []string) ([]string, []error) {
	var files []string
	var errs []error

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, &repeatererr.FileIOError{Path: p, Err: err})
			continue
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		walkErr := filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				errs = append(errs, &repeatererr.FileIOError{Path: path, Err: err})
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if markdownExt[strings.ToLower(filepath.Ext(path))] {
				files = append(files, path)
			}
			return nil
		})
		if walkErr != nil {
			errs = append(errs, &repeatererr.FileIOError{Path: p, Err: walkErr})
		}
	}

	sort.Strings(files)
	return files, errs
}
