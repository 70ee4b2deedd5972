// Package cardparser validates raw scanner blocks into well-formed card.Card
// records, computing their canonical identity hash, rendered display text, and
// media references (component B).
package cardparser

import (
	"fmt"
	"path/filepath"
	"strings"

	"repeater/internal/card"
	"repeater/internal/repeatererr"
	"repeater/internal/scanner"
)

// clozePlaceholder is the fixed-length occlusion marker shown in place of every
// hidden span, independent of the span's own length, so the visible answer length
// is never leaked.
const clozePlaceholder = "[...]"

// Parse validates a raw scanner.Block from sourcePath and returns a well-formed
// card.Card. A malformed block yields a *repeatererr.ParseError; the caller (the
// Indexer) is expected to collect these and continue with other blocks.
func Parse(b scanner.Block, sourcePath string) (card.Card, error) {
	switch b.Hint {
	case scanner.HintBasicQA:
		return parseBasicQA(b, sourcePath)
	case scanner.HintBasicInline:
		return parseBasicInline(b, sourcePath)
	case scanner.HintCloze:
		return parseCloze(b, sourcePath)
	default:
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine, Msg: "unknown block kind"}
	}
}

func parseBasicQA(b scanner.Block, sourcePath string) (card.Card, error) {
	aIdx := -1
	for i, line := range b.Lines {
		if i == 0 {
			continue // the opening Q: line can't also be the A: line
		}
		if isFlushLeftA(line) {
			aIdx = i
			break
		}
	}
	if aIdx == -1 {
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine, Msg: "Basic card missing flush-left A: line"}
	}

	question := stripMarker(b.Lines[0], 2)
	question = strings.TrimSpace(strings.Join(append([]string{question}, b.Lines[1:aIdx]...), "\n"))

	answer := stripMarker(b.Lines[aIdx], 2)
	answer = strings.TrimSpace(strings.Join(append([]string{answer}, b.Lines[aIdx+1:]...), "\n"))

	if question == "" {
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine, Msg: "Basic card has empty question"}
	}
	if answer == "" {
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine + aIdx, Msg: "Basic card has empty answer"}
	}

	hash := Hash(Canonicalize(question, answer))
	deckDir := filepath.Dir(sourcePath)
	return card.Card{
		Hash:        hash,
		Kind:        card.Basic,
		Question:    SanitizeDisplay(question),
		Answer:      SanitizeDisplay(answer),
		SourcePath:  sourcePath,
		MediaRefs:   ExtractMediaRefs(b.Text(), deckDir),
		SourceOrder: b.Order,
	}, nil
}

func parseBasicInline(b scanner.Block, sourcePath string) (card.Card, error) {
	line := b.Lines[0]
	idx := strings.Index(line, "::")
	if idx < 0 {
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine, Msg: "inline card missing :: separator"}
	}
	question := strings.TrimSpace(line[:idx])
	answer := strings.TrimSpace(line[idx+2:])
	if question == "" || answer == "" {
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine, Msg: "inline card must have non-empty text on both sides of ::"}
	}

	hash := Hash(Canonicalize(question, answer))
	deckDir := filepath.Dir(sourcePath)
	return card.Card{
		Hash:        hash,
		Kind:        card.Basic,
		Question:    SanitizeDisplay(question),
		Answer:      SanitizeDisplay(answer),
		SourcePath:  sourcePath,
		MediaRefs:   ExtractMediaRefs(line, deckDir),
		SourceOrder: b.Order,
	}, nil
}

func parseCloze(b scanner.Block, sourcePath string) (card.Card, error) {
	body := stripMarker(b.Lines[0], 2)
	body = strings.TrimSpace(strings.Join(append([]string{body}, b.Lines[1:]...), "\n"))

	spans, err := clozeSpans(body)
	if err != nil {
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine, Msg: err.Error()}
	}
	if len(spans) == 0 {
		return card.Card{}, &repeatererr.ParseError{Path: sourcePath, Line: b.StartLine, Msg: "Cloze card has no [hidden] spans"}
	}

	hash := Hash(Canonicalize(body))
	deckDir := filepath.Dir(sourcePath)
	return card.Card{
		Hash:        hash,
		Kind:        card.Cloze,
		Question:    SanitizeDisplay(renderClozePrompt(body)),
		Answer:      SanitizeDisplay(renderClozeReveal(body)),
		SourcePath:  sourcePath,
		MediaRefs:   ExtractMediaRefs(body, deckDir),
		SourceOrder: b.Order,
	}, nil
}

// clozeSpans validates bracket balance and returns the contents of each [hidden]
// span. Unbalanced brackets or an empty span are parse errors.
func clozeSpans(body string) ([]string, error) {
	var spans []string
	depth := 0
	start := 0
	for i, r := range body {
		switch r {
		case '[':
			if depth > 0 {
				return nil, fmt.Errorf("nested or unbalanced '[' in Cloze body")
			}
			depth = 1
			start = i + 1
		case ']':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced ']' in Cloze body")
			}
			depth = 0
			content := body[start:i]
			if strings.TrimSpace(content) == "" {
				return nil, fmt.Errorf("empty Cloze span []")
			}
			spans = append(spans, content)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '[' in Cloze body")
	}
	return spans, nil
}

func isFlushLeftA(line string) bool {
	if len(line) == 0 || line[0] == ' ' || line[0] == '\t' {
		return false
	}
	return len(line) >= 2 && strings.EqualFold(line[:2], "A:")
}

// stripMarker removes the first n bytes (the "Q:"/"A:"/"C:" marker) and any single
// following space.
func stripMarker(line string, n int) string {
	rest := line[n:]
	return strings.TrimPrefix(rest, " ")
}
