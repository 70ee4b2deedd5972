// Package scanner tokenizes a deck file's text into raw card blocks. It is
// deliberately tolerant: it emits spans without validating their contents — that is
// the parser's job (internal/cardparser).
package scanner

import "strings"

// Hint is the kind the scanner guessed from the opening marker. The parser performs
// the authoritative validation.
type Hint int

const (
	HintBasicQA Hint = iota
	HintBasicInline
	HintCloze
)

// Block is a raw span of lines carved out of a deck file.
type Block struct {
	Hint      Hint
	Lines     []string // raw lines, marker line included, terminator excluded
	StartLine int      // 1-indexed line number of the first line in Lines
	Order     int      // 0-indexed position of this block within the file
}

// Text joins the block's lines back into a single string separated by newlines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Scan splits file content into raw blocks. It never returns an error: malformed
// content becomes the parser's ParseError, not the scanner's concern.
func Scan(content string) []Block {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	var blocks []Block
	var cur *Block

	flush := func() {
		if cur != nil && len(cur.Lines) > 0 {
			blocks = append(blocks, *cur)
		}
		cur = nil
	}

	for i, line := range lines {
		lineNo := i + 1

		if isFlushLeftRule(line) {
			flush()
			continue
		}

		if hint, ok := openingHint(line); ok {
			flush()
			if hint == HintBasicInline {
				// A "::" card is complete on its own line; it never accumulates
				// trailing lines the way Q:/C: blocks do.
				blocks = append(blocks, Block{
					Hint:      hint,
					Lines:     []string{line},
					StartLine: lineNo,
					Order:     len(blocks),
				})
				continue
			}
			cur = &Block{Hint: hint, StartLine: lineNo, Order: len(blocks)}
			cur.Lines = append(cur.Lines, line)
			continue
		}

		if cur != nil {
			cur.Lines = append(cur.Lines, line)
		}
		// Lines before any opening marker are prose and are silently dropped by the
		// scanner. Indented pseudo-markers never open a block: inside a block they
		// are kept as ordinary body lines, outside one they are dropped.
	}

	flush()
	return blocks
}

// isFlushLeftRule reports whether line is a flush-left "---" horizontal rule.
func isFlushLeftRule(line string) bool {
	if len(line) == 0 || line[0] == ' ' || line[0] == '\t' {
		return false
	}
	return strings.TrimRight(line, " \t") == "---"
}

// openingHint reports the block kind a flush-left line opens, if any. Markers
// indented by any whitespace are ignored entirely (treated as prose).
func openingHint(line string) (Hint, bool) {
	if len(line) == 0 || line[0] == ' ' || line[0] == '\t' {
		return 0, false
	}
	switch {
	case hasCIPrefix(line, "Q:"):
		return HintBasicQA, true
	case hasCIPrefix(line, "C:"):
		return HintCloze, true
	case strings.Contains(line, "::"):
		return HintBasicInline, true
	}
	return 0, false
}

// hasCIPrefix reports whether s starts with prefix, ignoring ASCII case. Deck
// authors write "Q:"/"A:"/"C:" but also "q:"/"a:"/"c:"; both open the same kind of
// block, so recasing a marker's letter case alone must not change a card's identity.
func hasCIPrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}
