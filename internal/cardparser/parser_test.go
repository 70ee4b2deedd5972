package cardparser

import (
	"testing"

	"repeater/internal/card"
	"repeater/internal/scanner"
)

func parseOne(t *testing.T, content, path string) (card.Card, error) {
	t.Helper()
	blocks := scanner.Scan(content)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 scanned block, got %d", len(blocks))
	}
	return Parse(blocks[0], path)
}

func TestParseBasicQA(t *testing.T) {
	c, err := parseOne(t, "Q: What is ATP?\nA: Adenosine triphosphate.\n", "/decks/bio.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != card.Basic || c.Question != "What is ATP?" || c.Answer != "Adenosine triphosphate." {
		t.Fatalf("unexpected card: %+v", c)
	}
}

func TestParseIdentityStableUnderEdits(t *testing.T) {
	before, err := parseOne(t, "Q: What is ATP?\nA: Adenosine triphosphate.\n", "/decks/bio.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := parseOne(t, "q:  what is atp ?\na: Adenosine, triphosphate!\n", "/decks/bio.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before.Hash != after.Hash {
		t.Fatalf("expected stable hash across formatting edit, got %s vs %s", before.Hash, after.Hash)
	}
}

func TestParseBasicQAMissingAnswer(t *testing.T) {
	_, err := parseOne(t, "Q: Orphan question\n", "/decks/bio.md")
	if err == nil {
		t.Fatalf("expected parse error for missing A: line")
	}
}

func TestParseBasicQAEmptyQuestion(t *testing.T) {
	_, err := parseOne(t, "Q:   \nA: Something\n", "/decks/bio.md")
	if err == nil {
		t.Fatalf("expected parse error for empty question")
	}
}

func TestParseInline(t *testing.T) {
	c, err := parseOne(t, "Capital of France :: Paris\n", "/decks/geo.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Question != "Capital of France" || c.Answer != "Paris" {
		t.Fatalf("unexpected card: %+v", c)
	}
}

func TestParseInlineEmptySide(t *testing.T) {
	_, err := parseOne(t, ":: Paris\n", "/decks/geo.md")
	if err == nil {
		t.Fatalf("expected parse error for empty left side")
	}
}

func TestParseCloze(t *testing.T) {
	c, err := parseOne(t, "C: The mitochondria is the [powerhouse] of the cell.\n", "/decks/bio.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind != card.Cloze {
		t.Fatalf("expected Cloze kind")
	}
	if c.Question != "The mitochondria is the [...] of the cell." {
		t.Fatalf("unexpected prompt: %q", c.Question)
	}
	if c.Answer != "The mitochondria is the powerhouse of the cell." {
		t.Fatalf("unexpected reveal: %q", c.Answer)
	}
}

func TestParseClozeEmptySpan(t *testing.T) {
	_, err := parseOne(t, "C: bad []\n", "/decks/bio.md")
	if err == nil {
		t.Fatalf("expected parse error for empty Cloze span")
	}
}

func TestParseClozeStrayBracket(t *testing.T) {
	_, err := parseOne(t, "C: stray ] bracket [here]\n", "/decks/bio.md")
	if err == nil {
		t.Fatalf("expected parse error for stray bracket")
	}
}

func TestParseMediaRefs(t *testing.T) {
	c, err := parseOne(t, "Q: See image\nA: ![diagram](img/cell.png) also [audio](clip.mp3) and [not media](notes.txt)\n", "/decks/bio.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.MediaRefs) != 2 {
		t.Fatalf("expected 2 media refs, got %d: %v", len(c.MediaRefs), c.MediaRefs)
	}
}

func TestParseArithmeticSignsChangeIdentity(t *testing.T) {
	a, err := parseOne(t, "2+2 :: 4\n", "/decks/math.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := parseOne(t, "2-2 :: 4\n", "/decks/math.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Hash == b.Hash {
		t.Fatalf("expected +/- substitution to change identity")
	}
}
