package scanner

import "testing"

func TestScanBasicQA(t *testing.T) {
	content := "Q: What is ATP?\nA: Adenosine triphosphate.\n"
	blocks := Scan(content)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Hint != HintBasicQA {
		t.Fatalf("expected HintBasicQA, got %v", blocks[0].Hint)
	}
	if blocks[0].StartLine != 1 {
		t.Fatalf("expected StartLine 1, got %d", blocks[0].StartLine)
	}
}

func TestScanTerminatesOnRule(t *testing.T) {
	content := "Q: Front\nA: Back\n---\nsome unrelated prose\n"
	blocks := Scan(content)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(blocks[0].Lines), blocks[0].Lines)
	}
}

func TestScanTerminatesOnNextMarker(t *testing.T) {
	content := "Q: First\nA: One\nQ: Second\nA: Two\n"
	blocks := Scan(content)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[1].Order != 1 {
		t.Fatalf("expected second block order 1, got %d", blocks[1].Order)
	}
}

func TestScanIndentedMarkerIgnored(t *testing.T) {
	content := "Q: Front\n    Q: not a new block\nA: Back\n"
	blocks := Scan(content)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Lines) != 3 {
		t.Fatalf("expected indented marker to be swallowed as prose, got %d lines", len(blocks[0].Lines))
	}
}

func TestScanInlineDoubleColon(t *testing.T) {
	content := "Capital of France :: Paris\n"
	blocks := Scan(content)
	if len(blocks) != 1 || blocks[0].Hint != HintBasicInline {
		t.Fatalf("expected 1 HintBasicInline block, got %+v", blocks)
	}
}

func TestScanCloze(t *testing.T) {
	content := "C: The mitochondria is the [powerhouse] of the cell.\n"
	blocks := Scan(content)
	if len(blocks) != 1 || blocks[0].Hint != HintCloze {
		t.Fatalf("expected 1 HintCloze block, got %+v", blocks)
	}
}

func TestScanLowercaseMarkers(t *testing.T) {
	content := "q:  what is atp ?\na: Adenosine, triphosphate!\n"
	blocks := Scan(content)
	if len(blocks) != 1 || blocks[0].Hint != HintBasicQA {
		t.Fatalf("expected 1 HintBasicQA block for lowercase markers, got %+v", blocks)
	}
}

func TestScanEOFTerminates(t *testing.T) {
	content := "Q: Front\nA: Back"
	blocks := Scan(content)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
}
