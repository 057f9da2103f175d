package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t  \n"} {
		n := Normalize(input)
		if n.Text != "" {
			t.Errorf("Normalize(%q).Text = %q, want empty", input, n.Text)
		}
		if n.WordCount != 0 {
			t.Errorf("Normalize(%q).WordCount = %d, want 0", input, n.WordCount)
		}
		if n.Binary {
			t.Errorf("Normalize(%q).Binary = true, want false", input)
		}
	}
}

func TestNormalize_PageArtifacts(t *testing.T) {
	input := "This Agreement is binding.\n12\nPage 3 of 10\nThe parties agree to the terms."
	n := Normalize(input)

	if strings.Contains(n.Text, "Page 3") {
		t.Errorf("page artifact survived normalization: %q", n.Text)
	}
	if !strings.Contains(n.Text, "This Agreement is binding.") {
		t.Errorf("semantic content lost: %q", n.Text)
	}
	if !strings.Contains(n.Text, "The parties agree to the terms.") {
		t.Errorf("semantic content lost: %q", n.Text)
	}
}

func TestNormalize_HyphenBreaks(t *testing.T) {
	input := "The receiving party shall keep all confi-\ndential information secret."
	n := Normalize(input)

	if !strings.Contains(n.Folded, "confidential") {
		t.Errorf("hyphen-broken word not joined: %q", n.Text)
	}
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	input := "Term   and\t\tTermination"
	n := Normalize(input)

	if n.Text != "Term and Termination" {
		t.Errorf("Text = %q, want %q", n.Text, "Term and Termination")
	}
	if n.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", n.WordCount)
	}
}

func TestNormalize_PreservesCaseAndLines(t *testing.T) {
	input := "NON-DISCLOSURE AGREEMENT\n\n1. CONFIDENTIALITY\nEach party agrees."
	n := Normalize(input)

	if !strings.Contains(n.Text, "NON-DISCLOSURE AGREEMENT") {
		t.Errorf("uppercase title mangled: %q", n.Text)
	}
	if !strings.Contains(n.Text, "\n") {
		t.Error("line structure lost; heading detection needs lines")
	}
	if !strings.Contains(n.Folded, "non-disclosure agreement") {
		t.Errorf("folded copy wrong: %q", n.Folded)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"SERVICE AGREEMENT\n\n1. SCOPE\nContractor shall per-\nform the services.\n4\nPage 2 of 2\nIN WITNESS WHEREOF",
		"plain sentence with   spaces",
		"",
	}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once.Text)
		if once.Text != twice.Text {
			t.Errorf("Normalize not idempotent:\n once: %q\ntwice: %q", once.Text, twice.Text)
		}
		if once.WordCount != twice.WordCount {
			t.Errorf("WordCount drifted: %d vs %d", once.WordCount, twice.WordCount)
		}
	}
}

func TestLooksBinary(t *testing.T) {
	t.Run("clean text", func(t *testing.T) {
		if LooksBinary("This is a normal agreement between two parties.") {
			t.Error("LooksBinary = true for clean text")
		}
	})

	t.Run("control-byte garbage", func(t *testing.T) {
		garbage := strings.Repeat("\x00\x01\x02abc", 500)
		if !LooksBinary(garbage) {
			t.Error("LooksBinary = false for control-heavy input")
		}
	})

	t.Run("tabs and newlines are fine", func(t *testing.T) {
		if LooksBinary(strings.Repeat("a\tb\nc\n", 1000)) {
			t.Error("LooksBinary = true for tab/newline-heavy text")
		}
	})

	t.Run("garbage past the sniff window is ignored", func(t *testing.T) {
		input := strings.Repeat("a", binarySniffLen) + strings.Repeat("\x00", 5000)
		if LooksBinary(input) {
			t.Error("LooksBinary = true for garbage beyond the sniff window")
		}
	})
}

func TestHeadTail(t *testing.T) {
	s := "abcdefghij"
	if Head(s, 4) != "abcd" {
		t.Errorf("Head = %q, want abcd", Head(s, 4))
	}
	if Tail(s, 4) != "ghij" {
		t.Errorf("Tail = %q, want ghij", Tail(s, 4))
	}
	if Head(s, 100) != s || Tail(s, 100) != s {
		t.Error("Head/Tail should return the whole string when n exceeds length")
	}
}

func TestCountChars(t *testing.T) {
	if CountChars("héllo") != 5 {
		t.Errorf("CountChars(héllo) = %d, want 5", CountChars("héllo"))
	}
}
