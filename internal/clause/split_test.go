package clause

import (
	"strings"
	"testing"
)

func TestSplit_Headings(t *testing.T) {
	text := `AGREEMENT
Preamble text introducing the parties.
Payment Terms
Client shall pay NET 30.
2.1 Confidentiality
Each party shall protect the other's information.`

	chunks := Split(text, 0)
	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3: %+v", len(chunks), chunks)
	}
	if chunks[1].Heading != "Payment Terms" {
		t.Errorf("chunks[1].Heading = %q", chunks[1].Heading)
	}
	if !strings.Contains(chunks[1].Body, "NET 30") {
		t.Errorf("chunks[1].Body = %q", chunks[1].Body)
	}
	if chunks[2].Heading != "2.1 Confidentiality" {
		t.Errorf("chunks[2].Heading = %q", chunks[2].Heading)
	}
}

func TestSplit_LengthFallback(t *testing.T) {
	line := strings.Repeat("no headings in this running prose ", 3)
	text := strings.TrimSpace(strings.Repeat(line+"\n", 20))

	chunks := Split(text, 200)
	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want length-based splits", len(chunks))
	}
	if chunks[1].Heading != "Chunk 1" {
		t.Errorf("chunks[1].Heading = %q, want synthetic title", chunks[1].Heading)
	}
	for i, c := range chunks {
		if c.Body == "" {
			t.Errorf("chunks[%d] has empty body", i)
		}
	}
}

func TestSplit_Empty(t *testing.T) {
	if chunks := Split("", 0); len(chunks) != 0 {
		t.Errorf("Split(\"\") = %+v, want none", chunks)
	}
	if chunks := Split("\n\n  \n", 0); len(chunks) != 0 {
		t.Errorf("Split(blank) = %+v, want none", chunks)
	}
}

func TestSplit_HeadingStripsColon(t *testing.T) {
	chunks := Split("intro line\nGoverning Law:\nDelaware law governs.", 0)
	if len(chunks) != 2 {
		t.Fatalf("len(chunks) = %d: %+v", len(chunks), chunks)
	}
	if chunks[1].Heading != "Governing Law" {
		t.Errorf("Heading = %q, want colon stripped", chunks[1].Heading)
	}
}

func TestAnnotate_Categories(t *testing.T) {
	tests := []struct {
		name  string
		chunk Chunk
		want  string
	}{
		{"heading wins", Chunk{Heading: "Payment Terms", Body: "liability is capped"}, CategoryPayment},
		{"body fallback", Chunk{Heading: "Section 4", Body: "Client shall indemnify Vendor."}, CategoryIndemnity},
		{"miscellaneous", Chunk{Heading: "Notices", Body: "Notices go to the addresses above."}, CategoryMisc},
		{"governing law", Chunk{Heading: "Governing Law", Body: "Delaware."}, CategoryGoverningLaw},
	}
	a := KeywordAnnotator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Annotate(tt.chunk); got.Category != tt.want {
				t.Errorf("Category = %q, want %q (%s)", got.Category, tt.want, got.Rationale)
			}
		})
	}
}

func TestAnnotate_Risk(t *testing.T) {
	a := KeywordAnnotator{}

	high := a.Annotate(Chunk{Body: "Contractor accepts unlimited liability."})
	if high.Risk != RiskHigh {
		t.Errorf("Risk = %q, want high", high.Risk)
	}
	medium := a.Annotate(Chunk{Body: "This agreement shall automatically renew each year."})
	if medium.Risk != RiskMedium {
		t.Errorf("Risk = %q, want medium", medium.Risk)
	}
	low := a.Annotate(Chunk{Body: "Notices shall be sent by certified mail."})
	if low.Risk != RiskLow {
		t.Errorf("Risk = %q, want low", low.Risk)
	}
}

func TestAnnotateAll(t *testing.T) {
	chunks := Split("intro\nPayment Terms:\nNET 30 invoices.\nIndemnification:\nVendor shall indemnify Client.", 0)
	out := AnnotateAll(chunks, KeywordAnnotator{})
	if len(out) != len(chunks) {
		t.Fatalf("len = %d, want %d", len(out), len(chunks))
	}
	for i, a := range out {
		if a.Category == "" || a.Risk == "" {
			t.Errorf("out[%d] missing annotation: %+v", i, a)
		}
	}
}
