// Package knowledge loads a markdown risk-rules knowledge base and
// retrieves the sections most relevant to a document under review.
package knowledge

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Chunk is one knowledge-base section, ready for retrieval.
type Chunk struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	RiskLevel string   `json:"risk_level"`
	Category  string   `json:"category"`
	Keywords  []string `json:"keywords"`
}

// Chunking bounds. Sections shorter than minSectionLen are noise;
// sections longer than longSectionLen additionally get paragraph
// sub-chunks so retrieval can return a focused passage.
const (
	minSectionLen  = 50
	longSectionLen = 1000
	subChunkLen    = 500
	maxKeywords    = 10
)

// Base is a loaded knowledge base. A nil or empty Base degrades to
// no-op retrieval rather than failing callers.
type Base struct {
	chunks []Chunk
}

// Load reads a markdown file and chunks it by heading.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return Parse(data), nil
}

// Default returns the builtin knowledge base.
func Default() *Base {
	return Parse(defaultRules)
}

// Parse chunks markdown by its headings. All heading levels start a
// new section; the text between one heading and the next is the
// section body.
func Parse(src []byte) *Base {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	type section struct {
		title string
		start int // body start offset in src
		end   int
	}
	var sections []section

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		h, ok := node.(*ast.Heading)
		if !ok {
			continue
		}
		var title strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				title.Write(t.Segment.Value(src))
			}
		}
		bodyStart := 0
		if h.Lines().Len() > 0 {
			bodyStart = h.Lines().At(h.Lines().Len() - 1).Stop
		}
		if len(sections) > 0 {
			sections[len(sections)-1].end = headingLineStart(src, bodyStart)
		}
		sections = append(sections, section{title: strings.TrimSpace(title.String()), start: bodyStart})
	}
	if len(sections) > 0 {
		sections[len(sections)-1].end = len(src)
	}

	b := &Base{}
	for _, sec := range sections {
		content := strings.TrimSpace(string(src[sec.start:sec.end]))
		if len(content) < minSectionLen {
			continue
		}
		chunk := Chunk{
			ID:        fmt.Sprintf("rule_%d", len(b.chunks)),
			Title:     sec.title,
			Content:   content,
			RiskLevel: riskLevelFromTitle(sec.title),
			Category:  categoryFromTitle(sec.title),
			Keywords:  extractKeywords(content),
		}
		b.chunks = append(b.chunks, chunk)
		if len(content) > longSectionLen {
			b.chunks = append(b.chunks, splitLongSection(chunk)...)
		}
	}
	return b
}

// headingLineStart walks back from a heading's body-start offset to
// the beginning of the heading's own line, so the previous section's
// body excludes the heading markers.
func headingLineStart(src []byte, stop int) int {
	i := stop
	for i > 0 && src[i-1] != '\n' {
		i--
	}
	return i
}

// Len reports the number of loaded chunks.
func (b *Base) Len() int {
	if b == nil {
		return 0
	}
	return len(b.chunks)
}

func riskLevelFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, w := range []string{"high", "critical", "severe"} {
		if strings.Contains(lower, w) {
			return "high"
		}
	}
	for _, w := range []string{"low", "minor", "basic"} {
		if strings.Contains(lower, w) {
			return "low"
		}
	}
	return "medium"
}

var categoryCues = []struct {
	category string
	words    []string
}{
	{"liability", []string{"liability", "indemnity", "damages", "losses"}},
	{"payment", []string{"payment", "invoice", "billing", "fees", "cost"}},
	{"termination", []string{"termination", "cancellation", "expire"}},
	{"intellectual_property", []string{"intellectual property", "copyright", "patent", "trademark"}},
	{"confidentiality", []string{"confidential", "nda", "disclosure", "proprietary", "secret"}},
	{"jurisdiction", []string{"jurisdiction", "governing law", "court", "venue"}},
	{"compliance", []string{"compliance", "regulatory", "audit"}},
	{"force_majeure", []string{"force majeure", "act of god", "unforeseeable"}},
	{"warranty", []string{"warranty", "guarantee", "representation"}},
	{"assignment", []string{"assignment", "transfer", "successor"}},
}

func categoryFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, cue := range categoryCues {
		for _, w := range cue.words {
			if strings.Contains(lower, w) {
				return cue.category
			}
		}
	}
	return "general"
}

var legalTerms = []string{
	"liability", "indemnify", "breach", "damages", "terminate", "clause",
	"agreement", "contract", "party", "obligation", "warranty", "represent",
	"confidential", "proprietary", "jurisdiction", "governing law", "dispute",
	"payment", "invoice", "fees", "intellectual property", "assignment",
	"force majeure", "compliance", "audit", "penalty", "liquidated damages",
}

func extractKeywords(content string) []string {
	lower := strings.ToLower(content)
	var found []string
	for _, term := range legalTerms {
		if strings.Contains(lower, term) {
			found = append(found, term)
			if len(found) == maxKeywords {
				break
			}
		}
	}
	return found
}

func splitLongSection(chunk Chunk) []Chunk {
	paragraphs := strings.Split(chunk.Content, "\n\n")
	var subs []Chunk
	var cur strings.Builder

	emit := func() {
		body := strings.TrimSpace(cur.String())
		if body == "" {
			return
		}
		sub := chunk
		sub.Content = body
		sub.ID = fmt.Sprintf("%s_sub_%d", chunk.ID, len(subs))
		sub.Title = fmt.Sprintf("%s (Part %d)", chunk.Title, len(subs)+1)
		subs = append(subs, sub)
		cur.Reset()
	}
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if cur.Len() > 0 && cur.Len()+len(p) > subChunkLen {
			emit()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(p)
	}
	emit()
	return subs
}

var commonPhrases = []string{
	"unlimited liability", "indemnification", "governing law", "termination",
	"confidential information", "intellectual property", "payment terms",
	"force majeure", "dispute resolution", "warranty", "assignment",
}

// Retrieve returns the topK chunks most relevant to text. queryType,
// when it names a category, boosts chunks of that category. Chunks
// with zero relevance are dropped even if fewer than topK remain.
func (b *Base) Retrieve(docText, queryType string, topK int) []Chunk {
	if b.Len() == 0 || topK <= 0 {
		return nil
	}
	lower := strings.ToLower(docText)

	type scored struct {
		score float64
		chunk Chunk
	}
	var hits []scored
	for _, c := range b.chunks {
		if s := relevance(c, lower, queryType); s > 0 {
			hits = append(hits, scored{s, c})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > topK {
		hits = hits[:topK]
	}
	out := make([]Chunk, len(hits))
	for i, h := range hits {
		out[i] = h.chunk
	}
	return out
}

func relevance(c Chunk, docLower, queryType string) float64 {
	var score float64
	if queryType == c.Category {
		score += 2.0
	}
	for _, kw := range c.Keywords {
		if strings.Contains(docLower, kw) {
			score += 1.0
		}
	}
	contentLower := strings.ToLower(c.Content)
	for _, phrase := range commonPhrases {
		if strings.Contains(docLower, phrase) && strings.Contains(contentLower, phrase) {
			score += 1.5
		}
	}
	if c.RiskLevel == "high" {
		score += 0.5
	}
	if len(c.Content) < 100 {
		score *= 0.8
	}
	return score
}

// Recommendations scans the chunks relevant to each detected risk
// category for advisory sentences. Duplicates are removed; at most
// five recommendations are returned, in first-seen order.
func (b *Base) Recommendations(categories []string) []string {
	if b.Len() == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var recs []string
	for i, cat := range categories {
		if i == 5 {
			break
		}
		for _, chunk := range b.Retrieve(cat, cat, 2) {
			if rec := advisorySentence(chunk.Content); rec != "" && !seen[rec] {
				seen[rec] = true
				recs = append(recs, rec)
				if len(recs) == 5 {
					return recs
				}
			}
		}
	}
	return recs
}

func advisorySentence(content string) string {
	for _, sentence := range strings.Split(content, ".") {
		lower := strings.ToLower(sentence)
		for _, w := range []string{"recommend", "should", "consider", "ensure"} {
			if strings.Contains(lower, w) {
				if s := strings.TrimSpace(sentence); len(s) > 20 {
					return s
				}
			}
		}
	}
	return ""
}
