// Package corpus maintains a reference corpus of contract templates
// and scores new documents against it. Each template is reduced to a
// normalized term-frequency vector; similarity is the mean cosine
// against the closest templates. The score is a corroborating signal
// for classification, not a classifier on its own.
package corpus

import (
	"context"
	"database/sql"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/lexgate/lexgate/internal/db"
	"github.com/lexgate/lexgate/internal/errors"
	"github.com/lexgate/lexgate/internal/risk"
)

// topMatches is how many nearest templates contribute to the score.
const topMatches = 5

var tokenPattern = regexp.MustCompile(`[a-z]{2,}`)

// stopwords excluded from vectors. Function words carry no signal and
// inflate cosine similarity between unrelated documents.
var stopwords = map[string]bool{
	"the": true, "and": true, "of": true, "to": true, "in": true,
	"for": true, "by": true, "or": true, "is": true, "are": true,
	"be": true, "as": true, "at": true, "on": true, "with": true,
	"that": true, "this": true, "any": true, "all": true, "such": true,
	"will": true, "may": true, "not": true, "its": true, "it": true,
	"an": true, "a": true, "from": true, "under": true, "other": true,
}

// Vectorize reduces text to a normalized term-frequency map. The
// weights sum to 1 for non-empty input.
func Vectorize(text string) map[string]float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	counts := make(map[string]int)
	total := 0
	for _, tok := range tokens {
		if stopwords[tok] {
			continue
		}
		counts[tok]++
		total++
	}
	if total == 0 {
		return nil
	}
	vec := make(map[string]float64, len(counts))
	for tok, n := range counts {
		vec[tok] = float64(n) / float64(total)
	}
	return vec
}

// Cosine computes cosine similarity between two term vectors.
func Cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Iterate the smaller map
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for tok, wa := range a {
		if wb, ok := b[tok]; ok {
			dot += wa * wb
		}
	}
	if dot == 0 {
		return 0
	}
	var na, nb float64
	for _, w := range a {
		na += w * w
	}
	for _, w := range b {
		nb += w * w
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Store scores documents against templates persisted in SQLite. It
// implements the classifier's similarity corroborator.
type Store struct {
	db *sql.DB
}

// NewStore wraps an initialized database handle.
func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// Ingest vectorizes template text and stores it under name. The
// contract type is detected from the text when not supplied.
func (s *Store) Ingest(ctx context.Context, name, text, contractType string) (*db.Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewInvalidRequest("template name is required")
	}
	vec := Vectorize(text)
	if vec == nil {
		return nil, errors.NewInvalidRequest("template text has no usable terms")
	}
	if contractType == "" {
		contractType, _ = risk.IdentifyType(text)
	}

	tpl := &db.Template{
		ID:           ulid.Make().String(),
		NameRaw:      strings.TrimSpace(name),
		NameNorm:     db.NormalizeName(name),
		ContractType: contractType,
		TextChars:    len(text),
		Vector:       vec,
	}
	if err := db.InsertTemplate(s.db, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// List returns stored templates, optionally filtered by contract type.
func (s *Store) List(ctx context.Context, contractType string) ([]*db.Template, error) {
	return db.ListTemplates(s.db, contractType)
}

// Delete removes a template by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return db.DeleteTemplate(s.db, id)
}

// Similarity scores text against the corpus: cosine against every
// template, averaged over the closest topMatches. The second return
// is false when the corpus is empty or unavailable, so classification
// proceeds without the semantic signal instead of failing.
func (s *Store) Similarity(ctx context.Context, text string) (float64, bool) {
	if s == nil || s.db == nil {
		return 0, false
	}
	if err := ctx.Err(); err != nil {
		return 0, false
	}
	templates, err := db.ListTemplates(s.db, "")
	if err != nil || len(templates) == 0 {
		return 0, false
	}

	vec := Vectorize(text)
	if vec == nil {
		return 0, false
	}

	scores := make([]float64, 0, len(templates))
	for _, tpl := range templates {
		scores = append(scores, Cosine(vec, tpl.Vector))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	if len(scores) > topMatches {
		scores = scores[:topMatches]
	}

	var sum float64
	for _, sc := range scores {
		sum += sc
	}
	return sum / float64(len(scores)), true
}
