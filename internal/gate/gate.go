// Package gate is the document admission gate: a multi-signal,
// threshold-based decision procedure that accepts true contracts,
// accepts borderline legal documents under stricter corroboration, and
// rejects everything else. Every verdict carries positive and negative
// evidence, and classification never fails for any text input.
package gate

import (
	"context"
	"time"

	"github.com/lexgate/lexgate/internal/textnorm"
)

// Corroborator supplies an optional semantic-similarity signal against
// a reference template corpus. ok=false means the signal is
// unavailable; the policy then drops the semantic clause from its
// conjunction instead of failing the decision.
type Corroborator interface {
	Similarity(ctx context.Context, text string) (sim float64, ok bool)
}

// DefaultCorroboratorTimeout bounds the one I/O-bound step in the hot
// path. No retries: fast degradation beats latency.
const DefaultCorroboratorTimeout = 2 * time.Second

// corroboratorQueryLen trims the text sent to the corroborator.
const corroboratorQueryLen = 4000

// Config configures a Classifier. Zero values select defaults.
type Config struct {
	Thresholds          *Thresholds
	Corroborator        Corroborator
	CorroboratorTimeout time.Duration
}

// Classifier is the admission gate. It is stateless per document and
// safe for concurrent use: extractors are pure functions over
// immutable input.
type Classifier struct {
	th      Thresholds
	corr    Corroborator
	timeout time.Duration
}

// New creates a Classifier.
func New(cfg Config) *Classifier {
	th := DefaultThresholds()
	if cfg.Thresholds != nil {
		th = *cfg.Thresholds
	}
	timeout := cfg.CorroboratorTimeout
	if timeout <= 0 {
		timeout = DefaultCorroboratorTimeout
	}
	return &Classifier{th: th, corr: cfg.Corroborator, timeout: timeout}
}

// Classify produces a Verdict for raw text. It never returns an error:
// empty strings, pure binary, and multi-megabyte documents all yield a
// verdict. The caller owns upstream byte-to-text extraction.
func (c *Classifier) Classify(ctx context.Context, text string) Verdict {
	n := textnorm.Normalize(text)

	// Absolute floor: terminal, no further checks.
	if textnorm.CountChars(n.Text) < c.th.MinChars || n.WordCount < c.th.MinWords {
		return Verdict{
			Label:      LabelNonLegal,
			Confidence: ConfidenceNone,
			Reason:     reasonTooShort,
			WordCount:  n.WordCount,
			Positives:  []string{},
			Negatives:  []string{"below minimum document length"},
		}
	}

	short := n.WordCount >= c.th.ShortMinWords && n.WordCount < c.th.FullMinWords

	s := extractSignals(n, short, c.th)
	sc := computeScore(s, short, s.essentials, c.th)
	sim := c.similarity(ctx, n)
	d := decide(s, sc, n.WordCount, sim, c.th)

	reason := d.Reason
	if d.Label == LabelNonLegal && n.Binary {
		reason = reasonBinary
	}

	return Verdict{
		Label:              d.Label,
		Confidence:         d.Confidence,
		Reason:             reason,
		Score:              sc.Score,
		WordCount:          n.WordCount,
		EssentialElements:  s.essentials,
		EssentialCount:     s.essentials.Count(),
		DistinctParties:    s.partyCount,
		SemanticSimilarity: sim,
		Positives:          sc.Positives,
		Negatives:          sc.Negatives,
		Evidence:           s.all(),
	}
}

// similarity queries the corroborator with a bounded timeout. Any
// failure mode (absent corroborator, timeout, panic, ok=false)
// degrades to nil.
func (c *Classifier) similarity(ctx context.Context, n textnorm.Normalized) *float64 {
	if c.corr == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		sim float64
		ok  bool
	}
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if recover() != nil {
				ch <- result{}
			}
		}()
		sim, ok := c.corr.Similarity(ctx, textnorm.Head(n.Folded, corroboratorQueryLen))
		ch <- result{sim, ok}
	}()

	select {
	case <-ctx.Done():
		return nil
	case r := <-ch:
		if !r.ok {
			return nil
		}
		if r.sim < 0 {
			r.sim = 0
		}
		if r.sim > 1 {
			r.sim = 1
		}
		return &r.sim
	}
}
