package gate

import "fmt"

// scoreResult is the scorer's aggregate: the clamped score, the
// explainability lists, and whether the short-document accept rule
// fired.
type scoreResult struct {
	Score     int
	ShortRule bool
	Positives []string
	Negatives []string
}

// computeScore sums signed evidence contributions and clamps to
// [0, 100]. Weight counts only when the evidence is present; the score
// is monotonic in evidence (positive items never lower it, negative
// items never raise it).
//
// The short-document accept rule: in short mode, two of the three
// structural cues (title, parties, signature) plus a minimum clause
// density force-accept the document regardless of raw score. Short
// valid NDAs cannot accumulate the absolute score of a long MSA.
func computeScore(s signals, short bool, essentials EssentialElements, th Thresholds) scoreResult {
	var res scoreResult
	raw := 0

	for _, ev := range s.all() {
		if !ev.Present {
			continue
		}
		raw += ev.Weight
		if ev.Weight >= 0 {
			res.Positives = append(res.Positives, describe(ev))
		} else {
			res.Negatives = append(res.Negatives, describe(ev))
		}
	}

	if n := essentials.Count(); n > 0 {
		raw += n * th.EssentialWeight
		res.Positives = append(res.Positives, fmt.Sprintf("%d of 4 essential contract elements", n))
	} else {
		res.Negatives = append(res.Negatives, "no essential contract elements detected")
	}

	if short {
		structural := 0
		for _, ev := range []Evidence{s.title, s.parties, s.signature} {
			if ev.Present {
				structural++
			}
		}
		if structural >= 2 && s.clauseHits >= th.ShortClauseMin {
			res.ShortRule = true
			res.Positives = append(res.Positives,
				fmt.Sprintf("short-document rule: %d structural cues and %d clause terms", structural, s.clauseHits))
		}
	}

	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	res.Score = raw
	return res
}

func describe(ev Evidence) string {
	if ev.Detail != "" {
		return ev.Signal + ": " + ev.Detail
	}
	return ev.Signal
}
