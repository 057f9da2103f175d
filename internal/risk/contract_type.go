package risk

import (
	"regexp"
	"strings"
)

// Contract types the identifier can report.
const (
	TypeNDA        = "Non-Disclosure Agreement"
	TypeService    = "Service Agreement"
	TypeEmployment = "Employment Agreement"
	TypeUnknown    = "unknown"
)

type typeCue struct {
	re     *regexp.Regexp
	weight float64
}

var typeCues = map[string][]typeCue{
	TypeNDA: {
		{regexp.MustCompile(`\b(?:non[- ]?disclosure|confidentiality)\s+agreement\b`), 0.9},
		{regexp.MustCompile(`\bconfidential\s+information\b`), 0.3},
		{regexp.MustCompile(`(?s)\bdisclosure\b.*\bconfidential\b`), 0.4},
		{regexp.MustCompile(`(?s)\breceiving\s+party\b.*\bdisclosing\s+party\b`), 0.7},
	},
	TypeService: {
		{regexp.MustCompile(`\b(?:master\s+)?services?\s+agreement\b`), 0.9},
		{regexp.MustCompile(`\bstatement\s+of\s+work\b`), 0.8},
		{regexp.MustCompile(`(?s)\bservices?\b.*\bperform\b`), 0.3},
		{regexp.MustCompile(`\bdeliverables?\b`), 0.4},
	},
	TypeEmployment: {
		{regexp.MustCompile(`\bemployment\s+agreement\b`), 0.9},
		{regexp.MustCompile(`(?s)\bemployee\b.*\bemployer\b`), 0.7},
		{regexp.MustCompile(`(?s)\bsalary\b.*\bbenefits?\b`), 0.5},
		{regexp.MustCompile(`\btermination\s+of\s+employment\b`), 0.6},
	},
}

// IdentifyType reports the best-matching contract type and a
// confidence in [0, 1]. Each type's cue hits are averaged over its cue
// count so types with more cues are not favored. Ties keep the first
// winner encountered; with distinct per-type vocabularies real
// documents do not tie in practice.
func IdentifyType(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return TypeUnknown, 0
	}
	normalized := strings.ToLower(text)

	bestType, bestScore := TypeUnknown, 0.0
	for _, ctype := range []string{TypeNDA, TypeService, TypeEmployment} {
		cues := typeCues[ctype]
		score := 0.0
		for _, cue := range cues {
			if cue.re.MatchString(normalized) {
				score += cue.weight
			}
		}
		if avg := score / float64(len(cues)); avg > bestScore {
			bestScore, bestType = avg, ctype
		}
	}
	return bestType, bestScore
}
