package risk

import "strings"

// Scanner evaluates a rule set against documents.
type Scanner struct {
	rules []Rule
}

// NewScanner wraps an already-compiled rule set.
func NewScanner(rules []Rule) *Scanner {
	return &Scanner{rules: rules}
}

// Find returns every rule that fires against text, in catalog order.
// Matching runs over a lowercased, whitespace-collapsed copy so
// patterns do not have to anticipate line breaks inside clauses.
func (s *Scanner) Find(text string) []Flag {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))

	var flags []Flag
	for _, r := range s.rules {
		if r.re != nil && !r.re.MatchString(normalized) {
			continue
		}
		if r.absent != nil && r.absent.MatchString(normalized) {
			continue
		}
		flags = append(flags, Flag{
			Label:       r.Label,
			Severity:    r.Severity,
			Category:    r.Category,
			Description: r.Description,
		})
	}
	return flags
}

// CountBySeverity tallies flags per severity level.
func CountBySeverity(flags []Flag) map[Severity]int {
	counts := make(map[Severity]int, 3)
	for _, f := range flags {
		counts[f.Severity]++
	}
	return counts
}
