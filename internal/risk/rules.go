// Package risk holds the red-flag catalog and the contract-type and
// template-deviation heuristics that run over admitted documents.
package risk

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// Severity ranks a red flag.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rule describes one red flag. Pattern must match for the flag to
// fire. Absent, when set, is a second pattern whose match SUPPRESSES
// the flag: "one-sided indemnification" fires on an indemnify clause
// only when no mutuality language appears anywhere in the document.
// A rule with an empty Pattern is a pure absence check and fires
// whenever Absent fails to match.
type Rule struct {
	Label       string   `json:"label"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Pattern     string   `json:"pattern,omitempty"`
	Absent      string   `json:"absent,omitempty"`

	re     *regexp.Regexp
	absent *regexp.Regexp
}

// Flag is one fired rule.
type Flag struct {
	Label       string   `json:"label"`
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// builtinRules is the default catalog. Patterns are written for text
// that has been lowercased and whitespace-collapsed; (?s) lets the
// clause-spanning ".*" cross what used to be line boundaries.
var builtinRules = []Rule{
	{
		Label: "Unlimited liability exposure", Severity: SeverityHigh, Category: "liability",
		Pattern:     `(?s)\b(unlimited|without\s+limit|no\s+cap|all\s+damages)\b.*\b(liability|damages|loss)\b`,
		Description: "Exposes party to unlimited financial risk",
	},
	{
		Label: "One-sided indemnification", Severity: SeverityHigh, Category: "indemnity",
		Pattern:     `\b(?:client|contractor|vendor|party)\s+(?:shall|will|agrees?\s+to)\s+indemnify`,
		Absent:      `\bmutual(?:ly)?\b|\beach\s+party\b`,
		Description: "Only one party bears indemnification burden",
	},
	{
		Label: "Broad IP assignment beyond scope", Severity: SeverityHigh, Category: "intellectual_property",
		Pattern:     `(?s)\b(all|any)\s+(?:inventions?|developments?|works?|intellectual\s+property|improvements)\b.*\b(assign|transfer|belong|property|sole\s+property)\b`,
		Description: "Assigns IP beyond project deliverables",
	},
	{
		Label: "Termination only for cause", Severity: SeverityHigh, Category: "termination",
		Pattern:     `(?s)\btermination?\b.*\b(?:only|solely)\s+(?:for\s+cause|upon\s+breach)\b`,
		Description: "No termination for convenience option",
	},
	{
		Label: "Auto-renewal without adequate notice", Severity: SeverityMedium, Category: "termination",
		Pattern:     `\b(?:auto(?:matic(?:ally)?)?|shall)\s+(?:renew|extend)\b`,
		Description: "Auto-renewal clause detected",
	},
	{
		Label: "Excessive interest or penalty rates", Severity: SeverityMedium, Category: "payment",
		Pattern:     `\b(?:1[8-9]|2[0-9]|[3-9][0-9])%\s+(?:per\s+annum|interest|penalty)`,
		Description: "Interest or penalty rates above 18% annually",
	},
	{
		Label: "Unlimited indemnification scope", Severity: SeverityHigh, Category: "indemnity",
		Pattern:     `(?s)\bindemnify.*\b(?:regardless|whether\s+caused\s+by|all\s+claims)`,
		Description: "Indemnification without carve-outs for gross negligence",
	},
	{
		Label: "Payment terms exceeding NET 60", Severity: SeverityMedium, Category: "payment",
		Pattern:     `(?s)\bnet\s+(?:6[5-9]|[7-9]\d|\d{3,})\s+days?\b|\bpayment.*(?:90|120|\d{3,})\s+days?\b`,
		Description: "Extended payment terms harm cash flow",
	},
	{
		Label: "Confidentiality without time limit", Severity: SeverityMedium, Category: "confidentiality",
		Pattern:     `\bconfidential`,
		Absent:      `\d+\s+years?\b|\bterm\s+of\b|\bupon\s+termination\b`,
		Description: "Perpetual confidentiality obligations",
	},
	{
		Label: "Non-compete exceeding 1 year", Severity: SeverityMedium, Category: "restrictions",
		Pattern:     `(?s)\bnon[- ]?compete.*\b(?:[2-9]\d*|[1-9]\d+)\s+years?\b`,
		Description: "Excessive non-compete restriction period",
	},
	{
		Label: "Governing law in unfavorable jurisdiction", Severity: SeverityMedium, Category: "dispute",
		Pattern:     `(?s)\bgoverning\s+law.*\b(?:delaware|new\s+york|california)\b`,
		Absent:      `\bmutual(?:ly)?\s+(?:agreed|selected)\b`,
		Description: "May favor other party's jurisdiction",
	},
	{
		Label: "Mandatory arbitration with limited discovery", Severity: SeverityMedium, Category: "dispute",
		Pattern:     `(?s)\barbitration\b.*\b(?:final|binding)\b`,
		Absent:      `\bdiscovery\b|\bappeal\b`,
		Description: "Limits legal recourse and discovery rights",
	},
	{
		Label: "Missing liability cap clause", Severity: SeverityLow, Category: "liability",
		Absent:      `\blimit(?:ation)?\s+of\s+liability\b|\bliability\s+(?:cap|limit)\b`,
		Description: "Should include liability limitations",
	},
	{
		Label: "Vague performance standards", Severity: SeverityLow, Category: "performance",
		Pattern:     `\b(?:reasonable|best|commercially\s+reasonable)\s+efforts?\b`,
		Description: "Performance standards are subjective",
	},
	{
		Label: "Force majeure without mutual protection", Severity: SeverityLow, Category: "force_majeure",
		Pattern:     `\bforce\s+majeure\b`,
		Absent:      `\bboth\s+parties\b|\beach\s+party\b`,
		Description: "Force majeure may not protect both parties",
	},
}

func compileRules(rules []Rule) ([]Rule, error) {
	out := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if r.Pattern == "" && r.Absent == "" {
			return nil, fmt.Errorf("rule %d (%s): needs a pattern or an absence pattern", i, r.Label)
		}
		if r.Pattern != "" {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): pattern: %w", i, r.Label, err)
			}
			r.re = re
		}
		if r.Absent != "" {
			re, err := regexp.Compile(r.Absent)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): absent: %w", i, r.Label, err)
			}
			r.absent = re
		}
		out = append(out, r)
	}
	return out, nil
}

// DefaultRules returns the compiled builtin catalog.
func DefaultRules() []Rule {
	rules, err := compileRules(builtinRules)
	if err != nil {
		// Builtin patterns are covered by tests; a compile failure
		// here is a programming error.
		panic(err)
	}
	return rules
}

// LoadRules reads a JSON rule file and returns its compiled rules.
// The file wholly replaces the builtin catalog.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s: no rules", path)
	}
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return compiled, nil
}
