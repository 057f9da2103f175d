package risk

import (
	"fmt"
	"regexp"
	"strings"
)

// Deviation flags a gap or oddity relative to a standard template for
// the identified contract type.
type Deviation struct {
	Type        string `json:"type"` // missing_clause or unusual_clause
	ClauseType  string `json:"clause_type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

var expectedClauses = map[string][]string{
	TypeNDA:        {"confidential_information_definition", "permitted_disclosures", "return_of_information", "term_duration"},
	TypeService:    {"scope_of_work", "payment_terms", "intellectual_property", "termination_rights", "liability_limitations"},
	TypeEmployment: {"job_responsibilities", "compensation_benefits", "termination_conditions", "non_compete_clause", "confidentiality"},
}

var clausePatterns = map[string]*regexp.Regexp{
	"confidential_information_definition": regexp.MustCompile(`(?s)\bconfidential\s+information\b.*\bmeans\b`),
	"permitted_disclosures":               regexp.MustCompile(`(?s)\bpermitted\s+disclosure\b|\bexceptions?\b.*\bconfidentialit`),
	"return_of_information":               regexp.MustCompile(`(?s)\breturn\b.*\b(?:information|materials?|documents?)\b`),
	"term_duration":                       regexp.MustCompile(`(?s)\bterm\b.*\b(?:years?|months?|period)\b`),
	"scope_of_work":                       regexp.MustCompile(`\bscope\s+of\s+work\b|\bservices?\s+(?:to\s+be\s+)?provided\b`),
	"payment_terms":                       regexp.MustCompile(`\bpayment\s+terms?\b|\bcompensation\b|\bfees?\b`),
	"intellectual_property":               regexp.MustCompile(`(?s)\bintellectual\s+property\b|\bownership\b.*\bwork\s+product\b`),
	"termination_rights":                  regexp.MustCompile(`(?s)\btermination\b.*\b(?:rights?|notice)\b`),
	"liability_limitations":               regexp.MustCompile(`\blimitation\s+of\s+liability\b|\bliability\s+cap\b`),
	"job_responsibilities":                regexp.MustCompile(`(?s)\b(?:duties|responsibilities)\b|\bjob\s+description\b`),
	"compensation_benefits":               regexp.MustCompile(`(?s)\b(?:salary|compensation)\b.*\bbenefits?\b`),
	"termination_conditions":              regexp.MustCompile(`(?s)\btermination\b.*\b(?:cause|notice|conditions?)\b`),
	"non_compete_clause":                  regexp.MustCompile(`\bnon[- ]?compete\b|\bnon[- ]?solicitation\b`),
	"confidentiality":                     regexp.MustCompile(`\bconfidential`),
}

var unusualPatterns = []struct {
	re          *regexp.Regexp
	clauseType  string
	description string
}{
	{regexp.MustCompile(`\bperpetual\b`), "perpetual_term", "Unusual perpetual term"},
	{regexp.MustCompile(`\btrial\s+by\s+jury\s+waiver\b|\bwaives?\s+.{0,30}\bjury\s+trial\b`), "jury_waiver", "Jury trial waiver clause"},
	{regexp.MustCompile(`\bexclusive\s+jurisdiction\b`), "exclusive_jurisdiction", "Exclusive jurisdiction clause"},
	{regexp.MustCompile(`(?s)\battorneys?\s+fees?\b.*\bprevailing\s+party\b`), "attorney_fees", "Attorney fees clause"},
}

// AnalyzeDeviations compares text against the expected clause set for
// contractType and flags standard clauses that are missing plus any
// unusual clauses that appear. An unknown type skips the missing-clause
// pass but still reports unusual clauses.
func AnalyzeDeviations(text, contractType string) []Deviation {
	normalized := strings.ToLower(text)
	var devs []Deviation

	for _, clauseType := range expectedClauses[contractType] {
		if re := clausePatterns[clauseType]; re != nil && !re.MatchString(normalized) {
			devs = append(devs, Deviation{
				Type:        "missing_clause",
				ClauseType:  clauseType,
				Severity:    "medium",
				Description: fmt.Sprintf("Missing standard %s clause", strings.ReplaceAll(clauseType, "_", " ")),
			})
		}
	}
	for _, u := range unusualPatterns {
		if u.re.MatchString(normalized) {
			devs = append(devs, Deviation{
				Type:        "unusual_clause",
				ClauseType:  u.clauseType,
				Severity:    "low",
				Description: u.description,
			})
		}
	}
	return devs
}

// Recommendations summarizes a deviation list into review guidance.
func Recommendations(devs []Deviation) []string {
	var missing, unusual int
	for _, d := range devs {
		switch d.Type {
		case "missing_clause":
			missing++
		case "unusual_clause":
			unusual++
		}
	}
	var recs []string
	if missing > 2 {
		recs = append(recs, "Consider adding missing standard clauses to improve contract completeness")
	}
	if unusual > 0 {
		recs = append(recs, "Review unusual clauses for potential risks and enforceability issues")
	}
	if missing == 0 && unusual == 0 {
		recs = append(recs, "Contract structure aligns well with standard templates")
	}
	return recs
}
