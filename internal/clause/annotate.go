package clause

import (
	"regexp"
	"strings"
)

// Clause categories. CategoryMisc is the fallback when nothing else
// matches.
const (
	CategoryPayment         = "Payment Terms"
	CategoryConfidentiality = "Confidentiality"
	CategoryIP              = "Intellectual Property"
	CategoryIndemnity       = "Indemnity"
	CategoryLiability       = "Liability"
	CategoryTermination     = "Termination"
	CategoryGoverningLaw    = "Governing Law"
	CategoryAssignment      = "Assignment"
	CategoryNonCompete      = "Non-compete/Non-solicit"
	CategoryMisc            = "Miscellaneous"
)

// Risk levels for an annotated clause.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Annotation is the category and risk judgement for one chunk.
type Annotation struct {
	Category  string `json:"category"`
	Risk      string `json:"risk"`
	Rationale string `json:"rationale"`
}

// Annotated pairs a chunk with its annotation.
type Annotated struct {
	Chunk
	Annotation
}

// Annotator classifies a single chunk. Implementations must be safe
// for concurrent use.
type Annotator interface {
	Annotate(c Chunk) Annotation
}

type categoryCue struct {
	category string
	re       *regexp.Regexp
}

// Order decides ties: the first cue whose pattern hits the heading
// wins, then the first to hit the body.
var categoryCues = []categoryCue{
	{CategoryPayment, regexp.MustCompile(`\b(?:payment|fees?|invoice|compensation|net\s+\d+)\b`)},
	{CategoryConfidentiality, regexp.MustCompile(`\bconfidential|\bnon[- ]?disclosure\b`)},
	{CategoryIP, regexp.MustCompile(`\bintellectual\s+property\b|\bcopyright\b|\bpatent\b|\bwork\s+product\b|\blicense\b`)},
	{CategoryIndemnity, regexp.MustCompile(`\bindemnif`)},
	{CategoryLiability, regexp.MustCompile(`\bliability\b|\bdamages\b|\bwarrant(?:y|ies)\b`)},
	{CategoryTermination, regexp.MustCompile(`\bterminat|\bexpir(?:e|ation)\b|\brenew`)},
	{CategoryGoverningLaw, regexp.MustCompile(`\bgoverning\s+law\b|\bjurisdiction\b|\bvenue\b|\barbitration\b`)},
	{CategoryAssignment, regexp.MustCompile(`\bassign(?:ment|s)?\b|\bsuccessors?\b`)},
	{CategoryNonCompete, regexp.MustCompile(`\bnon[- ]?compete\b|\bnon[- ]?solicit`)},
}

var highRiskCue = regexp.MustCompile(`\bunlimited\b|\bwithout\s+limit\b|\bsole\s+discretion\b|\bwaives?\b|\birrevocabl|\bperpetual\b`)
var mediumRiskCue = regexp.MustCompile(`\bindemnif|\bexclusive\b|\bliquidated\s+damages\b|\bautomatic(?:ally)?\s+renew|\bnon[- ]?compete\b`)

// KeywordAnnotator is a deterministic, dependency-free Annotator built
// on the same cue vocabulary the red-flag catalog uses. It is the
// default when no model-backed annotator is configured.
type KeywordAnnotator struct{}

func (KeywordAnnotator) Annotate(c Chunk) Annotation {
	heading := strings.ToLower(c.Heading)
	body := strings.ToLower(c.Body)

	category := CategoryMisc
	matched := "no category cue matched"
	for _, cue := range categoryCues {
		if cue.re.MatchString(heading) {
			category = cue.category
			matched = "heading matched " + strings.ToLower(cue.category) + " vocabulary"
			break
		}
	}
	if category == CategoryMisc {
		for _, cue := range categoryCues {
			if cue.re.MatchString(body) {
				category = cue.category
				matched = "body matched " + strings.ToLower(cue.category) + " vocabulary"
				break
			}
		}
	}

	risk := RiskLow
	switch {
	case highRiskCue.MatchString(body):
		risk = RiskHigh
	case mediumRiskCue.MatchString(body):
		risk = RiskMedium
	}
	return Annotation{Category: category, Risk: risk, Rationale: matched}
}

// AnnotateAll runs an annotator over every chunk in order.
func AnnotateAll(chunks []Chunk, a Annotator) []Annotated {
	out := make([]Annotated, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, Annotated{Chunk: c, Annotation: a.Annotate(c)})
	}
	return out
}
