package gate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexgate/lexgate/internal/textnorm"
)

// Signal names, reported in evidence for explainability.
const (
	SignalTitle     = "title_cue"
	SignalParties   = "parties_cue"
	SignalHeadings  = "heading_density"
	SignalSignature = "signature_block"
	SignalGoverning = "governing_law"
	SignalClauses   = "clause_density"
	SignalNegative  = "negative_vocabulary"
	SignalBullets   = "bullet_density"
	SignalBinary    = "binary_garbage"
)

var (
	titlePattern = regexp.MustCompile(`(?i)\b(agreement|contract|terms\s+and\s+conditions|statement\s+of\s+work|non[- ]?disclosure|memorandum\s+of\s+understanding|master\s+services?|amendment|addendum|lease|license)\b`)

	partiesPattern = regexp.MustCompile(`(?is)(this\s+\S*\s*agreement\s+is\s+(made|entered\s+into).{0,200}?by\s+and\s+between)|(\bby\s+and\s+between\b)|(\bbetween\s+.{1,80}?\s+and\s+.{1,80})`)

	// Uppercase or numbered headings: "1.2 CONFIDENTIALITY", "SECTION 5",
	// "ARTICLE IV", or a numbered title-case heading "3. Termination".
	upperHeadingLine    = regexp.MustCompile(`^(?:(?:\d+(?:\.\d+)*|SECTION\s+\d+|ARTICLE\s+[IVXLC\d]+)[.):]?\s+)?[A-Z][A-Z0-9 \-/&',]{2,59}:?$`)
	numberedHeadingLine = regexp.MustCompile(`^\d+(?:\.\d+)*[.)]?\s+[A-Z][a-z][A-Za-z \-/&',]{1,50}:?$`)

	signaturePattern = regexp.MustCompile(`(?i)in\s+witness\s+whereof|\bsignatures?\b|\bby:\s|\bby:\s*_+|dated?:\s*_*|authorized\s+signatory|/s/`)

	governingPattern = regexp.MustCompile(`(?i)governing\s+law|jurisdiction|venue|courts?\s+of|governed\s+by\s+the\s+laws`)

	bulletLine = regexp.MustCompile(`^\s*(?:[-*•◦]|\(?[a-z0-9]{1,3}[.)])\s+`)

	legalStructurePattern = regexp.MustCompile(`(?i)\bwhereas\b|\bwitnesseth\b|\bjurisdiction\b|\bhereinafter\b|\bpursuant\s+to\b`)

	// Entity references like "Acme Holdings Inc." or "Beta LLC", matched
	// against the case-preserved text.
	entityPattern = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&'.-]*(?:\s+[A-Z][A-Za-z0-9&'.-]*){0,4}[,]?\s+(?:Inc|LLC|L\.L\.C|Ltd|Corp|Corporation|Company|GmbH|S\.A|plc|LLP)\.?(?:\s|[,.;)]|$)`)
)

// clauseTerms is the boilerplate clause-type vocabulary. Distinct hits
// convert to clause-density points.
var clauseTerms = []string{
	"confidentiality",
	"confidential information",
	"indemnification",
	"indemnify",
	"termination",
	"force majeure",
	"severability",
	"assignment",
	"warranty",
	"warranties",
	"limitation of liability",
	"governing law",
	"arbitration",
	"dispute resolution",
	"intellectual property",
	"payment terms",
	"representations",
	"covenants",
	"waiver",
	"notices",
	"entire agreement",
	"counterparts",
	"survival",
	"non-compete",
	"non-solicitation",
	"liquidated damages",
	"injunctive relief",
	"consideration",
}

// partyRoles are role nouns that denote a contracting party.
var partyRoles = []string{
	"disclosing party",
	"receiving party",
	"employer",
	"employee",
	"contractor",
	"client",
	"vendor",
	"supplier",
	"licensor",
	"licensee",
	"lessor",
	"lessee",
	"buyer",
	"seller",
	"consultant",
}

// negativeVocab flags developer/tutorial/non-legal vocabulary. Each hit
// is a fixed penalty, reported by name.
var negativeVocab = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"python_import", regexp.MustCompile(`(?m)^\s*(import\s+\w+|from\s+\w+\s+import\b)`)},
	{"python_def", regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(`)},
	{"python_class", regexp.MustCompile(`(?m)^\s*class\s+\w+\s*[:(]`)},
	{"pip_install", regexp.MustCompile(`\bpip\s+install\b`)},
	{"sql_query", regexp.MustCompile(`\bselect\s+(\*|\w+)\s+from\b`)},
	{"code_fence", regexp.MustCompile("```")},
	{"c_include", regexp.MustCompile(`#include\s*[<"]`)},
	{"function_decl", regexp.MustCompile(`\bfunction\s+\w+\s*\(`)},
	{"syllabus", regexp.MustCompile(`\bsyllabus\b`)},
	{"tutorial", regexp.MustCompile(`\btutorial\b`)},
	{"how_to", regexp.MustCompile(`\bhow\s+to\b`)},
	{"lorem_ipsum", regexp.MustCompile(`\blorem\s+ipsum\b`)},
}

var essentialPatterns = struct {
	offerAcceptance *regexp.Regexp
	consideration   *regexp.Regexp
	legalIntent     *regexp.Regexp
	capacity        *regexp.Regexp
}{
	offerAcceptance: regexp.MustCompile(`(?i)the\s+parties\s+(hereby\s+)?agree|hereby\s+agrees?|mutually\s+agree|offer\s+and\s+acceptance|accepts?\s+the\s+terms`),
	consideration:   regexp.MustCompile(`(?i)in\s+consideration\s+of|in\s+exchange\s+for|\bcompensation\b|mutual\s+promises|payment\s+of|fees?\s+payable`),
	legalIntent:     regexp.MustCompile(`(?is)legally\s+binding|whereas\b.{0,600}?now,?\s+therefore|binding\s+upon|intend(s|ed)?\s+to\s+be\s+legally\s+bound`),
	capacity:        regexp.MustCompile(`(?i)duly\s+authorized|authorized\s+representative|full\s+power\s+and\s+authority|legal\s+capacity`),
}

// signals are the extractor outputs the scorer and policy consume.
// Extractors run independently over immutable input; order does not
// matter.
type signals struct {
	title     Evidence
	parties   Evidence
	headings  Evidence
	signature Evidence
	governing Evidence
	clauses   Evidence
	negative  Evidence
	bullets   Evidence
	binary    Evidence

	essentials     EssentialElements
	clauseHits     int
	partyCount     int
	legalStructure bool
}

// all returns every evidence item in a stable order.
func (s signals) all() []Evidence {
	return []Evidence{
		s.title, s.parties, s.headings, s.signature, s.governing,
		s.clauses, s.negative, s.bullets, s.binary,
	}
}

// extractSignals runs every extractor over the normalized document.
// Individual extractor failures degrade to absent evidence; they never
// abort classification.
func extractSignals(n textnorm.Normalized, short bool, th Thresholds) signals {
	var s signals
	s.title = safeEvidence(SignalTitle, func() Evidence { return extractTitle(n, short, th) })
	s.parties = safeEvidence(SignalParties, func() Evidence { return extractParties(n, th) })
	s.headings = safeEvidence(SignalHeadings, func() Evidence { return extractHeadings(n, short, th) })
	s.signature = safeEvidence(SignalSignature, func() Evidence { return extractSignature(n, th) })
	s.governing = safeEvidence(SignalGoverning, func() Evidence { return extractGoverning(n, th) })
	s.clauses, s.clauseHits = extractClauses(n, short, th)
	s.negative = safeEvidence(SignalNegative, func() Evidence { return extractNegative(n, th) })
	s.bullets = safeEvidence(SignalBullets, func() Evidence { return extractBullets(n, short, th) })
	s.binary = extractBinary(n, th)
	s.essentials = extractEssentials(n)
	s.partyCount = countParties(n)
	s.legalStructure = legalStructurePattern.MatchString(n.Folded)
	return s
}

// safeEvidence runs one extractor, converting a panic into absent
// evidence so a malformed pattern can never abort the whole verdict.
func safeEvidence(signal string, fn func() Evidence) (ev Evidence) {
	defer func() {
		if r := recover(); r != nil {
			ev = Evidence{Signal: signal, Present: false, Detail: "extractor failed"}
		}
	}()
	return fn()
}

func extractTitle(n textnorm.Normalized, short bool, th Thresholds) Evidence {
	head := textnorm.Head(n.Folded, th.TitleWindow)
	weight := th.TitleWeightFull
	if short {
		weight = th.TitleWeightShort
	}
	m := titlePattern.FindString(head)
	if m == "" {
		return Evidence{Signal: SignalTitle, Weight: weight}
	}
	return Evidence{
		Signal:  SignalTitle,
		Present: true,
		Weight:  weight,
		Detail:  fmt.Sprintf("title vocabulary near top: %q", m),
	}
}

func extractParties(n textnorm.Normalized, th Thresholds) Evidence {
	head := textnorm.Head(n.Folded, th.PartiesWindow)
	if !partiesPattern.MatchString(head) {
		return Evidence{Signal: SignalParties, Weight: th.PartiesWeight}
	}
	return Evidence{
		Signal:  SignalParties,
		Present: true,
		Weight:  th.PartiesWeight,
		Detail:  "parties clause in opening recitals",
	}
}

func extractHeadings(n textnorm.Normalized, short bool, th Thresholds) Evidence {
	minCount := th.HeadingMinFull
	if short {
		minCount = th.HeadingMinShort
	}
	count := 0
	for _, line := range strings.Split(n.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if upperHeadingLine.MatchString(line) || numberedHeadingLine.MatchString(line) {
			count++
			if count >= th.HeadingCap {
				break
			}
		}
	}
	ev := Evidence{
		Signal: SignalHeadings,
		Weight: count * th.HeadingWeight,
		Detail: fmt.Sprintf("%d heading-like lines (min %d)", count, minCount),
	}
	if count >= minCount {
		ev.Present = true
	}
	return ev
}

func extractSignature(n textnorm.Normalized, th Thresholds) Evidence {
	window := th.SignatureTail
	if quarter := textnorm.CountChars(n.Text) / 4; quarter > window {
		window = quarter
	}
	tail := textnorm.Tail(n.Text, window)
	m := signaturePattern.FindString(tail)
	if m == "" {
		return Evidence{Signal: SignalSignature, Weight: th.SignatureWeight}
	}
	return Evidence{
		Signal:  SignalSignature,
		Present: true,
		Weight:  th.SignatureWeight,
		Detail:  fmt.Sprintf("signature block near end: %q", strings.TrimSpace(m)),
	}
}

func extractGoverning(n textnorm.Normalized, th Thresholds) Evidence {
	m := governingPattern.FindString(n.Folded)
	if m == "" {
		return Evidence{Signal: SignalGoverning, Weight: th.GoverningWeight}
	}
	return Evidence{
		Signal:  SignalGoverning,
		Present: true,
		Weight:  th.GoverningWeight,
		Detail:  fmt.Sprintf("governing-law language: %q", m),
	}
}

// extractClauses counts distinct boilerplate clause terms and converts
// them to capped points. The per-hit multiplier is higher in short mode
// because a 200-word NDA cannot accumulate the raw density of a
// 10-page MSA.
func extractClauses(n textnorm.Normalized, short bool, th Thresholds) (Evidence, int) {
	perHit := th.ClausePointFull
	if short {
		perHit = th.ClausePointShort
	}
	var hits []string
	for _, term := range clauseTerms {
		if strings.Contains(n.Folded, term) {
			hits = append(hits, term)
		}
	}
	points := len(hits) * perHit
	if points > th.ClausePointCap {
		points = th.ClausePointCap
	}
	ev := Evidence{
		Signal: SignalClauses,
		Weight: points,
		Detail: fmt.Sprintf("%d distinct clause terms", len(hits)),
	}
	if len(hits) > 0 {
		ev.Present = true
		ev.Detail = fmt.Sprintf("%d distinct clause terms: %s", len(hits), strings.Join(hits, ", "))
	}
	return ev, len(hits)
}

func extractNegative(n textnorm.Normalized, th Thresholds) Evidence {
	var names []string
	for _, nv := range negativeVocab {
		if nv.pattern.MatchString(n.Folded) {
			names = append(names, nv.name)
		}
	}
	if len(names) == 0 {
		return Evidence{Signal: SignalNegative, Weight: -th.NegativePenalty}
	}
	return Evidence{
		Signal:  SignalNegative,
		Present: true,
		Weight:  -th.NegativePenalty * len(names),
		Detail:  "non-legal vocabulary: " + strings.Join(names, ", "),
	}
}

func extractBullets(n textnorm.Normalized, short bool, th Thresholds) Evidence {
	bar := th.BulletRatioFull
	if short {
		bar = th.BulletRatioShort
	}
	total, bullets := 0, 0
	for _, line := range strings.Split(n.Text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		if bulletLine.MatchString(line) {
			bullets++
		}
	}
	ev := Evidence{Signal: SignalBullets, Weight: -th.BulletPenalty}
	if total == 0 {
		return ev
	}
	ratio := float64(bullets) / float64(total)
	ev.Detail = fmt.Sprintf("bullet ratio %.2f (bar %.2f)", ratio, bar)
	if ratio > bar {
		ev.Present = true
	}
	return ev
}

// extractBinary surfaces a failed upstream text extraction as heavy
// negative evidence rather than an exception.
func extractBinary(n textnorm.Normalized, th Thresholds) Evidence {
	ev := Evidence{Signal: SignalBinary, Weight: -th.BinaryPenalty}
	if n.Binary {
		ev.Present = true
		ev.Detail = "high control-character ratio; upstream text extraction likely failed"
	}
	return ev
}

func extractEssentials(n textnorm.Normalized) EssentialElements {
	return EssentialElements{
		OfferAcceptance: essentialPatterns.offerAcceptance.MatchString(n.Folded),
		Consideration:   essentialPatterns.consideration.MatchString(n.Folded),
		LegalIntent:     essentialPatterns.legalIntent.MatchString(n.Folded),
		Capacity:        essentialPatterns.capacity.MatchString(n.Folded),
	}
}

// countParties estimates how many distinct parties the document
// references: named entities ("Acme Inc.", "Beta LLC") on the
// case-preserved text, role nouns on the folded text. The larger of
// the two counts wins so an entity and its role are not double
// counted. Capped at 8.
func countParties(n textnorm.Normalized) int {
	entities := map[string]bool{}
	for _, m := range entityPattern.FindAllString(textnorm.Head(n.Text, 20000), -1) {
		entities[strings.TrimRight(strings.TrimSpace(m), ",.;)")] = true
	}

	roles := map[string]bool{}
	for _, role := range partyRoles {
		if strings.Contains(n.Folded, role) {
			roles[role] = true
		}
	}

	count := len(entities)
	if len(roles) > count {
		count = len(roles)
	}
	if count > 8 {
		count = 8
	}
	return count
}
