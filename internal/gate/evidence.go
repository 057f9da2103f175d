package gate

// Label is the admission decision for a document.
type Label string

const (
	LabelContract      Label = "contract"
	LabelLegalDocument Label = "legal_document"
	LabelNonLegal      Label = "non_legal"
)

// Confidence is the tier attached to a verdict.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Evidence is one extractor's contribution to the verdict. Weight is
// signed and contributes to the score only when Present is true.
type Evidence struct {
	Signal  string `json:"signal"`
	Present bool   `json:"present"`
	Weight  int    `json:"weight"`
	Detail  string `json:"detail,omitempty"`
}

// EssentialElements are the four classical contract-formation
// requirements, each detected by its own pattern set.
type EssentialElements struct {
	OfferAcceptance bool `json:"offer_acceptance"`
	Consideration   bool `json:"consideration"`
	LegalIntent     bool `json:"legal_intent"`
	Capacity        bool `json:"capacity"`
}

// Count returns how many of the four elements are present.
func (e EssentialElements) Count() int {
	n := 0
	for _, b := range []bool{e.OfferAcceptance, e.Consideration, e.LegalIntent, e.Capacity} {
		if b {
			n++
		}
	}
	return n
}

// Verdict is the immutable result of classifying one document. It is
// computed once per submission and consumed read-only downstream.
type Verdict struct {
	Label              Label             `json:"label"`
	Confidence         Confidence        `json:"confidence"`
	Reason             string            `json:"reason"`
	Score              int               `json:"score"`
	WordCount          int               `json:"word_count"`
	EssentialElements  EssentialElements `json:"essential_elements"`
	EssentialCount     int               `json:"essential_count"`
	DistinctParties    int               `json:"num_distinct_parties"`
	SemanticSimilarity *float64          `json:"semantic_similarity,omitempty"`
	Positives          []string          `json:"positives"`
	Negatives          []string          `json:"negatives"`
	Evidence           []Evidence        `json:"evidence,omitempty"`
}

// Accepted reports whether the document passed the gate.
func (v Verdict) Accepted() bool {
	return v.Label != LabelNonLegal
}
