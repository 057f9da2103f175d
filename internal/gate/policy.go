package gate

// Rejection and acceptance reasons. The binary-garbage rejection reason
// replaces the generic one so a failed upstream extraction is not
// reported as "not a contract".
const (
	reasonTooShort      = "Document too short for analysis"
	reasonBinary        = "Rejected: text extraction appears to have failed (binary or non-text content)"
	reasonContract      = "Accepted: classified as contract"
	reasonContractShort = "Accepted: classified as contract (short-document rule)"
	reasonContractWeak  = "Rejected: insufficient joint evidence (similarity, essentials, parties/signatures, length)"
	reasonLegal         = "Accepted: legal document (not a full contract)"
	reasonLegalWeak     = "Rejected: lacks strong semantic and structural evidence of legal document"
	reasonNonLegal      = "Rejected: not a legal or contract-like document"
)

// decision is the policy outcome before it is folded into a Verdict.
type decision struct {
	Label      Label
	Confidence Confidence
	Reason     string
}

// decide applies the two-tier acceptance policy. The gates at both
// tiers are deliberately conjunctive: no single strong signal may
// unilaterally approve a risk-bearing classification when the other
// evidence families disagree. A nil sim means the semantic
// corroborator is unavailable; its clause is then dropped from the
// conjunction rather than failing it.
func decide(s signals, sc scoreResult, wordCount int, sim *float64, th Thresholds) decision {
	essentials := s.essentials.Count()

	// Tier 1: contract. Entry requires three of the four essential
	// elements plus a passing score or the short-document rule.
	if essentials >= 3 && (sc.Score >= th.ContractScore || sc.ShortRule) {
		strongHeuristic := sc.Score >= th.ContractScore+th.ContractMargin || sc.ShortRule
		strongStructure := s.partyCount >= 2 && (s.signature.Present || essentials >= 3)
		strongSemantic := sim == nil || *sim >= th.SemContract
		longEnough := wordCount >= th.ContractMinWords

		if strongHeuristic && strongStructure && strongSemantic && longEnough {
			conf := ConfidenceMedium
			if s.essentials.Count() == 4 && sc.Score >= th.ContractScore {
				conf = ConfidenceHigh
			}
			reason := reasonContract
			if sc.ShortRule && sc.Score < th.ContractScore+th.ContractMargin {
				reason = reasonContractShort
			}
			return decision{Label: LabelContract, Confidence: conf, Reason: reason}
		}
		return decision{Label: LabelNonLegal, Confidence: ConfidenceLow, Reason: reasonContractWeak}
	}

	// Tier 2: legal document, under slightly relaxed corroboration.
	if essentials >= 1 || s.legalStructure {
		supportiveHeuristic := sc.Score >= th.LegalScore || essentials >= 2
		supportiveStructure := (essentials >= 2 && s.partyCount >= 2) || s.signature.Present
		supportiveSemantic := sim == nil || *sim >= th.SemLegal
		longEnough := wordCount >= th.LegalMinWords

		if supportiveHeuristic && supportiveStructure && supportiveSemantic && longEnough {
			return decision{Label: LabelLegalDocument, Confidence: ConfidenceMedium, Reason: reasonLegal}
		}
		return decision{Label: LabelNonLegal, Confidence: ConfidenceLow, Reason: reasonLegalWeak}
	}

	return decision{Label: LabelNonLegal, Confidence: ConfidenceLow, Reason: reasonNonLegal}
}
