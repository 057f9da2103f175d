package gate

// Thresholds collects every tunable weight and cutoff used by the
// extractors, the scorer, and the acceptance policy. The defaults were
// calibrated against a corpus of short NDAs, long MSAs, and assorted
// non-legal text; none of the individual values is load-bearing on its
// own.
type Thresholds struct {
	// Absolute floor below which classification short-circuits.
	MinChars int
	MinWords int

	// Word-count banding. Documents with ShortMinWords <= words <
	// FullMinWords score in short-document mode; shorter documents
	// are still classified but cannot use the short-accept rule.
	ShortMinWords int
	FullMinWords  int

	// Search windows (runes). Titles appear near the top, parties
	// clauses in the opening recitals, signature blocks at the end.
	TitleWindow   int
	PartiesWindow int
	SignatureTail int

	// Positive weights.
	TitleWeightShort int
	TitleWeightFull  int
	PartiesWeight    int
	SignatureWeight  int
	GoverningWeight  int
	EssentialWeight  int

	// Heading density.
	HeadingCap      int
	HeadingMinShort int
	HeadingMinFull  int
	HeadingWeight   int

	// Clause density: distinct boilerplate terms, converted to
	// points per hit and capped.
	ClausePointShort int
	ClausePointFull  int
	ClausePointCap   int

	// Penalties.
	NegativePenalty  int
	BulletPenalty    int
	BinaryPenalty    int
	BulletRatioShort float64
	BulletRatioFull  float64

	// Acceptance policy.
	ContractScore    int
	ContractMargin   int
	LegalScore       int
	ShortClauseMin   int
	ContractMinWords int
	LegalMinWords    int
	SemContract      float64
	SemLegal         float64
}

// DefaultThresholds returns the calibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinChars: 50,
		MinWords: 10,

		ShortMinWords: 100,
		FullMinWords:  350,

		TitleWindow:   3500,
		PartiesWindow: 7000,
		SignatureTail: 1200,

		TitleWeightShort: 18,
		TitleWeightFull:  12,
		PartiesWeight:    15,
		SignatureWeight:  15,
		GoverningWeight:  8,
		EssentialWeight:  4,

		HeadingCap:      18,
		HeadingMinShort: 2,
		HeadingMinFull:  5,
		HeadingWeight:   1,

		ClausePointShort: 3,
		ClausePointFull:  2,
		ClausePointCap:   22,

		NegativePenalty:  12,
		BulletPenalty:    15,
		BinaryPenalty:    40,
		BulletRatioShort: 0.45,
		BulletRatioFull:  0.60,

		ContractScore:    55,
		ContractMargin:   10,
		LegalScore:       35,
		ShortClauseMin:   4,
		ContractMinWords: 140,
		LegalMinWords:    120,
		SemContract:      0.55,
		SemLegal:         0.60,
	}
}
