// Package analyze wires the admission gate, clause chunker, red-flag
// scanner, and knowledge base into the document-level operations
// exposed by the CLI, HTTP, and MCP surfaces.
package analyze

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lexgate/lexgate/internal/clause"
	"github.com/lexgate/lexgate/internal/config"
	"github.com/lexgate/lexgate/internal/corpus"
	"github.com/lexgate/lexgate/internal/errors"
	"github.com/lexgate/lexgate/internal/gate"
	"github.com/lexgate/lexgate/internal/knowledge"
	"github.com/lexgate/lexgate/internal/risk"
)

// Service holds the collaborators shared by all operations.
type Service struct {
	DB      *sql.DB
	Config  *config.Config
	Gate    *gate.Classifier
	Scanner *risk.Scanner
	KB      *knowledge.Base
	Corpus  *corpus.Store
}

// NewService builds a Service from an initialized database and config.
// Rule and knowledge files named in the config replace the builtin
// catalogs; a missing or broken file is an error rather than a silent
// fallback.
func NewService(database *sql.DB, cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	rules := risk.DefaultRules()
	if cfg.RulesPath != "" {
		loaded, err := risk.LoadRules(cfg.RulesPath)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}

	kb := knowledge.Default()
	if cfg.KnowledgePath != "" {
		loaded, err := knowledge.Load(cfg.KnowledgePath)
		if err != nil {
			return nil, err
		}
		kb = loaded
	}

	store := corpus.NewStore(database)
	gateCfg := gate.Config{Corroborator: store}
	if cfg.CorroboratorTimeoutMS > 0 {
		gateCfg.CorroboratorTimeout = time.Duration(cfg.CorroboratorTimeoutMS) * time.Millisecond
	}

	return &Service{
		DB:      database,
		Config:  cfg,
		Gate:    gate.New(gateCfg),
		Scanner: risk.NewScanner(rules),
		KB:      kb,
		Corpus:  store,
	}, nil
}

// ClassifyInput contains parameters for the Classify operation.
type ClassifyInput struct {
	Text string
}

// Classify runs only the admission gate and returns its verdict.
// The verdict itself never carries an error; validation failures do.
func (s *Service) Classify(ctx context.Context, input ClassifyInput) (*gate.Verdict, error) {
	if err := s.checkSize(input.Text); err != nil {
		return nil, err
	}
	v := s.Gate.Classify(ctx, input.Text)
	return &v, nil
}

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Text string

	// AllowNonLegal analyzes the document even when the gate rejects
	// it. The verdict still reports the rejection.
	AllowNonLegal bool

	// MaxClauses overrides the configured clause cap when positive.
	MaxClauses int
}

// AnalyzeOutput is the full analysis report.
type AnalyzeOutput struct {
	AnalysisID      string                `json:"analysis_id"`
	Verdict         gate.Verdict          `json:"verdict"`
	ContractType    string                `json:"contract_type"`
	TypeConfidence  float64               `json:"type_confidence"`
	Clauses         []clause.Annotated    `json:"clauses"`
	RedFlags        []risk.Flag           `json:"red_flags"`
	RiskCounts      map[risk.Severity]int `json:"risk_counts"`
	Deviations      []risk.Deviation      `json:"deviations"`
	Recommendations []string              `json:"recommendations"`
	Summary         string                `json:"summary"`
}

// Analyze gates the document and, when admitted, produces the clause
// breakdown, red flags, template deviations, and recommendations.
func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeOutput, error) {
	if err := s.checkSize(input.Text); err != nil {
		return nil, err
	}

	verdict := s.Gate.Classify(ctx, input.Text)
	if !verdict.Accepted() && !input.AllowNonLegal {
		return nil, errors.NewNotAContract(verdict.Reason, verdict)
	}

	maxClauses := s.Config.MaxClauses
	if input.MaxClauses > 0 {
		maxClauses = input.MaxClauses
	}
	chunks := clause.Split(input.Text, 0)
	if maxClauses > 0 && len(chunks) > maxClauses {
		chunks = chunks[:maxClauses]
	}
	annotated := clause.AnnotateAll(chunks, clause.KeywordAnnotator{})

	flags := s.Scanner.Find(input.Text)
	counts := risk.CountBySeverity(flags)

	contractType, typeConf := risk.IdentifyType(input.Text)
	deviations := risk.AnalyzeDeviations(input.Text, contractType)

	recs := risk.Recommendations(deviations)
	categories := make([]string, 0, len(flags))
	for _, f := range flags {
		categories = append(categories, f.Category)
	}
	recs = appendUnique(recs, s.KB.Recommendations(categories))

	return &AnalyzeOutput{
		AnalysisID:      ulid.Make().String(),
		Verdict:         verdict,
		ContractType:    contractType,
		TypeConfidence:  typeConf,
		Clauses:         annotated,
		RedFlags:        flags,
		RiskCounts:      counts,
		Deviations:      deviations,
		Recommendations: recs,
		Summary:         summarize(verdict, len(annotated), counts),
	}, nil
}

// RedFlagsInput contains parameters for the RedFlags operation.
type RedFlagsInput struct {
	Text string
}

// RedFlagsOutput is the red-flag scan result.
type RedFlagsOutput struct {
	RedFlags   []risk.Flag           `json:"red_flags"`
	RiskCounts map[risk.Severity]int `json:"risk_counts"`
}

// RedFlags scans text against the rule catalog without gating it.
func (s *Service) RedFlags(ctx context.Context, input RedFlagsInput) (*RedFlagsOutput, error) {
	if err := s.checkSize(input.Text); err != nil {
		return nil, err
	}
	flags := s.Scanner.Find(input.Text)
	return &RedFlagsOutput{
		RedFlags:   flags,
		RiskCounts: risk.CountBySeverity(flags),
	}, nil
}

func (s *Service) checkSize(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.NewInvalidRequest("text is required")
	}
	if limit := s.Config.DocumentMaxChars; limit > 0 && len(text) > limit {
		return errors.NewPayloadTooLarge(limit, len(text))
	}
	return nil
}

func summarize(v gate.Verdict, clauses int, counts map[risk.Severity]int) string {
	total := counts[risk.SeverityHigh] + counts[risk.SeverityMedium] + counts[risk.SeverityLow]
	return fmt.Sprintf("%s (%s confidence, score %d): %d clauses, %d red flags (%d high, %d medium, %d low)",
		v.Label, v.Confidence, v.Score, clauses,
		total, counts[risk.SeverityHigh], counts[risk.SeverityMedium], counts[risk.SeverityLow])
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		if !seen[s] {
			seen[s] = true
			base = append(base, s)
		}
	}
	return base
}
