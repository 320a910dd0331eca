// Package annotate orchestrates the annotation pipeline: narrative text is
// normalized and extracted into a patient state, which is then classified
// for cardiovascular risk and evaluated for reimbursement eligibility.
package annotate

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/haneul-health/lipidlens/internal/evidence"
	"github.com/haneul-health/lipidlens/internal/modules/eligibility"
	"github.com/haneul-health/lipidlens/internal/modules/extract"
	"github.com/haneul-health/lipidlens/internal/modules/risk"
)

// Service runs the annotation pipeline against the loaded citation table.
// It holds no mutable state; every call is independent.
type Service struct {
	evidence *evidence.Table
	log      zerolog.Logger
}

// NewService creates a new annotation service.
func NewService(table *evidence.Table, log zerolog.Logger) *Service {
	return &Service{
		evidence: table,
		log:      log.With().Str("service", "annotate").Logger(),
	}
}

// Annotation bundles everything derived from one narrative.
type Annotation struct {
	TraceID         string                        `json:"trace_id"`
	Patient         extract.PatientState          `json:"patient"`
	ExtractionTrace extract.Trace                 `json:"extraction_trace"`
	Risk            risk.Assessment               `json:"risk"`
	Eligibility     eligibility.Result            `json:"eligibility"`
	Citations       map[string]evidence.Reference `json:"citations"`
}

// AnnotateText runs the full pipeline on raw narrative text.
func (s *Service) AnnotateText(text string) Annotation {
	state, trace := extract.Extract(text)

	eligIn := EligibilityInput(state)
	eligRes := eligibility.Evaluate(eligIn)

	riskIn := RiskInput(state, eligRes.RiskFactorCount)
	riskRes := risk.Classify(riskIn)

	a := Annotation{
		TraceID:         uuid.NewString(),
		Patient:         state,
		ExtractionTrace: trace,
		Risk:            riskRes,
		Eligibility:     eligRes,
		Citations:       s.evidence.Resolve(riskRes.Target.EvidenceID, eligRes.EvidenceID),
	}

	s.log.Debug().
		Str("trace_id", a.TraceID).
		Str("risk_category", string(riskRes.Category)).
		Bool("eligible", eligRes.Eligible).
		Int("risk_factors", eligRes.RiskFactorCount).
		Msg("Annotated narrative")

	return a
}

// ClassifyRisk classifies a pre-structured record and resolves its citation.
func (s *Service) ClassifyRisk(in risk.Input) (risk.Assessment, map[string]evidence.Reference) {
	a := risk.Classify(in)
	return a, s.evidence.Resolve(a.Target.EvidenceID)
}

// EvaluateEligibility evaluates a pre-structured record and resolves its
// citation.
func (s *Service) EvaluateEligibility(in eligibility.Input) (eligibility.Result, map[string]evidence.Reference) {
	res := eligibility.Evaluate(in)
	return res, s.evidence.Resolve(res.EvidenceID)
}

// Evidence exposes the citation table for read-only handlers.
func (s *Service) Evidence() *evidence.Table {
	return s.evidence
}

// EligibilityInput maps an extracted patient state onto the evaluator's
// record.
func EligibilityInput(state extract.PatientState) eligibility.Input {
	return eligibility.Input{
		Age:                  state.Age,
		Sex:                  eligibility.Sex(state.Sex),
		LDL:                  state.LDL,
		Hypertension:         state.Hypertension,
		AntihypertensiveMeds: state.AntihypertensiveMeds,
		Diabetes:             state.Diabetes,
		Smoking:              state.Smoking,
		FamilyHistory:        state.FamilyHistory,
		HistoryACS:           state.HistoryACS,
		PriorPCI:             state.PriorPCI,
		PriorCABG:            state.PriorCABG,
	}
}

// RiskInput maps an extracted patient state onto the classifier's record.
// Narrative text carries no eGFR, blood pressure or organ-damage findings,
// so those stay unknown; the reimbursement risk-factor count doubles as
// the major-risk-factor count.
func RiskInput(state extract.PatientState, majorRiskFactors int) risk.Input {
	return risk.Input{
		ASCVD:            state.HistoryACS || state.PriorPCI || state.PriorCABG,
		Diabetes:         state.Diabetes,
		MajorRiskFactors: majorRiskFactors,
		LDL:              state.LDL,
		Hypertension:     state.Hypertension,
		Smoking:          state.Smoking,
		FamilyHistory:    state.FamilyHistory,
	}
}
