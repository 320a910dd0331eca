package risk

import "fmt"

// Evidence reference ids attached to assessments. The caller resolves
// them against the citation table; the classifier only attaches the id.
const (
	EvidenceVeryHighASCVD = "ESC2019-VH-ASCVD"
	EvidenceVeryHighCKD   = "ESC2019-VH-CKD"
	EvidenceVeryHighDM    = "ESC2019-VH-DM"
	EvidenceVeryHighScore = "ESC2019-VH-SCORE"
	EvidenceHighCKD       = "ESC2019-H-CKD"
	EvidenceHighSingleRF  = "ESC2019-H-RF"
	EvidenceHighDM        = "ESC2019-H-DM"
	EvidenceHighScore     = "ESC2019-H-SCORE"
	EvidenceModerate      = "ESC2019-MOD"
	EvidenceLow           = "ESC2019-LOW"
)

// Thresholds used by the ladder.
const (
	egfrSevere       = 30.0
	egfrModerate     = 59.0
	sbpMarked        = 180.0
	ldlMarked        = 190.0
	majorRFVeryHigh  = 3
	lpaElevated      = 50.0
	veryHighLDLGoal  = 55.0
	highLDLGoal      = 70.0
	goalReductionPct = 50.0
)

// rule is one rung of the decision ladder: a predicate plus the fixed
// outcome it produces. Rules are evaluated in order, first match wins, so
// a later rung can never override a category fixed by an earlier one.
type rule struct {
	name     string
	match    func(Input) bool
	category Category
	target   func() Target
	reason   func(Input) string
}

func veryHighTarget(evidenceID string) Target {
	return Target{LDL: f64(veryHighLDLGoal), ReductionPct: f64(goalReductionPct), EvidenceID: evidenceID}
}

func highTarget(evidenceID string) Target {
	return Target{LDL: f64(highLDLGoal), ReductionPct: f64(goalReductionPct), EvidenceID: evidenceID}
}

// ladder is the fixed-priority decision ladder. Order is load-bearing.
var ladder = []rule{
	{
		name:     "ascvd",
		match:    func(in Input) bool { return in.ASCVD },
		category: CategoryVeryHigh,
		target:   func() Target { return veryHighTarget(EvidenceVeryHighASCVD) },
		reason: func(Input) string {
			return "Documented atherosclerotic cardiovascular disease."
		},
	},
	{
		name:     "severe_ckd",
		match:    func(in Input) bool { return in.EGFR != nil && *in.EGFR < egfrSevere },
		category: CategoryVeryHigh,
		target:   func() Target { return veryHighTarget(EvidenceVeryHighCKD) },
		reason: func(in Input) string {
			return fmt.Sprintf("Severe chronic kidney disease (eGFR %.0f < 30 mL/min/1.73m2).", *in.EGFR)
		},
	},
	{
		name: "diabetes_very_high",
		match: func(in Input) bool {
			return (in.Diabetes && in.DiabetesOrganDamage) ||
				in.MajorRiskFactors >= majorRFVeryHigh ||
				in.LongstandingType1Diabetes
		},
		category: CategoryVeryHigh,
		target:   func() Target { return veryHighTarget(EvidenceVeryHighDM) },
		reason: func(in Input) string {
			switch {
			case in.Diabetes && in.DiabetesOrganDamage:
				return "Diabetes mellitus with target organ damage."
			case in.MajorRiskFactors >= majorRFVeryHigh:
				return fmt.Sprintf("Three or more major risk factors (%d).", in.MajorRiskFactors)
			default:
				return "Long-standing type 1 diabetes mellitus."
			}
		},
	},
	{
		name:     "score_very_high",
		match:    func(in Input) bool { return in.RiskScoreCategory == CategoryVeryHigh },
		category: CategoryVeryHigh,
		target:   func() Target { return veryHighTarget(EvidenceVeryHighScore) },
		reason: func(Input) string {
			return "External risk score reported as very high."
		},
	},
	{
		name: "moderate_ckd",
		match: func(in Input) bool {
			return in.EGFR != nil && *in.EGFR >= egfrSevere && *in.EGFR <= egfrModerate
		},
		category: CategoryHigh,
		target:   func() Target { return highTarget(EvidenceHighCKD) },
		reason: func(in Input) string {
			return fmt.Sprintf("Moderate chronic kidney disease (eGFR %.0f in 30-59 mL/min/1.73m2).", *in.EGFR)
		},
	},
	{
		name: "marked_single_rf",
		match: func(in Input) bool {
			return (in.SystolicBP != nil && *in.SystolicBP >= sbpMarked) ||
				(in.LDL != nil && *in.LDL >= ldlMarked)
		},
		category: CategoryHigh,
		target:   func() Target { return highTarget(EvidenceHighSingleRF) },
		reason: func(in Input) string {
			if in.SystolicBP != nil && *in.SystolicBP >= sbpMarked {
				return fmt.Sprintf("Markedly elevated blood pressure (SBP %.0f >= 180 mmHg).", *in.SystolicBP)
			}
			return fmt.Sprintf("Markedly elevated LDL-C (%.0f >= 190 mg/dL).", *in.LDL)
		},
	},
	{
		name:     "diabetes_default_high",
		match:    func(in Input) bool { return in.Diabetes },
		category: CategoryHigh,
		target:   func() Target { return highTarget(EvidenceHighDM) },
		reason: func(Input) string {
			// Deliberately kept as a flagged placeholder until the exact
			// guideline stratification for uncomplicated diabetes is wired in.
			return "Diabetes mellitus without very-high-risk features " +
				"(engineering default, not a verbatim guideline rule)."
		},
	},
	{
		name:     "score_high",
		match:    func(in Input) bool { return in.RiskScoreCategory == CategoryHigh },
		category: CategoryHigh,
		target:   func() Target { return highTarget(EvidenceHighScore) },
		reason: func(Input) string {
			return "External risk score reported as high."
		},
	},
	{
		name:     "enhancers_moderate",
		match:    func(in Input) bool { return in.hasEnhancer() || in.FamilialHC },
		category: CategoryModerate,
		target:   func() Target { return Target{EvidenceID: EvidenceModerate} },
		reason: func(Input) string {
			// A single non-specific risk factor must never auto-escalate to
			// high or very high, so no numeric target is forced here.
			return "Risk-enhancing factors present without high-risk criteria."
		},
	},
	{
		name:     "low",
		match:    func(Input) bool { return true },
		category: CategoryLow,
		target:   func() Target { return Target{EvidenceID: EvidenceLow} },
		reason: func(Input) string {
			return "No qualifying risk features identified."
		},
	},
}
