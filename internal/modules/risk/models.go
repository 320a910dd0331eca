package risk

// Category is the cardiovascular risk category. Categories are ordered by
// severity; the ladder in rules.go fixes the category with the first
// matching rule and never downgrades it afterwards.
type Category string

const (
	CategoryVeryHigh Category = "very_high"
	CategoryHigh     Category = "high"
	CategoryModerate Category = "moderate"
	CategoryLow      Category = "low"
)

// Input is the patient record the classifier evaluates. Optional numeric
// fields are nil when unmeasured; absence never raises an error.
type Input struct {
	ASCVD                     bool     `json:"ascvd"`
	Diabetes                  bool     `json:"diabetes"`
	DiabetesOrganDamage       bool     `json:"diabetes_organ_damage"`
	MajorRiskFactors          int      `json:"major_risk_factors"`
	LongstandingType1Diabetes bool     `json:"longstanding_type1_diabetes"`
	EGFR                      *float64 `json:"egfr,omitempty"`
	SystolicBP                *float64 `json:"systolic_bp,omitempty"`
	LDL                       *float64 `json:"ldl,omitempty"`
	FamilialHC                bool     `json:"familial_hypercholesterolemia"`

	// RiskScoreCategory is an externally pre-computed score category
	// ("very_high", "high" or empty). The ladder honours it after the
	// clinical criteria of the same severity.
	RiskScoreCategory Category `json:"risk_score_category,omitempty"`

	// Risk-enhancing flags. Any of these alone yields at most moderate.
	Hypertension      bool `json:"hypertension"`
	Smoking           bool `json:"smoking"`
	FamilyHistory     bool `json:"family_history"`
	Obesity           bool `json:"obesity"`
	MetabolicSyndrome bool `json:"metabolic_syndrome"`

	// Lpa is lipoprotein(a). By contract it never changes the category;
	// it only adds an advisory note when elevated.
	Lpa *float64 `json:"lpa,omitempty"`
}

// Target is the LDL-C treatment target attached to an assessment. Nil
// numeric fields mean no forced numeric target for that category.
type Target struct {
	LDL          *float64 `json:"ldl,omitempty"`
	ReductionPct *float64 `json:"reduction_pct,omitempty"`
	EvidenceID   string   `json:"evidence_id,omitempty"`
}

// Assessment is the classifier output: the category, the reasons in
// evaluation order, and the lipid target reference.
type Assessment struct {
	Category Category `json:"category"`
	Reasons  []string `json:"reasons"`
	Target   Target   `json:"target"`
}

// hasEnhancer reports whether any generic risk-enhancing flag is present.
func (in Input) hasEnhancer() bool {
	return in.Hypertension || in.Smoking || in.FamilyHistory ||
		in.Obesity || in.MetabolicSyndrome
}

func f64(v float64) *float64 { return &v }
