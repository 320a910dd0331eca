package eligibility

// Prevention is the prevention category used for threshold selection.
type Prevention string

const (
	PreventionPrimary   Prevention = "primary"
	PreventionSecondary Prevention = "secondary"
)

// Sex mirrors the extractor's convention; only "M"/"F" count toward the
// age criteria.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Input is the patient record the evaluator reads. LDL may be supplied as
// a parsed number or as free text (LDLText) from which the first numeric
// run is extracted; the parsed value wins when both are present.
type Input struct {
	Age     *int     `json:"age,omitempty"`
	Sex     Sex      `json:"sex,omitempty"`
	LDL     *float64 `json:"ldl,omitempty"`
	LDLText string   `json:"ldl_text,omitempty"`

	Hypertension         bool `json:"hypertension"`
	AntihypertensiveMeds bool `json:"antihypertensive_meds"`
	Diabetes             bool `json:"diabetes"`
	Smoking              bool `json:"smoking"`
	FamilyHistory        bool `json:"family_history"`

	HistoryACS bool `json:"history_acs"`
	PriorPCI   bool `json:"prior_pci"`
	PriorCABG  bool `json:"prior_cabg"`
}

// RiskFactorMatch identifies one satisfied reimbursement risk factor.
// A record yields at most one match per criterion, in fixed evaluation
// order, so duplicates are impossible.
type RiskFactorMatch struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Result is the reimbursement eligibility verdict with its full rationale.
type Result struct {
	Prevention      Prevention        `json:"prevention"`
	LDL             *float64          `json:"ldl,omitempty"`
	RiskFactorCount int               `json:"risk_factor_count"`
	RiskFactors     []RiskFactorMatch `json:"risk_factors"`
	Eligible        bool              `json:"eligible"`
	Threshold       *float64          `json:"threshold,omitempty"`
	Goal            *float64          `json:"goal,omitempty"`
	Rationale       []string          `json:"rationale"`
	Reminders       []string          `json:"reminders"`
	EvidenceID      string            `json:"evidence_id,omitempty"`
}
