package extract

// Sex is the extracted patient sex. Unknown when the narrative gives no cue.
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "unknown"
)

// PatientState is the normalized record recovered from a clinical narrative.
// Fields left nil/false mean "not supported by the text" - the extractor
// never guesses. The record is built once and never mutated afterwards.
type PatientState struct {
	Age *int     `json:"age,omitempty"`
	Sex Sex      `json:"sex"`
	LDL *float64 `json:"ldl,omitempty"`

	HistoryACS           bool `json:"history_acs"`
	PriorPCI             bool `json:"prior_pci"`
	PriorCABG            bool `json:"prior_cabg"`
	Hypertension         bool `json:"hypertension"`
	AntihypertensiveMeds bool `json:"antihypertensive_meds"`
	Diabetes             bool `json:"diabetes"`
	Smoking              bool `json:"smoking"`
	FamilyHistory        bool `json:"family_history"`
}

// TraceEntry records one successful pattern match for human audit.
// Downstream decision logic never reads the trace.
type TraceEntry struct {
	Field   string `json:"field"`
	Pattern string `json:"pattern"`
	Matched string `json:"matched"`
}

// Trace is the ordered list of matches behind a PatientState.
type Trace []TraceEntry
