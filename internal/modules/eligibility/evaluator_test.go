package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func fp(v float64) *float64 { return &v }

func factorIDs(m []RiskFactorMatch) []string {
	var ids []string
	for _, f := range m {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestCountRiskFactors(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		ids  []string
	}{
		{"nothing", Input{}, nil},
		{"male 45", Input{Age: intp(45), Sex: SexMale}, []string{"age_male"}},
		{"male 44 too young", Input{Age: intp(44), Sex: SexMale}, nil},
		{"female 55", Input{Age: intp(55), Sex: SexFemale}, []string{"age_female"}},
		{"female 54 too young", Input{Age: intp(54), Sex: SexFemale}, nil},
		{"male age with female cutoff", Input{Age: intp(50), Sex: SexFemale}, nil},
		{"unknown sex never counts age", Input{Age: intp(80)}, nil},
		{"hypertension diagnosis", Input{Hypertension: true}, []string{"hypertension"}},
		{"antihypertensive meds alone", Input{AntihypertensiveMeds: true}, []string{"hypertension"}},
		{"both htn signals count once", Input{Hypertension: true, AntihypertensiveMeds: true}, []string{"hypertension"}},
		{"diabetes", Input{Diabetes: true}, []string{"diabetes"}},
		{"smoking", Input{Smoking: true}, []string{"smoking"}},
		{"family history", Input{FamilyHistory: true}, []string{"family_history"}},
		{
			"all six",
			Input{
				Age: intp(47), Sex: SexMale,
				Hypertension: true, Diabetes: true,
				Smoking: true, FamilyHistory: true,
			},
			[]string{"age_male", "hypertension", "diabetes", "smoking", "family_history"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ids, factorIDs(CountRiskFactors(tt.in)))
		})
	}
}

func TestPreventionCategory(t *testing.T) {
	assert.Equal(t, PreventionPrimary, PreventionCategory(Input{}))
	assert.Equal(t, PreventionSecondary, PreventionCategory(Input{HistoryACS: true}))
	assert.Equal(t, PreventionSecondary, PreventionCategory(Input{PriorPCI: true}))
	assert.Equal(t, PreventionSecondary, PreventionCategory(Input{PriorCABG: true}))
	// Risk factors alone never make a patient secondary prevention.
	assert.Equal(t, PreventionPrimary, PreventionCategory(Input{Hypertension: true, Diabetes: true}))
}

func TestParseLipid(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"135", fp(135)},
		{"LDL 128.5 mg/dL", fp(128.5)},
		{"value: 92", fp(92)},
		{"no number here", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := parseLipid(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, tt.in)
		} else {
			require.NotNil(t, got, tt.in)
			assert.Equal(t, *tt.want, *got, tt.in)
		}
	}
}

func TestEvaluatePrimaryTwoFactors(t *testing.T) {
	// Scenario: male 47 with hypertension, LDL 135 -> eligible at 130.
	in := Input{Age: intp(47), Sex: SexMale, Hypertension: true, LDL: fp(135)}
	res := Evaluate(in)

	assert.Equal(t, PreventionPrimary, res.Prevention)
	assert.Equal(t, 2, res.RiskFactorCount)
	require.NotNil(t, res.Threshold)
	assert.Equal(t, 130.0, *res.Threshold)
	assert.True(t, res.Eligible)
	assert.Equal(t, EvidencePrimaryTwo, res.EvidenceID)
	assert.Contains(t, res.Reminders, auditReminder)
}

func TestEvaluatePrimaryOneFactor(t *testing.T) {
	// Scenario: hypertension only, LDL 150 -> threshold 160, not eligible.
	in := Input{Hypertension: true, LDL: fp(150)}
	res := Evaluate(in)

	assert.Equal(t, 1, res.RiskFactorCount)
	require.NotNil(t, res.Threshold)
	assert.Equal(t, 160.0, *res.Threshold)
	assert.False(t, res.Eligible)
	assert.Equal(t, EvidencePrimaryOne, res.EvidenceID)
}

func TestEvaluatePrimaryZeroFactors(t *testing.T) {
	res := Evaluate(Input{LDL: fp(200)})

	assert.Equal(t, 0, res.RiskFactorCount)
	assert.False(t, res.Eligible)
	assert.Nil(t, res.Threshold)
	assert.Nil(t, res.Goal)
	require.NotEmpty(t, res.Rationale)
	assert.Contains(t, res.Rationale[0], "intentionally undefined")
}

func TestEvaluateSecondary(t *testing.T) {
	// Scenario: post-stent, LDL 92 -> secondary, eligible (92 >= 70).
	in := Input{PriorPCI: true, LDL: fp(92)}
	res := Evaluate(in)

	assert.Equal(t, PreventionSecondary, res.Prevention)
	assert.True(t, res.Eligible)
	require.NotNil(t, res.Threshold)
	assert.Equal(t, 70.0, *res.Threshold)
	require.NotNil(t, res.Goal)
	assert.Equal(t, 70.0, *res.Goal)
	assert.Equal(t, EvidenceSecondary, res.EvidenceID)

	// The three mandatory secondary-prevention reminders.
	joined := ""
	for _, r := range res.Reminders {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "3-6 months")
	assert.Contains(t, joined, "rhabdomyolysis")
	assert.Contains(t, joined, "parallel")
	assert.Contains(t, joined, "reimbursement audit")
}

func TestEvaluateSecondaryBelowThreshold(t *testing.T) {
	res := Evaluate(Input{HistoryACS: true, LDL: fp(60)})

	assert.Equal(t, PreventionSecondary, res.Prevention)
	assert.False(t, res.Eligible)
	require.NotNil(t, res.Threshold)
	assert.Equal(t, 70.0, *res.Threshold)
}

func TestEvaluateLipidFromText(t *testing.T) {
	res := Evaluate(Input{PriorCABG: true, LDLText: "LDL was 88 on last draw"})

	require.NotNil(t, res.LDL)
	assert.Equal(t, 88.0, *res.LDL)
	assert.True(t, res.Eligible)
}

func TestEvaluateMissingLipid(t *testing.T) {
	// Missing lipid value stops everything, whatever the other fields say.
	in := Input{
		Age: intp(70), Sex: SexMale,
		Hypertension: true, Diabetes: true, Smoking: true,
		HistoryACS: true,
		LDLText:    "pending",
	}
	res := Evaluate(in)

	assert.False(t, res.Eligible)
	assert.Nil(t, res.Threshold)
	assert.Nil(t, res.Goal)
	require.NotEmpty(t, res.Rationale)
	assert.Contains(t, res.Rationale[0], "No usable LDL-C value")
}

func TestEvaluateThresholdStepFunction(t *testing.T) {
	// Threshold is non-increasing as the factor count grows.
	one := Evaluate(Input{Hypertension: true, LDL: fp(100)})
	two := Evaluate(Input{Hypertension: true, Diabetes: true, LDL: fp(100)})

	require.NotNil(t, one.Threshold)
	require.NotNil(t, two.Threshold)
	assert.Greater(t, *one.Threshold, *two.Threshold)
}

func TestEvaluateIdempotent(t *testing.T) {
	in := Input{Age: intp(47), Sex: SexMale, Hypertension: true, LDL: fp(135)}
	assert.Equal(t, Evaluate(in), Evaluate(in))
}
