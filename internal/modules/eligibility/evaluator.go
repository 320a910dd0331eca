// Package eligibility evaluates statin reimbursement eligibility against
// tiered LDL-C thresholds. Risk-factor counting, prevention-category
// determination and lipid parsing are separate pure functions so their
// small input domains can be tested exhaustively.
package eligibility

import (
	"fmt"
	"regexp"
	"strconv"
)

// Evidence reference ids per reimbursement tier.
const (
	EvidenceSecondary   = "KRNHI-SEC"
	EvidencePrimaryTwo  = "KRNHI-PRI2"
	EvidencePrimaryOne  = "KRNHI-PRI1"
	EvidencePrimaryZero = "KRNHI-PRI0"
)

// Thresholds in mg/dL.
const (
	thresholdSecondary  = 70.0
	thresholdPrimaryTwo = 130.0
	thresholdPrimaryOne = 160.0
)

var numberRun = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseLipid extracts the first decimal or integer run from a string.
// Returns nil when no usable number exists.
func parseLipid(s string) *float64 {
	m := numberRun.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

// lipidValue resolves the LDL-C value from the input record: a parsed
// number when present, otherwise the first numeric run of the free text.
func lipidValue(in Input) *float64 {
	if in.LDL != nil {
		return in.LDL
	}
	if in.LDLText != "" {
		return parseLipid(in.LDLText)
	}
	return nil
}

const auditReminder = "Document each counted risk factor explicitly in the medical record for reimbursement audit."

var secondaryReminders = []string{
	"Reassess the lipid profile every 3-6 months during the first year of therapy, then every 6-12 months.",
	"Monitor for hepatic enzyme elevation and rhabdomyolysis during statin therapy.",
	"Lifestyle modification and statin therapy may proceed in parallel; no lifestyle-only trial period is required.",
	auditReminder,
}

// Evaluate applies the tiered reimbursement thresholds to the record.
// Missing lipid data is the only hard stop and is reported as a rationale
// string, never as an error.
func Evaluate(in Input) Result {
	factors := CountRiskFactors(in)
	res := Result{
		Prevention:      PreventionCategory(in),
		RiskFactorCount: len(factors),
		RiskFactors:     factors,
	}

	ldl := lipidValue(in)
	if ldl == nil {
		res.Rationale = append(res.Rationale,
			"No usable LDL-C value was provided; eligibility cannot be determined.")
		res.Reminders = append(res.Reminders, auditReminder)
		return res
	}
	res.LDL = ldl

	if res.Prevention == PreventionSecondary {
		threshold := thresholdSecondary
		res.Threshold = &threshold
		goal := thresholdSecondary
		res.Goal = &goal
		res.Eligible = *ldl >= thresholdSecondary
		res.EvidenceID = EvidenceSecondary
		if res.Eligible {
			res.Rationale = append(res.Rationale, fmt.Sprintf(
				"Secondary prevention: LDL-C %.0f mg/dL meets the >=70 mg/dL threshold; treat to <70 mg/dL.", *ldl))
		} else {
			res.Rationale = append(res.Rationale, fmt.Sprintf(
				"Secondary prevention: LDL-C %.0f mg/dL is already below the 70 mg/dL threshold.", *ldl))
		}
		res.Reminders = append(res.Reminders, secondaryReminders...)
		return res
	}

	switch {
	case res.RiskFactorCount >= 2:
		threshold := thresholdPrimaryTwo
		res.Threshold = &threshold
		goal := thresholdPrimaryTwo
		res.Goal = &goal
		res.Eligible = *ldl >= thresholdPrimaryTwo
		res.EvidenceID = EvidencePrimaryTwo
		res.Rationale = append(res.Rationale, fmt.Sprintf(
			"Primary prevention with %d risk factors: threshold 130 mg/dL, LDL-C %.0f mg/dL.",
			res.RiskFactorCount, *ldl))
	case res.RiskFactorCount == 1:
		threshold := thresholdPrimaryOne
		res.Threshold = &threshold
		goal := thresholdPrimaryOne
		res.Goal = &goal
		res.Eligible = *ldl >= thresholdPrimaryOne
		res.EvidenceID = EvidencePrimaryOne
		res.Rationale = append(res.Rationale, fmt.Sprintf(
			"Primary prevention with 1 risk factor: threshold 160 mg/dL, LDL-C %.0f mg/dL.", *ldl))
	default:
		// The reimbursement schedule defines no tier for zero risk
		// factors; that is left undefined on purpose rather than guessed.
		res.Eligible = false
		res.EvidenceID = EvidencePrimaryZero
		res.Rationale = append(res.Rationale,
			"Primary prevention with no counted risk factors: the reimbursement rule is intentionally undefined at this tier.")
	}

	res.Reminders = append(res.Reminders, auditReminder)
	return res
}
