package report

// prompt.go assembles the counseling-report prompt from an annotation.
// Keeping the prompt strings in one file makes them easy to tweak without
// touching the generation flow.

import (
	"fmt"
	"strings"

	"github.com/haneul-health/lipidlens/internal/modules/annotate"
)

// SystemPrompt pins the model to the role of a clinical documentation
// assistant. The model must never second-guess the rule engine's verdicts;
// it only phrases them for the clinician.
const SystemPrompt = "You are a clinical documentation assistant for a lipid clinic. " +
	"You receive a structured annotation produced by a deterministic rule engine: " +
	"a patient state, a cardiovascular risk category with its LDL-C target, and a " +
	"reimbursement eligibility verdict with rationale. Write a concise counseling " +
	"report for the treating physician in plain prose. Restate the engine's " +
	"conclusions faithfully; do not alter categories, thresholds or verdicts, and " +
	"do not add diagnoses the annotation does not contain."

// BuildPrompt renders one annotation as the user prompt. The layout is
// deliberately line-oriented so identical annotations produce identical
// prompts (the prompt doubles as the cache key).
func BuildPrompt(a annotate.Annotation) string {
	var b strings.Builder

	b.WriteString("PATIENT STATE\n")
	if a.Patient.Age != nil {
		fmt.Fprintf(&b, "age: %d\n", *a.Patient.Age)
	} else {
		b.WriteString("age: unknown\n")
	}
	fmt.Fprintf(&b, "sex: %s\n", a.Patient.Sex)
	if a.Patient.LDL != nil {
		fmt.Fprintf(&b, "ldl_c_mg_dl: %.1f\n", *a.Patient.LDL)
	} else {
		b.WriteString("ldl_c_mg_dl: unknown\n")
	}
	writeFlag(&b, "history_acs", a.Patient.HistoryACS)
	writeFlag(&b, "prior_pci", a.Patient.PriorPCI)
	writeFlag(&b, "prior_cabg", a.Patient.PriorCABG)
	writeFlag(&b, "hypertension", a.Patient.Hypertension)
	writeFlag(&b, "antihypertensive_meds", a.Patient.AntihypertensiveMeds)
	writeFlag(&b, "diabetes", a.Patient.Diabetes)
	writeFlag(&b, "smoking", a.Patient.Smoking)
	writeFlag(&b, "family_history", a.Patient.FamilyHistory)

	b.WriteString("\nRISK ASSESSMENT\n")
	fmt.Fprintf(&b, "category: %s\n", a.Risk.Category)
	if a.Risk.Target.LDL != nil {
		fmt.Fprintf(&b, "ldl_target_mg_dl: <%.0f\n", *a.Risk.Target.LDL)
	}
	if a.Risk.Target.ReductionPct != nil {
		fmt.Fprintf(&b, "required_reduction_pct: >=%.0f\n", *a.Risk.Target.ReductionPct)
	}
	for _, reason := range a.Risk.Reasons {
		fmt.Fprintf(&b, "reason: %s\n", reason)
	}

	b.WriteString("\nREIMBURSEMENT ELIGIBILITY\n")
	fmt.Fprintf(&b, "prevention: %s\n", a.Eligibility.Prevention)
	fmt.Fprintf(&b, "eligible: %t\n", a.Eligibility.Eligible)
	if a.Eligibility.Threshold != nil {
		fmt.Fprintf(&b, "threshold_mg_dl: %.0f\n", *a.Eligibility.Threshold)
	}
	fmt.Fprintf(&b, "risk_factor_count: %d\n", a.Eligibility.RiskFactorCount)
	for _, f := range a.Eligibility.RiskFactors {
		fmt.Fprintf(&b, "risk_factor: %s\n", f.Label)
	}
	for _, rationale := range a.Eligibility.Rationale {
		fmt.Fprintf(&b, "rationale: %s\n", rationale)
	}
	for _, reminder := range a.Eligibility.Reminders {
		fmt.Fprintf(&b, "reminder: %s\n", reminder)
	}

	if len(a.Citations) > 0 {
		b.WriteString("\nCITATIONS\n")
		// Annotation citations are a map; emit in sorted-id order via the
		// evidence ids already attached to the outputs for stability.
		for _, id := range []string{a.Risk.Target.EvidenceID, a.Eligibility.EvidenceID} {
			ref, ok := a.Citations[id]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "citation: [%s] %s (%d), %s\n", ref.ID, ref.Guideline, ref.Year, ref.Section)
		}
	}

	b.WriteString("\nWrite the counseling report now.")
	return b.String()
}

func writeFlag(b *strings.Builder, name string, v bool) {
	fmt.Fprintf(b, "%s: %t\n", name, v)
}
