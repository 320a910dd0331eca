// Package risk classifies cardiovascular risk over a patient record using
// a fixed-priority decision ladder. Classification is a pure function of
// its input: no shared state, fully reproducible, safe for concurrent use.
package risk

import "fmt"

// Classify walks the ladder in order and returns the assessment of the
// first matching rule. Lipoprotein(a) is an adjunct signal only: when
// elevated it adds an advisory reason but never changes the category.
func Classify(in Input) Assessment {
	for _, r := range ladder {
		if !r.match(in) {
			continue
		}
		a := Assessment{
			Category: r.category,
			Reasons:  []string{r.reason(in)},
			Target:   r.target(),
		}
		if in.Lpa != nil && *in.Lpa >= lpaElevated {
			a.Reasons = append(a.Reasons, fmt.Sprintf(
				"Elevated lipoprotein(a) (%.0f mg/dL) noted as a risk-enhancer; category unchanged.", *in.Lpa))
		}
		return a
	}
	// Unreachable: the final rung matches unconditionally.
	return Assessment{Category: CategoryLow}
}
