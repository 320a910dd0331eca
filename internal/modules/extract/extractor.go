// Package extract recovers a structured PatientState from free-form
// clinical narrative text. Matching is best-effort and label-anchored;
// every successful match is recorded in an audit trace so a reviewer can
// see why a field was set.
package extract

import (
	"strconv"
	"strings"

	"github.com/haneul-health/lipidlens/internal/modules/normalize"
)

// Extract parses raw narrative text into a PatientState plus the audit
// trace of every pattern that matched. It never fails: fields without a
// supporting match stay unknown/false.
func Extract(text string) (PatientState, Trace) {
	norm := normalize.Normalize(text)

	state := PatientState{Sex: SexUnknown}
	var trace Trace

	extractAgeSex(norm, &state, &trace)
	extractLDL(norm, &state, &trace)
	extractFlags(norm, &state, &trace)

	return state, trace
}

// extractAgeSex tries, in order: a compact "<n><unit?> m|f" token, explicit
// sex words, explicit age labels. The first successful match per field
// wins; neither field is overwritten once set.
func extractAgeSex(norm string, state *PatientState, trace *Trace) {
	if m := compactAgeSex.FindStringSubmatch(norm); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			state.Age = &age
		}
		if m[2] == "m" {
			state.Sex = SexMale
		} else {
			state.Sex = SexFemale
		}
		*trace = append(*trace, TraceEntry{Field: "age_sex", Pattern: "compact_token", Matched: m[0]})
	}

	if state.Sex == SexUnknown {
		if m := femaleWords.FindString(norm); m != "" {
			state.Sex = SexFemale
			*trace = append(*trace, TraceEntry{Field: "sex", Pattern: "sex_word", Matched: m})
		} else if m := maleWords.FindString(norm); m != "" {
			state.Sex = SexMale
			*trace = append(*trace, TraceEntry{Field: "sex", Pattern: "sex_word", Matched: m})
		}
	}

	if state.Age == nil {
		for _, re := range agePatterns {
			m := re.FindStringSubmatch(norm)
			if m == nil {
				continue
			}
			if age, err := strconv.Atoi(m[1]); err == nil {
				state.Age = &age
				*trace = append(*trace, TraceEntry{Field: "age", Pattern: "age_label", Matched: m[0]})
			}
			break
		}
	}
}

// extractLDL scans the ordered LDL label variants; the first label that
// matches anywhere in the text supplies the value.
func extractLDL(norm string, state *PatientState, trace *Trace) {
	for i, re := range ldlRegexps {
		m := re.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			state.LDL = &v
			*trace = append(*trace, TraceEntry{Field: "ldl", Pattern: "label:" + ldlLabels[i], Matched: m[0]})
		}
		return
	}
}

// extractFlags sets each boolean clinical flag when any of its configured
// substrings or word-bounded abbreviations appears in the text.
func extractFlags(norm string, state *PatientState, trace *Trace) {
	for _, fp := range flagPatterns {
		matched := ""
		pattern := ""
		for _, sub := range fp.substrings {
			if strings.Contains(norm, sub) {
				matched = sub
				pattern = "substring"
				break
			}
		}
		if matched == "" {
			if re, ok := wordRegexps[fp.field]; ok {
				if m := re.FindString(norm); m != "" {
					matched = m
					pattern = "word"
				}
			}
		}
		if matched == "" {
			continue
		}
		setFlag(state, fp.field)
		*trace = append(*trace, TraceEntry{Field: fp.field, Pattern: pattern, Matched: matched})
	}
}

func setFlag(state *PatientState, field string) {
	switch field {
	case "history_acs":
		state.HistoryACS = true
	case "prior_pci":
		state.PriorPCI = true
	case "prior_cabg":
		state.PriorCABG = true
	case "hypertension":
		state.Hypertension = true
	case "antihypertensive_meds":
		state.AntihypertensiveMeds = true
	case "diabetes":
		state.Diabetes = true
	case "smoking":
		state.Smoking = true
	case "family_history":
		state.FamilyHistory = true
	}
}
