package eligibility

// criterion is one reimbursement risk factor check. Criteria are
// independent and evaluated in the fixed order below.
type criterion struct {
	id    string
	label string
	match func(Input) bool
}

var criteria = []criterion{
	{
		id:    "age_male",
		label: "Male aged 45 or older",
		match: func(in Input) bool {
			return in.Sex == SexMale && in.Age != nil && *in.Age >= 45
		},
	},
	{
		id:    "age_female",
		label: "Female aged 55 or older",
		match: func(in Input) bool {
			return in.Sex == SexFemale && in.Age != nil && *in.Age >= 55
		},
	},
	{
		id:    "hypertension",
		label: "Hypertension or antihypertensive medication use",
		match: func(in Input) bool { return in.Hypertension || in.AntihypertensiveMeds },
	},
	{
		id:    "diabetes",
		label: "Diabetes mellitus",
		match: func(in Input) bool { return in.Diabetes },
	},
	{
		id:    "smoking",
		label: "Current smoking",
		match: func(in Input) bool { return in.Smoking },
	},
	{
		id:    "family_history",
		label: "Family history of premature cardiovascular disease",
		match: func(in Input) bool { return in.FamilyHistory },
	},
}

// CountRiskFactors evaluates every criterion independently and returns one
// match per satisfied criterion, in evaluation order (0 to 6 matches).
func CountRiskFactors(in Input) []RiskFactorMatch {
	var matches []RiskFactorMatch
	for _, c := range criteria {
		if c.match(in) {
			matches = append(matches, RiskFactorMatch{ID: c.id, Label: c.label})
		}
	}
	return matches
}

// PreventionCategory returns secondary when the record carries any
// qualifying vascular event or revascularization history.
func PreventionCategory(in Input) Prevention {
	if in.HistoryACS || in.PriorPCI || in.PriorCABG {
		return PreventionSecondary
	}
	return PreventionPrimary
}
