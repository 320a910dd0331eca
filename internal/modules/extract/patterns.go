package extract

import "regexp"

// Age/sex recovery order: compact token first, then explicit sex words,
// then explicit age labels. Once a field is set it is never overwritten.
var (
	// Compact token such as "54m", "65yo f", "47세 m".
	compactAgeSex = regexp.MustCompile(`\b(\d{1,3})\s*(?:yo|y/o|yrs?|세)?\s*(m|f)\b`)

	// Female checked before male because "female" contains "male".
	femaleWords = regexp.MustCompile(`\b(female|woman)\b|여성|여자`)
	maleWords   = regexp.MustCompile(`\b(male|man)\b|남성|남자`)

	agePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bage\s*:?\s*(\d{1,3})\b`),
		regexp.MustCompile(`나이\s*:?\s*(\d{1,3})`),
		regexp.MustCompile(`\b(\d{1,3})[\s-]*years?[\s-]*old\b`),
		regexp.MustCompile(`(\d{1,3})\s*세`),
	}
)

// ldlLabels are tried in order; the first label matching anywhere in the
// text supplies the value. The number is restricted to 2-3 digits with an
// optional decimal part, per the usual mg/dL reporting range.
var ldlLabels = []string{
	"ldl-c",
	"ldl cholesterol",
	"ldl 콜레스테롤",
	"ldl콜레스테롤",
	"엘디엘",
	"low density lipoprotein",
	"ldl",
}

var ldlNumber = `\s*[:=]?\s*(\d{2,3}(?:\.\d+)?)\b`

// flagPattern describes how one boolean clinical flag is detected.
// Free-form phrases (including Korean synonyms and common drug-name
// substrings) match as plain substrings; short ambiguous abbreviations
// are word-boundary anchored to cut down on false positives.
type flagPattern struct {
	field      string
	substrings []string
	words      []string // joined into a \b-anchored alternation
}

var flagPatterns = []flagPattern{
	{
		field: "history_acs",
		substrings: []string{
			"acute coronary syndrome", "myocardial infarction",
			"unstable angina", "심근경색", "급성 관상동맥", "불안정형 협심증",
		},
		words: []string{"acs", "mi", "stemi", "nstemi"},
	},
	{
		field: "prior_pci",
		substrings: []string{
			"percutaneous coronary intervention", "coronary stent", "stent",
			"angioplasty", "스텐트", "관상동맥 중재술",
		},
		words: []string{"pci", "ptca"},
	},
	{
		field: "prior_cabg",
		substrings: []string{
			"coronary artery bypass", "bypass graft", "bypass surgery",
			"관상동맥 우회술", "우회술",
		},
		words: []string{"cabg"},
	},
	{
		field: "hypertension",
		substrings: []string{
			"hypertension", "high blood pressure", "고혈압",
		},
		words: []string{"htn"},
	},
	{
		field: "antihypertensive_meds",
		substrings: []string{
			"antihypertensive", "amlodipine", "losartan", "valsartan",
			"telmisartan", "olmesartan", "candesartan", "hydrochlorothiazide",
			"혈압약", "강압제",
		},
	},
	{
		field: "diabetes",
		substrings: []string{
			"diabetes mellitus", "diabetes", "당뇨",
		},
		words: []string{"dm", "t2dm", "iddm", "niddm"},
	},
	{
		field: "smoking",
		substrings: []string{
			"current smoker", "smoker", "smoking", "흡연",
		},
	},
	{
		field: "family_history",
		substrings: []string{
			"family history", "premature coronary", "가족력", "조기 심혈관",
		},
		words: []string{"fhx"},
	},
}

// wordRegexps precompiles the word-bounded alternation per flag.
var wordRegexps = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(flagPatterns))
	for _, fp := range flagPatterns {
		if len(fp.words) == 0 {
			continue
		}
		alt := `\b(`
		for i, w := range fp.words {
			if i > 0 {
				alt += "|"
			}
			alt += regexp.QuoteMeta(w)
		}
		alt += `)\b`
		m[fp.field] = regexp.MustCompile(alt)
	}
	return m
}()

// ldlRegexps precompiles one label-anchored capture per LDL label variant.
var ldlRegexps = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(ldlLabels))
	for _, label := range ldlLabels {
		res = append(res, regexp.MustCompile(regexp.QuoteMeta(label)+ldlNumber))
	}
	return res
}()
