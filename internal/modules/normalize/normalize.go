// Package normalize canonicalizes raw clinical narrative text so the
// downstream extractor can match patterns reliably.
package normalize

import "strings"

// replacer unifies line endings and folds the full-width punctuation and
// spaces that commonly appear in bilingual (Korean/English) clinical notes.
var replacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"，", ",", // full-width comma
	"、", ",", // ideographic comma
	"：", ":", // full-width colon
	" ", " ", // non-breaking space
	"　", " ", // ideographic space
)

// Normalize returns the canonical form of raw narrative text: unified line
// endings, ASCII punctuation, plain spaces, lower case. Empty input yields
// an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.ToLower(replacer.Replace(text))
}
