package closet

import "strings"

// Color similarity tiers. Empirically chosen in the original product.
const (
	colorExactScore     = 1.0
	colorSynonymScore   = 0.8
	colorSubstringScore = 0.6
)

// colorGroups maps color names to a synonym group: colors in the same group
// score colorSynonymScore even when the strings differ.
var colorGroups = map[string]string{
	"black": "black", "charcoal": "black", "ebony": "black", "jet": "black",
	"white": "white", "ivory": "white", "cream": "white", "off-white": "white",
	"gray": "gray", "grey": "gray", "silver": "gray", "slate": "gray",
	"blue": "blue", "navy": "blue", "cobalt": "blue", "azure": "blue", "denim": "blue",
	"red": "red", "crimson": "red", "scarlet": "red", "burgundy": "red", "maroon": "red",
	"green": "green", "olive": "green", "emerald": "green", "forest": "green",
	"yellow": "yellow", "gold": "yellow", "mustard": "yellow",
	"orange": "orange", "rust": "orange",
	"purple": "purple", "violet": "purple", "lavender": "purple", "plum": "purple",
	"pink": "pink", "rose": "pink", "blush": "pink", "fuchsia": "pink",
	"brown": "brown", "tan": "brown", "chocolate": "brown", "coffee": "brown",
	"beige": "beige", "khaki": "beige", "sand": "beige", "taupe": "beige",
}

// ColorSimilarity scores two color names in tiers: exact case-insensitive
// match, same synonym group, one a substring of the other, or nothing in
// common. Symmetric, and reflexive for any nonempty color.
func ColorSimilarity(a, b string) float64 {
	ca := strings.ToLower(strings.TrimSpace(a))
	cb := strings.ToLower(strings.TrimSpace(b))
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return colorExactScore
	}

	ga, okA := colorGroups[ca]
	gb, okB := colorGroups[cb]
	if okA && okB && ga == gb {
		return colorSynonymScore
	}

	if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		return colorSubstringScore
	}

	return 0
}

// minTokenLength excludes short filler words ("the", "and", size codes)
// from text comparison.
const minTokenLength = 4

// tokenSet splits text into a set of lowercase words longer than 3
// characters.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) >= minTokenLength {
			set[word] = struct{}{}
		}
	}
	return set
}

// TextSimilarity compares two free-text descriptions as token sets:
// |intersection| / max(|a|, |b|). Zero when either side has no usable
// tokens.
func TextSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for word := range setA {
		if _, ok := setB[word]; ok {
			shared++
		}
	}

	larger := len(setA)
	if len(setB) > larger {
		larger = len(setB)
	}
	return float64(shared) / float64(larger)
}
