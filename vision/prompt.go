package vision

import (
	"strings"

	"github.com/lithammer/dedent"
)

var basePrompt = dedent.Dedent(`
	Analyze this photo and identify every clothing item in it.

	Two kinds of photo are possible:
	- A flat-lay photo where garments are laid out separately. Report each
	  garment as its own item.
	- A photo of a person wearing an outfit. Report each visible garment
	  (top, bottom, shoes, outerwear, accessories) as its own item. If the
	  person wears a single one-piece garment such as a dress or jumpsuit
	  and no other garment is visible, report exactly one item.

	Respond in JSON format with these fields:
	- hasMultipleItems: true if more than one distinct garment is visible
	- items: an array where each entry has:
	  - name: a short descriptive name, e.g. "Blue Denim Jacket"
	  - category: one of tops, bottoms, dresses, outerwear, shoes, accessories
	  - boundingBox: {"x", "y", "width", "height"}, each a number between 0
	    and 1 relative to the image dimensions, tightly enclosing the garment
	  - confidence: a number between 0 and 1

	Example response:
	{"hasMultipleItems": true, "items": [{"name": "White Cotton T-Shirt", "category": "tops", "boundingBox": {"x": 0.1, "y": 0.05, "width": 0.4, "height": 0.35}, "confidence": 0.92}]}

	If no clothing is recognizable, respond with {"hasMultipleItems": false, "items": []}.
	Respond ONLY with the JSON object, no markdown or other text.`)

var flatLayPrompt = dedent.Dedent(`
	The photo is a flat-lay: the garments are laid out separately and nobody
	is wearing them.`)

var wornOutfitPrompt = dedent.Dedent(`
	The photo shows a person wearing an outfit. Identify what they are
	wearing, one item per visible garment.`)

// buildPrompt assembles the task prompt for the given photo hint.
func buildPrompt(hint PhotoHint) string {
	parts := []string{strings.TrimSpace(basePrompt)}
	switch hint {
	case HintFlatLay:
		parts = append(parts, strings.TrimSpace(flatLayPrompt))
	case HintWornOutfit:
		parts = append(parts, strings.TrimSpace(wornOutfitPrompt))
	}
	return strings.Join(parts, "\n\n")
}
