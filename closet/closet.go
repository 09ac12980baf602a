// Package closet matches garments observed in a photo against a user's
// existing inventory. Matching is pure and stateless: it reads two input
// lists, allocates new results and never writes to the inventory, so a
// single Matcher can serve concurrent callers without coordination.
package closet

import (
	"github.com/rs/zerolog/log"
)

// Weighted-score defaults. Empirically chosen in the original product;
// overridable through Opts rather than re-tuned here.
const (
	DefaultMatchThreshold = 0.5
	DefaultCategoryWeight = 0.3
	DefaultColorWeight    = 0.4
	DefaultTextWeight     = 0.3

	// Reason thresholds: sub-criteria listed in MatchResult.Reason.
	colorReasonThreshold = 0.7
	textReasonThreshold  = 0.3
)

// Reason strings for the no-match outcomes.
const (
	ReasonNoCategory    = "no items in this category"
	ReasonLowConfidence = "low confidence match"
)

// InventoryItem is a read-only snapshot of one garment the user already
// owns, supplied by the external inventory store.
type InventoryItem struct {
	ID          string
	Name        string
	Category    string
	Color       string
	Description string
}

// ScannedItem is a garment observed in a photo, from an upload or a
// what-did-I-wear scan. Unlike a detection it carries no bounding box: it
// may come from a whole-outfit photo rather than a flat-lay.
type ScannedItem struct {
	Name        string
	Category    string
	Color       string
	Description string
	Confidence  float64
}

// MatchResult pairs a scanned garment with its best inventory match, if
// any. Matched is nil when nothing scored above the threshold. Results are
// never mutated after creation.
type MatchResult struct {
	Scanned    ScannedItem
	Matched    *InventoryItem
	Confidence float64
	Reason     string
}

// Opts configures a Matcher. Zero fields fall back to defaults.
type Opts struct {
	MatchThreshold float64
	CategoryWeight float64
	ColorWeight    float64
	TextWeight     float64
}

// Matcher scores scanned garments against inventory snapshots.
type Matcher struct {
	threshold      float64
	categoryWeight float64
	colorWeight    float64
	textWeight     float64
}

// NewMatcher creates a Matcher.
func NewMatcher(opts Opts) *Matcher {
	m := &Matcher{
		threshold:      DefaultMatchThreshold,
		categoryWeight: DefaultCategoryWeight,
		colorWeight:    DefaultColorWeight,
		textWeight:     DefaultTextWeight,
	}
	if opts.MatchThreshold > 0 {
		m.threshold = opts.MatchThreshold
	}
	if opts.CategoryWeight > 0 {
		m.categoryWeight = opts.CategoryWeight
	}
	if opts.ColorWeight > 0 {
		m.colorWeight = opts.ColorWeight
	}
	if opts.TextWeight > 0 {
		m.textWeight = opts.TextWeight
	}
	return m
}

// MatchAll produces one MatchResult per scanned item. It has no failure
// path: empty inputs yield an empty or all-null result set.
func (m *Matcher) MatchAll(scanned []ScannedItem, inventory []InventoryItem) []MatchResult {
	results := make([]MatchResult, 0, len(scanned))
	for _, item := range scanned {
		results = append(results, m.match(item, inventory))
	}
	return results
}

// match finds the best inventory candidate for one scanned garment.
// Candidates outside the scanned item's category family are excluded
// outright; survivors are scored and the strictly highest score wins, with
// ties broken by inventory order (first seen wins).
func (m *Matcher) match(item ScannedItem, inventory []InventoryItem) MatchResult {
	var best *InventoryItem
	var bestScore, bestColor, bestText float64
	seenCategory := false

	for i := range inventory {
		cand := &inventory[i]
		if !CategoriesMatch(item.Category, cand.Category) {
			continue
		}
		seenCategory = true

		colorScore := ColorSimilarity(item.Color, cand.Color)
		textScore := TextSimilarity(
			item.Name+" "+item.Description,
			cand.Name+" "+cand.Description,
		)
		score := m.categoryWeight + m.colorWeight*colorScore + m.textWeight*textScore

		log.Debug().
			Str("scanned", item.Name).
			Str("candidate", cand.Name).
			Float64("color", colorScore).
			Float64("text", textScore).
			Float64("score", score).
			Msg("scored closet candidate")

		if score > bestScore {
			best, bestScore, bestColor, bestText = cand, score, colorScore, textScore
		}
	}

	if !seenCategory {
		return MatchResult{Scanned: item, Reason: ReasonNoCategory}
	}
	if bestScore < m.threshold {
		return MatchResult{Scanned: item, Reason: ReasonLowConfidence}
	}

	// Copy the winner so results stay valid if the caller reuses its slice.
	matched := *best
	return MatchResult{
		Scanned:    item,
		Matched:    &matched,
		Confidence: bestScore,
		Reason:     matchReason(bestColor, bestText),
	}
}

// matchReason lists the sub-criteria that contributed to an accepted match.
func matchReason(colorScore, textScore float64) string {
	reason := "category match"
	if colorScore > colorReasonThreshold {
		reason += ", color match"
	}
	if textScore > textReasonThreshold {
		reason += ", description match"
	}
	return reason
}
