package journal

import (
	"sort"
	"strings"
)

// categoryKeywords maps a category tag to the keywords that imply it.
// A category applies when any keyword appears as a substring of the
// lowercased title+description text.
var categoryKeywords = map[string][]string{
	"mountain":     {"mountain", "hill", "peak", "summit", "hiking", "trekking"},
	"beach":        {"beach", "ocean", "sea", "coast", "shore", "sand"},
	"food":         {"food", "restaurant", "eat", "meal", "dinner", "lunch", "breakfast", "cafe"},
	"sunset":       {"sunset", "sunrise", "dawn", "dusk"},
	"city":         {"city", "urban", "downtown", "metropolitan"},
	"nature":       {"nature", "forest", "park", "wildlife", "trees", "garden"},
	"adventure":    {"adventure", "explore", "journey", "trip", "travel"},
	"culture":      {"culture", "museum", "art", "history", "heritage", "monument"},
	"family":       {"family", "kids", "children", "parents"},
	"friends":      {"friends", "buddy", "group"},
	"relaxation":   {"relax", "spa", "peaceful", "calm", "quiet"},
	"festival":     {"festival", "celebration", "event", "party"},
	"architecture": {"building", "architecture", "church", "temple", "palace"},
	"shopping":     {"shopping", "market", "store", "bazaar"},
	"sports":       {"sports", "game", "football", "basketball", "swimming"},
}

// FallbackTag is applied when no category keyword matches.
const FallbackTag = "travel"

// DeriveTags maps free text to a deduplicated set of category tags.
// Pure function, no I/O. Returns ["travel"] when nothing matches.
// Output is sorted so results are deterministic for callers and tests;
// tag storage itself is an unordered set.
func DeriveTags(title, description string) []string {
	text := strings.ToLower(title + " " + description)

	var tags []string
	for category, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, category)
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{FallbackTag}
	}
	sort.Strings(tags)
	return tags
}

// NormalizeTags lowercases, trims, and deduplicates explicit tags,
// preserving first-seen order. Empty tokens and embedded commas are
// dropped (each tag is one category token).
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || strings.Contains(t, ",") || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// FlattenLabels converts the per-image label lists an image tagger
// returns into one normalized tag list for the owning entry.
func FlattenLabels(labels [][]string) []string {
	var flat []string
	for _, ls := range labels {
		flat = append(flat, ls...)
	}
	return NormalizeTags(flat)
}
