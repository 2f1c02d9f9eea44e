package match

import "sort"

// DefaultThreshold is the minimum Similarity for a name to be suggested.
const DefaultThreshold = 0.6

// MaxSuggestions caps the number of names returned by Suggest.
const MaxSuggestions = 3

// Suggest returns up to MaxSuggestions candidates that resemble name, best
// match first. Ties keep the order of candidates. An exact match is never
// suggested since the caller is reporting its absence.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(name, c)
		if score < DefaultThreshold {
			continue
		}

		hits = append(hits, scored{name: c, score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if len(hits) > MaxSuggestions {
		hits = hits[:MaxSuggestions]
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}
