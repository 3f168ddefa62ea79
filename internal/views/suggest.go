package views

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance caps how far a "did you mean" candidate may drift from
// the query before we stay silent.
const maxSuggestDistance = 5

// SuggestDeal returns the deal name closest to a query that matched nothing,
// for the empty-result hint. It never affects filtering; an empty string means
// no reasonable suggestion exists.
func SuggestDeal(query string, deals []PipelineDeal) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(deals) == 0 {
		return ""
	}

	best := ""
	bestDist := maxSuggestDistance + 1
	for _, d := range deals {
		dist := nameDistance(q, strings.ToLower(d.Name))
		if dist < bestDist {
			best = d.Name
			bestDist = dist
		}
	}
	if bestDist > maxSuggestDistance {
		return ""
	}
	return best
}

// nameDistance is the minimum edit distance between the query and the full
// name or any single word of it, so "riverside" still suggests
// "Riverside Commons".
func nameDistance(query, name string) int {
	dist := levenshtein.ComputeDistance(query, name)
	for _, word := range strings.Fields(name) {
		if d := levenshtein.ComputeDistance(query, word); d < dist {
			dist = d
		}
	}
	return dist
}
