package views

import (
	"math"
	"sort"
	"strings"
)

// Tab is the pipeline's mutually exclusive top-level view.
type Tab string

const (
	TabAll       Tab = "all"
	TabActive    Tab = "active"
	TabCommitted Tab = "committed"
	TabPassed    Tab = "passed"
)

// SortKey orders the filtered pipeline.
type SortKey string

const (
	SortRecent   SortKey = "recent"    // preserve upstream recency order
	SortNameAsc  SortKey = "name-asc"  // case-folded lexicographic
	SortIRRDesc  SortKey = "irr-desc"  // numeric descending, unparsable as zero
)

// EquityRange is one selectable bucket; membership is half-open [Min, Max).
type EquityRange struct {
	Label string
	Min   float64
	Max   float64
}

// EquityRanges are the fixed buckets offered by the equity-required facet.
var EquityRanges = []EquityRange{
	{Label: "$0-1M", Min: 0, Max: 1_000_000},
	{Label: "$1M-5M", Min: 1_000_000, Max: 5_000_000},
	{Label: "$5M-10M", Min: 5_000_000, Max: 10_000_000},
	{Label: "$10M+", Min: 10_000_000, Max: math.Inf(1)},
}

// FilterState is everything the user has selected. Empty facet sets mean "no
// filter". Nothing here persists across navigation.
type FilterState struct {
	Tab          Tab
	Search       string
	Stages       []string
	Markets      []string
	Strategies   []string
	EquityRanges []string // labels from EquityRanges
	Sort         SortKey
}

// ActiveFilterCount counts the selected facet values (tab, search, and sort
// excluded), for the "N filters" badge.
func (s FilterState) ActiveFilterCount() int {
	return len(s.Stages) + len(s.Markets) + len(s.Strategies) + len(s.EquityRanges)
}

// Apply evaluates the filter predicates in fixed order - tab, search, stage,
// market, strategy, equity range - then sorts. The input slice is never
// mutated, so applying the same state twice yields the same result.
func Apply(deals []PipelineDeal, state FilterState) []PipelineDeal {
	out := make([]PipelineDeal, 0, len(deals))
	for _, d := range deals {
		if !matchesTab(d, state.Tab) {
			continue
		}
		if !matchesSearch(d, state.Search) {
			continue
		}
		if !inSet(d.Stage, state.Stages) {
			continue
		}
		if !inSet(d.Market, state.Markets) {
			continue
		}
		if !inSet(d.Strategy, state.Strategies) {
			continue
		}
		if !matchesEquityRange(d, state.EquityRanges) {
			continue
		}
		out = append(out, d)
	}
	sortDeals(out, state.Sort)
	return out
}

// FacetOptions are the distinct stage/market/strategy values present in the
// tab+search-filtered subset, so facet lists reflect context rather than the
// full universe.
type FacetOptions struct {
	Stages     []string
	Markets    []string
	Strategies []string
}

// Facets derives the available facet options for the current tab and search.
func Facets(deals []PipelineDeal, tab Tab, search string) FacetOptions {
	stageSet := map[string]bool{}
	marketSet := map[string]bool{}
	strategySet := map[string]bool{}
	for _, d := range deals {
		if !matchesTab(d, tab) || !matchesSearch(d, search) {
			continue
		}
		stageSet[d.Stage] = true
		marketSet[d.Market] = true
		strategySet[d.Strategy] = true
	}
	return FacetOptions{
		Stages:     sortedKeys(stageSet),
		Markets:    sortedKeys(marketSet),
		Strategies: sortedKeys(strategySet),
	}
}

// TabCounts reports how many loaded deals fall under each tab.
func TabCounts(deals []PipelineDeal) map[Tab]int {
	counts := map[Tab]int{TabAll: len(deals)}
	for _, d := range deals {
		switch {
		case d.Stage == "Committed":
			counts[TabCommitted]++
		case d.Stage == "Passed":
			counts[TabPassed]++
		default:
			counts[TabActive]++
		}
	}
	return counts
}

func matchesTab(d PipelineDeal, tab Tab) bool {
	switch tab {
	case TabActive:
		return d.Stage != "Committed" && d.Stage != "Passed"
	case TabCommitted:
		return d.Stage == "Committed"
	case TabPassed:
		return d.Stage == "Passed"
	default:
		return true
	}
}

func matchesSearch(d PipelineDeal, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Name), q) ||
		strings.Contains(strings.ToLower(d.Sponsor), q) ||
		strings.Contains(strings.ToLower(d.Market), q)
}

func inSet(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

func matchesEquityRange(d PipelineDeal, labels []string) bool {
	if len(labels) == 0 {
		return true
	}
	for _, label := range labels {
		for _, r := range EquityRanges {
			if r.Label != label {
				continue
			}
			if d.EquityValue >= r.Min && d.EquityValue < r.Max {
				return true
			}
		}
	}
	return false
}

func sortDeals(deals []PipelineDeal, key SortKey) {
	switch key {
	case SortNameAsc:
		sort.SliceStable(deals, func(i, j int) bool {
			return strings.ToLower(deals[i].Name) < strings.ToLower(deals[j].Name)
		})
	case SortIRRDesc:
		sort.SliceStable(deals, func(i, j int) bool {
			return deals[i].IRRValue > deals[j].IRRValue
		})
	default:
		// recent: upstream order is already updated_at desc
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
