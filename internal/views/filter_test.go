package views

import (
	"reflect"
	"testing"
)

func pipelineFixture() []PipelineDeal {
	return []PipelineDeal{
		{ID: "d1", Name: "Riverside Commons", Sponsor: "Meridian", Market: "Austin, TX", Strategy: "Development", Stage: "Under Review", EquityValue: 4_500_000, IRRValue: 18.2},
		{ID: "d2", Name: "Oakwood Flats", Sponsor: "Crestline", Market: "Nashville, TN", Strategy: "Value-Add", Stage: "Received", EquityValue: 900_000, IRRValue: 22.0},
		{ID: "d3", Name: "Summit Industrial", Sponsor: "Meridian", Market: "Austin, TX", Strategy: "Core-Plus", Stage: "Committed", EquityValue: 12_000_000, IRRValue: 14.8},
		{ID: "d4", Name: "Harbor Point", Sponsor: "Bayline", Market: "Tampa, FL", Strategy: "Development", Stage: "Passed", EquityValue: 5_000_000, IRRValue: 0},
		{ID: "d5", Name: "Cedar Mills", Sponsor: "Crestline", Market: "Nashville, TN", Strategy: "Value-Add", Stage: "Due Diligence", EquityValue: 7_250_000, IRRValue: 19.5},
	}
}

func ids(deals []PipelineDeal) []string {
	out := make([]string, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.ID)
	}
	return out
}

func TestApplyTabs(t *testing.T) {
	deals := pipelineFixture()
	cases := []struct {
		tab  Tab
		want []string
	}{
		{TabAll, []string{"d1", "d2", "d3", "d4", "d5"}},
		{TabActive, []string{"d1", "d2", "d5"}},
		{TabCommitted, []string{"d3"}},
		{TabPassed, []string{"d4"}},
	}
	for _, c := range cases {
		got := ids(Apply(deals, FilterState{Tab: c.tab}))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("tab %s: got %v, want %v", c.tab, got, c.want)
		}
	}
}

func TestApplySearch(t *testing.T) {
	deals := pipelineFixture()
	cases := []struct {
		query string
		want  []string
	}{
		{"riverside", []string{"d1"}},
		{"MERIDIAN", []string{"d1", "d3"}},  // sponsor, case-insensitive
		{"nashville", []string{"d2", "d5"}}, // market
		{"  ", []string{"d1", "d2", "d3", "d4", "d5"}},
		{"zzzz", []string{}},
	}
	for _, c := range cases {
		got := ids(Apply(deals, FilterState{Tab: TabAll, Search: c.query}))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("search %q: got %v, want %v", c.query, got, c.want)
		}
	}
}

func TestApplyEquityRangeBounds(t *testing.T) {
	// boundary values pin down the half-open [Min, Max) membership
	deals := []PipelineDeal{
		{ID: "zero", Stage: "Received", EquityValue: 0},
		{ID: "under", Stage: "Received", EquityValue: 999_999},
		{ID: "exact1m", Stage: "Received", EquityValue: 1_000_000},
		{ID: "exact5m", Stage: "Received", EquityValue: 5_000_000},
		{ID: "exact10m", Stage: "Received", EquityValue: 10_000_000},
		{ID: "huge", Stage: "Received", EquityValue: 250_000_000},
	}
	cases := []struct {
		label string
		want  []string
	}{
		{"$0-1M", []string{"zero", "under"}},
		{"$1M-5M", []string{"exact1m"}},
		{"$5M-10M", []string{"exact5m"}},
		{"$10M+", []string{"exact10m", "huge"}},
	}
	for _, c := range cases {
		got := ids(Apply(deals, FilterState{Tab: TabAll, EquityRanges: []string{c.label}}))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("range %s: got %v, want %v", c.label, got, c.want)
		}
	}

	// multiple selected ranges union
	got := ids(Apply(deals, FilterState{Tab: TabAll, EquityRanges: []string{"$0-1M", "$10M+"}}))
	want := []string{"zero", "under", "exact10m", "huge"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("union: got %v, want %v", got, want)
	}
}

func TestApplyFacetSets(t *testing.T) {
	deals := pipelineFixture()

	got := ids(Apply(deals, FilterState{Tab: TabAll, Stages: []string{"Under Review", "Due Diligence"}}))
	if !reflect.DeepEqual(got, []string{"d1", "d5"}) {
		t.Errorf("stages: got %v", got)
	}

	got = ids(Apply(deals, FilterState{Tab: TabAll, Markets: []string{"Tampa, FL"}}))
	if !reflect.DeepEqual(got, []string{"d4"}) {
		t.Errorf("markets: got %v", got)
	}

	got = ids(Apply(deals, FilterState{Tab: TabActive, Strategies: []string{"Value-Add"}}))
	if !reflect.DeepEqual(got, []string{"d2", "d5"}) {
		t.Errorf("strategies: got %v", got)
	}
}

func TestApplySort(t *testing.T) {
	deals := pipelineFixture()

	// recent keeps upstream order
	got := ids(Apply(deals, FilterState{Tab: TabAll, Sort: SortRecent}))
	if !reflect.DeepEqual(got, []string{"d1", "d2", "d3", "d4", "d5"}) {
		t.Errorf("recent: got %v", got)
	}

	got = ids(Apply(deals, FilterState{Tab: TabAll, Sort: SortNameAsc}))
	if !reflect.DeepEqual(got, []string{"d5", "d4", "d2", "d1", "d3"}) {
		t.Errorf("name-asc: got %v", got)
	}

	// irr-desc puts the zero-IRR deal last
	got = ids(Apply(deals, FilterState{Tab: TabAll, Sort: SortIRRDesc}))
	if !reflect.DeepEqual(got, []string{"d2", "d5", "d1", "d3", "d4"}) {
		t.Errorf("irr-desc: got %v", got)
	}
}

// Applying the same state twice must give identical results and never mutate
// the input.
func TestApplyIdempotent(t *testing.T) {
	deals := pipelineFixture()
	state := FilterState{Tab: TabActive, Search: "a", Sort: SortNameAsc, EquityRanges: []string{"$1M-5M", "$5M-10M"}}

	before := ids(deals)
	first := Apply(deals, state)
	second := Apply(deals, state)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Errorf("not idempotent: %v vs %v", ids(first), ids(second))
	}
	if !reflect.DeepEqual(ids(deals), before) {
		t.Errorf("input mutated: %v", ids(deals))
	}
}

func TestFacets(t *testing.T) {
	deals := pipelineFixture()

	all := Facets(deals, TabAll, "")
	if !reflect.DeepEqual(all.Markets, []string{"Austin, TX", "Nashville, TN", "Tampa, FL"}) {
		t.Errorf("all markets: got %v", all.Markets)
	}

	// facet options come from the tab+search subset, not the universe
	active := Facets(deals, TabActive, "")
	if !reflect.DeepEqual(active.Stages, []string{"Due Diligence", "Received", "Under Review"}) {
		t.Errorf("active stages: got %v", active.Stages)
	}
	for _, s := range active.Stages {
		if s == "Committed" || s == "Passed" {
			t.Errorf("active tab facets leaked terminal stage %s", s)
		}
	}

	searched := Facets(deals, TabAll, "meridian")
	if !reflect.DeepEqual(searched.Markets, []string{"Austin, TX"}) {
		t.Errorf("searched markets: got %v", searched.Markets)
	}
}

func TestTabCounts(t *testing.T) {
	counts := TabCounts(pipelineFixture())
	want := map[Tab]int{TabAll: 5, TabActive: 3, TabCommitted: 1, TabPassed: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("got %v, want %v", counts, want)
	}
}

func TestActiveFilterCount(t *testing.T) {
	s := FilterState{
		Tab:          TabActive,
		Search:       "riverside",
		Sort:         SortIRRDesc,
		Stages:       []string{"Received"},
		Markets:      []string{"Austin, TX", "Tampa, FL"},
		EquityRanges: []string{"$10M+"},
	}
	// tab, search, and sort do not count as filters
	if got := s.ActiveFilterCount(); got != 4 {
		t.Errorf("got %d, want 4", got)
	}
	if got := (FilterState{Tab: TabPassed, Search: "x"}).ActiveFilterCount(); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
