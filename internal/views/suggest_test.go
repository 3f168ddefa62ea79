package views

import "testing"

func TestSuggestDeal(t *testing.T) {
	deals := []PipelineDeal{
		{Name: "Riverside Commons"},
		{Name: "Oakwood Flats"},
		{Name: "Summit Industrial"},
	}
	cases := []struct {
		query string
		want  string
	}{
		{"riversid", "Riverside Commons"},
		{"oakwod", "Oakwood Flats"},
		{"summit", "Summit Industrial"}, // word match, full name differs a lot
		{"RIVERSIDE", "Riverside Commons"},
		{"xqzptvw", ""}, // nothing close enough
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := SuggestDeal(c.query, deals); got != c.want {
			t.Errorf("SuggestDeal(%q) = %q, want %q", c.query, got, c.want)
		}
	}
}

func TestSuggestDealNoDeals(t *testing.T) {
	if got := SuggestDeal("anything", nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
