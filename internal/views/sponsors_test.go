package views

import (
	"testing"
	"time"

	"github.com/builderos/builderos/internal/api"
)

func operator(id, name string) api.Operator {
	return api.Operator{ID: id, Name: name, CreatedAt: fixedNow.Add(-90 * 24 * time.Hour)}
}

func TestBuildSponsorsRollup(t *testing.T) {
	ops := []api.Operator{operator("op1", "Meridian"), operator("op2", "Crestline")}
	deals := []api.Deal{
		deal("a", "op1", "committed", "TX", fixedNow.Add(-time.Hour)),
		deal("b", "op1", "under_review", "TX", fixedNow.Add(-2*time.Hour)),
		deal("c", "op2", "received", "TN", fixedNow.Add(-30*24*time.Hour)),
	}
	uw := []api.Underwriting{uwFor("a", 4_000_000)}
	lookup := NewLookup(ops, uw)

	rows := BuildSponsors(ops, deals, lookup, fixedNow)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	// sorted by deals submitted, most active first
	if rows[0].Name != "Meridian" {
		t.Fatalf("order wrong: %s first", rows[0].Name)
	}
	m := rows[0]
	if m.DealsSubmitted != 2 || m.DealsCommitted != 1 {
		t.Errorf("rollup wrong: %+v", m)
	}
	// GP commit sums committed deals only
	if m.TotalGPCommit != "$4.0M" {
		t.Errorf("TotalGPCommit = %q", m.TotalGPCommit)
	}
	if m.Status != SponsorActive {
		t.Errorf("recent activity should read Active, got %q", m.Status)
	}

	c := rows[1]
	if c.Status != SponsorWatching {
		t.Errorf("stale activity should read Watching, got %q", c.Status)
	}
}

func TestBuildSponsorsZeroDeals(t *testing.T) {
	ops := []api.Operator{operator("op1", "Quiet Capital")}
	rows := BuildSponsors(ops, nil, NewLookup(ops, nil), fixedNow)
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	s := rows[0]
	if s.Status != SponsorNew {
		t.Errorf("zero-deal sponsor should be New, got %q", s.Status)
	}
	if s.DealsSubmitted != 0 || s.DealsCommitted != 0 {
		t.Errorf("counts should be zero: %+v", s)
	}
	if s.TotalGPCommit != "$0" {
		t.Errorf("TotalGPCommit = %q, want $0", s.TotalGPCommit)
	}
	if s.Geography != "N/A" {
		t.Errorf("no geography signal should read N/A, got %q", s.Geography)
	}
}

func TestSponsorGeographyFallback(t *testing.T) {
	op := operator("op1", "Meridian")
	op.HQState = strPtr("CO")
	rows := BuildSponsors([]api.Operator{op}, nil, NewLookup(nil, nil), fixedNow)
	if rows[0].Geography != "CO" {
		t.Errorf("HQ state fallback: got %q", rows[0].Geography)
	}

	op.PrimaryGeographyFocus = strPtr("Mountain West")
	rows = BuildSponsors([]api.Operator{op}, nil, NewLookup(nil, nil), fixedNow)
	if rows[0].Geography != "Mountain West" {
		t.Errorf("primary focus should win: got %q", rows[0].Geography)
	}

	// no operator fields set: first deal's state fills in
	bare := operator("op2", "Bayline")
	deals := []api.Deal{deal("x", "op2", "received", "FL", fixedNow)}
	rows = BuildSponsors([]api.Operator{bare}, deals, NewLookup(nil, nil), fixedNow)
	if rows[0].Geography != "FL" {
		t.Errorf("deal state fallback: got %q", rows[0].Geography)
	}
}

func TestBuildSponsorDetail(t *testing.T) {
	op := operator("op1", "Meridian")
	op.HQCity = strPtr("Denver")
	op.HQState = strPtr("CO")
	deals := []api.Deal{
		deal("a", "op1", "committed", "TX", fixedNow.Add(-2*time.Hour)),
		deal("b", "op1", "passed", "TX", fixedNow.Add(-time.Hour)),
		deal("c", "op2", "received", "TN", fixedNow), // different sponsor
	}
	uw := []api.Underwriting{uwFor("a", 2_500_000)}

	detail := BuildSponsorDetail(op, deals, NewLookup(nil, uw), fixedNow)
	if detail.DealsSubmitted != 2 {
		t.Errorf("other sponsors' deals leaked in: %d", detail.DealsSubmitted)
	}
	if detail.DealsCommitted != 1 || detail.DealsPassed != 1 {
		t.Errorf("counts wrong: %+v", detail)
	}
	if detail.HQLocation != "Denver, CO" {
		t.Errorf("HQLocation = %q", detail.HQLocation)
	}
	if detail.Description != "No description available." {
		t.Errorf("Description = %q", detail.Description)
	}
	// deal list most recently updated first
	if len(detail.Deals) != 2 || detail.Deals[0].ID != "b" {
		t.Errorf("deal order wrong: %+v", detail.Deals)
	}
}

func TestSponsorStatusWindow(t *testing.T) {
	edge := []api.Deal{deal("a", "op1", "received", "TX", fixedNow.Add(-14*24*time.Hour))}
	if got := sponsorStatus(edge, fixedNow); got != SponsorWatching {
		t.Errorf("exactly 14 days old should be Watching, got %q", got)
	}
	inside := []api.Deal{deal("a", "op1", "received", "TX", fixedNow.Add(-13*24*time.Hour))}
	if got := sponsorStatus(inside, fixedNow); got != SponsorActive {
		t.Errorf("13 days old should be Active, got %q", got)
	}
}
