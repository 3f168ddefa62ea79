package views

import (
	"sort"
	"time"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/format"
)

// Sponsor statuses derived from deal activity.
const (
	SponsorNew      = "New"      // no deals yet
	SponsorActive   = "Active"   // deal activity within two weeks
	SponsorWatching = "Watching" // has deals, nothing recent
)

// Sponsor is one row of the sponsors table.
type Sponsor struct {
	ID             string
	Name           string
	PrimaryContact string
	DealsSubmitted int
	DealsCommitted int
	TotalGPCommit  string
	Geography      string
	LastActivity   string
	Status         string
}

// SponsorDeal is one row of a sponsor's deal list.
type SponsorDeal struct {
	ID          string
	Name        string
	Market      string
	Strategy    string
	TotalCost   string
	GPCommit    string
	Stage       string
	LastUpdated string
}

// SponsorDetail is the full sponsor page view model.
type SponsorDetail struct {
	ID              string
	Name            string
	LegalName       string
	Description     string
	HQLocation      string
	Website         string
	PrimaryGeo      string
	PrimaryAsset    string
	DealsSubmitted  int
	DealsCommitted  int
	DealsPassed     int
	TotalGPCommit   string
	Deals           []SponsorDeal
}

// BuildSponsors rolls every operator up with its deals, most active first.
func BuildSponsors(operators []api.Operator, deals []api.Deal, lookup *Lookup, now time.Time) []Sponsor {
	rows := make([]Sponsor, 0, len(operators))
	for _, op := range operators {
		opDeals := dealsForOperator(deals, op.ID)

		committed := 0
		gpCommit := 0.0
		for _, d := range opDeals {
			if status(d) != "committed" {
				continue
			}
			committed++
			if uw := lookup.UnderwritingFor(d.ID); uw != nil {
				gpCommit += floatOr(uw.EquityRequired)
			}
		}

		geography := strOr(op.PrimaryGeographyFocus, "")
		if geography == "" {
			geography = strOr(op.HQState, "")
		}
		if geography == "" && len(opDeals) > 0 {
			geography = strOr(opDeals[0].State, "")
		}
		if geography == "" {
			geography = "N/A"
		}

		lastActivity := op.CreatedAt
		if latest := latestUpdate(opDeals); !latest.IsZero() {
			lastActivity = latest
		}

		rows = append(rows, Sponsor{
			ID:             op.ID,
			Name:           op.Name,
			PrimaryContact: "N/A", // principals are not loaded on this view
			DealsSubmitted: len(opDeals),
			DealsCommitted: committed,
			TotalGPCommit:  format.Currency(gpCommit),
			Geography:      geography,
			LastActivity:   format.RelativeTime(lastActivity, now),
			Status:         sponsorStatus(opDeals, now),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DealsSubmitted > rows[j].DealsSubmitted
	})
	return rows
}

// BuildSponsorDetail assembles the sponsor page for one operator.
func BuildSponsorDetail(op api.Operator, deals []api.Deal, lookup *Lookup, now time.Time) SponsorDetail {
	opDeals := dealsForOperator(deals, op.ID)
	sort.SliceStable(opDeals, func(i, j int) bool {
		return opDeals[i].UpdatedAt.After(opDeals[j].UpdatedAt)
	})

	committed, passed := 0, 0
	gpCommit := 0.0
	for _, d := range opDeals {
		switch status(d) {
		case "committed":
			committed++
			if uw := lookup.UnderwritingFor(d.ID); uw != nil {
				gpCommit += floatOr(uw.EquityRequired)
			}
		case "passed":
			passed++
		}
	}

	rows := make([]SponsorDeal, 0, len(opDeals))
	for _, d := range opDeals {
		var totalCost, equity float64
		if uw := lookup.UnderwritingFor(d.ID); uw != nil {
			totalCost = floatOr(uw.TotalProjectCost)
			equity = floatOr(uw.EquityRequired)
		}
		rows = append(rows, SponsorDeal{
			ID:          d.ID,
			Name:        d.DealName,
			Market:      market(d),
			Strategy:    strOr(d.StrategyType, "N/A"),
			TotalCost:   format.Currency(totalCost),
			GPCommit:    format.Currency(equity),
			Stage:       format.StatusToStage(status(d)),
			LastUpdated: format.RelativeTime(d.UpdatedAt, now),
		})
	}

	hq := joinNonEmpty(strOr(op.HQCity, ""), strOr(op.HQState, ""))
	if hq == "" {
		hq = "N/A"
	}

	return SponsorDetail{
		ID:             op.ID,
		Name:           op.Name,
		LegalName:      strOr(op.LegalName, ""),
		Description:    strOr(op.Description, "No description available."),
		HQLocation:     hq,
		Website:        strOr(op.WebsiteURL, ""),
		PrimaryGeo:     strOr(op.PrimaryGeographyFocus, ""),
		PrimaryAsset:   strOr(op.PrimaryAssetTypeFocus, ""),
		DealsSubmitted: len(opDeals),
		DealsCommitted: committed,
		DealsPassed:    passed,
		TotalGPCommit:  format.Currency(gpCommit),
		Deals:          rows,
	}
}

func dealsForOperator(deals []api.Deal, operatorID string) []api.Deal {
	var out []api.Deal
	for _, d := range deals {
		if d.OperatorID == operatorID {
			out = append(out, d)
		}
	}
	return out
}

func latestUpdate(deals []api.Deal) time.Time {
	var latest time.Time
	for _, d := range deals {
		if d.UpdatedAt.After(latest) {
			latest = d.UpdatedAt
		}
	}
	return latest
}

func sponsorStatus(deals []api.Deal, now time.Time) string {
	if len(deals) == 0 {
		return SponsorNew
	}
	if now.Sub(latestUpdate(deals)) < 14*24*time.Hour {
		return SponsorActive
	}
	return SponsorWatching
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
