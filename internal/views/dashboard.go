package views

import (
	"sort"
	"time"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/format"
)

// Metrics are the dashboard headline numbers.
type Metrics struct {
	TotalDeals          int
	DealsUnderReview    int
	ActiveConversations int
	PipelineValue       float64
	CapitalDeployed     float64
	DealsPassed         int
	DealsCommitted      int
}

// MarketShare is one bar of the markets chart: count plus percentage of the
// busiest market's count.
type MarketShare struct {
	Name       string
	Count      int
	Percentage float64
}

// DealFlowMonth buckets received/committed deal counts for one month.
type DealFlowMonth struct {
	Month     string
	Received  int
	Committed int
}

// RecentDeal is one row of the dashboard's recent-activity table.
type RecentDeal struct {
	ID       string
	Name     string
	Sponsor  string
	Market   string
	GPCommit string
	Stage    string
	Updated  string
}

// Dashboard is the fully derived dashboard view model.
type Dashboard struct {
	Metrics     Metrics
	RecentDeals []RecentDeal
	Markets     []MarketShare
	DealFlow    []DealFlowMonth
}

// BuildDashboard derives the dashboard from the loaded collections. Output is
// deterministic given the same inputs and now.
func BuildDashboard(deals []api.Deal, lookup *Lookup, now time.Time) Dashboard {
	return Dashboard{
		Metrics:     computeMetrics(deals, lookup),
		RecentDeals: recentDeals(deals, lookup, now),
		Markets:     marketShares(deals),
		DealFlow:    dealFlow(deals, now),
	}
}

func computeMetrics(deals []api.Deal, lookup *Lookup) Metrics {
	var m Metrics
	for _, d := range deals {
		st := status(d)
		equity := 0.0
		if uw := lookup.UnderwritingFor(d.ID); uw != nil {
			equity = floatOr(uw.EquityRequired)
		}

		switch st {
		case "passed":
			m.DealsPassed++
		case "committed":
			m.TotalDeals++
			m.DealsCommitted++
			m.CapitalDeployed += equity
		default:
			m.TotalDeals++
			m.PipelineValue += equity
		}

		if st == "under_review" {
			m.DealsUnderReview++
		}
		// Early-stage deals stand in for conversation volume until the
		// backend exposes a conversations field.
		switch st {
		case "inbox", "pending", "screening", "under_review", "":
			m.ActiveConversations++
		}
	}
	return m
}

// recentDeals returns the five most recently updated deals.
func recentDeals(deals []api.Deal, lookup *Lookup, now time.Time) []RecentDeal {
	sorted := make([]api.Deal, len(deals))
	copy(sorted, deals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}

	rows := make([]RecentDeal, 0, len(sorted))
	for _, d := range sorted {
		equity := 0.0
		if uw := lookup.UnderwritingFor(d.ID); uw != nil {
			equity = floatOr(uw.EquityRequired)
		}
		rows = append(rows, RecentDeal{
			ID:       d.ID,
			Name:     d.DealName,
			Sponsor:  lookup.OperatorName(d.OperatorID),
			Market:   market(d),
			GPCommit: format.Currency(equity),
			Stage:    format.StatusToStage(status(d)),
			Updated:  format.RelativeTime(d.UpdatedAt, now),
		})
	}
	return rows
}

// marketShares counts deals per state and returns the top five, each with its
// count as a percentage of the busiest market.
func marketShares(deals []api.Deal) []MarketShare {
	counts := map[string]int{}
	for _, d := range deals {
		counts[strOr(d.State, "Unknown")]++
	}
	if len(counts) == 0 {
		return nil
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}

	shares := make([]MarketShare, 0, len(counts))
	for name, c := range counts {
		shares = append(shares, MarketShare{
			Name:       name,
			Count:      c,
			Percentage: float64(c) / float64(max) * 100,
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Name < shares[j].Name
	})
	if len(shares) > 5 {
		shares = shares[:5]
	}
	return shares
}

// dealFlow buckets deals created in the trailing six calendar months by
// received and committed counts.
func dealFlow(deals []api.Deal, now time.Time) []DealFlowMonth {
	months := make([]DealFlowMonth, 0, 6)
	for i := 5; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		bucket := DealFlowMonth{Month: start.Format("Jan")}
		for _, d := range deals {
			if d.CreatedAt.Before(start) || !d.CreatedAt.Before(end) {
				continue
			}
			bucket.Received++
			if status(d) == "committed" {
				bucket.Committed++
			}
		}
		months = append(months, bucket)
	}
	return months
}
