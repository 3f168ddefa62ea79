package views

import (
	"sort"
	"time"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/format"
)

// PipelineDeal is one row of the pipeline table. Formatted strings are kept
// alongside the raw numerics they were derived from, so filtering and sorting
// never re-parse display text.
type PipelineDeal struct {
	ID             string
	Name           string
	Sponsor        string
	Market         string
	Strategy       string
	TotalCost      string
	EquityRequired string
	IRR            string
	Stage          string
	DaysInStage    int
	LastUpdated    string

	// Raw values behind EquityRequired and IRR. IRRValue is in display
	// points (24.5 for 24.5%).
	EquityValue float64
	IRRValue    float64
}

// PipelineDeals joins deals with their operators and underwriting and projects
// them into table rows, most recently updated first.
func PipelineDeals(deals []api.Deal, lookup *Lookup, now time.Time) []PipelineDeal {
	sorted := make([]api.Deal, len(deals))
	copy(sorted, deals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})

	rows := make([]PipelineDeal, 0, len(sorted))
	for _, d := range sorted {
		uw := lookup.UnderwritingFor(d.ID)
		var totalCost, equity, irr float64
		if uw != nil {
			totalCost = floatOr(uw.TotalProjectCost)
			equity = floatOr(uw.EquityRequired)
			irr = floatOr(uw.LeveredIRR)
		}
		rows = append(rows, PipelineDeal{
			ID:             d.ID,
			Name:           d.DealName,
			Sponsor:        lookup.OperatorName(d.OperatorID),
			Market:         market(d),
			Strategy:       strOr(d.StrategyType, "N/A"),
			TotalCost:      format.Currency(totalCost),
			EquityRequired: format.Currency(equity),
			IRR:            format.Percent(irr),
			Stage:          format.StatusToStage(status(d)),
			DaysInStage:    int(now.Sub(d.UpdatedAt).Hours() / 24),
			LastUpdated:    format.RelativeTime(d.UpdatedAt, now),
			EquityValue:    equity,
			IRRValue:       irr * 100,
		})
	}
	return rows
}
