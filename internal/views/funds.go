package views

import (
	"strings"
	"time"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/format"
)

// FundRow is one row of the funds table.
type FundRow struct {
	ID        string
	Name      string
	Sponsor   string
	Strategy  string
	TargetIRR string
	FundSize  string
	Status    string
}

// FundDeal is one row of a fund's associated-deal list.
type FundDeal struct {
	ID          string
	Name        string
	Market      string
	Stage       string
	LastUpdated string
}

// FundDetail is the fund page view model.
type FundDetail struct {
	ID               string
	Name             string
	Sponsor          string
	SponsorID        string
	Strategy         string
	TargetGeography  string
	TargetAssetTypes string
	FundSize         string
	TargetIRR        string
	TargetMultiple   string
	PreferredReturn  string
	GPCommitment     string
	Status           string
	Deals            []FundDeal
}

// BuildFundRows joins funds to their operators for the list view.
func BuildFundRows(funds []api.Fund, lookup *Lookup) []FundRow {
	rows := make([]FundRow, 0, len(funds))
	for _, f := range funds {
		rows = append(rows, FundRow{
			ID:        f.ID,
			Name:      f.Name,
			Sponsor:   lookup.OperatorName(f.OperatorID),
			Strategy:  strOr(f.Strategy, "N/A"),
			TargetIRR: format.PercentOrNA(f.TargetIRR),
			FundSize:  format.CurrencyOrNA(f.FundSize),
			Status:    strOr(f.Status, "Active"),
		})
	}
	return rows
}

// FilterFundRows applies the funds search box: case-insensitive substring on
// name, strategy, and sponsor.
func FilterFundRows(rows []FundRow, query string) []FundRow {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	var out []FundRow
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Strategy), q) ||
			strings.Contains(strings.ToLower(r.Sponsor), q) {
			out = append(out, r)
		}
	}
	return out
}

// BuildFundDetail assembles the fund page; operator is an optional join.
func BuildFundDetail(fund api.Fund, operator *api.Operator, deals []api.Deal, now time.Time) FundDetail {
	detail := FundDetail{
		ID:               fund.ID,
		Name:             fund.Name,
		Sponsor:          "Unknown Sponsor",
		Strategy:         strOr(fund.Strategy, "N/A"),
		TargetGeography:  strOr(fund.TargetGeography, "N/A"),
		TargetAssetTypes: strOr(fund.TargetAssetTypes, "N/A"),
		FundSize:         format.CurrencyOrNA(fund.FundSize),
		TargetIRR:        format.PercentOrNA(fund.TargetIRR),
		TargetMultiple:   format.MultipleOrNA(fund.TargetEquityMultiple),
		PreferredReturn:  format.PercentOrNA(fund.PreferredReturn),
		GPCommitment:     format.CurrencyOrNA(fund.GPCommitment),
		Status:           strOr(fund.Status, "Active"),
	}
	if operator != nil {
		detail.Sponsor = operator.Name
		detail.SponsorID = operator.ID
	}
	for _, d := range deals {
		detail.Deals = append(detail.Deals, FundDeal{
			ID:          d.ID,
			Name:        d.DealName,
			Market:      market(d),
			Stage:       format.StatusToStage(status(d)),
			LastUpdated: format.RelativeTime(d.UpdatedAt, now),
		})
	}
	return detail
}
