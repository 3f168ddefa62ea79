package views

import (
	"fmt"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/format"
)

// DealDocument is one attached file on the deal page.
type DealDocument struct {
	ID   string
	Name string
	Size string
	Date string
	Type string
}

// DealDetail is the deal page view model; every numeric field is already
// N/A-safe display text.
type DealDetail struct {
	ID          string
	Name        string
	Stage       string
	Sponsor     string
	Market      string
	Strategy    string
	GPCommitAsk string
	Description string

	Units     string
	SF        string
	YearBuilt string
	Address   string

	BusinessPlan string
	Received     string

	TotalProjectCost string
	AcquisitionPrice string
	HardCosts        string
	SoftCosts        string
	LoanAmount       string

	LPEquityRequired string
	ProjectedIRR     string
	EquityMultiple   string

	SponsorID          string
	SponsorDescription string
	SponsorHQ          string
	SponsorWebsite     string

	Documents []DealDocument
}

// BuildDealDetail assembles the deal page. operator and underwriting are
// optional joins; absence degrades to N/A text, never an error.
func BuildDealDetail(deal api.Deal, operator *api.Operator, uw *api.Underwriting, docs []api.Document) DealDetail {
	detail := DealDetail{
		ID:          deal.ID,
		Name:        deal.DealName,
		Stage:       format.StatusToStage(status(deal)),
		Market:      market(deal),
		Strategy:    strOr(deal.StrategyType, "N/A"),
		Description: strOr(deal.BusinessPlanSummary, "No description available."),

		Units:     "N/A",
		SF:        "N/A",
		YearBuilt: "N/A",
		Address:   strOr(deal.AddressLine1, "N/A"),

		BusinessPlan: strOr(deal.BusinessPlanSummary, "No business plan summary available."),
		Received:     format.Date(deal.CreatedAt),

		Sponsor:            "Unknown Sponsor",
		SponsorDescription: "No sponsor information available.",
		SponsorHQ:          "N/A",
	}

	if deal.NumUnits != nil && *deal.NumUnits > 0 {
		detail.Units = fmt.Sprintf("%d units", *deal.NumUnits)
	}
	if deal.BuildingSF != nil && *deal.BuildingSF > 0 {
		detail.SF = fmt.Sprintf("%d SF", *deal.BuildingSF)
	}
	if deal.YearBuilt != nil && *deal.YearBuilt > 0 {
		detail.YearBuilt = fmt.Sprintf("%d", *deal.YearBuilt)
	}

	detail.TotalProjectCost = currencyField(uw, func(u *api.Underwriting) *float64 { return u.TotalProjectCost })
	detail.AcquisitionPrice = currencyField(uw, func(u *api.Underwriting) *float64 { return u.LandCost })
	detail.HardCosts = currencyField(uw, func(u *api.Underwriting) *float64 { return u.HardCost })
	detail.SoftCosts = currencyField(uw, func(u *api.Underwriting) *float64 { return u.SoftCost })
	detail.LoanAmount = currencyField(uw, func(u *api.Underwriting) *float64 { return u.LoanAmount })
	detail.LPEquityRequired = currencyField(uw, func(u *api.Underwriting) *float64 { return u.EquityRequired })
	detail.GPCommitAsk = detail.LPEquityRequired

	detail.ProjectedIRR = "N/A"
	detail.EquityMultiple = "N/A"
	if uw != nil {
		if uw.LeveredIRR != nil {
			detail.ProjectedIRR = format.Percent(*uw.LeveredIRR)
		}
		if uw.EquityMultiple != nil {
			detail.EquityMultiple = format.Multiple(*uw.EquityMultiple)
		}
	}

	if operator != nil {
		detail.Sponsor = operator.Name
		detail.SponsorID = operator.ID
		detail.SponsorDescription = strOr(operator.Description, "No sponsor information available.")
		detail.SponsorWebsite = strOr(operator.WebsiteURL, "")
		if hq := joinNonEmpty(strOr(operator.HQCity, ""), strOr(operator.HQState, "")); hq != "" {
			detail.SponsorHQ = hq
		}
	}

	for _, doc := range docs {
		size := int64(0)
		if doc.FileSize != nil {
			size = *doc.FileSize
		}
		detail.Documents = append(detail.Documents, DealDocument{
			ID:   doc.ID,
			Name: doc.FileName,
			Size: format.FileSize(size),
			Date: format.Date(doc.UploadDate),
			Type: strOr(doc.FileType, "Unknown"),
		})
	}
	return detail
}

func currencyField(uw *api.Underwriting, pick func(*api.Underwriting) *float64) string {
	if uw == nil {
		return format.Currency(0)
	}
	return format.Currency(floatOr(pick(uw)))
}
