package api

import "time"

// Wire models mirror the backend's snake_case JSON. Nullable columns are
// pointers; display-layer code supplies the N/A defaults.

// Deal is a single investment opportunity tracked through the pipeline.
type Deal struct {
	ID                  string    `json:"id"`
	DealName            string    `json:"deal_name"`
	InternalCode        *string   `json:"internal_code"`
	OperatorID          string    `json:"operator_id"`
	Country             *string   `json:"country"`
	State               *string   `json:"state"`
	MSA                 *string   `json:"msa"`
	Submarket           *string   `json:"submarket"`
	AddressLine1        *string   `json:"address_line1"`
	PostalCode          *string   `json:"postal_code"`
	AssetType           *string   `json:"asset_type"`
	StrategyType        *string   `json:"strategy_type"`
	NumUnits            *int      `json:"num_units"`
	BuildingSF          *int      `json:"building_sf"`
	YearBuilt           *int      `json:"year_built"`
	BusinessPlanSummary *string   `json:"business_plan_summary"`
	HoldPeriodYears     *float64  `json:"hold_period_years"`
	Status              *string   `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Operator is the sponsor firm behind deals and funds.
type Operator struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	LegalName             *string   `json:"legal_name"`
	WebsiteURL            *string   `json:"website_url"`
	HQCity                *string   `json:"hq_city"`
	HQState               *string   `json:"hq_state"`
	HQCountry             *string   `json:"hq_country"`
	PrimaryGeographyFocus *string   `json:"primary_geography_focus"`
	PrimaryAssetTypeFocus *string   `json:"primary_asset_type_focus"`
	Description           *string   `json:"description"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Underwriting carries the financial model attached to a deal (1:1).
// Percentages are stored as decimals: 0.245 means 24.5%.
type Underwriting struct {
	ID                   string    `json:"id"`
	DealID               string    `json:"deal_id"`
	TotalProjectCost     *float64  `json:"total_project_cost"`
	LandCost             *float64  `json:"land_cost"`
	HardCost             *float64  `json:"hard_cost"`
	SoftCost             *float64  `json:"soft_cost"`
	LoanAmount           *float64  `json:"loan_amount"`
	EquityRequired       *float64  `json:"equity_required"`
	InterestRate         *float64  `json:"interest_rate"`
	LTV                  *float64  `json:"ltv"`
	LTC                  *float64  `json:"ltc"`
	DSCRAtStabilization  *float64  `json:"dscr_at_stabilization"`
	LeveredIRR           *float64  `json:"levered_irr"`
	UnleveredIRR         *float64  `json:"unlevered_irr"`
	EquityMultiple       *float64  `json:"equity_multiple"`
	AvgCashOnCash        *float64  `json:"avg_cash_on_cash"`
	ExitCapRate          *float64  `json:"exit_cap_rate"`
	YieldOnCost          *float64  `json:"yield_on_cost"`
	ProjectDurationYears *float64  `json:"project_duration_years"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Fund is a pooled-capital vehicle managed by an operator.
type Fund struct {
	ID                   string    `json:"id"`
	OperatorID           string    `json:"operator_id"`
	Name                 string    `json:"name"`
	Strategy             *string   `json:"strategy"`
	TargetGeography      *string   `json:"target_geography"`
	TargetAssetTypes     *string   `json:"target_asset_types"`
	TargetIRR            *float64  `json:"target_irr"`
	TargetEquityMultiple *float64  `json:"target_equity_multiple"`
	PreferredReturn      *float64  `json:"preferred_return"`
	GPCommitment         *float64  `json:"gp_commitment"`
	FundSize             *float64  `json:"fund_size"`
	Status               *string   `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Document is an uploaded file tracked through backend parsing.
type Document struct {
	ID                    string     `json:"id"`
	DealID                *string    `json:"deal_id"`
	FilePath              string     `json:"file_path"`
	FileName              string     `json:"file_name"`
	FileType              *string    `json:"file_type"`
	FileSize              *int64     `json:"file_size"`
	UploadDate            time.Time  `json:"upload_date"`
	ExtractedText         *string    `json:"extracted_text"`
	ExtractionStatus      *string    `json:"extraction_status"`
	ExtractionCompletedAt *time.Time `json:"extraction_completed_at"`
}

// Parsing status values polled from the document status endpoint.
const (
	ParsingPending    = "pending"
	ParsingProcessing = "processing"
	ParsingCompleted  = "completed"
	ParsingFailed     = "failed"
)

// DocumentStatus is the poll response for an uploaded document.
type DocumentStatus struct {
	ParsingStatus string `json:"parsing_status"`
	ParsingError  string `json:"parsing_error,omitempty"`
}

// Extraction classifications.
const (
	ClassificationDeal = "deal"
	ClassificationFund = "fund"
)

// ExtractionResult is the outcome of the AI extraction trigger.
type ExtractionResult struct {
	Success          bool             `json:"success"`
	Classification   string           `json:"classification"`
	ExtractedData    ExtractedData    `json:"extracted_data"`
	PopulatedRecords PopulatedRecords `json:"populated_records"`
}

// ExtractedData is the field bag produced for whichever classification the
// backend determined; the other branch stays nil.
type ExtractedData struct {
	Deal         *ExtractedDeal         `json:"deal,omitempty"`
	Fund         *ExtractedFund         `json:"fund,omitempty"`
	Operator     *ExtractedOperator     `json:"operator,omitempty"`
	Underwriting *ExtractedUnderwriting `json:"underwriting,omitempty"`
}

type ExtractedDeal struct {
	DealName     string  `json:"deal_name"`
	State        string  `json:"state"`
	MSA          string  `json:"msa"`
	AssetType    string  `json:"asset_type"`
	StrategyType string  `json:"strategy_type"`
	NumUnits     *int    `json:"num_units"`
	BuildingSF   *int    `json:"building_sf"`
}

type ExtractedFund struct {
	Name                 string   `json:"name"`
	Strategy             string   `json:"strategy"`
	TargetGeography      string   `json:"target_geography"`
	TargetAssetTypes     string   `json:"target_asset_types"`
	FundSize             *float64 `json:"fund_size"`
	TargetIRR            *float64 `json:"target_irr"`
	TargetEquityMultiple *float64 `json:"target_equity_multiple"`
	PreferredReturn      *float64 `json:"preferred_return"`
	GPCommitment         *float64 `json:"gp_commitment"`
}

type ExtractedOperator struct {
	Name string `json:"name"`
}

type ExtractedUnderwriting struct {
	TotalProjectCost *float64 `json:"total_project_cost"`
	EquityRequired   *float64 `json:"equity_required"`
	LeveredIRR       *float64 `json:"levered_irr"`
	EquityMultiple   *float64 `json:"equity_multiple"`
}

// PopulatedRecords carries the ids of records the backend created from the
// extraction, used to navigate to the result.
type PopulatedRecords struct {
	DealID *string `json:"deal_id,omitempty"`
	FundID *string `json:"fund_id,omitempty"`
}

// DealFilters narrow the deal list endpoint via query string.
type DealFilters struct {
	Skip       *int
	Limit      *int
	OperatorID string
	Status     string
	AssetType  string
	State      string
}
