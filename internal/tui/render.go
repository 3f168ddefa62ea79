package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/format"
	"github.com/builderos/builderos/internal/upload"
	"github.com/builderos/builderos/internal/views"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	activeStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

const navHint = "[1] Dashboard  [2] Pipeline  [3] Sponsors  [4] Funds  [5] Portfolio  [6] Upload  [q] Quit"

func (a *App) View() string {
	var body string
	switch a.state {
	case viewPipeline:
		body = a.renderPipeline()
	case viewSponsors:
		body = a.renderSponsors()
	case viewSponsorDetail:
		body = a.renderSponsorDetail()
	case viewFunds:
		body = a.renderFunds()
	case viewFundDetail:
		body = a.renderFundDetail()
	case viewDealDetail:
		body = a.renderDealDetail()
	case viewPortfolio:
		body = a.renderPortfolio()
	case viewUpload:
		body = a.renderUpload()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

// renderFrame wraps a screen body with its title and the loading/error
// states every data screen shares.
func (a *App) renderFrame(title, body, hints string) string {
	out := titleStyle.Render(title) + "\n"
	switch {
	case a.loading:
		out += "Loading...\n"
	case a.loadErr != nil:
		out += errorStyle.Render("Error: "+a.loadErr.Error()) + "\n"
		out += "[r] Retry\n"
	default:
		out += body
	}
	out += "\n" + dimStyle.Render(hints)
	return out
}

func (a *App) renderDashboard() string {
	d := a.dashboard
	var b strings.Builder

	fmt.Fprintf(&b, "Total Deals: %d   Under Review: %d   Active Conversations: %d\n",
		d.Metrics.TotalDeals, d.Metrics.DealsUnderReview, d.Metrics.ActiveConversations)
	fmt.Fprintf(&b, "Pipeline Value: %s   Capital Deployed: %s   Committed: %d   Passed: %d\n",
		format.Currency(d.Metrics.PipelineValue), format.Currency(d.Metrics.CapitalDeployed),
		d.Metrics.DealsCommitted, d.Metrics.DealsPassed)

	b.WriteString("\nRecent Deals\n")
	if len(d.RecentDeals) == 0 {
		b.WriteString("  (no deals yet)\n")
	}
	for i, r := range d.RecentDeals {
		marker := " "
		if i == a.recentCursor {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %-28s %-22s %-18s %10s  %-12s %s\n",
			marker, clip(r.Name, 28), clip(r.Sponsor, 22), clip(r.Market, 18), r.GPCommit, r.Stage, r.Updated)
	}

	b.WriteString("\nTop Markets\n")
	for _, mkt := range d.Markets {
		bar := strings.Repeat("█", int(mkt.Percentage/10))
		fmt.Fprintf(&b, "  %-14s %-10s %d\n", clip(mkt.Name, 14), bar, mkt.Count)
	}

	b.WriteString("\nDeal Flow (6 months)\n  ")
	for _, m := range d.DealFlow {
		fmt.Fprintf(&b, "%s %d/%d   ", m.Month, m.Received, m.Committed)
	}
	b.WriteString(dimStyle.Render("(received/committed)") + "\n")

	return a.renderFrame("Builder OS — Dashboard", b.String(),
		"[enter] Open deal  [r] Refresh  "+navHint)
}

func (a *App) renderPipeline() string {
	var b strings.Builder

	b.WriteString(a.renderTabs() + "\n")

	searchLine := "Search: " + a.filter.Search
	if a.searchMode {
		searchLine += "▌"
	}
	b.WriteString(searchLine)
	if n := a.filter.ActiveFilterCount(); n > 0 {
		fmt.Fprintf(&b, "   %d filters", n)
	}
	fmt.Fprintf(&b, "   sort: %s\n\n", a.filter.Sort)

	if len(a.filtered) == 0 {
		b.WriteString("No deals match the current filters.\n")
		if a.suggestion != "" {
			fmt.Fprintf(&b, "Did you mean %q?\n", a.suggestion)
		}
	} else {
		fmt.Fprintf(&b, "  %-28s %-20s %-18s %-14s %10s %8s  %-12s %s\n",
			"DEAL", "SPONSOR", "MARKET", "STRATEGY", "EQUITY", "IRR", "STAGE", "UPDATED")
		for i, d := range a.filtered {
			marker := " "
			if i == a.pipeCursor {
				marker = "▶"
			}
			fmt.Fprintf(&b, "%s %-28s %-20s %-18s %-14s %10s %8s  %-12s %s\n",
				marker, clip(d.Name, 28), clip(d.Sponsor, 20), clip(d.Market, 18), clip(d.Strategy, 14),
				d.EquityRequired, d.IRR, d.Stage, d.LastUpdated)
		}
	}

	hints := "[/] Search  [tab] Tab  [g] Stage  [m] Market  [y] Strategy  [e] Equity  [o] Sort  [c] Clear  [enter] Open  [esc] Back  " + navHint
	if a.searchMode {
		hints = "[enter] Done  [esc] Clear search"
	}
	return a.renderFrame("Deal Pipeline", b.String(), hints)
}

func (a *App) renderTabs() string {
	tabs := []struct {
		tab   views.Tab
		label string
	}{
		{views.TabAll, "All"},
		{views.TabActive, "Active"},
		{views.TabCommitted, "Committed"},
		{views.TabPassed, "Passed"},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := fmt.Sprintf(" %s (%d) ", t.label, a.tabCounts[t.tab])
		if t.tab == a.filter.Tab {
			label = activeStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func (a *App) renderSponsors() string {
	var b strings.Builder
	if len(a.sponsors) == 0 {
		b.WriteString("No sponsors yet.\n")
	} else {
		fmt.Fprintf(&b, "  %-24s %6s %10s %12s  %-14s %-12s %s\n",
			"SPONSOR", "DEALS", "COMMITTED", "GP COMMIT", "GEOGRAPHY", "ACTIVITY", "STATUS")
		for i, s := range a.sponsors {
			marker := " "
			if i == a.sponsorCursor {
				marker = "▶"
			}
			fmt.Fprintf(&b, "%s %-24s %6d %10d %12s  %-14s %-12s %s\n",
				marker, clip(s.Name, 24), s.DealsSubmitted, s.DealsCommitted, s.TotalGPCommit,
				clip(s.Geography, 14), s.LastActivity, s.Status)
		}
	}
	return a.renderFrame("Sponsors", b.String(),
		"[enter] Open sponsor  [esc] Back  [r] Refresh  "+navHint)
}

func (a *App) renderSponsorDetail() string {
	s := a.sponsorDetail
	var b strings.Builder

	fmt.Fprintf(&b, "HQ: %s", s.HQLocation)
	if s.Website != "" {
		fmt.Fprintf(&b, "   %s", s.Website)
	}
	b.WriteString("\n")
	if s.PrimaryGeo != "" || s.PrimaryAsset != "" {
		fmt.Fprintf(&b, "Focus: %s\n", strings.TrimSuffix(strings.TrimSpace(s.PrimaryGeo+" / "+s.PrimaryAsset), "/"))
	}
	fmt.Fprintf(&b, "%s\n\n", s.Description)
	fmt.Fprintf(&b, "Submitted: %d   Committed: %d   Passed: %d   Total GP Commit: %s\n",
		s.DealsSubmitted, s.DealsCommitted, s.DealsPassed, s.TotalGPCommit)

	b.WriteString("\nDeals\n")
	if len(s.Deals) == 0 {
		b.WriteString("  No deals from this sponsor yet.\n")
	}
	for i, d := range s.Deals {
		marker := " "
		if i == a.detailCursor {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %-28s %-18s %-14s %10s %10s  %-12s %s\n",
			marker, clip(d.Name, 28), clip(d.Market, 18), clip(d.Strategy, 14),
			d.TotalCost, d.GPCommit, d.Stage, d.LastUpdated)
	}
	return a.renderFrame("Sponsor — "+s.Name, b.String(),
		"[enter] Open deal  [esc] Sponsors  "+navHint)
}

func (a *App) renderFunds() string {
	rows := a.visibleFunds()
	var b strings.Builder

	searchLine := "Search: " + a.fundsQuery
	if a.fundsSearch {
		searchLine += "▌"
	}
	b.WriteString(searchLine + "\n\n")

	if len(rows) == 0 {
		b.WriteString("No funds match.\n")
	} else {
		fmt.Fprintf(&b, "  %-28s %-22s %-18s %10s %12s  %s\n",
			"FUND", "SPONSOR", "STRATEGY", "TARGET IRR", "SIZE", "STATUS")
		for i, f := range rows {
			marker := " "
			if i == a.fundCursor {
				marker = "▶"
			}
			fmt.Fprintf(&b, "%s %-28s %-22s %-18s %10s %12s  %s\n",
				marker, clip(f.Name, 28), clip(f.Sponsor, 22), clip(f.Strategy, 18),
				f.TargetIRR, f.FundSize, f.Status)
		}
	}

	hints := "[/] Search  [enter] Open fund  [esc] Back  [r] Refresh  " + navHint
	if a.fundsSearch {
		hints = "[enter] Done  [esc] Clear search"
	}
	return a.renderFrame("Funds", b.String(), hints)
}

func (a *App) renderFundDetail() string {
	f := a.fundDetail
	var b strings.Builder

	fmt.Fprintf(&b, "Sponsor: %s   Status: %s\n", f.Sponsor, f.Status)
	fmt.Fprintf(&b, "Strategy: %s   Geography: %s   Asset Types: %s\n",
		f.Strategy, f.TargetGeography, f.TargetAssetTypes)
	fmt.Fprintf(&b, "Fund Size: %s   Target IRR: %s   Target Multiple: %s\n",
		f.FundSize, f.TargetIRR, f.TargetMultiple)
	fmt.Fprintf(&b, "Preferred Return: %s   GP Commitment: %s\n",
		f.PreferredReturn, f.GPCommitment)

	b.WriteString("\nAssociated Deals\n")
	if len(f.Deals) == 0 {
		b.WriteString("  No deals associated with this fund.\n")
	}
	for i, d := range f.Deals {
		marker := " "
		if i == a.detailCursor {
			marker = "▶"
		}
		fmt.Fprintf(&b, "%s %-28s %-18s %-12s %s\n",
			marker, clip(d.Name, 28), clip(d.Market, 18), d.Stage, d.LastUpdated)
	}
	return a.renderFrame("Fund — "+f.Name, b.String(),
		"[enter] Open deal  [s] Sponsor  [esc] Funds  "+navHint)
}

func (a *App) renderDealDetail() string {
	d := a.dealDetail
	var b strings.Builder

	fmt.Fprintf(&b, "Stage: %s   Sponsor: %s   Market: %s   Strategy: %s\n",
		d.Stage, d.Sponsor, d.Market, d.Strategy)
	fmt.Fprintf(&b, "Units: %s   SF: %s   Year Built: %s   Received: %s\n",
		d.Units, d.SF, d.YearBuilt, d.Received)
	if d.Address != "N/A" {
		fmt.Fprintf(&b, "Address: %s\n", d.Address)
	}
	fmt.Fprintf(&b, "\n%s\n", d.BusinessPlan)

	b.WriteString("\nCapitalization\n")
	fmt.Fprintf(&b, "  Total Project Cost   %12s\n", d.TotalProjectCost)
	fmt.Fprintf(&b, "  Acquisition Price    %12s\n", d.AcquisitionPrice)
	fmt.Fprintf(&b, "  Hard Costs           %12s\n", d.HardCosts)
	fmt.Fprintf(&b, "  Soft Costs           %12s\n", d.SoftCosts)
	fmt.Fprintf(&b, "  Loan Amount          %12s\n", d.LoanAmount)
	fmt.Fprintf(&b, "  LP Equity Required   %12s\n", d.LPEquityRequired)

	b.WriteString("\nReturns\n")
	fmt.Fprintf(&b, "  Projected IRR        %12s\n", d.ProjectedIRR)
	fmt.Fprintf(&b, "  Equity Multiple      %12s\n", d.EquityMultiple)

	b.WriteString("\nSponsor\n")
	fmt.Fprintf(&b, "  %s", d.Sponsor)
	if d.SponsorHQ != "N/A" {
		fmt.Fprintf(&b, " — %s", d.SponsorHQ)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", d.SponsorDescription)

	b.WriteString("\nDocuments\n")
	if len(d.Documents) == 0 {
		b.WriteString("  No documents uploaded.\n")
	}
	for _, doc := range d.Documents {
		fmt.Fprintf(&b, "  %-36s %10s  %s\n", clip(doc.Name, 36), doc.Size, doc.Date)
	}

	return a.renderFrame("Deal — "+d.Name, b.String(),
		"[s] Sponsor  [u] Upload document  [esc] Back  "+navHint)
}

func (a *App) renderPortfolio() string {
	// committed-asset tracking is not exposed by the backend yet
	body := "Committed assets will appear here once asset-management\n" +
		"endpoints land. Committed deals live under the Pipeline tab.\n"
	return a.renderFrame("Portfolio", body, navHint)
}

func (a *App) renderUpload() string {
	var b strings.Builder
	if a.uploadDealID != "" {
		fmt.Fprintf(&b, "Attaching to deal %s\n\n", a.uploadDealID)
	}

	switch a.uploadStage {
	case upload.StageUploading:
		b.WriteString("Uploading document...\n")
	case upload.StageProcessing:
		b.WriteString("Processing document... This may take a minute.\n")
	case upload.StageExtracting:
		b.WriteString("Extracting deal data with AI...\n")
	case upload.StageSuccess:
		b.WriteString("Extraction complete.\n")
		if res := a.uploadResult; res != nil {
			fmt.Fprintf(&b, "Classified as: %s\n", res.Extraction.Classification)
			b.WriteString(renderExtracted(res.Extraction.ExtractedData))
			if res.Extraction.PopulatedRecords.DealID != nil {
				b.WriteString("A deal record was created.\n\n[enter] View deal  [u] Upload another  [esc] Dashboard")
			} else if res.Extraction.PopulatedRecords.FundID != nil {
				b.WriteString("A fund record was created.\n\n[enter] View fund  [u] Upload another  [esc] Dashboard")
			} else {
				b.WriteString("\n[enter] Dashboard  [u] Upload another  [esc] Dashboard")
			}
		}
	case upload.StageError:
		b.WriteString(errorStyle.Render("Upload failed: "+a.uploadErr) + "\n")
		b.WriteString("[enter] Try again  [esc] Dashboard")
	default:
		fmt.Fprintf(&b, "PDF path: %s▌\n", a.uploadPath)
		b.WriteString("Type the path to a pitch deck PDF and press Enter.\n")
		b.WriteString("[enter] Upload  [esc] Back")
	}

	hints := ""
	switch a.uploadStage {
	case upload.StageUploading, upload.StageProcessing, upload.StageExtracting:
		hints = "[esc] Cancel"
	}
	out := titleStyle.Render("Upload Pitch Deck") + "\n" + b.String()
	if hints != "" {
		out += "\n" + dimStyle.Render(hints)
	}
	return out
}

// renderExtracted lists the AI-extracted field bag for whichever
// classification came back, N/A where the model left a field blank.
func renderExtracted(data api.ExtractedData) string {
	var b strings.Builder
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}

	if d := data.Deal; d != nil {
		fmt.Fprintf(&b, "  Deal Name     %s\n", orNA(d.DealName))
		fmt.Fprintf(&b, "  Market        %s, %s\n", orNA(d.MSA), orNA(d.State))
		fmt.Fprintf(&b, "  Asset Type    %s\n", orNA(d.AssetType))
		fmt.Fprintf(&b, "  Strategy      %s\n", orNA(d.StrategyType))
		units := "N/A"
		if d.NumUnits != nil {
			units = fmt.Sprintf("%d", *d.NumUnits)
		}
		fmt.Fprintf(&b, "  Units         %s\n", units)
	}
	if u := data.Underwriting; u != nil {
		fmt.Fprintf(&b, "  Project Cost  %s\n", format.CurrencyOrNA(u.TotalProjectCost))
		fmt.Fprintf(&b, "  Equity Req.   %s\n", format.CurrencyOrNA(u.EquityRequired))
		fmt.Fprintf(&b, "  Levered IRR   %s\n", format.PercentOrNA(u.LeveredIRR))
		fmt.Fprintf(&b, "  Eq. Multiple  %s\n", format.MultipleOrNA(u.EquityMultiple))
	}
	if f := data.Fund; f != nil {
		fmt.Fprintf(&b, "  Fund Name     %s\n", orNA(f.Name))
		fmt.Fprintf(&b, "  Strategy      %s\n", orNA(f.Strategy))
		fmt.Fprintf(&b, "  Geography     %s\n", orNA(f.TargetGeography))
		fmt.Fprintf(&b, "  Fund Size     %s\n", format.CurrencyOrNA(f.FundSize))
		fmt.Fprintf(&b, "  Target IRR    %s\n", format.PercentOrNA(f.TargetIRR))
		fmt.Fprintf(&b, "  Pref. Return  %s\n", format.PercentOrNA(f.PreferredReturn))
	}
	if op := data.Operator; op != nil {
		fmt.Fprintf(&b, "  Sponsor       %s\n", orNA(op.Name))
	}
	return b.String()
}

func (a *App) renderModal() string {
	var title string
	switch a.modal {
	case modalStage:
		title = "Filter by stage"
	case modalMarket:
		title = "Filter by market"
	case modalStrategy:
		title = "Filter by strategy"
	case modalEquity:
		title = "Filter by equity required"
	default:
		return ""
	}

	selected := map[string]bool{}
	for _, v := range a.modalSelected() {
		selected[v] = true
	}

	out := titleStyle.Render(title) + "\n"
	options := a.modalOptions()
	if len(options) == 0 {
		out += "(no options in the current view)\n"
	}
	for i, opt := range options {
		marker := " "
		if i == a.modalCursor {
			marker = "▶"
		}
		check := "[ ]"
		if selected[opt] {
			check = "[x]"
		}
		out += fmt.Sprintf("%s %s %s\n", marker, check, opt)
	}
	out += "[enter] Toggle  [esc] Close"
	return out
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
