package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/builderos/builderos/internal/upload"
	"github.com/builderos/builderos/internal/views"
)

// App ties together screens.
type App struct {
	ctx      context.Context
	loader   *views.Loader
	workflow *upload.Workflow
	log      *zap.Logger

	state     appState
	backState appState
	status    string
	width     int

	// in-flight fetch; responses carrying a stale id are dropped
	fetchID string
	loading bool
	loadErr error

	// pipeline
	pipeline   []views.PipelineDeal
	filtered   []views.PipelineDeal
	filter     views.FilterState
	facets     views.FacetOptions
	tabCounts  map[views.Tab]int
	suggestion string
	pipeCursor int
	searchMode bool

	modal       modalState
	modalCursor int

	// other screens
	dashboard     views.Dashboard
	recentCursor  int
	sponsors      []views.Sponsor
	sponsorCursor int
	sponsorDetail views.SponsorDetail
	detailCursor  int
	funds         []views.FundRow
	fundsQuery    string
	fundsSearch   bool
	fundCursor    int
	fundDetail    views.FundDetail
	dealDetail    views.DealDetail

	// upload flow
	uploadPath   string
	uploadDealID string
	uploadStage  upload.Stage
	uploadErr    string
	uploadResult *upload.Result
	uploadCancel context.CancelFunc
	uploadStages chan upload.Stage
}

type appState string

const (
	viewDashboard     appState = "dashboard"
	viewPipeline      appState = "pipeline"
	viewSponsors      appState = "sponsors"
	viewSponsorDetail appState = "sponsorDetail"
	viewFunds         appState = "funds"
	viewFundDetail    appState = "fundDetail"
	viewDealDetail    appState = "dealDetail"
	viewPortfolio     appState = "portfolio"
	viewUpload        appState = "upload"
)

type modalState string

const (
	modalNone     modalState = ""
	modalStage    modalState = "stage"
	modalMarket   modalState = "market"
	modalStrategy modalState = "strategy"
	modalEquity   modalState = "equity"
)

func New(ctx context.Context, loader *views.Loader, workflow *upload.Workflow, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		ctx:         ctx,
		loader:      loader,
		workflow:    workflow,
		log:         log,
		state:       viewDashboard,
		filter:      views.FilterState{Tab: views.TabAll, Sort: views.SortRecent},
		uploadStage: upload.StageIdle,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadDashboard()
}

// commands

func (a *App) beginFetch() string {
	id := uuid.NewString()
	a.fetchID = id
	a.loading = true
	a.loadErr = nil
	return id
}

func (a *App) loadDashboard() tea.Cmd {
	id := a.beginFetch()
	return func() tea.Msg {
		d, err := a.loader.Dashboard(a.ctx, time.Now().UTC())
		if err != nil {
			return errMsg{id: id, err: err}
		}
		return dashboardMsg{id: id, dashboard: d}
	}
}

func (a *App) loadPipeline() tea.Cmd {
	id := a.beginFetch()
	return func() tea.Msg {
		rows, err := a.loader.Pipeline(a.ctx, time.Now().UTC())
		if err != nil {
			return errMsg{id: id, err: err}
		}
		return pipelineMsg{id: id, rows: rows}
	}
}

func (a *App) loadSponsors() tea.Cmd {
	id := a.beginFetch()
	return func() tea.Msg {
		rows, err := a.loader.Sponsors(a.ctx, time.Now().UTC())
		if err != nil {
			return errMsg{id: id, err: err}
		}
		return sponsorsMsg{id: id, rows: rows}
	}
}

func (a *App) loadSponsor(operatorID string) tea.Cmd {
	id := a.beginFetch()
	return func() tea.Msg {
		detail, err := a.loader.Sponsor(a.ctx, operatorID, time.Now().UTC())
		if err != nil {
			return errMsg{id: id, err: err}
		}
		return sponsorMsg{id: id, detail: detail}
	}
}

func (a *App) loadFunds() tea.Cmd {
	id := a.beginFetch()
	return func() tea.Msg {
		rows, err := a.loader.Funds(a.ctx)
		if err != nil {
			return errMsg{id: id, err: err}
		}
		return fundsMsg{id: id, rows: rows}
	}
}

func (a *App) loadFund(fundID string) tea.Cmd {
	id := a.beginFetch()
	return func() tea.Msg {
		detail, err := a.loader.Fund(a.ctx, fundID, time.Now().UTC())
		if err != nil {
			return errMsg{id: id, err: err}
		}
		return fundMsg{id: id, detail: detail}
	}
}

func (a *App) loadDeal(dealID string) tea.Cmd {
	id := a.beginFetch()
	return func() tea.Msg {
		detail, err := a.loader.Deal(a.ctx, dealID)
		if err != nil {
			return errMsg{id: id, err: err}
		}
		return dealMsg{id: id, detail: detail}
	}
}

func (a *App) startUpload() tea.Cmd {
	path := strings.TrimSpace(a.uploadPath)
	if path == "" {
		a.status = "enter a PDF path"
		return nil
	}
	ctx, cancel := context.WithCancel(a.ctx)
	a.uploadCancel = cancel
	a.uploadErr = ""
	a.uploadResult = nil
	a.uploadStage = upload.StageUploading

	stages := make(chan upload.Stage, 4)
	a.uploadStages = stages
	dealID := a.uploadDealID
	run := func() tea.Msg {
		res, err := a.workflow.Run(ctx, path, dealID, func(s upload.Stage) {
			stages <- s
		})
		close(stages)
		return uploadDoneMsg{ch: stages, result: res, err: err}
	}
	return tea.Batch(run, waitStage(stages))
}

func waitStage(ch chan upload.Stage) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return uploadStageMsg{stage: s, ch: ch}
	}
}

// reloadCurrent re-runs whatever fetch backs the current screen.
func (a *App) reloadCurrent() tea.Cmd {
	switch a.state {
	case viewPipeline:
		return a.loadPipeline()
	case viewSponsors:
		return a.loadSponsors()
	case viewSponsorDetail:
		return a.loadSponsor(a.sponsorDetail.ID)
	case viewFunds:
		return a.loadFunds()
	case viewFundDetail:
		return a.loadFund(a.fundDetail.ID)
	case viewDealDetail:
		return a.loadDeal(a.dealDetail.ID)
	case viewPortfolio, viewUpload:
		return nil
	default:
		return a.loadDashboard()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case dashboardMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.dashboard = m.dashboard
		if a.recentCursor >= len(a.dashboard.RecentDeals) {
			a.recentCursor = 0
		}
	case pipelineMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.pipeline = m.rows
		a.applyFilters()
	case sponsorsMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.sponsors = m.rows
		if a.sponsorCursor >= len(a.sponsors) {
			a.sponsorCursor = 0
		}
	case sponsorMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.sponsorDetail = m.detail
		a.detailCursor = 0
	case fundsMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.funds = m.rows
		if a.fundCursor >= len(a.funds) {
			a.fundCursor = 0
		}
	case fundMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.fundDetail = m.detail
		a.detailCursor = 0
	case dealMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.dealDetail = m.detail
	case errMsg:
		if m.id != a.fetchID {
			return a, nil
		}
		a.loading = false
		a.loadErr = m.err
		a.log.Debug("fetch failed", zap.Error(m.err))
	case uploadStageMsg:
		if m.ch != a.uploadStages {
			return a, nil
		}
		switch a.uploadStage {
		case upload.StageUploading, upload.StageProcessing, upload.StageExtracting:
			a.uploadStage = m.stage
			return a, waitStage(m.ch)
		}
		// the run already reached a terminal stage; a buffered stage
		// message must not move it backwards
		return a, nil
	case uploadDoneMsg:
		if m.ch != a.uploadStages {
			return a, nil
		}
		a.uploadStages = nil
		if a.uploadCancel != nil {
			a.uploadCancel()
			a.uploadCancel = nil
		}
		if m.err != nil {
			a.uploadStage = upload.StageError
			if errors.Is(m.err, context.Canceled) {
				a.uploadErr = "upload cancelled"
			} else {
				a.uploadErr = m.err.Error()
				a.log.Warn("upload failed", zap.Error(m.err))
			}
			return a, nil
		}
		a.uploadStage = upload.StageSuccess
		res := m.result
		a.uploadResult = &res
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal != modalNone {
		return a.handleModalKey(m)
	}
	if a.state == viewUpload {
		return a.handleUploadKey(m)
	}
	if a.searchMode && a.state == viewPipeline {
		return a.handleSearchKey(m)
	}
	if a.fundsSearch && a.state == viewFunds {
		return a.handleFundsSearchKey(m)
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "1":
		a.state = viewDashboard
		a.status = ""
		return a, a.loadDashboard()
	case "2":
		a.state = viewPipeline
		a.status = ""
		return a, a.loadPipeline()
	case "3":
		a.state = viewSponsors
		a.status = ""
		return a, a.loadSponsors()
	case "4":
		a.state = viewFunds
		a.status = ""
		return a, a.loadFunds()
	case "5":
		a.state = viewPortfolio
		a.status = ""
		return a, nil
	case "6":
		a.openUpload("")
		return a, nil
	case "r":
		return a, a.reloadCurrent()
	}

	if a.loading {
		return a, nil
	}

	switch a.state {
	case viewPipeline:
		return a.handlePipelineKey(m)
	case viewDashboard:
		return a.handleDashboardKey(m)
	case viewSponsors:
		return a.handleSponsorsKey(m)
	case viewSponsorDetail:
		return a.handleSponsorDetailKey(m)
	case viewFunds:
		return a.handleFundsKey(m)
	case viewFundDetail:
		return a.handleFundDetailKey(m)
	case viewDealDetail:
		return a.handleDealDetailKey(m)
	}
	return a, nil
}

func (a *App) handleDashboardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "up", "k":
		if a.recentCursor > 0 {
			a.recentCursor--
		}
	case "down", "j":
		if a.recentCursor < len(a.dashboard.RecentDeals)-1 {
			a.recentCursor++
		}
	case "enter":
		if len(a.dashboard.RecentDeals) > 0 {
			deal := a.dashboard.RecentDeals[a.recentCursor]
			a.backState = viewDashboard
			a.state = viewDealDetail
			return a, a.loadDeal(deal.ID)
		}
	}
	return a, nil
}

func (a *App) handlePipelineKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.state = viewDashboard
		return a, a.loadDashboard()
	case "/":
		a.searchMode = true
	case "tab":
		a.filter.Tab = nextTab(a.filter.Tab)
		a.applyFilters()
	case "g":
		a.openModal(modalStage)
	case "m":
		a.openModal(modalMarket)
	case "y":
		a.openModal(modalStrategy)
	case "e":
		a.openModal(modalEquity)
	case "o":
		a.filter.Sort = nextSort(a.filter.Sort)
		a.applyFilters()
	case "c":
		a.filter = views.FilterState{Tab: a.filter.Tab, Search: a.filter.Search, Sort: a.filter.Sort}
		a.applyFilters()
	case "up", "k":
		if a.pipeCursor > 0 {
			a.pipeCursor--
		}
	case "down", "j":
		if a.pipeCursor < len(a.filtered)-1 {
			a.pipeCursor++
		}
	case "enter":
		if len(a.filtered) > 0 {
			a.backState = viewPipeline
			a.state = viewDealDetail
			return a, a.loadDeal(a.filtered[a.pipeCursor].ID)
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.searchMode = false
		a.filter.Search = ""
		a.applyFilters()
	case tea.KeyEnter:
		a.searchMode = false
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.filter.Search) > 0 {
			a.filter.Search = a.filter.Search[:len(a.filter.Search)-1]
			a.applyFilters()
		}
	case tea.KeySpace:
		a.filter.Search += " "
		a.applyFilters()
	case tea.KeyRunes:
		a.filter.Search += string(m.Runes)
		a.applyFilters()
	}
	return a, nil
}

func (a *App) handleSponsorsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.state = viewDashboard
		return a, a.loadDashboard()
	case "up", "k":
		if a.sponsorCursor > 0 {
			a.sponsorCursor--
		}
	case "down", "j":
		if a.sponsorCursor < len(a.sponsors)-1 {
			a.sponsorCursor++
		}
	case "enter":
		if len(a.sponsors) > 0 {
			a.state = viewSponsorDetail
			return a, a.loadSponsor(a.sponsors[a.sponsorCursor].ID)
		}
	}
	return a, nil
}

func (a *App) handleSponsorDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.state = viewSponsors
		return a, a.loadSponsors()
	case "up", "k":
		if a.detailCursor > 0 {
			a.detailCursor--
		}
	case "down", "j":
		if a.detailCursor < len(a.sponsorDetail.Deals)-1 {
			a.detailCursor++
		}
	case "enter":
		if len(a.sponsorDetail.Deals) > 0 {
			a.backState = viewSponsorDetail
			a.state = viewDealDetail
			return a, a.loadDeal(a.sponsorDetail.Deals[a.detailCursor].ID)
		}
	}
	return a, nil
}

func (a *App) handleFundsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.state = viewDashboard
		return a, a.loadDashboard()
	case "/":
		a.fundsSearch = true
	case "up", "k":
		if a.fundCursor > 0 {
			a.fundCursor--
		}
	case "down", "j":
		if a.fundCursor < len(a.visibleFunds())-1 {
			a.fundCursor++
		}
	case "enter":
		rows := a.visibleFunds()
		if len(rows) > 0 {
			a.state = viewFundDetail
			return a, a.loadFund(rows[a.fundCursor].ID)
		}
	}
	return a, nil
}

func (a *App) handleFundsSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.fundsSearch = false
		a.fundsQuery = ""
	case tea.KeyEnter:
		a.fundsSearch = false
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.fundsQuery) > 0 {
			a.fundsQuery = a.fundsQuery[:len(a.fundsQuery)-1]
		}
	case tea.KeySpace:
		a.fundsQuery += " "
	case tea.KeyRunes:
		a.fundsQuery += string(m.Runes)
	}
	if a.fundCursor >= len(a.visibleFunds()) {
		a.fundCursor = 0
	}
	return a, nil
}

func (a *App) handleFundDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.state = viewFunds
		return a, a.loadFunds()
	case "up", "k":
		if a.detailCursor > 0 {
			a.detailCursor--
		}
	case "down", "j":
		if a.detailCursor < len(a.fundDetail.Deals)-1 {
			a.detailCursor++
		}
	case "enter":
		if len(a.fundDetail.Deals) > 0 {
			a.backState = viewFundDetail
			a.state = viewDealDetail
			return a, a.loadDeal(a.fundDetail.Deals[a.detailCursor].ID)
		}
	case "s":
		if a.fundDetail.SponsorID != "" {
			a.state = viewSponsorDetail
			return a, a.loadSponsor(a.fundDetail.SponsorID)
		}
	}
	return a, nil
}

func (a *App) handleDealDetailKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		back := a.backState
		if back == "" {
			back = viewPipeline
		}
		a.state = back
		switch back {
		case viewDashboard:
			return a, a.loadDashboard()
		case viewSponsorDetail:
			return a, a.loadSponsor(a.dealDetail.SponsorID)
		case viewFundDetail:
			return a, a.loadFund(a.fundDetail.ID)
		default:
			return a, a.loadPipeline()
		}
	case "s":
		if a.dealDetail.SponsorID != "" {
			a.state = viewSponsorDetail
			return a, a.loadSponsor(a.dealDetail.SponsorID)
		}
	case "u":
		a.openUpload(a.dealDetail.ID)
	}
	return a, nil
}

func (a *App) handleUploadKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.uploadStage {
	case upload.StageUploading, upload.StageProcessing, upload.StageExtracting:
		// a run is in flight; only cancellation is allowed
		if m.Type == tea.KeyEsc {
			if a.uploadCancel != nil {
				a.uploadCancel()
			}
		}
		return a, nil
	case upload.StageSuccess:
		if m.String() == "u" {
			dealID := a.uploadDealID
			a.openUpload(dealID)
			return a, nil
		}
		switch m.Type {
		case tea.KeyEsc:
			a.leaveUpload()
			return a, a.loadDashboard()
		case tea.KeyEnter:
			if a.uploadResult != nil {
				records := a.uploadResult.Extraction.PopulatedRecords
				if records.DealID != nil {
					dealID := *records.DealID
					a.leaveUpload()
					a.backState = viewPipeline
					a.state = viewDealDetail
					return a, a.loadDeal(dealID)
				}
				if records.FundID != nil {
					fundID := *records.FundID
					a.leaveUpload()
					a.state = viewFundDetail
					return a, a.loadFund(fundID)
				}
			}
			a.leaveUpload()
			return a, a.loadDashboard()
		}
		return a, nil
	case upload.StageError:
		switch m.Type {
		case tea.KeyEsc:
			a.leaveUpload()
			return a, a.loadDashboard()
		case tea.KeyEnter:
			a.uploadStage = upload.StageIdle
			a.uploadErr = ""
		}
		return a, nil
	}

	// idle: editing the path prompt
	switch m.Type {
	case tea.KeyEsc:
		a.leaveUpload()
		return a, a.loadDashboard()
	case tea.KeyEnter:
		return a, a.startUpload()
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.uploadPath) > 0 {
			a.uploadPath = a.uploadPath[:len(a.uploadPath)-1]
		}
	case tea.KeySpace:
		a.uploadPath += " "
	case tea.KeyRunes:
		a.uploadPath += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := a.modalOptions()
	switch m.String() {
	case "esc":
		a.modal = modalNone
	case "up", "k":
		if a.modalCursor > 0 {
			a.modalCursor--
		}
	case "down", "j":
		if a.modalCursor < len(options)-1 {
			a.modalCursor++
		}
	case "enter", " ":
		if a.modalCursor >= len(options) {
			return a, nil
		}
		value := options[a.modalCursor]
		switch a.modal {
		case modalStage:
			a.filter.Stages = toggle(a.filter.Stages, value)
		case modalMarket:
			a.filter.Markets = toggle(a.filter.Markets, value)
		case modalStrategy:
			a.filter.Strategies = toggle(a.filter.Strategies, value)
		case modalEquity:
			a.filter.EquityRanges = toggle(a.filter.EquityRanges, value)
		}
		a.applyFilters()
	}
	return a, nil
}

func (a *App) openModal(kind modalState) {
	a.modal = kind
	a.modalCursor = 0
}

func (a *App) modalOptions() []string {
	switch a.modal {
	case modalStage:
		return a.facets.Stages
	case modalMarket:
		return a.facets.Markets
	case modalStrategy:
		return a.facets.Strategies
	case modalEquity:
		labels := make([]string, 0, len(views.EquityRanges))
		for _, r := range views.EquityRanges {
			labels = append(labels, r.Label)
		}
		return labels
	default:
		return nil
	}
}

func (a *App) modalSelected() []string {
	switch a.modal {
	case modalStage:
		return a.filter.Stages
	case modalMarket:
		return a.filter.Markets
	case modalStrategy:
		return a.filter.Strategies
	case modalEquity:
		return a.filter.EquityRanges
	default:
		return nil
	}
}

func (a *App) openUpload(dealID string) {
	a.state = viewUpload
	a.status = ""
	a.uploadDealID = dealID
	a.uploadPath = ""
	a.uploadErr = ""
	a.uploadResult = nil
	a.uploadStage = upload.StageIdle
	a.uploadStages = nil
}

func (a *App) leaveUpload() {
	if a.uploadCancel != nil {
		a.uploadCancel()
		a.uploadCancel = nil
	}
	a.state = viewDashboard
	a.uploadStage = upload.StageIdle
	a.uploadErr = ""
	a.uploadResult = nil
	a.uploadStages = nil
}

// applyFilters re-derives the filtered rows, facet options, tab counts, and
// the zero-result suggestion from the current filter state.
func (a *App) applyFilters() {
	a.filtered = views.Apply(a.pipeline, a.filter)
	a.facets = views.Facets(a.pipeline, a.filter.Tab, a.filter.Search)
	a.tabCounts = views.TabCounts(a.pipeline)
	a.suggestion = ""
	if len(a.filtered) == 0 && strings.TrimSpace(a.filter.Search) != "" {
		a.suggestion = views.SuggestDeal(a.filter.Search, a.pipeline)
	}
	if a.pipeCursor >= len(a.filtered) {
		a.pipeCursor = 0
	}
}

func (a *App) visibleFunds() []views.FundRow {
	return views.FilterFundRows(a.funds, a.fundsQuery)
}

func nextTab(t views.Tab) views.Tab {
	switch t {
	case views.TabAll:
		return views.TabActive
	case views.TabActive:
		return views.TabCommitted
	case views.TabCommitted:
		return views.TabPassed
	default:
		return views.TabAll
	}
}

func nextSort(s views.SortKey) views.SortKey {
	switch s {
	case views.SortRecent:
		return views.SortNameAsc
	case views.SortNameAsc:
		return views.SortIRRDesc
	default:
		return views.SortRecent
	}
}

func toggle(list []string, value string) []string {
	for i, v := range list {
		if v == value {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, value)
}

// messages

type dashboardMsg struct {
	id        string
	dashboard views.Dashboard
}

type pipelineMsg struct {
	id   string
	rows []views.PipelineDeal
}

type sponsorsMsg struct {
	id   string
	rows []views.Sponsor
}

type sponsorMsg struct {
	id     string
	detail views.SponsorDetail
}

type fundsMsg struct {
	id   string
	rows []views.FundRow
}

type fundMsg struct {
	id     string
	detail views.FundDetail
}

type dealMsg struct {
	id     string
	detail views.DealDetail
}

type errMsg struct {
	id  string
	err error
}

type uploadStageMsg struct {
	stage upload.Stage
	ch    chan upload.Stage
}

type uploadDoneMsg struct {
	ch     chan upload.Stage
	result upload.Result
	err    error
}
