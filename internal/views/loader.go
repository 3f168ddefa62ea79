package views

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/builderos/builderos/internal/api"
)

// Loader orchestrates the per-view fetch cycles. Independent fetches run
// concurrently and are combined only after all settle; dependent fetches
// sequence after their prerequisite. A required fetch failing fails the view;
// optional joins degrade to nil instead.
type Loader struct {
	api *api.Client
	log *zap.Logger
}

// NewLoader wires a Loader over the API client.
func NewLoader(c *api.Client, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{api: c, log: log}
}

// core fetches the three collections most views join over.
func (l *Loader) core(ctx context.Context) ([]api.Deal, []api.Operator, []api.Underwriting, error) {
	var (
		deals     []api.Deal
		operators []api.Operator
		uw        []api.Underwriting
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deals, err = l.api.ListDeals(ctx, nil)
		return err
	})
	g.Go(func() (err error) {
		operators, err = l.api.ListOperators(ctx)
		return err
	})
	g.Go(func() (err error) {
		uw, err = l.api.ListUnderwriting(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return deals, operators, uw, nil
}

// Pipeline loads and joins the full pipeline table.
func (l *Loader) Pipeline(ctx context.Context, now time.Time) ([]PipelineDeal, error) {
	deals, operators, uw, err := l.core(ctx)
	if err != nil {
		l.log.Warn("pipeline load failed", zap.Error(err))
		return nil, err
	}
	return PipelineDeals(deals, NewLookup(operators, uw), now), nil
}

// Dashboard loads and derives the dashboard view model.
func (l *Loader) Dashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	deals, operators, uw, err := l.core(ctx)
	if err != nil {
		l.log.Warn("dashboard load failed", zap.Error(err))
		return Dashboard{}, err
	}
	return BuildDashboard(deals, NewLookup(operators, uw), now), nil
}

// Sponsors loads the sponsor roster.
func (l *Loader) Sponsors(ctx context.Context, now time.Time) ([]Sponsor, error) {
	deals, operators, uw, err := l.core(ctx)
	if err != nil {
		l.log.Warn("sponsors load failed", zap.Error(err))
		return nil, err
	}
	return BuildSponsors(operators, deals, NewLookup(operators, uw), now), nil
}

// Sponsor loads one sponsor's page. The operator fetch is required; the deal
// and underwriting collections join against it.
func (l *Loader) Sponsor(ctx context.Context, operatorID string, now time.Time) (SponsorDetail, error) {
	var (
		op    api.Operator
		deals []api.Deal
		uw    []api.Underwriting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		op, err = l.api.GetOperator(gctx, operatorID)
		return err
	})
	g.Go(func() (err error) {
		deals, err = l.api.ListDeals(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		uw, err = l.api.ListUnderwriting(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		l.log.Warn("sponsor load failed", zap.String("operator_id", operatorID), zap.Error(err))
		return SponsorDetail{}, err
	}
	return BuildSponsorDetail(op, deals, NewLookup(nil, uw), now), nil
}

// Deal loads one deal's page. Only the deal itself is required; documents,
// underwriting, and the operator (dependent on the deal's operator_id) are
// optional and degrade to empty.
func (l *Loader) Deal(ctx context.Context, dealID string) (DealDetail, error) {
	var (
		deal api.Deal
		docs []api.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deal, err = l.api.GetDeal(gctx, dealID)
		return err
	})
	g.Go(func() error {
		d, err := l.api.DealDocuments(gctx, dealID)
		if err != nil {
			l.log.Debug("deal documents unavailable", zap.String("deal_id", dealID), zap.Error(err))
			return nil
		}
		docs = d
		return nil
	})
	if err := g.Wait(); err != nil {
		l.log.Warn("deal load failed", zap.String("deal_id", dealID), zap.Error(err))
		return DealDetail{}, err
	}

	// Secondary joins run after the deal resolves, concurrently with each
	// other, and never fail the view.
	var (
		operator *api.Operator
		uw       *api.Underwriting
	)
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		u, err := l.api.UnderwritingByDeal(g2ctx, dealID)
		if err != nil {
			l.log.Debug("underwriting unavailable", zap.String("deal_id", dealID), zap.Error(err))
			return nil
		}
		uw = &u
		return nil
	})
	if deal.OperatorID != "" {
		operatorID := deal.OperatorID
		g2.Go(func() error {
			op, err := l.api.GetOperator(g2ctx, operatorID)
			if err != nil {
				l.log.Debug("operator unavailable", zap.String("operator_id", operatorID), zap.Error(err))
				return nil
			}
			operator = &op
			return nil
		})
	}
	_ = g2.Wait()

	return BuildDealDetail(deal, operator, uw, docs), nil
}

// Funds loads the funds table.
func (l *Loader) Funds(ctx context.Context) ([]FundRow, error) {
	var (
		funds     []api.Fund
		operators []api.Operator
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		funds, err = l.api.ListFunds(gctx)
		return err
	})
	g.Go(func() (err error) {
		operators, err = l.api.ListOperators(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		l.log.Warn("funds load failed", zap.Error(err))
		return nil, err
	}
	return BuildFundRows(funds, NewLookup(operators, nil)), nil
}

// Fund loads one fund's page. The fund is required; its operator and deal
// list are dependent fetches that degrade to empty on failure.
func (l *Loader) Fund(ctx context.Context, fundID string, now time.Time) (FundDetail, error) {
	fund, err := l.api.GetFund(ctx, fundID)
	if err != nil {
		l.log.Warn("fund load failed", zap.String("fund_id", fundID), zap.Error(err))
		return FundDetail{}, err
	}

	var (
		operator *api.Operator
		deals    []api.Deal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		op, opErr := l.api.GetOperator(gctx, fund.OperatorID)
		if opErr != nil {
			l.log.Debug("fund operator unavailable", zap.String("fund_id", fundID), zap.Error(opErr))
			return nil
		}
		operator = &op
		return nil
	})
	g.Go(func() error {
		d, dErr := l.api.FundDeals(gctx, fundID)
		if dErr != nil {
			l.log.Debug("fund deals unavailable", zap.String("fund_id", fundID), zap.Error(dErr))
			return nil
		}
		deals = d
		return nil
	})
	_ = g.Wait()

	return BuildFundDetail(fund, operator, deals, now), nil
}
