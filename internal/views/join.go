// Package views turns raw API collections into display-ready view models:
// foreign-key joins, derived metrics, and the pipeline filter/sort engine.
package views

import (
	"strings"

	"github.com/builderos/builderos/internal/api"
)

// Lookup is the in-memory join layer over fetched collections. It is built
// once per fetch cycle and queried by id, so join logic stays testable apart
// from the orchestration that filled it.
type Lookup struct {
	operators    map[string]api.Operator
	underwriting map[string]api.Underwriting // keyed by deal_id (1:1)
}

// NewLookup indexes operators by id and underwriting rows by deal id.
func NewLookup(operators []api.Operator, underwriting []api.Underwriting) *Lookup {
	l := &Lookup{
		operators:    make(map[string]api.Operator, len(operators)),
		underwriting: make(map[string]api.Underwriting, len(underwriting)),
	}
	for _, op := range operators {
		l.operators[op.ID] = op
	}
	for _, u := range underwriting {
		l.underwriting[u.DealID] = u
	}
	return l
}

// Operator resolves an operator by id; nil when absent.
func (l *Lookup) Operator(id string) *api.Operator {
	if op, ok := l.operators[id]; ok {
		return &op
	}
	return nil
}

// UnderwritingFor resolves the underwriting row for a deal; nil when absent.
func (l *Lookup) UnderwritingFor(dealID string) *api.Underwriting {
	if u, ok := l.underwriting[dealID]; ok {
		return &u
	}
	return nil
}

// OperatorName resolves a display name, defaulting to "Unknown Sponsor".
func (l *Lookup) OperatorName(id string) string {
	if op := l.Operator(id); op != nil {
		return op.Name
	}
	return "Unknown Sponsor"
}

// market renders a deal's market label: "MSA-or-submarket, State" with
// missing parts dropped, "Unknown" when nothing is set.
func market(d api.Deal) string {
	var parts []string
	if d.MSA != nil && *d.MSA != "" {
		parts = append(parts, *d.MSA)
	} else if d.Submarket != nil && *d.Submarket != "" {
		parts = append(parts, *d.Submarket)
	}
	if d.State != nil && *d.State != "" {
		parts = append(parts, *d.State)
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, ", ")
}

func strOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}

func floatOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func status(d api.Deal) string {
	if d.Status == nil {
		return ""
	}
	return *d.Status
}
