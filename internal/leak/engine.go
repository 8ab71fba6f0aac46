package leak

import (
	"maps"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/exposure"
	"github.com/sells-group/leak-calc/internal/model"
	"github.com/sells-group/leak-calc/internal/normalize"
	"github.com/sells-group/leak-calc/internal/reactivation"
)

// Reactivation display labels.
const (
	ReactivationLabel      = "Database Reactivation"
	ReactivationConstraint = "Untapped contact database"
)

// Engine evaluates business inputs against a fixed assumption set. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	assumptions assumptions.Set
}

// NewEngine creates an Engine with the given assumptions.
func NewEngine(a assumptions.Set) *Engine {
	return &Engine{assumptions: a}
}

var defaultEngine = NewEngine(assumptions.Default())

// Calculate evaluates a business input with the default assumptions.
func Calculate(in model.BusinessInput) *model.CalculationResult {
	return defaultEngine.Calculate(in)
}

// Assumptions returns the engine's assumption set.
func (e *Engine) Assumptions() assumptions.Set {
	return e.assumptions
}

// Calculate runs the full pipeline: normalize, compute every catalog leak and
// the reactivation model, rank, and assemble totals.
func (e *Engine) Calculate(in model.BusinessInput) *model.CalculationResult {
	n := normalize.Normalize(in, e.assumptions)

	operational := computeCatalog(n, e.assumptions)
	ranked := Rank(operational, e.assumptions)
	opportunity := reactivation.Calculate(n, e.assumptions)

	result := Assemble(operational, ranked, opportunity, e.assumptions)

	zap.L().Debug("leak: calculation complete",
		zap.String("business", in.BusinessName),
		zap.Int("leaks", len(result.Leaks)),
		zap.Float64("total_monthly_loss", result.TotalMonthlyLoss),
		zap.Float64("reactivation_monthly_loss", opportunity.MonthlyLoss),
	)
	return result
}

// Assemble merges the ranked operational leaks with the reactivation
// opportunity and computes totals. Every severity is re-tiered against the
// combined monthly total so one list never mixes denominators. The primary
// constraint is the rank-1 operational leak; reactivation stays on its own
// track. The ranked slice is not modified.
func Assemble(operational, ranked []model.Leak, opportunity model.ReactivationLeak, a assumptions.Set) *model.CalculationResult {
	total := opportunity.MonthlyLoss
	for _, l := range ranked {
		total += l.MonthlyLoss
	}

	leaks := make([]model.Leak, len(ranked))
	for i, l := range ranked {
		l.Details = maps.Clone(l.Details)
		l.Severity = ClassifySeverity(l.MonthlyLoss/total, a)
		leaks[i] = l
	}

	result := &model.CalculationResult{
		Leaks:                   leaks,
		OperationalLeaks:        operational,
		ReactivationOpportunity: opportunity,
		TotalMonthlyLoss:        total,
		TotalAnnualLoss:         total * exposure.MonthsPerYear,
	}
	if len(leaks) > 0 {
		primary := leaks[0]
		primary.Details = maps.Clone(primary.Details)
		result.PrimaryConstraint = &primary
	}

	all := make([]model.Leak, 0, len(leaks)+1)
	for _, l := range leaks {
		l.Details = maps.Clone(l.Details)
		all = append(all, l)
	}
	if opportunity.MonthlyLoss > 0 {
		r := reactivationLeak(opportunity, a)
		r.Severity = ClassifySeverity(r.MonthlyLoss/total, a)
		all = append(all, r)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].MonthlyLoss > all[j].MonthlyLoss
	})
	result.AllLeaks = all

	return result
}

// reactivationLeak renders the reactivation opportunity as a display leak.
// It carries rank 0 because it is not part of the operational ranking.
func reactivationLeak(o model.ReactivationLeak, a assumptions.Set) model.Leak {
	details := map[string]any{
		"upside":          o.Upside,
		"quick_win_score": o.QuickWinScore,
		"expected_roi":    o.ExpectedROI,
		"payback_period":  o.PaybackPeriod,
	}
	if o.DormantLeads != nil {
		details["dormant_monthly_loss"] = o.DormantLeads.MonthlyLoss
	}
	if o.PastCustomers != nil {
		details["past_customer_monthly_loss"] = o.PastCustomers.MonthlyLoss
	}
	return newLeak(model.LeakReactivation, ReactivationLabel, ReactivationConstraint, o.MonthlyLoss, a.ConfidenceBand, details)
}
