package leak

import (
	"maps"
	"sort"

	"github.com/sells-group/leak-calc/internal/assumptions"
	"github.com/sells-group/leak-calc/internal/model"
)

// Rank returns the leaks with positive monthly loss sorted by descending loss,
// with dense ranks starting at 1 and a severity tier per leak. Ties keep
// catalog order. The input slice is not modified.
func Rank(leaks []model.Leak, a assumptions.Set) []model.Leak {
	ranked := make([]model.Leak, 0, len(leaks))
	var total float64
	for _, l := range leaks {
		if l.MonthlyLoss > 0 {
			l.Details = maps.Clone(l.Details)
			ranked = append(ranked, l)
			total += l.MonthlyLoss
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MonthlyLoss > ranked[j].MonthlyLoss
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Severity = ClassifySeverity(ranked[i].MonthlyLoss/total, a)
		ranked[i].QuickWin = IsQuickWin(ranked[i].Type)
	}
	return ranked
}

// ClassifySeverity maps a leak's share of total loss onto the four-tier scale.
func ClassifySeverity(share float64, a assumptions.Set) model.Severity {
	switch {
	case share >= a.CriticalShare:
		return model.SeverityCritical
	case share >= a.HighShare:
		return model.SeverityHigh
	case share >= a.MediumShare:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
