package rules

import (
	"fmt"

	"github.com/de-tools/risk-flags/pkg/models/domain"
)

// Indicator names. These are the keys of the evaluator output and are stable.
const (
	NameISCR               = "iscr_flag"
	NameRevenueThreshold   = "total_revenue_5cr_flag"
	NameBorrowingToRevenue = "borrowing_to_revenue_flag"
)

// Rule derives one flag from the statement at a given index.
// Implementations must be pure and never panic on malformed statements.
type Rule interface {
	Name() string
	Evaluate(doc *domain.FinancialStatementSet, idx int) domain.Indicator
}

type iscrRule struct {
	min float64
}

// NewISCRRule flags green when the interest service coverage ratio reaches the minimum.
func NewISCRRule(settings Settings) Rule {
	return &iscrRule{min: settings.ISCRMin}
}

func (r *iscrRule) Name() string { return NameISCR }

func (r *iscrRule) Evaluate(doc *domain.FinancialStatementSet, idx int) domain.Indicator {
	ind := domain.Indicator{
		Name:        NameISCR,
		Title:       "Interest Service Coverage Ratio",
		Threshold:   r.min,
		Description: fmt.Sprintf("(PBIT + depreciation + 1) / (interest + 1) >= %g", r.min),
	}

	in, ok := InterestCoverageInputs(doc, idx)
	if ok {
		ind.Value = in.Ratio()
	} else {
		ind.Note = "profit before interest and tax, depreciation or interest expenses missing"
	}

	ind.Flag = domain.FlagRed
	if ind.Value >= r.min {
		ind.Flag = domain.FlagGreen
	}
	return ind
}

type revenueRule struct {
	min float64
}

// NewRevenueThresholdRule flags green when net revenue reaches the materiality threshold.
func NewRevenueThresholdRule(settings Settings) Rule {
	return &revenueRule{min: settings.RevenueMin}
}

func (r *revenueRule) Name() string { return NameRevenueThreshold }

func (r *revenueRule) Evaluate(doc *domain.FinancialStatementSet, idx int) domain.Indicator {
	ind := domain.Indicator{
		Name:        NameRevenueThreshold,
		Title:       "Revenue above 5 crore",
		Value:       TotalRevenue(doc, idx),
		Threshold:   r.min,
		Description: fmt.Sprintf("net revenue >= %.0f", r.min),
	}
	if _, ok := lookupRevenue(doc, idx); !ok {
		ind.Note = "net revenue missing"
	}

	ind.Flag = domain.FlagRed
	if ind.Value >= r.min {
		ind.Flag = domain.FlagGreen
	}
	return ind
}

type borrowingRule struct {
	max float64
}

// NewBorrowingToRevenueRule flags green when total borrowings stay within the
// allowed share of revenue. Zero revenue cannot be judged and is flagged white.
func NewBorrowingToRevenueRule(settings Settings) Rule {
	return &borrowingRule{max: settings.BorrowingRatioMax}
}

func (r *borrowingRule) Name() string { return NameBorrowingToRevenue }

func (r *borrowingRule) Evaluate(doc *domain.FinancialStatementSet, idx int) domain.Indicator {
	ind := domain.Indicator{
		Name:        NameBorrowingToRevenue,
		Title:       "Borrowing to revenue",
		Threshold:   r.max,
		Description: fmt.Sprintf("(long + short term borrowings) / net revenue <= %g", r.max),
	}

	revenue := TotalRevenue(doc, idx)
	if revenue == 0 {
		ind.Flag = domain.FlagWhite
		ind.Note = "net revenue is zero or missing"
		return ind
	}

	ind.Value = TotalBorrowing(doc, idx) / revenue
	ind.Flag = domain.FlagAmber
	if ind.Value <= r.max {
		ind.Flag = domain.FlagGreen
	}
	return ind
}
