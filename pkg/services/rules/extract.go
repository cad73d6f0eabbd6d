package rules

import "github.com/de-tools/risk-flags/pkg/models/domain"

// Line item names as they appear in uploaded statements.
const (
	ItemNetRevenue           = "Net Revenue"
	ItemLongTermBorrowings   = "Long Term Borrowings"
	ItemShortTermBorrowings  = "Short Term Borrowings"
	ItemProfitBeforeInterest = "Profit Before Interest and Tax"
	ItemDepreciation         = "Depreciation"
	ItemInterestExpenses     = "Interest Expenses"
)

// SelectStatementIndex returns the index of the first standalone statement,
// falling back to 0. An empty document also yields 0; extractors treat the
// missing record as missing data.
func SelectStatementIndex(doc *domain.FinancialStatementSet) int {
	if doc == nil {
		return 0
	}
	for i, st := range doc.Financials {
		if st.Nature == domain.NatureStandalone {
			return i
		}
	}
	return 0
}

// ISCRInputs are the profit and loss figures needed for the coverage ratio.
type ISCRInputs struct {
	ProfitBeforeInterestAndTax float64
	Depreciation               float64
	InterestExpense            float64
}

// Ratio is (PBIT + depreciation + 1) / (interest + 1). An interest expense
// of exactly -1 yields 0.
func (in ISCRInputs) Ratio() float64 {
	denominator := in.InterestExpense + 1
	if denominator == 0 {
		return 0
	}
	return (in.ProfitBeforeInterestAndTax + in.Depreciation + 1) / denominator
}

func pnl(doc *domain.FinancialStatementSet, idx int) *domain.Section {
	st, ok := doc.Statement(idx)
	if !ok {
		return nil
	}
	return st.PnL
}

func bs(doc *domain.FinancialStatementSet, idx int) *domain.Section {
	st, ok := doc.Statement(idx)
	if !ok {
		return nil
	}
	return st.BS
}

func lookupRevenue(doc *domain.FinancialStatementSet, idx int) (float64, bool) {
	return pnl(doc, idx).Lookup(ItemNetRevenue)
}

// TotalRevenue returns Net Revenue of the statement at idx, or 0 when it
// cannot be found.
func TotalRevenue(doc *domain.FinancialStatementSet, idx int) float64 {
	revenue, ok := lookupRevenue(doc, idx)
	if !ok {
		return 0
	}
	return revenue
}

// TotalBorrowing sums long and short term borrowings of the statement at idx.
// Items without a numeric value are skipped.
func TotalBorrowing(doc *domain.FinancialStatementSet, idx int) float64 {
	section := bs(doc, idx)
	if section == nil {
		return 0
	}

	var total float64
	for _, item := range section.LineItems {
		if item.Name != ItemLongTermBorrowings && item.Name != ItemShortTermBorrowings {
			continue
		}
		if v, ok := item.Value.Float64(); ok {
			total += v
		}
	}
	return total
}

// InterestCoverageInputs looks up all three coverage inputs. It reports false
// if any of them is missing.
func InterestCoverageInputs(doc *domain.FinancialStatementSet, idx int) (ISCRInputs, bool) {
	section := pnl(doc, idx)

	profit, ok := section.Lookup(ItemProfitBeforeInterest)
	if !ok {
		return ISCRInputs{}, false
	}
	depreciation, ok := section.Lookup(ItemDepreciation)
	if !ok {
		return ISCRInputs{}, false
	}
	interest, ok := section.Lookup(ItemInterestExpenses)
	if !ok {
		return ISCRInputs{}, false
	}

	return ISCRInputs{
		ProfitBeforeInterestAndTax: profit,
		Depreciation:               depreciation,
		InterestExpense:            interest,
	}, true
}

// ISCR returns the interest service coverage ratio, or 0 when any input is
// missing.
func ISCR(doc *domain.FinancialStatementSet, idx int) float64 {
	in, ok := InterestCoverageInputs(doc, idx)
	if !ok {
		return 0
	}
	return in.Ratio()
}
