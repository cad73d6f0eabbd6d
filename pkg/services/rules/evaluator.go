package rules

import (
	"fmt"

	"github.com/de-tools/risk-flags/pkg/models/domain"
)

// Engine evaluates financial statement documents into risk flags
type Engine interface {
	// Evaluate returns the indicator name to flag mapping for the document
	Evaluate(doc *domain.FinancialStatementSet) map[string]domain.Flag
	// Explain returns the flags together with the figures they were derived from
	Explain(doc *domain.FinancialStatementSet) domain.Evaluation
	// Rules returns the indicator names this engine produces
	Rules() []string
}

var _ Engine = (*Evaluator)(nil)

// Evaluator runs a fixed list of rules against the selected statement.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	rules []Rule
}

func NewEvaluator(rules ...Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

// NewDefaultEvaluator builds an evaluator with the three standard indicators.
func NewDefaultEvaluator(settings Settings) *Evaluator {
	return NewEvaluator(
		NewISCRRule(settings),
		NewRevenueThresholdRule(settings),
		NewBorrowingToRevenueRule(settings),
	)
}

// NewEvaluatorFromRegistry builds an evaluator from the named rules. An empty
// name list selects every registered rule.
func NewEvaluatorFromRegistry(reg Registry, settings Settings, names ...string) (*Evaluator, error) {
	if len(names) == 0 {
		names = reg.ListRules()
	}

	rules := make([]Rule, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("rule %q requested more than once", name)
		}
		seen[name] = struct{}{}

		rule, err := reg.Create(name, settings)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return NewEvaluator(rules...), nil
}

func (e *Evaluator) Evaluate(doc *domain.FinancialStatementSet) map[string]domain.Flag {
	idx := SelectStatementIndex(doc)

	flags := make(map[string]domain.Flag, len(e.rules))
	for _, rule := range e.rules {
		flags[rule.Name()] = rule.Evaluate(doc, idx).Flag
	}
	return flags
}

func (e *Evaluator) Explain(doc *domain.FinancialStatementSet) domain.Evaluation {
	idx := SelectStatementIndex(doc)

	eval := domain.Evaluation{
		StatementIndex: idx,
		Figures:        figures(doc, idx),
		Indicators:     make([]domain.Indicator, 0, len(e.rules)),
	}
	if st, ok := doc.Statement(idx); ok {
		eval.Nature = st.Nature
	}

	for _, rule := range e.rules {
		eval.Indicators = append(eval.Indicators, rule.Evaluate(doc, idx))
	}
	return eval
}

func (e *Evaluator) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, rule := range e.rules {
		names = append(names, rule.Name())
	}
	return names
}

func figures(doc *domain.FinancialStatementSet, idx int) domain.Figures {
	_, hasRevenue := lookupRevenue(doc, idx)
	f := domain.Figures{
		TotalRevenue:     TotalRevenue(doc, idx),
		TotalBorrowing:   TotalBorrowing(doc, idx),
		HasRevenueFigure: hasRevenue,
	}

	if in, ok := InterestCoverageInputs(doc, idx); ok {
		f.ISCR = in.Ratio()
		f.ISCRComplete = true
	}
	if f.TotalRevenue != 0 {
		f.BorrowingRatio = f.TotalBorrowing / f.TotalRevenue
	}
	return f
}
