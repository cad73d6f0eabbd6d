package domain

// Evaluation is the full outcome of running the rules against one document.
type Evaluation struct {
	StatementIndex int
	Nature         string
	Figures        Figures
	Indicators     []Indicator
}

// Figures are the scalar values the rules are computed from.
type Figures struct {
	TotalRevenue     float64
	TotalBorrowing   float64
	ISCR             float64
	ISCRComplete     bool    // all three coverage inputs were present
	BorrowingRatio   float64 // zero when revenue is zero
	HasRevenueFigure bool
}

// Indicator is a single evaluated rule.
type Indicator struct {
	Name        string
	Title       string
	Flag        Flag
	Value       float64
	Threshold   float64
	Description string
	Note        string
}

// FlagMap returns the indicator name to flag mapping.
func (e Evaluation) FlagMap() map[string]Flag {
	flags := make(map[string]Flag, len(e.Indicators))
	for _, ind := range e.Indicators {
		flags[ind.Name] = ind.Flag
	}
	return flags
}
