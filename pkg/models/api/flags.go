package api

// FlagValue is the numeric flag as consumers expect it: 0 red, 1 green,
// 2 amber, 3 medium risk, 4 white.
type FlagValue int

// Flags is the evaluator output keyed by indicator name.
type Flags map[string]FlagValue

type Figures struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalBorrowing float64 `json:"total_borrowing"`
	ISCR           float64 `json:"iscr"`
	ISCRComplete   bool    `json:"iscr_complete"`
	BorrowingRatio float64 `json:"borrowing_ratio"`
	HasRevenue     bool    `json:"has_revenue"`
}

type Indicator struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Flag        FlagValue `json:"flag"`
	Label       string    `json:"label"`
	Value       float64   `json:"value"`
	Threshold   float64   `json:"threshold"`
	Description string    `json:"description"`
	Note        string    `json:"note,omitempty"`
}

type Evaluation struct {
	StatementIndex int         `json:"statement_index"`
	Nature         string      `json:"nature"`
	Flags          Flags       `json:"flags"`
	Figures        Figures     `json:"figures"`
	Indicators     []Indicator `json:"indicators"`
}

type FlagLegend struct {
	Value       FlagValue `json:"value"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

type RulesResponse struct {
	Rules  []string     `json:"rules"`
	Legend []FlagLegend `json:"legend"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
