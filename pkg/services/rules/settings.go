package rules

// Settings contains the thresholds the indicators are judged against
type Settings struct {
	// ISCRMin is the lowest interest service coverage ratio still flagged green (default: 2.0)
	ISCRMin float64
	// RevenueMin is the revenue materiality threshold, 5 crore (default: 50,000,000)
	RevenueMin float64
	// BorrowingRatioMax is the highest borrowing to revenue ratio still flagged green (default: 0.25)
	BorrowingRatioMax float64
}

// DefaultSettings returns the standard thresholds
func DefaultSettings() Settings {
	return Settings{
		ISCRMin:           2.0,
		RevenueMin:        50_000_000,
		BorrowingRatioMax: 0.25,
	}
}
