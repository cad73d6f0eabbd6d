package domain

// Flag is a categorical risk indicator. The numeric values are part of the
// output contract and must not change.
type Flag int

const (
	FlagRed        Flag = 0
	FlagGreen      Flag = 1
	FlagAmber      Flag = 2
	FlagMediumRisk Flag = 3 // display only, no rule produces it
	FlagWhite      Flag = 4 // required data missing or not applicable
)

// Flags lists every flag in numeric order.
func Flags() []Flag {
	return []Flag{FlagRed, FlagGreen, FlagAmber, FlagMediumRisk, FlagWhite}
}

func (f Flag) String() string {
	switch f {
	case FlagRed:
		return "RED"
	case FlagGreen:
		return "GREEN"
	case FlagAmber:
		return "AMBER"
	case FlagMediumRisk:
		return "MEDIUM_RISK"
	case FlagWhite:
		return "WHITE"
	default:
		return "UNKNOWN"
	}
}

func (f Flag) Valid() bool {
	return f >= FlagRed && f <= FlagWhite
}

// Description is the human readable meaning shown next to a flag.
func (f Flag) Description() string {
	switch f {
	case FlagRed:
		return "High risk"
	case FlagGreen:
		return "Healthy"
	case FlagAmber:
		return "Needs attention"
	case FlagMediumRisk:
		return "Medium risk"
	case FlagWhite:
		return "Data missing"
	default:
		return "Unknown"
	}
}
