package trend

// Direction is the closed-set qualitative classification of a trend.
type Direction string

const (
	DirectionRising  Direction = "rising"
	DirectionFalling Direction = "falling"
	DirectionStable  Direction = "stable"
	DirectionUnknown Direction = "unknown"
)

// ParseDirection maps an arbitrary string onto the closed direction set.
// Anything outside the set, including the empty string, becomes unknown;
// this function never fails.
func ParseDirection(s string) Direction {
	switch Direction(s) {
	case DirectionRising, DirectionFalling, DirectionStable:
		return Direction(s)
	}
	return DirectionUnknown
}

// Display is the presentation bundle for one direction. Every field is
// always populated; callers can use any subset without nil checks.
type Display struct {
	TextClass       string
	BackgroundClass string
	BadgeClass      string
	Icon            string
	Label           string
}

// displayTable is the single source of truth for direction styling.
// Every render site goes through Classify rather than carrying its own
// copy of this mapping.
var displayTable = map[Direction]Display{
	DirectionRising: {
		TextClass:       "text-emerald-600",
		BackgroundClass: "bg-emerald-50",
		BadgeClass:      "badge badge-rising",
		Icon:            "↑",
		Label:           "Rising",
	},
	DirectionFalling: {
		TextClass:       "text-red-600",
		BackgroundClass: "bg-red-50",
		BadgeClass:      "badge badge-falling",
		Icon:            "↓",
		Label:           "Falling",
	},
	DirectionStable: {
		TextClass:       "text-slate-600",
		BackgroundClass: "bg-slate-50",
		BadgeClass:      "badge badge-stable",
		Icon:            "→",
		Label:           "Stable",
	},
	DirectionUnknown: {
		TextClass:       "text-slate-400",
		BackgroundClass: "bg-slate-50",
		BadgeClass:      "badge badge-unknown",
		Icon:            "·",
		Label:           "Unknown",
	},
}

// Classify returns the display bundle for a direction. Values outside the
// closed set fall through to the unknown bundle, so the result is total.
func Classify(d Direction) Display {
	if display, ok := displayTable[d]; ok {
		return display
	}
	return displayTable[DirectionUnknown]
}

// ClassifyString combines ParseDirection and Classify for callers holding
// raw upstream strings.
func ClassifyString(s string) Display {
	return Classify(ParseDirection(s))
}
