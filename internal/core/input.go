package core

// Horizontal is the horizontal movement intent of a single simulation step.
// The values match the two low bits of the packed sample format.
type Horizontal uint8

const (
	HorizontalNone  Horizontal = 0b00
	HorizontalLeft  Horizontal = 0b01
	HorizontalRight Horizontal = 0b10
)

// String returns a human-readable name for the intent.
func (h Horizontal) String() string {
	switch h {
	case HorizontalNone:
		return "None"
	case HorizontalLeft:
		return "Left"
	case HorizontalRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Valid reports whether h is one of the three defined intents.
// The combined Left|Right bit pattern is not a valid intent.
func (h Horizontal) Valid() bool {
	return h == HorizontalNone || h == HorizontalLeft || h == HorizontalRight
}

// InputSample is the control input consumed by one simulation step.
// It is a plain value; copies are independent.
type InputSample struct {
	Horizontal Horizontal
	Jump       bool
}

// Sample is a shorthand constructor for InputSample.
func Sample(h Horizontal, jump bool) InputSample {
	return InputSample{Horizontal: h, Jump: jump}
}

// String returns a compact form such as "R", "L+J" or "-".
func (s InputSample) String() string {
	var out string
	switch s.Horizontal {
	case HorizontalLeft:
		out = "L"
	case HorizontalRight:
		out = "R"
	case HorizontalNone:
		out = "-"
	default:
		out = "?"
	}
	if s.Jump {
		out += "+J"
	}
	return out
}
