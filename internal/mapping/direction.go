package mapping

import (
	"fmt"
	"strings"

	"bone-renamer/internal/common"
)

// Direction selects which of the two configured presets is the source.
type Direction int

const (
	// Forward renames from the source preset to the destination preset.
	Forward Direction = iota
	// Reverse renames from the destination preset back to the source preset.
	Reverse
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return common.UnknownStr
	}
}

// ParseDirection parses a direction name. "left-to-right" and
// "right-to-left" are accepted as aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward", "ltr", "left-to-right":
		return Forward, nil
	case "reverse", "backward", "rtl", "right-to-left":
		return Reverse, nil
	default:
		return Forward, fmt.Errorf("unknown direction %q", s)
	}
}

// Orient returns the (from, to) preset pair for the direction.
func (d Direction) Orient(source, destination string) (string, string) {
	if d == Reverse {
		return destination, source
	}

	return source, destination
}
