package crop

import (
	"fmt"
	"strings"
)

// Mode identifies which crop representation is active.
type Mode string

const (
	ModeRectangle Mode = "rectangle"
	ModeCircle    Mode = "circle"
	ModeFreehand  Mode = "freehand"
	ModeAI        Mode = "ai"
)

var allModes = []Mode{ModeRectangle, ModeCircle, ModeFreehand, ModeAI}

var modeSet = func() map[Mode]struct{} {
	set := make(map[Mode]struct{}, len(allModes))
	for _, mode := range allModes {
		set[mode] = struct{}{}
	}
	return set
}()

// Modes returns every supported crop mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, len(allModes))
	copy(out, allModes)
	return out
}

// Valid reports whether the mode is a member of the closed enumeration.
func (m Mode) Valid() bool {
	_, ok := modeSet[m]
	return ok
}

// String returns the canonical lowercase name.
func (m Mode) String() string {
	return string(m)
}

// ParseMode resolves the user-facing name of a crop mode.
func ParseMode(raw string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.Valid() {
		return "", fmt.Errorf("unknown crop mode %q", raw)
	}
	return mode, nil
}
