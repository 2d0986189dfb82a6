package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cropaway/internal/crop"
	"cropaway/internal/geometry"
)

func parseClipID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid clip id %q", arg)
	}
	return id, nil
}

func parseTimestamp(arg string) (float64, error) {
	ts, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil || ts < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", arg)
	}
	return ts, nil
}

// parseRect parses "x,y,w,h" with normalized components.
func parseRect(arg string) (geometry.Rect, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("invalid rectangle %q (want x,y,w,h)", arg)
	}
	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid rectangle %q: %w", arg, err)
		}
		values[i] = v
	}
	return geometry.Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}

// parseCircle parses "cx,cy,r" with normalized components.
func parseCircle(arg string) (geometry.Point, float64, error) {
	parts := strings.Split(arg, ",")
	if len(parts) != 3 {
		return geometry.Point{}, 0, fmt.Errorf("invalid circle %q (want cx,cy,r)", arg)
	}
	values := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Point{}, 0, fmt.Errorf("invalid circle %q: %w", arg, err)
		}
		values[i] = v
	}
	return geometry.Point{X: values[0], Y: values[1]}, values[2], nil
}

// deriveClipName builds a display name from a source file path.
func deriveClipName(sourcePath string) string {
	if sourcePath == "" {
		return "Untitled Clip"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	name := strings.TrimSpace(cleaned.String())
	if name == "" {
		return "Untitled Clip"
	}
	return cases.Title(language.Und).String(name)
}

func formatRect(r geometry.Rect) string {
	return fmt.Sprintf("%.3f,%.3f,%.3f,%.3f", r.X, r.Y, r.Width, r.Height)
}

func describeState(state crop.State, mode crop.Mode) string {
	switch mode {
	case crop.ModeRectangle:
		return formatRect(state.Rect)
	case crop.ModeCircle:
		return fmt.Sprintf("%.3f,%.3f r=%.3f", state.CircleCenter.X, state.CircleCenter.Y, state.CircleRadius)
	case crop.ModeFreehand:
		if state.HasFreehandPath() {
			return fmt.Sprintf("path(%d vertices)", len(state.FreehandPath))
		}
		return fmt.Sprintf("polygon(%d points)", len(state.FreehandPoints))
	case crop.ModeAI:
		if len(state.AIMask) > 0 {
			return fmt.Sprintf("mask(%d bytes) box=%s", len(state.AIMask), formatRect(state.AIBox))
		}
		return "box=" + formatRect(state.AIBox)
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
