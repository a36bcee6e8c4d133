package mtg

import (
	"fmt"
	"strings"
)

// Canonical color names as stored on cards and reported by the number crunch.
const (
	White = "white"
	Blue  = "blue"
	Black = "black"
	Red   = "red"
	Green = "green"
)

// Colors lists the five colors in WUBRG order.
var Colors = []string{White, Blue, Black, Red, Green}

// symbolColors maps a mana symbol letter to its color name.
var symbolColors = map[string]string{
	"W": White,
	"U": Blue,
	"B": Black,
	"R": Red,
	"G": Green,
}

// ColorForSymbol returns the color name for a single mana letter (W, U, B, R, G).
func ColorForSymbol(symbol string) (string, bool) {
	color, ok := symbolColors[symbol]
	return color, ok
}

// IsColor reports whether name is one of the five canonical color names.
func IsColor(name string) bool {
	for _, c := range Colors {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeColors validates an explicit color list supplied by a client.
// Names are matched case-insensitively, single letters are accepted as well,
// duplicates are dropped and first-seen order is kept.
func NormalizeColors(colors []string) ([]string, error) {
	out := make([]string, 0, len(colors))
	for _, raw := range colors {
		name := strings.ToLower(strings.TrimSpace(raw))
		if color, ok := ColorForSymbol(strings.ToUpper(name)); ok {
			name = color
		}
		if !IsColor(name) {
			return nil, fmt.Errorf("unknown color %q", raw)
		}
		out = appendUnique(out, name)
	}
	return out, nil
}

func appendUnique(colors []string, color string) []string {
	for _, c := range colors {
		if c == color {
			return colors
		}
	}
	return append(colors, color)
}
