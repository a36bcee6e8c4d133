package mtg

import (
	"fmt"
	"strings"
)

// guildNames keys each two-color pair by its letters in WUBRG order.
var guildNames = map[string]string{
	"WU": "Azorius",
	"UB": "Dimir",
	"BR": "Rakdos",
	"RG": "Gruul",
	"WG": "Selesnya",
	"WB": "Orzhov",
	"UR": "Izzet",
	"BG": "Golgari",
	"WR": "Boros",
	"UG": "Simic",
}

// ParseColorPair validates an archetype color pair: exactly two distinct
// letters from WUBRG. The letters are upper-cased; their order is kept.
func ParseColorPair(raw string) (string, error) {
	pair := strings.ToUpper(strings.TrimSpace(raw))
	if len(pair) != 2 {
		return "", fmt.Errorf("color pair %q must be exactly two color letters", raw)
	}
	for i := 0; i < 2; i++ {
		if _, ok := ColorForSymbol(pair[i : i+1]); !ok {
			return "", fmt.Errorf("color pair %q contains %q, expected one of W, U, B, R, G", raw, pair[i:i+1])
		}
	}
	if pair[0] == pair[1] {
		return "", fmt.Errorf("color pair %q must name two different colors", raw)
	}
	return pair, nil
}

// PairColors returns the two color names of a valid pair in the pair's order.
func PairColors(pair string) []string {
	colors := make([]string, 0, 2)
	for i := 0; i < len(pair); i++ {
		if color, ok := ColorForSymbol(pair[i : i+1]); ok {
			colors = append(colors, color)
		}
	}
	return colors
}

// GuildName returns the conventional name of a color pair ("UW" -> "Azorius").
// The lookup ignores letter order. Unknown pairs return "".
func GuildName(pair string) string {
	p := strings.ToUpper(pair)
	if name, ok := guildNames[p]; ok {
		return name
	}
	if len(p) == 2 {
		return guildNames[p[1:]+p[:1]]
	}
	return ""
}
