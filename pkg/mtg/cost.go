// Package mtg holds the card vocabulary shared by the store and the report
// engine: color names, mana cost parsing, rarities and archetype color pairs.
package mtg

import "regexp"

var (
	// {W}, {U}, {B}, {R}, {G}
	simpleSymbol = regexp.MustCompile(`\{([WUBRG])\}`)

	// {W/U}, {2/W}, {G/2}: either side may be a color or the generic 2
	hybridSymbol = regexp.MustCompile(`\{([WUBRG2])/([WUBRG2])\}`)
)

// ParseManaCost derives a color identity from a mana cost string such as
// "{2}{W}{U/B}". Simple colored symbols are collected first, then both sides
// of every hybrid symbol. Each color appears once, in first-seen order.
// Anything that is not a recognized colored symbol is ignored.
func ParseManaCost(cost string) []string {
	colors := []string{}
	if cost == "" {
		return colors
	}

	for _, m := range simpleSymbol.FindAllStringSubmatch(cost, -1) {
		if color, ok := ColorForSymbol(m[1]); ok {
			colors = appendUnique(colors, color)
		}
	}

	for _, m := range hybridSymbol.FindAllStringSubmatch(cost, -1) {
		for _, side := range m[1:] {
			// the generic "2" side has no color
			if color, ok := ColorForSymbol(side); ok {
				colors = appendUnique(colors, color)
			}
		}
	}

	return colors
}
