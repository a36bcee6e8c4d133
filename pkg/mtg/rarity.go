package mtg

import (
	"fmt"
	"strings"
)

const (
	Common   = "common"
	Uncommon = "uncommon"
	Rare     = "rare"
	Mythic   = "mythic"
)

// DefaultRarity is applied to cards created without a rarity.
const DefaultRarity = Common

// Rarities lists the four rarities in ascending order.
var Rarities = []string{Common, Uncommon, Rare, Mythic}

// ParseRarity validates a rarity string. An empty value yields DefaultRarity.
func ParseRarity(raw string) (string, error) {
	r := strings.ToLower(strings.TrimSpace(raw))
	if r == "" {
		return DefaultRarity, nil
	}
	for _, known := range Rarities {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rarity %q (must be common, uncommon, rare or mythic)", raw)
}
