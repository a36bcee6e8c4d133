package mtg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseManaCost(t *testing.T) {
	tests := []struct {
		name string
		cost string
		want []string
	}{
		{name: "empty", cost: "", want: []string{}},
		{name: "generic only", cost: "{3}", want: []string{}},
		{name: "no braces", cost: "WUBRG", want: []string{}},
		{name: "colorless and variable", cost: "{X}{C}{T}", want: []string{}},
		{name: "two colors", cost: "{W}{U}", want: []string{White, Blue}},
		{name: "hybrid", cost: "{R/G}", want: []string{Red, Green}},
		{name: "generic hybrid", cost: "{2/W}", want: []string{White}},
		{name: "generic hybrid reversed", cost: "{B/2}", want: []string{Black}},
		{name: "duplicate symbol", cost: "{W}{W}", want: []string{White}},
		{name: "generic plus color", cost: "{2}{G}{G}", want: []string{Green}},
		{name: "simple before hybrid", cost: "{U/B}{R}", want: []string{Red, Blue, Black}},
		{name: "hybrid overlaps simple", cost: "{W}{W/U}", want: []string{White, Blue}},
		{name: "malformed fragments", cost: "{W{U}}{/}{G/}{Q}", want: []string{Blue}},
		{name: "lowercase ignored", cost: "{w}{u}", want: []string{}},
		{name: "phyrexian ignored", cost: "{W/P}", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseManaCost(tt.cost))
		})
	}
}

func TestParseManaCost_NeverNil(t *testing.T) {
	assert.NotNil(t, ParseManaCost(""))
	assert.NotNil(t, ParseManaCost("{1}"))
}

func TestParseManaCost_Idempotent(t *testing.T) {
	costs := []string{"{1}{W}{U}", "{G/W}{G/W}", "{2/B}{R}", "", "{X}{X}{R}"}
	for _, cost := range costs {
		first := ParseManaCost(cost)
		second := ParseManaCost(cost)
		assert.ElementsMatch(t, first, second, cost)
	}
}

func TestNormalizeColors(t *testing.T) {
	got, err := NormalizeColors([]string{"White", " blue ", "W", "g"})
	assert.NoError(t, err)
	assert.Equal(t, []string{White, Blue, Green}, got)

	got, err = NormalizeColors(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizeColors([]string{"purple"})
	assert.Error(t, err)
}

func TestParseRarity(t *testing.T) {
	r, err := ParseRarity("")
	assert.NoError(t, err)
	assert.Equal(t, Common, r)

	r, err = ParseRarity("Mythic")
	assert.NoError(t, err)
	assert.Equal(t, Mythic, r)

	_, err = ParseRarity("special")
	assert.Error(t, err)
}

func TestParseColorPair(t *testing.T) {
	valid := map[string]string{"WU": "WU", "ub": "UB", " gw ": "GW"}
	for in, want := range valid {
		got, err := ParseColorPair(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "W", "WW", "WUB", "WX", "2W"} {
		_, err := ParseColorPair(in)
		assert.Error(t, err, in)
	}
}

func TestGuildName(t *testing.T) {
	assert.Equal(t, "Azorius", GuildName("WU"))
	assert.Equal(t, "Azorius", GuildName("UW"))
	assert.Equal(t, "Selesnya", GuildName("GW"))
	assert.Equal(t, "Boros", GuildName("rw"))
	assert.Equal(t, "", GuildName("WW"))
}

func TestPairColors(t *testing.T) {
	assert.Equal(t, []string{Green, White}, PairColors("GW"))
}
