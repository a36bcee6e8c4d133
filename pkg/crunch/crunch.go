// Package crunch reconciles a set's target distribution with the cards that
// have actually been entered for it.
package crunch

import "github.com/latoulicious/setforge/pkg/mtg"

// Target is the designer's planned distribution, stored on the set.
type Target struct {
	TotalCards      int `json:"total_cards"`
	WhiteCards      int `json:"white_cards"`
	BlueCards       int `json:"blue_cards"`
	BlackCards      int `json:"black_cards"`
	RedCards        int `json:"red_cards"`
	GreenCards      int `json:"green_cards"`
	ColorlessCards  int `json:"colorless_cards"`
	MulticolorCards int `json:"multicolor_cards"`
	LandsCards      int `json:"lands_cards"`
	BasicLandsCards int `json:"basic_lands_cards"`
}

// Actual is the color distribution counted from entered cards.
type Actual struct {
	TotalCards      int `json:"total_cards"`
	WhiteCards      int `json:"white_cards"`
	BlueCards       int `json:"blue_cards"`
	BlackCards      int `json:"black_cards"`
	RedCards        int `json:"red_cards"`
	GreenCards      int `json:"green_cards"`
	ColorlessCards  int `json:"colorless_cards"`
	MulticolorCards int `json:"multicolor_cards"`
}

// ColorPercentages holds each color bucket as a share of all entered cards.
type ColorPercentages struct {
	White      float64 `json:"white"`
	Blue       float64 `json:"blue"`
	Black      float64 `json:"black"`
	Red        float64 `json:"red"`
	Green      float64 `json:"green"`
	Colorless  float64 `json:"colorless"`
	Multicolor float64 `json:"multicolor"`
}

// RarityCounts holds the number of cards per rarity.
type RarityCounts struct {
	Common   int `json:"common"`
	Uncommon int `json:"uncommon"`
	Rare     int `json:"rare"`
	Mythic   int `json:"mythic"`
}

// RarityPercentages holds each rarity as a share of all entered cards.
type RarityPercentages struct {
	Common   float64 `json:"common"`
	Uncommon float64 `json:"uncommon"`
	Rare     float64 `json:"rare"`
	Mythic   float64 `json:"mythic"`
}

// CardSummary is the slice of a card the engine needs.
type CardSummary struct {
	Colors []string
	Rarity string
}

// Report is the number crunch for one set.
type Report struct {
	SetID              uint              `json:"set_id"`
	SetName            string            `json:"set_name"`
	TargetDistribution Target            `json:"target_distribution"`
	ActualDistribution Actual            `json:"actual_distribution"`
	ColorPercentages   ColorPercentages  `json:"color_percentages"`
	RarityDistribution RarityCounts      `json:"rarity_distribution"`
	RarityPercentages  RarityPercentages `json:"rarity_percentages"`
}

// Compute builds the report body for the given target and cards. SetID and
// SetName are left for the caller to fill in.
//
// A card with no colors is colorless, one color counts toward that color and
// two or more count as multicolor. Rarities are expected to be validated on
// write; a stored value outside the four known rarities is counted under the
// default rarity so that both bucket groups always sum to TotalCards.
func Compute(target Target, cards []CardSummary) Report {
	var actual Actual
	var rarity RarityCounts

	for _, card := range cards {
		switch len(card.Colors) {
		case 0:
			actual.ColorlessCards++
		case 1:
			addColor(&actual, card.Colors[0])
		default:
			actual.MulticolorCards++
		}
		addRarity(&rarity, card.Rarity)
	}
	actual.TotalCards = len(cards)

	total := actual.TotalCards
	return Report{
		TargetDistribution: target,
		ActualDistribution: actual,
		ColorPercentages: ColorPercentages{
			White:      percent(actual.WhiteCards, total),
			Blue:       percent(actual.BlueCards, total),
			Black:      percent(actual.BlackCards, total),
			Red:        percent(actual.RedCards, total),
			Green:      percent(actual.GreenCards, total),
			Colorless:  percent(actual.ColorlessCards, total),
			Multicolor: percent(actual.MulticolorCards, total),
		},
		RarityDistribution: rarity,
		RarityPercentages: RarityPercentages{
			Common:   percent(rarity.Common, total),
			Uncommon: percent(rarity.Uncommon, total),
			Rare:     percent(rarity.Rare, total),
			Mythic:   percent(rarity.Mythic, total),
		},
	}
}

func addColor(a *Actual, color string) {
	switch color {
	case mtg.White:
		a.WhiteCards++
	case mtg.Blue:
		a.BlueCards++
	case mtg.Black:
		a.BlackCards++
	case mtg.Red:
		a.RedCards++
	case mtg.Green:
		a.GreenCards++
	default:
		// not a color name; the card carries no usable color
		a.ColorlessCards++
	}
}

func addRarity(r *RarityCounts, rarity string) {
	switch rarity {
	case mtg.Uncommon:
		r.Uncommon++
	case mtg.Rare:
		r.Rare++
	case mtg.Mythic:
		r.Mythic++
	default:
		r.Common++
	}
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
