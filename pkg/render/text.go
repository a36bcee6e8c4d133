package render

import (
	"fmt"
	"strings"

	"github.com/latoulicious/setforge/pkg/crunch"
)

const defaultBarWidth = 20

// TextRenderer implements ReportRenderer with plain ASCII output
type TextRenderer struct {
	barWidth int
}

// NewTextRenderer creates a TextRenderer. A non-positive width uses the default.
func NewTextRenderer(barWidth int) *TextRenderer {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}
	return &TextRenderer{barWidth: barWidth}
}

type row struct {
	label  string
	actual int
	target int
}

func colorRows(r *crunch.Report) []row {
	a, t := r.ActualDistribution, r.TargetDistribution
	return []row{
		{"white", a.WhiteCards, t.WhiteCards},
		{"blue", a.BlueCards, t.BlueCards},
		{"black", a.BlackCards, t.BlackCards},
		{"red", a.RedCards, t.RedCards},
		{"green", a.GreenCards, t.GreenCards},
		{"colorless", a.ColorlessCards, t.ColorlessCards},
		{"multicolor", a.MulticolorCards, t.MulticolorCards},
	}
}

// Progress renders e.g.
// "Alpha #3: 12/40 cards (30.0%) | W 3/8 U 2/8 B 0/8 R 4/8 G 1/8 C 1/0 M 1/0 | C 8 U 3 R 1 M 0"
func (t *TextRenderer) Progress(r *crunch.Report) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d: %d/%d cards (%s)", r.SetName, r.SetID,
		r.ActualDistribution.TotalCards, r.TargetDistribution.TotalCards,
		completion(r.ActualDistribution.TotalCards, r.TargetDistribution.TotalCards))

	b.WriteString(" |")
	for _, rw := range colorRows(r) {
		fmt.Fprintf(&b, " %s %d/%d", abbreviate(rw.label), rw.actual, rw.target)
	}

	rc := r.RarityDistribution
	fmt.Fprintf(&b, " | C %d U %d R %d M %d", rc.Common, rc.Uncommon, rc.Rare, rc.Mythic)
	return b.String()
}

// Table renders one line per color bucket with a fill bar toward the target,
// followed by the rarity split.
func (t *TextRenderer) Table(r *crunch.Report) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (set %d)\n", r.SetName, r.SetID)
	fmt.Fprintf(&b, "%-10s %s %4d/%-4d %s\n", "total", t.bar(r.ActualDistribution.TotalCards, r.TargetDistribution.TotalCards),
		r.ActualDistribution.TotalCards, r.TargetDistribution.TotalCards,
		completion(r.ActualDistribution.TotalCards, r.TargetDistribution.TotalCards))

	for _, rw := range colorRows(r) {
		fmt.Fprintf(&b, "%-10s %s %4d/%-4d %s\n", rw.label, t.bar(rw.actual, rw.target), rw.actual, rw.target, status(rw.actual, rw.target))
	}

	rc, rp := r.RarityDistribution, r.RarityPercentages
	fmt.Fprintf(&b, "rarity     common %d (%.1f%%) uncommon %d (%.1f%%) rare %d (%.1f%%) mythic %d (%.1f%%)\n",
		rc.Common, rp.Common, rc.Uncommon, rp.Uncommon, rc.Rare, rp.Rare, rc.Mythic, rp.Mythic)
	return b.String()
}

// bar draws actual against target. Past the target the bar is full and
// marked with a trailing '+'.
func (t *TextRenderer) bar(actual, target int) string {
	filled := 0
	switch {
	case target > 0:
		filled = actual * t.barWidth / target
	case actual > 0:
		filled = t.barWidth
	}
	over := actual > target
	if filled > t.barWidth {
		filled = t.barWidth
	}

	end := "]"
	if over {
		end = "+"
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", t.barWidth-filled) + end
}

func completion(actual, target int) string {
	if target <= 0 {
		return "no target"
	}
	return fmt.Sprintf("%.1f%%", float64(actual)*100/float64(target))
}

func status(actual, target int) string {
	switch {
	case actual == target:
		return "on target"
	case actual < target:
		return fmt.Sprintf("%d short", target-actual)
	default:
		return fmt.Sprintf("%d over", actual-target)
	}
}

func abbreviate(label string) string {
	switch label {
	case "blue":
		return "U"
	case "colorless":
		return "C"
	case "multicolor":
		return "M"
	default:
		return strings.ToUpper(label[:1])
	}
}
