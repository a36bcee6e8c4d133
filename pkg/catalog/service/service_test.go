package service_test

import (
	"context"
	"testing"

	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/catalog/service"
	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/crunch"
	"github.com/latoulicious/setforge/pkg/database/dbtest"
	"github.com/latoulicious/setforge/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *service.Catalog {
	t.Helper()
	return service.NewCatalog(catalog.NewService(dbtest.NewManager(t), nil, nil))
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func uintPtr(u uint) *uint { return &u }

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	v, ok := catalog.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, field, v.Field)
}

func TestCreateSet_Validation(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	_, err := c.CreateSet(ctx, shared.SetInput{Name: "   "})
	requireValidation(t, err, "name")

	_, err = c.CreateSet(ctx, shared.SetInput{Name: "S", Target: crunch.Target{RedCards: -1}})
	requireValidation(t, err, "red_cards")

	set, err := c.CreateSet(ctx, shared.SetInput{Name: "  Alpha  ", Target: crunch.Target{TotalCards: 60}})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", set.Name)
	assert.Equal(t, 60, set.TotalCards)
}

func TestUpdateSet_Partial(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	set, err := c.CreateSet(ctx, shared.SetInput{Name: "Alpha", Description: "first", Target: crunch.Target{TotalCards: 60, BlueCards: 12}})
	require.NoError(t, err)

	updated, err := c.UpdateSet(ctx, set.ID, shared.SetPatch{BlueCards: intPtr(0), LandsCards: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Alpha", updated.Name)
	assert.Equal(t, "first", updated.Description)
	assert.Equal(t, 60, updated.TotalCards)
	assert.Equal(t, 0, updated.BlueCards)
	assert.Equal(t, 5, updated.LandsCards)

	_, err = c.UpdateSet(ctx, set.ID, shared.SetPatch{Name: strPtr("")})
	requireValidation(t, err, "name")

	_, err = c.UpdateSet(ctx, 999, shared.SetPatch{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestCreateCard_DerivesColors(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)

	card, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Charm", ManaCost: "{U/B}{R}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "blue", "black"}, card.Colors)
	assert.Equal(t, "common", card.Rarity)

	explicit, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Relic", ManaCost: "{3}", Colors: []string{"W", "Green"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"white", "green"}, explicit.Colors)

	colorless, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Rock"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, colorless.Colors)
}

func TestCreateCard_Validation(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)
	other, err := c.CreateSet(ctx, shared.SetInput{Name: "Other"})
	require.NoError(t, err)
	foreign, err := c.CreateArchetype(ctx, other.ID, shared.ArchetypeInput{Name: "Elsewhere", ColorPair: "RG"})
	require.NoError(t, err)

	_, err = c.CreateCard(ctx, 999, shared.CardInput{Name: "Orphan"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = c.CreateCard(ctx, set.ID, shared.CardInput{Name: ""})
	requireValidation(t, err, "name")

	_, err = c.CreateCard(ctx, set.ID, shared.CardInput{Name: "X", Rarity: "legendary"})
	requireValidation(t, err, "rarity")

	_, err = c.CreateCard(ctx, set.ID, shared.CardInput{Name: "X", Colors: []string{"purple"}})
	requireValidation(t, err, "colors")

	_, err = c.CreateCard(ctx, set.ID, shared.CardInput{Name: "X", ArchetypeID: uintPtr(foreign.ID)})
	requireValidation(t, err, "archetype_id")

	_, err = c.CreateCard(ctx, set.ID, shared.CardInput{Name: "X", ArchetypeID: uintPtr(4242)})
	requireValidation(t, err, "archetype_id")
}

func TestUpdateCard_ColorRules(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)
	card, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Bear", ManaCost: "{1}{G}"})
	require.NoError(t, err)
	require.Equal(t, []string{"green"}, card.Colors)

	// new mana cost, colors unset: re-derived
	updated, err := c.UpdateCard(ctx, card.ID, shared.CardPatch{ManaCost: strPtr("{1}{R}")})
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, updated.Colors)
	assert.Equal(t, "{1}{R}", updated.ManaCost)

	// explicit colors win over the mana cost
	updated, err = c.UpdateCard(ctx, card.ID, shared.CardPatch{ManaCost: strPtr("{W}"), Colors: []string{"black"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"black"}, updated.Colors)

	// neither: stored colors kept
	updated, err = c.UpdateCard(ctx, card.ID, shared.CardPatch{Name: strPtr("Big Bear")})
	require.NoError(t, err)
	assert.Equal(t, []string{"black"}, updated.Colors)
	assert.Equal(t, "Big Bear", updated.Name)

	// empty mana cost does not clear colors
	updated, err = c.UpdateCard(ctx, card.ID, shared.CardPatch{ManaCost: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, []string{"black"}, updated.Colors)

	stored, err := c.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"black"}, stored.Colors)
}

func TestUpdateCard_EmptyRarityKeepsStored(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)
	card, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Dragon", Rarity: "rare"})
	require.NoError(t, err)
	require.Equal(t, "rare", card.Rarity)

	updated, err := c.UpdateCard(ctx, card.ID, shared.CardPatch{Rarity: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "rare", updated.Rarity)

	updated, err = c.UpdateCard(ctx, card.ID, shared.CardPatch{Rarity: strPtr("  ")})
	require.NoError(t, err)
	assert.Equal(t, "rare", updated.Rarity)

	updated, err = c.UpdateCard(ctx, card.ID, shared.CardPatch{Rarity: strPtr("Mythic")})
	require.NoError(t, err)
	assert.Equal(t, "mythic", updated.Rarity)

	stored, err := c.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "mythic", stored.Rarity)
}

func TestUpdateCard_Archetype(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)
	arch, err := c.CreateArchetype(ctx, set.ID, shared.ArchetypeInput{Name: "Tempo", ColorPair: "ur"})
	require.NoError(t, err)
	card, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Mage", ManaCost: "{U}"})
	require.NoError(t, err)

	updated, err := c.UpdateCard(ctx, card.ID, shared.CardPatch{ArchetypeID: shared.OptionalID{Present: true, Value: uintPtr(arch.ID)}})
	require.NoError(t, err)
	require.NotNil(t, updated.Archetype)
	assert.Equal(t, "Tempo", updated.Archetype.Name)
	assert.Equal(t, "UR", updated.Archetype.ColorPair)

	updated, err = c.UpdateCard(ctx, card.ID, shared.CardPatch{Rarity: strPtr("Mythic")})
	require.NoError(t, err)
	assert.Equal(t, "mythic", updated.Rarity)
	assert.NotNil(t, updated.ArchetypeID, "absent archetype_id leaves the tag alone")

	updated, err = c.UpdateCard(ctx, card.ID, shared.CardPatch{ArchetypeID: shared.OptionalID{Present: true}})
	require.NoError(t, err)
	assert.Nil(t, updated.ArchetypeID)
	assert.Nil(t, updated.Archetype)

	_, err = c.UpdateCard(ctx, 999, shared.CardPatch{})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDeleteCard(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)
	card, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Gone"})
	require.NoError(t, err)

	require.NoError(t, c.DeleteCard(ctx, card.ID))
	_, err = c.GetCard(ctx, card.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.ErrorIs(t, c.DeleteCard(ctx, card.ID), catalog.ErrNotFound)
}

func TestArchetypes(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)

	_, err = c.CreateArchetype(ctx, set.ID, shared.ArchetypeInput{Name: "Bad", ColorPair: "WW"})
	requireValidation(t, err, "color_pair")
	_, err = c.CreateArchetype(ctx, set.ID, shared.ArchetypeInput{Name: "Bad", ColorPair: "WX"})
	requireValidation(t, err, "color_pair")
	_, err = c.CreateArchetype(ctx, 999, shared.ArchetypeInput{Name: "Lost", ColorPair: "WU"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	arch, err := c.CreateArchetype(ctx, set.ID, shared.ArchetypeInput{Name: "Reanimator", ColorPair: "bg"})
	require.NoError(t, err)
	assert.Equal(t, "BG", arch.ColorPair)
	assert.Equal(t, "Golgari", arch.Guild)
	assert.Equal(t, []string{"black", "green"}, arch.Colors)

	updated, err := c.UpdateArchetype(ctx, arch.ID, shared.ArchetypePatch{ColorPair: strPtr("wb"), Description: strPtr("drain")})
	require.NoError(t, err)
	assert.Equal(t, "WB", updated.ColorPair)
	assert.Equal(t, "Orzhov", updated.Guild)
	assert.Equal(t, "Reanimator", updated.Name)

	list, err := c.ListArchetypes(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "drain", list[0].Description)

	_, err = c.ListArchetypes(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDeleteArchetype_KeepsCards(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)
	arch, err := c.CreateArchetype(ctx, set.ID, shared.ArchetypeInput{Name: "Go Wide", ColorPair: "GW"})
	require.NoError(t, err)
	card, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Token Maker", ArchetypeID: uintPtr(arch.ID)})
	require.NoError(t, err)

	require.NoError(t, c.DeleteArchetype(ctx, arch.ID))

	got, err := c.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ArchetypeID)
	_, err = c.GetArchetype(ctx, arch.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestGetSet_Detail(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S", Target: crunch.Target{TotalCards: 2}})
	require.NoError(t, err)
	arch, err := c.CreateArchetype(ctx, set.ID, shared.ArchetypeInput{Name: "Control", ColorPair: "UB"})
	require.NoError(t, err)
	_, err = c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Counter", ManaCost: "{U}{U}", ArchetypeID: uintPtr(arch.ID)})
	require.NoError(t, err)
	_, err = c.CreateCard(ctx, set.ID, shared.CardInput{Name: "Golem"})
	require.NoError(t, err)

	detail, err := c.GetSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.TotalCards)
	require.Len(t, detail.Archetypes, 1)
	require.Len(t, detail.Cards, 2)
	require.NotNil(t, detail.Cards[0].Archetype)
	assert.Equal(t, "Control", detail.Cards[0].Archetype.Name)
	assert.Nil(t, detail.Cards[1].Archetype)

	sets, err := c.ListSets(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.EqualValues(t, 2, sets[0].CardCount)

	_, err = c.GetSet(ctx, 999)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestDeleteSet_Cascades(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	set, err := c.CreateSet(ctx, shared.SetInput{Name: "S"})
	require.NoError(t, err)
	arch, err := c.CreateArchetype(ctx, set.ID, shared.ArchetypeInput{Name: "A", ColorPair: "WR"})
	require.NoError(t, err)
	card, err := c.CreateCard(ctx, set.ID, shared.CardInput{Name: "C", ArchetypeID: uintPtr(arch.ID)})
	require.NoError(t, err)

	require.NoError(t, c.DeleteSet(ctx, set.ID))

	_, err = c.GetSet(ctx, set.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = c.GetCard(ctx, card.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = c.GetArchetype(ctx, arch.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = c.NumberCrunch(ctx, set.ID)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.ErrorIs(t, c.DeleteSet(ctx, set.ID), catalog.ErrNotFound)
}

func TestNumberCrunch(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	c := service.NewCatalog(catalog.NewService(dbtest.NewManager(t), nil, m))

	set, err := c.CreateSet(ctx, shared.SetInput{Name: "Crunchy", Target: crunch.Target{TotalCards: 4, WhiteCards: 1}})
	require.NoError(t, err)

	empty, err := c.NumberCrunch(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.ActualDistribution.TotalCards)
	assert.Equal(t, 0.0, empty.ColorPercentages.White)

	for _, in := range []shared.CardInput{
		{Name: "A", ManaCost: "{W}"},
		{Name: "B", ManaCost: "{U}"},
		{Name: "C", ManaCost: "{W}{U}"},
		{Name: "D", Rarity: "rare"},
	} {
		_, err := c.CreateCard(ctx, set.ID, in)
		require.NoError(t, err)
	}

	report, err := c.NumberCrunch(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, set.ID, report.SetID)
	assert.Equal(t, "Crunchy", report.SetName)
	assert.Equal(t, 4, report.TargetDistribution.TotalCards)
	assert.Equal(t, 1, report.TargetDistribution.WhiteCards)
	assert.Equal(t, 4, report.ActualDistribution.TotalCards)
	assert.Equal(t, 1, report.ActualDistribution.WhiteCards)
	assert.Equal(t, 1, report.ActualDistribution.BlueCards)
	assert.Equal(t, 1, report.ActualDistribution.MulticolorCards)
	assert.Equal(t, 1, report.ActualDistribution.ColorlessCards)
	assert.Equal(t, 25.0, report.ColorPercentages.Multicolor)
	assert.Equal(t, 3, report.RarityDistribution.Common)
	assert.Equal(t, 1, report.RarityDistribution.Rare)
	assert.Equal(t, 75.0, report.RarityPercentages.Common)

	assert.Equal(t, 2.0, counterValue(t, m, "setforge_number_crunch_reports_total"))
}

func counterValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		var total float64
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestDeriveColors(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, []string{"white"}, c.DeriveColors("{2/W}"))
	assert.Equal(t, []string{}, c.DeriveColors(""))
}
