package shared

import (
	"encoding/json"
	"testing"

	"github.com/latoulicious/setforge/pkg/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMapper_ApplyPatchOnlyTouchesGivenFields(t *testing.T) {
	set := &models.Set{Name: "Old", Description: "keep", TotalCards: 100, RedCards: 20}
	name := "New"
	zero := 0

	NewSetMapper().ApplyPatch(set, SetPatch{Name: &name, RedCards: &zero})

	assert.Equal(t, "New", set.Name)
	assert.Equal(t, "keep", set.Description)
	assert.Equal(t, 100, set.TotalCards)
	assert.Equal(t, 0, set.RedCards)
}

func TestSetSummary_FlattensTarget(t *testing.T) {
	summary := NewSetMapper().ToSummary(&models.Set{ID: 1, Name: "S", WhiteCards: 5, LandsCards: 2}, 3)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, 5, raw["white_cards"])
	assert.EqualValues(t, 2, raw["lands_cards"])
	assert.EqualValues(t, 3, raw["card_count"])
}

func TestCardMapper_NilColorsBecomeEmpty(t *testing.T) {
	card := NewCardMapper().ToShared(&models.Card{ID: 1, Name: "Wall"}, nil)

	assert.NotNil(t, card.Colors)
	assert.Empty(t, card.Colors)
	assert.Nil(t, card.Archetype)
}

func TestCardMapper_EmbedsArchetype(t *testing.T) {
	id := uint(4)
	card := NewCardMapper().ToShared(
		&models.Card{ID: 1, ArchetypeID: &id},
		&models.Archetype{ID: 4, Name: "Fliers", ColorPair: "WU"},
	)

	require.NotNil(t, card.Archetype)
	assert.Equal(t, "Fliers", card.Archetype.Name)
}

func TestArchetypeMapper_Guild(t *testing.T) {
	a := NewArchetypeMapper().ToShared(&models.Archetype{ColorPair: "UW"})
	assert.Equal(t, "Azorius", a.Guild)
	assert.Equal(t, []string{"blue", "white"}, a.Colors)
}

func TestCardPatch_ArchetypeID(t *testing.T) {
	var absent, cleared, set CardPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"archetype_id":null}`), &cleared))
	require.NoError(t, json.Unmarshal([]byte(`{"archetype_id":7}`), &set))

	assert.False(t, absent.ArchetypeID.Present)

	assert.True(t, cleared.ArchetypeID.Present)
	assert.Nil(t, cleared.ArchetypeID.Value)

	assert.True(t, set.ArchetypeID.Present)
	require.NotNil(t, set.ArchetypeID.Value)
	assert.EqualValues(t, 7, *set.ArchetypeID.Value)

	var bad CardPatch
	assert.Error(t, json.Unmarshal([]byte(`{"archetype_id":"seven"}`), &bad))
}
