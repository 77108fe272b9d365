package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *ProfileRegistry {
	t.Helper()
	r, err := NewProfileRegistry([]Profile{
		{ID: ProfileVegan, Title: "Vegan", Allergens: []string{"milk", "egg"}},
		{ID: ProfileHalal, Allergens: []string{"pork", "gelatin (non-halal)"}},
	})
	require.NoError(t, err)
	return r
}

func TestProfileRegistry_Lookup(t *testing.T) {
	r := testRegistry(t)

	got, err := r.Lookup(ProfileHalal)
	require.NoError(t, err)
	require.Equal(t, []string{"pork", "gelatin (non-halal)"}, got)

	got[0] = "changed"
	again, err := r.Lookup(ProfileHalal)
	require.NoError(t, err)
	require.Equal(t, "pork", again[0])

	_, err = r.Lookup(ProfileGlutenFree)
	require.ErrorIs(t, err, ErrUnknownProfile)
}

func TestProfileRegistry_Order(t *testing.T) {
	r := testRegistry(t)
	profiles := r.Profiles()
	require.Len(t, profiles, 2)
	require.Equal(t, ProfileVegan, profiles[0].ID)
	require.Equal(t, ProfileHalal, profiles[1].ID)
	require.Equal(t, "Vegan", profiles[0].Label())
	require.Equal(t, "halal", profiles[1].Label())
}

func TestProfileRegistry_Rejects(t *testing.T) {
	_, err := NewProfileRegistry([]Profile{{ID: ProfileVegan}, {ID: ProfileVegan}})
	require.Error(t, err)

	_, err = NewProfileRegistry([]Profile{{ID: ProfileNone}})
	require.Error(t, err)
}

func TestProfileRegistry_Parse(t *testing.T) {
	r := testRegistry(t)

	id, err := r.Parse("none")
	require.NoError(t, err)
	require.Equal(t, ProfileNone, id)

	id, err = r.Parse(" VEGAN ")
	require.NoError(t, err)
	require.Equal(t, ProfileVegan, id)

	_, err = r.Parse("keto")
	require.ErrorIs(t, err, ErrUnknownProfile)
}
