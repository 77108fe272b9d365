package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"label-bot/internal/domain/entity"
)

func TestBuiltin(t *testing.T) {
	r, err := Builtin()
	require.NoError(t, err)

	var ids []entity.ProfileID
	for _, p := range r.Profiles() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []entity.ProfileID{
		entity.ProfileVegan, entity.ProfileDairyFree, entity.ProfileHalal, entity.ProfileGlutenFree,
	}, ids)

	vegan, err := r.Lookup(entity.ProfileVegan)
	require.NoError(t, err)
	require.Equal(t, []string{"milk", "cheese", "butter", "honey", "gelatin", "egg", "casein", "lactose", "whey"}, vegan)

	halal, err := r.Lookup(entity.ProfileHalal)
	require.NoError(t, err)
	require.Contains(t, halal, "gelatin (non-halal)")
	require.Contains(t, halal, "vanilla extract")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("profiles: []\n"))
	require.Error(t, err)

	dup := `
profiles:
  - id: keto
    allergens: [sugar]
  - id: keto
    allergens: [rice]
`
	_, err = Parse(strings.NewReader(dup))
	require.Error(t, err)

	_, err = Parse(strings.NewReader("profiles: [oops"))
	require.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	doc := `
profiles:
  - id: keto
    title: Keto
    allergens: [sugar, rice, bread]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	r, err := Load(path)
	require.NoError(t, err)

	p, ok := r.Profile("keto")
	require.True(t, ok)
	require.Equal(t, "Keto", p.Label())
	require.Equal(t, []string{"sugar", "rice", "bread"}, p.Allergens)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
