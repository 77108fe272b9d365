package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"label-bot/internal/domain/entity"
)

func TestProfileReconciler_RoundTrip(t *testing.T) {
	r := NewProfileReconciler(testRegistry(t))

	for _, p := range r.Registry().Profiles() {
		text, err := r.ApplyProfile(p.ID)
		require.NoError(t, err)
		require.Equal(t, p.ID, r.InferProfile(entity.ParseTokens(text)))
	}
}

func TestProfileReconciler_None(t *testing.T) {
	r := NewProfileReconciler(testRegistry(t))

	text, err := r.ApplyProfile(entity.ProfileNone)
	require.NoError(t, err)
	require.Equal(t, "", text)

	require.Equal(t, entity.ProfileNone, r.InferProfile([]string{}))
	require.Equal(t, entity.ProfileNone, r.InferProfile(nil))
}

func TestProfileReconciler_ApplyCanonicalOrder(t *testing.T) {
	r := NewProfileReconciler(testRegistry(t))

	text, err := r.ApplyProfile(entity.ProfileHalal)
	require.NoError(t, err)
	require.Equal(t, "pork, bacon, gelatin (non-halal), alcohol, ethanol, vanilla extract", text)

	_, err = r.ApplyProfile("keto")
	require.ErrorIs(t, err, entity.ErrUnknownProfile)
}

func TestProfileReconciler_OrderIndependent(t *testing.T) {
	r := NewProfileReconciler(testRegistry(t))

	permuted := []string{"whey", "milk", "egg", "casein", "cheese", "gelatin", "lactose", "butter", "honey"}
	require.Equal(t, entity.ProfileVegan, r.InferProfile(permuted))

	require.Equal(t, entity.ProfileGlutenFree,
		r.InferProfile([]string{"triticale", "semolina", "malt", "rye", "barley", "wheat"}))
}

func TestProfileReconciler_LengthMismatch(t *testing.T) {
	r := NewProfileReconciler(testRegistry(t))

	require.Equal(t, entity.ProfileNone, r.InferProfile([]string{"milk", "cheese"}))

	superset := append(entity.ParseTokens("milk, cheese, butter, honey, gelatin, egg, casein, lactose, whey"), "soy")
	require.Equal(t, entity.ProfileNone, r.InferProfile(superset))
}

func TestProfileReconciler_DuplicatesNotNormalised(t *testing.T) {
	r := NewProfileReconciler(testRegistry(t))

	// Дубликат увеличивает длину, совпадения нет.
	withDup := []string{"wheat", "wheat", "barley", "rye", "malt", "semolina", "triticale"}
	require.Equal(t, entity.ProfileNone, r.InferProfile(withDup))
}

func TestProfileReconciler_CaseSensitive(t *testing.T) {
	r := NewProfileReconciler(testRegistry(t))

	require.Equal(t, entity.ProfileNone,
		r.InferProfile([]string{"Wheat", "barley", "rye", "malt", "semolina", "triticale"}))
}
