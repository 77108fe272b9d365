package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"label-bot/internal/domain/entity"
)

func testProfiles(t *testing.T) *entity.ProfileRegistry {
	t.Helper()
	r, err := entity.NewProfileRegistry([]entity.Profile{
		{ID: entity.ProfileVegan, Title: "Vegan", Allergens: []string{"milk", "egg"}},
		{ID: entity.ProfileDairyFree, Title: "Dairy-free", Allergens: []string{"milk", "whey"}},
		{ID: entity.ProfileHalal, Title: "Halal", Allergens: []string{"pork"}},
		{ID: entity.ProfileGlutenFree, Title: "Gluten-free", Allergens: []string{"wheat"}},
	})
	require.NoError(t, err)
	return r
}

func TestParseCallback(t *testing.T) {
	cases := []struct {
		data  string
		kind  string
		value string
		ok    bool
	}{
		{"profile:vegan", cbProfile, "vegan", true},
		{"profile:none", cbProfile, "none", true},
		{"run:extract", cbRun, "extract", true},
		{"field:likes", cbField, "likes", true},
		{"run:", "", "", false},
		{":extract", "", "", false},
		{"garbage", "", "", false},
	}

	for _, tc := range cases {
		kind, value, ok := parseCallback(tc.data)
		require.Equal(t, tc.ok, ok, tc.data)
		require.Equal(t, tc.kind, kind, tc.data)
		require.Equal(t, tc.value, value, tc.data)
	}
}

func buttons(markup tgbotapi.InlineKeyboardMarkup) map[string]string {
	out := make(map[string]string)
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			out[*b.CallbackData] = b.Text
		}
	}
	return out
}

func TestPanelKeyboard(t *testing.T) {
	profiles := testProfiles(t)
	session := entity.NewSession(1)

	got := buttons(panelKeyboard(session, profiles))
	require.Equal(t, "✅ Custom", got["profile:none"])
	require.Equal(t, "Vegan", got["profile:vegan"])
	require.Equal(t, "✏️ Allergens", got["field:allergens"])
	require.Equal(t, "Extract Ingredients", got["run:extract"])
	require.Equal(t, "Predict Suitability", got["run:predict"])
	require.Equal(t, "Save Preferences", got["run:save"])

	session.Select(entity.ProfileHalal)
	session.Predict.MarkBusy()

	got = buttons(panelKeyboard(session, profiles))
	require.Equal(t, "Custom", got["profile:none"])
	require.Equal(t, "✅ Halal", got["profile:halal"])
	require.Equal(t, "Predicting...", got["run:predict"])
}

func TestPanelKeyboard_CallbackDataFits(t *testing.T) {
	for data := range buttons(panelKeyboard(entity.NewSession(1), testProfiles(t))) {
		require.LessOrEqual(t, len(data), 64)
	}
}

func TestPanelText(t *testing.T) {
	profiles := testProfiles(t)
	session := entity.NewSession(1)

	text := panelText(session, profiles)
	require.Contains(t, text, "Profile: Custom")
	require.Contains(t, text, "Likes: (empty)")
	require.Contains(t, text, "Send a photo")

	session.Select(entity.ProfileVegan)
	require.NoError(t, session.SetField(entity.FieldAllergens, "milk, egg"))
	session.AttachImage(entity.LabelImage{Name: "label.jpg", Data: []byte{1, 2}})
	session.SetIngredientsText("Extracted Ingredients:\nsugar, milk")
	session.SetScoreText("Suitability Score: 12.5")
	session.SetState(entity.StateAwaitingLikes)

	text = panelText(session, profiles)
	require.Contains(t, text, "Profile: Vegan")
	require.Contains(t, text, "Allergens: milk, egg")
	require.Contains(t, text, "Label photo: label.jpg (2 bytes)")
	require.Contains(t, text, "Extracted Ingredients:\nsugar, milk")
	require.Contains(t, text, "Suitability Score: 12.5")
	require.Contains(t, text, "Waiting for likes")
}

func TestNoticeText(t *testing.T) {
	require.Equal(t, "✅ Preferences saved!", noticeText(entity.SuccessNotice("Preferences saved!")))
	require.Equal(t, "⚠️ Network error during save.", noticeText(entity.ErrorNotice("Network error during save.")))
}
