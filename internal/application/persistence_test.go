package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"label-bot/internal/domain/entity"
)

func TestSave_SendsParsedFields(t *testing.T) {
	svc := &fakeService{saveReply: &entity.SaveReply{OK: true}}
	c, surface := newTestController(t, svc)
	c.Session().SetFields(entity.PreferenceFields{Likes: "oats", Dislikes: "", Allergens: "milk, egg"})

	res := c.SavePreferences(context.Background())

	require.True(t, res.OK())
	require.Equal(t, []entity.Preferences{{
		Likes:     []string{"oats"},
		Dislikes:  []string{},
		Allergens: []string{"milk", "egg"},
	}}, svc.saveCalls)
	require.Equal(t, entity.SuccessNotice("Preferences saved!"), surface.lastNotice())
}

func TestSave_FailureRestoresTrigger(t *testing.T) {
	svc := &fakeService{saveReply: &entity.SaveReply{OK: false, Message: "User not logged in"}}
	c, surface := newTestController(t, svc)
	s := c.Session()

	var labelDuringCall string
	svc.during = func() { labelDuringCall = s.Save.Label() }

	res := c.SavePreferences(context.Background())

	require.Equal(t, entity.ResultSemantic, res.Kind)
	require.Equal(t, "Saving...", labelDuringCall)
	require.False(t, s.Save.Busy())
	require.Equal(t, "Save Preferences", s.Save.Label())
	require.Equal(t, entity.ErrorNotice("Failed to save preferences: User not logged in"), surface.lastNotice())
}

func TestSave_FailureWithoutMessage(t *testing.T) {
	svc := &fakeService{saveReply: &entity.SaveReply{OK: false}}
	c, surface := newTestController(t, svc)

	c.SavePreferences(context.Background())
	require.Equal(t, entity.ErrorNotice("Failed to save preferences: Unknown error"), surface.lastNotice())
}

func TestSave_TransportFailureRestoresTrigger(t *testing.T) {
	svc := &fakeService{saveErr: errNetwork}
	c, surface := newTestController(t, svc)

	res := c.SavePreferences(context.Background())

	require.Equal(t, entity.ResultTransport, res.Kind)
	require.False(t, c.Session().Save.Busy())
	require.Equal(t, entity.ErrorNotice("Network error during save."), surface.lastNotice())
}

func TestLoad_PermutedVeganSelectsVegan(t *testing.T) {
	svc := &fakeService{prefsReply: &entity.PreferencesReply{OK: true, Preferences: entity.Preferences{
		Likes:     []string{"oats", "berries"},
		Dislikes:  []string{},
		Allergens: []string{"whey", "milk", "egg", "casein", "cheese", "gelatin", "lactose", "butter", "honey"},
	}}}
	c, surface := newTestController(t, svc)
	s := c.Session()

	require.True(t, c.LoadPreferences(context.Background()))

	require.Equal(t, entity.ProfileVegan, s.Selected())
	require.Equal(t, "oats, berries", s.Fields().Likes)
	require.Equal(t, "", s.Fields().Dislikes)
	require.Equal(t, "whey, milk, egg, casein, cheese, gelatin, lactose, butter, honey", s.Fields().Allergens)
	require.Empty(t, surface.notices)
	require.Empty(t, surface.alerts)
}

func TestLoad_SubsetSelectsNone(t *testing.T) {
	svc := &fakeService{prefsReply: &entity.PreferencesReply{OK: true, Preferences: entity.Preferences{
		Likes: []string{}, Dislikes: []string{}, Allergens: []string{"milk", "cheese"},
	}}}
	c, _ := newTestController(t, svc)

	require.True(t, c.LoadPreferences(context.Background()))
	require.Equal(t, entity.ProfileNone, c.Session().Selected())
	require.Equal(t, "milk, cheese", c.Session().Fields().Allergens)
}

func TestLoad_FailuresAreSilent(t *testing.T) {
	for name, svc := range map[string]*fakeService{
		"not logged in": {prefsReply: &entity.PreferencesReply{OK: false, Message: "User not logged in"}},
		"network":       {prefsErr: errNetwork},
	} {
		t.Run(name, func(t *testing.T) {
			c, surface := newTestController(t, svc)
			c.Session().SetFields(entity.PreferenceFields{Likes: "kept"})

			require.False(t, c.LoadPreferences(context.Background()))
			require.Empty(t, surface.notices)
			require.Empty(t, surface.alerts)
			require.Equal(t, "kept", c.Session().Fields().Likes)
		})
	}
}

func TestWorkflows_OverlapAcrossTriggers(t *testing.T) {
	svc := &fakeService{
		saveReply:    &entity.SaveReply{OK: true},
		predictReply: &entity.PredictReply{OK: true, Score: 1},
	}
	c, _ := newTestController(t, svc)
	s := c.Session()

	// Сохранение идёт, пока оценка ещё занята: общей блокировки нет.
	var predictBusyDuringSave bool
	inPredict := false
	svc.during = func() {
		if inPredict {
			inPredict = false
			res := c.SavePreferences(context.Background())
			require.True(t, res.OK())
			predictBusyDuringSave = s.Predict.Busy()
		}
	}
	inPredict = true

	require.True(t, c.Predict(context.Background()).OK())
	require.True(t, predictBusyDuringSave)
	require.Len(t, svc.saveCalls, 1)
	require.False(t, s.Predict.Busy())
	require.False(t, s.Save.Busy())
}
