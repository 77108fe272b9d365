package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"label-bot/internal/domain/entity"
)

var errNetwork = errors.New("connection refused")

func testRegistry(t *testing.T) *entity.ProfileRegistry {
	t.Helper()
	r, err := entity.NewProfileRegistry([]entity.Profile{
		{ID: entity.ProfileVegan, Allergens: []string{"milk", "cheese", "butter", "honey", "gelatin", "egg", "casein", "lactose", "whey"}},
		{ID: entity.ProfileDairyFree, Allergens: []string{"milk", "cheese", "butter", "cream", "yogurt", "curd", "lactose", "casein", "whey"}},
		{ID: entity.ProfileHalal, Allergens: []string{"pork", "bacon", "gelatin (non-halal)", "alcohol", "ethanol", "vanilla extract"}},
		{ID: entity.ProfileGlutenFree, Allergens: []string{"wheat", "barley", "rye", "malt", "semolina", "triticale"}},
	})
	require.NoError(t, err)
	return r
}

type fakeService struct {
	mu sync.Mutex

	extractReply *entity.ExtractReply
	extractErr   error
	predictReply *entity.PredictReply
	predictErr   error
	saveReply    *entity.SaveReply
	saveErr      error
	prefsReply   *entity.PreferencesReply
	prefsErr     error

	// during вызывается внутри каждого запроса
	during func()

	extractCalls []entity.LabelImage
	predictCalls []entity.PredictRequest
	saveCalls    []entity.Preferences
	getCalls     int
}

func (f *fakeService) hook() {
	if f.during != nil {
		f.during()
	}
}

func (f *fakeService) Extract(ctx context.Context, image entity.LabelImage) (*entity.ExtractReply, error) {
	f.hook()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extractCalls = append(f.extractCalls, image)
	return f.extractReply, f.extractErr
}

func (f *fakeService) Predict(ctx context.Context, req entity.PredictRequest) (*entity.PredictReply, error) {
	f.hook()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.predictCalls = append(f.predictCalls, req)
	return f.predictReply, f.predictErr
}

func (f *fakeService) SavePreferences(ctx context.Context, prefs entity.Preferences) (*entity.SaveReply, error) {
	f.hook()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveCalls = append(f.saveCalls, prefs)
	return f.saveReply, f.saveErr
}

func (f *fakeService) GetPreferences(ctx context.Context) (*entity.PreferencesReply, error) {
	f.hook()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	return f.prefsReply, f.prefsErr
}

// fakeSurface записывает всё, что контроллер показал пользователю
type fakeSurface struct {
	mu        sync.Mutex
	alerts    []string
	notices   []entity.Notice
	hides     int
	refreshes int
}

func (s *fakeSurface) ShowNotice(ctx context.Context, notice entity.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, notice)
}

func (s *fakeSurface) HideNotice(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hides++
}

func (s *fakeSurface) Notify(ctx context.Context, notice entity.Notice) {
	s.ShowNotice(ctx, notice)
}

func (s *fakeSurface) Alert(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, text)
}

func (s *fakeSurface) Refresh(ctx context.Context, session *entity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
}

func (s *fakeSurface) lastNotice() entity.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.notices) == 0 {
		return entity.Notice{}
	}
	return s.notices[len(s.notices)-1]
}

func (s *fakeSurface) hidden() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hides
}

func newTestController(t *testing.T, svc *fakeService) (*Controller, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{}
	c := NewController(entity.NewSession(1), svc, NewProfileReconciler(testRegistry(t)), nil, surface, surface)
	return c, surface
}
