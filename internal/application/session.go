package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

// SessionService открывает сессии и держит их контроллеры
type SessionService struct {
	repo           port.SessionRepository
	reconciler     *ProfileReconciler
	newService     port.LabelServiceFactory
	preparer       port.ImagePreparer
	noticeDuration time.Duration

	mu          sync.Mutex
	controllers map[int64]*Controller
}

func NewSessionService(
	repo port.SessionRepository,
	reconciler *ProfileReconciler,
	newService port.LabelServiceFactory,
	preparer port.ImagePreparer,
	noticeDuration time.Duration,
) *SessionService {
	return &SessionService{
		repo:           repo,
		reconciler:     reconciler,
		newService:     newService,
		preparer:       preparer,
		noticeDuration: noticeDuration,
		controllers:    make(map[int64]*Controller),
	}
}

// Open возвращает контроллер сессии. Для новой сессии загружаются сохранённые
// предпочтения, ровно один раз.
func (s *SessionService) Open(ctx context.Context, sessionID int64, surface port.Surface) (*Controller, error) {
	c, created, err := s.controller(ctx, sessionID, surface)
	if err != nil {
		return nil, err
	}

	if created {
		c.LoadPreferences(ctx)
		if err := s.repo.Save(ctx, c.Session()); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	return c, nil
}

func (s *SessionService) controller(ctx context.Context, sessionID int64, surface port.Surface) (*Controller, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[sessionID]; ok {
		return c, false, nil
	}

	session, created, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("get session: %w", err)
	}

	service, err := s.newService()
	if err != nil {
		return nil, false, fmt.Errorf("create backend client: %w", err)
	}

	c := NewController(session, service, s.reconciler, s.preparer, surface, s.notifier(surface))
	s.controllers[sessionID] = c
	return c, created, nil
}

// notifier выбирает, как показывать уведомления: поверхность со своим Notify
// (консоль) показывает их сама, остальным нужен баннер с таймером.
func (s *SessionService) notifier(surface port.Surface) port.Notifier {
	if n, ok := surface.(port.Notifier); ok {
		return n
	}
	return NewBanner(surface, s.noticeDuration)
}

// Close забывает сессию и её контроллер.
func (s *SessionService) Close(ctx context.Context, sessionID int64) error {
	s.mu.Lock()
	delete(s.controllers, sessionID)
	s.mu.Unlock()

	return s.repo.Delete(ctx, sessionID)
}

// BeginInput переводит сессию в ожидание текста для поля.
func (s *SessionService) BeginInput(ctx context.Context, session *entity.Session, field entity.Field) error {
	session.SetState(entity.AwaitingState(field))
	return s.repo.Save(ctx, session)
}

// Cancel возвращает сессию в обычное состояние.
func (s *SessionService) Cancel(ctx context.Context, session *entity.Session) error {
	session.SetState(entity.StateIdle)
	return s.repo.Save(ctx, session)
}
