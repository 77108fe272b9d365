package port

import (
	"context"

	"label-bot/internal/domain/entity"
)

// SessionRepository интерфейс хранилища сессий
type SessionRepository interface {
	// Get возвращает сессию по ID, создаёт новую если не найдена; created сообщает, что сессия новая
	Get(ctx context.Context, sessionID int64) (session *entity.Session, created bool, err error)

	// Save сохраняет сессию
	Save(ctx context.Context, session *entity.Session) error

	// Delete забывает сессию
	Delete(ctx context.Context, sessionID int64) error
}
