package port

import (
	"context"

	"label-bot/internal/domain/entity"
)

// LabelService внешний бэкенд: распознавание, оценка и хранение предпочтений.
// Ошибка означает сбой транспорта; отказ сервера приходит в ответе с OK == false.
type LabelService interface {
	// Extract отправляет фото этикетки и возвращает состав
	Extract(ctx context.Context, image entity.LabelImage) (*entity.ExtractReply, error)

	// Predict запрашивает оценку пригодности состава
	Predict(ctx context.Context, req entity.PredictRequest) (*entity.PredictReply, error)

	// SavePreferences сохраняет предпочтения
	SavePreferences(ctx context.Context, prefs entity.Preferences) (*entity.SaveReply, error)

	// GetPreferences загружает сохранённые предпочтения
	GetPreferences(ctx context.Context) (*entity.PreferencesReply, error)
}

// LabelServiceFactory создаёт клиент бэкенда для новой сессии
type LabelServiceFactory func() (LabelService, error)
