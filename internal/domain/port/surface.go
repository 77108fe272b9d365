package port

import (
	"context"

	"label-bot/internal/domain/entity"
)

// NoticeDisplay место, где показывается баннер уведомлений
type NoticeDisplay interface {
	// ShowNotice показывает уведомление, заменяя текущее
	ShowNotice(ctx context.Context, notice entity.Notice)

	// HideNotice скрывает баннер
	HideNotice(ctx context.Context)
}

// Surface пользовательский интерфейс одной сессии (чат Telegram или консоль)
type Surface interface {
	NoticeDisplay

	// Alert блокирующее предупреждение о невыполненном условии, запрос не отправлялся
	Alert(ctx context.Context, text string)

	// Refresh перерисовывает поля, выбор профиля, кнопки и результаты
	Refresh(ctx context.Context, session *entity.Session)
}

// Notifier показывает временные уведомления
type Notifier interface {
	Notify(ctx context.Context, notice entity.Notice)
}
