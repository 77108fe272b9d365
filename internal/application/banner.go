package app

import (
	"context"
	"sync"
	"time"

	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

// DefaultNoticeDuration сколько уведомление висит на экране
const DefaultNoticeDuration = 4 * time.Second

// Banner показывает одно уведомление за раз и скрывает его по таймеру.
// Новое уведомление сразу заменяет текущее и запускает таймер заново, очереди нет.
type Banner struct {
	display  port.NoticeDisplay
	duration time.Duration

	mu    sync.Mutex
	seq   uint64
	timer *time.Timer
}

// NewBanner создаёт баннер поверх места отображения.
func NewBanner(display port.NoticeDisplay, duration time.Duration) *Banner {
	if duration <= 0 {
		duration = DefaultNoticeDuration
	}
	return &Banner{display: display, duration: duration}
}

// Notify показывает уведомление
func (b *Banner) Notify(ctx context.Context, notice entity.Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	seq := b.seq
	if b.timer != nil {
		b.timer.Stop()
	}

	b.display.ShowNotice(ctx, notice)

	hideCtx := context.WithoutCancel(ctx)
	b.timer = time.AfterFunc(b.duration, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		// Уведомление уже заменено, его таймер не должен скрыть преемника.
		if b.seq != seq {
			return
		}
		b.timer = nil
		b.display.HideNotice(hideCtx)
	})
}

var _ port.Notifier = (*Banner)(nil)
