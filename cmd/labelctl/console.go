package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

// consoleSurface выводит уведомления и предупреждения в терминал.
// Панели у консоли нет: результаты печатают сами команды.
type consoleSurface struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

func newConsoleSurface(out, errOut io.Writer) *consoleSurface {
	return &consoleSurface{out: out, errOut: errOut}
}

func (c *consoleSurface) Alert(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.errOut, "! %s\n", text)
}

func (c *consoleSurface) Refresh(ctx context.Context, session *entity.Session) {}

func (c *consoleSurface) ShowNotice(ctx context.Context, notice entity.Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if notice.Kind == entity.NoticeError {
		fmt.Fprintf(c.errOut, "✖ %s\n", notice.Text)
		return
	}
	fmt.Fprintf(c.out, "✔ %s\n", notice.Text)
}

func (c *consoleSurface) HideNotice(ctx context.Context) {}

// Notify показывает уведомление сразу, без таймера.
func (c *consoleSurface) Notify(ctx context.Context, notice entity.Notice) {
	c.ShowNotice(ctx, notice)
}

var (
	_ port.Surface  = (*consoleSurface)(nil)
	_ port.Notifier = (*consoleSurface)(nil)
)
