package app

import (
	"context"
	"log"

	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

// Workflow описывает один сценарий запроса к бэкенду
type Workflow[R any] struct {
	Name    string
	Trigger *entity.Trigger

	// Ready проверяет локальные условия; если false, запрос не отправляется
	Ready    func() bool
	NotReady string

	// Call выполняет ровно один запрос; ошибка означает сбой транспорта
	Call func(ctx context.Context) (R, error)

	// Accept проверяет форму ответа и достаёт текст ошибки сервера
	Accept func(reply R) (ok bool, message string)

	// Apply обновляет состояние после успешного ответа
	Apply func(reply R)

	// Reject обновляет отображение после отказа сервера
	Reject func(message string)

	Success string
	Failure func(message string) string
	Network string
}

// Runner выполняет сценарии: кнопка занята -> запрос -> разбор ответа -> кнопка свободна -> уведомление
type Runner struct {
	surface  port.Surface
	notifier port.Notifier
}

func NewRunner(surface port.Surface, notifier port.Notifier) *Runner {
	return &Runner{surface: surface, notifier: notifier}
}

// Run выполняет сценарий. Кнопка освобождается при любом исходе,
// в том числе если её заранее занял Press.
func Run[R any](ctx context.Context, r *Runner, session *entity.Session, wf Workflow[R]) entity.Result {
	if wf.Ready != nil && !wf.Ready() {
		wf.Trigger.MarkIdle()
		r.surface.Alert(ctx, wf.NotReady)
		return entity.Result{Kind: entity.ResultLocalValidation, Message: wf.NotReady}
	}

	wf.Trigger.MarkBusy()
	r.surface.Refresh(ctx, session)
	defer func() {
		wf.Trigger.MarkIdle()
		r.surface.Refresh(ctx, session)
	}()

	reply, err := wf.Call(ctx)
	if err != nil {
		log.Printf("%s: %v", wf.Name, err)
		r.notifier.Notify(ctx, entity.ErrorNotice(wf.Network))
		return entity.Result{Kind: entity.ResultTransport, Message: wf.Network}
	}

	ok, message := wf.Accept(reply)
	if !ok {
		log.Printf("%s: rejected by backend: %q", wf.Name, message)
		if wf.Reject != nil {
			wf.Reject(message)
		}
		text := wf.Failure(message)
		r.notifier.Notify(ctx, entity.ErrorNotice(text))
		return entity.Result{Kind: entity.ResultSemantic, Message: text}
	}

	if wf.Apply != nil {
		wf.Apply(reply)
	}
	r.notifier.Notify(ctx, entity.SuccessNotice(wf.Success))
	return entity.Result{Kind: entity.ResultSuccess, Message: wf.Success}
}
