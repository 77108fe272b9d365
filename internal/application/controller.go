package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

// ErrTriggerBusy кнопка уже выполняет свой запрос
var ErrTriggerBusy = errors.New("trigger is busy")

// Controller управляет одной сессией: поля предпочтений, выбор профиля и три сценария.
type Controller struct {
	session    *entity.Session
	service    port.LabelService
	reconciler *ProfileReconciler
	preparer   port.ImagePreparer
	surface    port.Surface
	runner     *Runner
}

// NewController создаёт контроллер сессии. preparer может быть nil.
func NewController(
	session *entity.Session,
	service port.LabelService,
	reconciler *ProfileReconciler,
	preparer port.ImagePreparer,
	surface port.Surface,
	notifier port.Notifier,
) *Controller {
	return &Controller{
		session:    session,
		service:    service,
		reconciler: reconciler,
		preparer:   preparer,
		surface:    surface,
		runner:     NewRunner(surface, notifier),
	}
}

func (c *Controller) Session() *entity.Session {
	return c.session
}

func (c *Controller) Profiles() *entity.ProfileRegistry {
	return c.reconciler.Registry()
}

// SelectProfile выбирает профиль и полностью заменяет поле аллергенов его списком.
func (c *Controller) SelectProfile(ctx context.Context, id entity.ProfileID) error {
	text, err := c.reconciler.ApplyProfile(id)
	if err != nil {
		return err
	}

	if err := c.session.SetField(entity.FieldAllergens, text); err != nil {
		return err
	}
	c.session.Select(id)
	c.surface.Refresh(ctx, c.session)
	return nil
}

// SetField заменяет текст поля. Выбор профиля при этом не меняется.
func (c *Controller) SetField(ctx context.Context, field entity.Field, text string) error {
	if err := c.session.SetField(field, text); err != nil {
		return err
	}
	c.session.SetState(entity.StateIdle)
	c.surface.Refresh(ctx, c.session)
	return nil
}

// AttachImage выбирает фото этикетки для следующего распознавания.
func (c *Controller) AttachImage(ctx context.Context, img entity.LabelImage) {
	c.session.AttachImage(img)
	c.surface.Refresh(ctx, c.session)
}

// prepare прогоняет фото через подготовку; при ошибке отправляется оригинал.
func (c *Controller) prepare(ctx context.Context, img entity.LabelImage) entity.LabelImage {
	if c.preparer == nil {
		return img
	}

	data, err := c.preparer.Prepare(ctx, img.Data)
	if err != nil {
		log.Printf("prepare label image %q: %v", img.Name, err)
		return img
	}
	return entity.LabelImage{Name: img.Name, Data: data}
}

// Press запускает сценарий нажатой кнопки. Кнопка занимается атомарно до запуска,
// поэтому повторное нажатие во время запроса второй запрос не отправляет.
func (c *Controller) Press(ctx context.Context, id entity.TriggerID) (entity.Result, error) {
	trigger, ok := c.session.Trigger(id)
	if !ok {
		return entity.Result{}, fmt.Errorf("unknown trigger %q", id)
	}
	if !trigger.TryMarkBusy() {
		return entity.Result{}, ErrTriggerBusy
	}

	switch id {
	case entity.TriggerExtract:
		return c.Extract(ctx), nil
	case entity.TriggerPredict:
		return c.Predict(ctx), nil
	default:
		return c.SavePreferences(ctx), nil
	}
}
