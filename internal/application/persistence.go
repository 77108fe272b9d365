package app

import (
	"context"
	"log"

	"label-bot/internal/domain/entity"
)

const (
	msgSaved       = "Preferences saved!"
	msgSaveFailed  = "Failed to save preferences: "
	msgSaveUnknown = "Unknown error"
	msgSaveNetwork = "Network error during save."
)

// SavePreferences сохраняет три поля предпочтений на бэкенде.
func (c *Controller) SavePreferences(ctx context.Context) entity.Result {
	s := c.session

	return Run(ctx, c.runner, s, Workflow[*entity.SaveReply]{
		Name:    "save_preferences",
		Trigger: s.Save,
		Call: func(ctx context.Context) (*entity.SaveReply, error) {
			return c.service.SavePreferences(ctx, s.Fields().Parse())
		},
		Accept: func(r *entity.SaveReply) (bool, string) {
			return r.OK, r.Message
		},
		Success: msgSaved,
		Failure: func(message string) string {
			if message == "" {
				message = msgSaveUnknown
			}
			return msgSaveFailed + message
		},
		Network: msgSaveNetwork,
	})
}

// LoadPreferences загружает сохранённые предпочтения при старте сессии и
// восстанавливает выбор профиля. Ошибки пользователю не показываются:
// при первом запуске сохранённых данных ещё нет.
func (c *Controller) LoadPreferences(ctx context.Context) bool {
	s := c.session

	reply, err := c.service.GetPreferences(ctx)
	if err != nil {
		log.Printf("session %d: load preferences: %v", s.ID, err)
		return false
	}
	if !reply.OK {
		log.Printf("session %d: no saved preferences: %q", s.ID, reply.Message)
		return false
	}

	s.SetFields(entity.FieldsFrom(reply.Preferences))
	s.Select(c.reconciler.InferProfile(reply.Preferences.Allergens))
	c.surface.Refresh(ctx, s)
	return true
}
