package container

import (
	"time"

	app "label-bot/internal/application"
	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

type Container struct {
	Profiles   *entity.ProfileRegistry
	Reconciler *app.ProfileReconciler
	Sessions   *app.SessionService
}

func New(
	profiles *entity.ProfileRegistry,
	sessionRepo port.SessionRepository,
	newService port.LabelServiceFactory,
	preparer port.ImagePreparer,
	noticeDuration time.Duration,
) *Container {
	reconciler := app.NewProfileReconciler(profiles)
	sessions := app.NewSessionService(sessionRepo, reconciler, newService, preparer, noticeDuration)

	return &Container{
		Profiles:   profiles,
		Reconciler: reconciler,
		Sessions:   sessions,
	}
}
