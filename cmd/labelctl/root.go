package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"label-bot/config"
	app "label-bot/internal/application"
	"label-bot/internal/container"
	"label-bot/internal/domain/entity"
	"label-bot/internal/infrastructure/backend"
	"label-bot/internal/infrastructure/registry"
	"label-bot/internal/infrastructure/storage"
	"label-bot/internal/infrastructure/vision"
)

// Консоль работает с одной сессией
const consoleSessionID int64 = 0

var (
	backendURL   string
	profilesFile string
	profileFlag  string
	likesFlag    string
	dislikesFlag string
	allergenFlag string
)

// rootCmd точка входа CLI
var rootCmd = &cobra.Command{
	Use:   "labelctl",
	Short: "Check food labels against dietary preferences",
	Long: `labelctl extracts ingredients from a label photo, predicts how well the
product suits your preferences and keeps those preferences on the backend.

Preference flags override what the backend has saved for the session:
  --profile vegan          Replace allergens with the profile's list
  --likes "oats, cocoa"    Comma separated, blanks are ignored`,
	SilenceUsage: true,
}

// Execute запускает CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base url (default from BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&profilesFile, "profiles", "", "profiles YAML file (default from PROFILES_FILE or builtin)")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "dietary profile id, or none")
	rootCmd.PersistentFlags().StringVar(&likesFlag, "likes", "", "liked ingredients, comma separated")
	rootCmd.PersistentFlags().StringVar(&dislikesFlag, "dislikes", "", "disliked ingredients, comma separated")
	rootCmd.PersistentFlags().StringVar(&allergenFlag, "allergens", "", "allergens, comma separated")
}

// cli собранное приложение для одной команды
type cli struct {
	profiles *entity.ProfileRegistry
	sessions *app.SessionService
	console  *consoleSurface
}

// newCLI читает конфигурацию и собирает сервисы. Флаги важнее окружения.
func newCLI(cmd *cobra.Command) (*cli, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if backendURL != "" {
		cfg.BackendURL = backendURL
	}
	if profilesFile != "" {
		cfg.ProfilesFile = profilesFile
	}

	profiles, err := registry.Load(cfg.ProfilesFile)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}

	c := container.New(
		profiles,
		storage.NewMemorySessionRepository(),
		backend.Factory(cfg.BackendURL),
		vision.NewLabelPreparer(cfg.LabelMaxSide),
		cfg.NoticeDuration,
	)

	return &cli{
		profiles: c.Profiles,
		sessions: c.Sessions,
		console:  newConsoleSurface(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}, nil
}

// open открывает сессию (с загрузкой сохранённых предпочтений) и применяет флаги.
func (c *cli) open(ctx context.Context, cmd *cobra.Command) (*app.Controller, error) {
	ctrl, err := c.sessions.Open(ctx, consoleSessionID, c.console)
	if err != nil {
		return nil, err
	}
	if err := overridesFrom(cmd).apply(ctx, ctrl, c.profiles); err != nil {
		return nil, err
	}
	return ctrl, nil
}

// overrides значения флагов, заданные явно
type overrides struct {
	profile    string
	hasProfile bool
	fields     map[entity.Field]string
}

func overridesFrom(cmd *cobra.Command) overrides {
	o := overrides{fields: make(map[entity.Field]string)}
	flags := cmd.Flags()

	if flags.Changed("profile") {
		o.profile, o.hasProfile = profileFlag, true
	}
	if flags.Changed("likes") {
		o.fields[entity.FieldLikes] = likesFlag
	}
	if flags.Changed("dislikes") {
		o.fields[entity.FieldDislikes] = dislikesFlag
	}
	if flags.Changed("allergens") {
		o.fields[entity.FieldAllergens] = allergenFlag
	}
	return o
}

// apply выбирает профиль, затем заменяет поля. Явный --allergens важнее профиля.
func (o overrides) apply(ctx context.Context, ctrl *app.Controller, profiles *entity.ProfileRegistry) error {
	if o.hasProfile {
		id, err := profiles.Parse(o.profile)
		if err != nil {
			return err
		}
		if err := ctrl.SelectProfile(ctx, id); err != nil {
			return err
		}
	}

	for _, field := range entity.Fields {
		text, ok := o.fields[field]
		if !ok {
			continue
		}
		if err := ctrl.SetField(ctx, field, text); err != nil {
			return err
		}
	}
	return nil
}
