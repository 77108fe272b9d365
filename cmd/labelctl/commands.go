package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	app "label-bot/internal/application"
	"label-bot/internal/domain/entity"
)

var ingredientsFlag string

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List dietary profiles and their allergens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newCLI(cmd)
		if err != nil {
			return err
		}
		printProfiles(cmd, c.profiles)
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract ingredients from a label photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ctrl, err := openSession(cmd)
		if err != nil {
			return err
		}

		img, err := readImage(args[0])
		if err != nil {
			return err
		}
		ctrl.AttachImage(cmd.Context(), img)

		return c.finish(cmd, ctrl.Extract(cmd.Context()), ctrl.Session().IngredientsText())
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict suitability of ingredients for your preferences",
	Long: `Predict sends the ingredients given with --ingredients together with the
current preferences. Without --ingredients the ingredient list is empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, ctrl, err := openSession(cmd)
		if err != nil {
			return err
		}

		ctrl.Session().ReplaceIngredients(entity.ParseTokens(ingredientsFlag))
		return c.finish(cmd, ctrl.Predict(cmd.Context()), ctrl.Session().ScoreText())
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save preferences on the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, ctrl, err := openSession(cmd)
		if err != nil {
			return err
		}
		return c.finish(cmd, ctrl.SavePreferences(cmd.Context()), "")
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Show preferences saved on the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newCLI(cmd)
		if err != nil {
			return err
		}
		ctrl, err := c.sessions.Open(cmd.Context(), consoleSessionID, c.console)
		if err != nil {
			return err
		}
		printPreferences(cmd, ctrl, c.profiles)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <image>",
	Short: "Extract ingredients from a label photo and predict suitability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI(cmd)
		if err != nil {
			return err
		}
		return runCheck(cmd, c, args[0])
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit preferences interactively and save them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, ctrl, err := openSession(cmd)
		if err != nil {
			return err
		}
		if err := editPreferences(cmd.Context(), ctrl, c.profiles); err != nil {
			return err
		}
		return c.finish(cmd, ctrl.SavePreferences(cmd.Context()), "")
	},
}

func init() {
	predictCmd.Flags().StringVar(&ingredientsFlag, "ingredients", "", "ingredients, comma separated")

	rootCmd.AddCommand(profilesCmd, extractCmd, predictCmd, saveCmd, loadCmd, checkCmd, editCmd)
}

func openSession(cmd *cobra.Command) (*cli, *app.Controller, error) {
	c, err := newCLI(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := c.open(cmd.Context(), cmd)
	if err != nil {
		return nil, nil, err
	}
	return c, ctrl, nil
}

// finish печатает результат сценария; неуспех становится ошибкой команды.
func (c *cli) finish(cmd *cobra.Command, result entity.Result, display string) error {
	if display != "" {
		fmt.Fprintln(cmd.OutOrStdout(), display)
	}
	return result.Err()
}

// runCheck параллельно открывает сессию и читает фото, затем распознаёт состав и оценивает его.
func runCheck(cmd *cobra.Command, c *cli, path string) error {
	var (
		ctrl *app.Controller
		img  entity.LabelImage
	)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		ctrl, err = c.open(ctx, cmd)
		return err
	})
	g.Go(func() error {
		var err error
		img, err = readImage(path)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	ctx = cmd.Context()
	ctrl.AttachImage(ctx, img)

	if err := c.finish(cmd, ctrl.Extract(ctx), ctrl.Session().IngredientsText()); err != nil {
		return err
	}
	return c.finish(cmd, ctrl.Predict(ctx), ctrl.Session().ScoreText())
}

// editPreferences форма: профиль, затем три поля; аллергены заполнены из профиля.
func editPreferences(ctx context.Context, ctrl *app.Controller, profiles *entity.ProfileRegistry) error {
	session := ctrl.Session()

	options := []huh.Option[string]{huh.NewOption("Custom (no profile)", "none")}
	for _, p := range profiles.Profiles() {
		options = append(options, huh.NewOption(p.Label(), string(p.ID)))
	}

	selected := string(session.Selected())
	if selected == "" {
		selected = "none"
	}
	err := huh.NewSelect[string]().
		Title("Dietary profile").
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return err
	}

	id, err := profiles.Parse(selected)
	if err != nil {
		return err
	}
	if id != session.Selected() {
		if err := ctrl.SelectProfile(ctx, id); err != nil {
			return err
		}
	}

	fields := session.Fields()
	for _, field := range entity.Fields {
		text := fields.Get(field)
		err := huh.NewInput().
			Title(fieldTitle(field)).
			Description("Comma separated").
			Value(&text).
			Run()
		if err != nil {
			return err
		}
		if err := ctrl.SetField(ctx, field, text); err != nil {
			return err
		}
	}
	return nil
}

func readImage(path string) (entity.LabelImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.LabelImage{}, fmt.Errorf("read image: %w", err)
	}
	return entity.LabelImage{Name: filepath.Base(path), Data: data}, nil
}

func fieldTitle(field entity.Field) string {
	s := string(field)
	return strings.ToUpper(s[:1]) + s[1:]
}

func printProfiles(cmd *cobra.Command, profiles *entity.ProfileRegistry) {
	out := cmd.OutOrStdout()
	for _, p := range profiles.Profiles() {
		fmt.Fprintf(out, "%-12s %-12s %s\n", p.ID, p.Label(), entity.JoinTokens(p.Allergens))
	}
}

func printPreferences(cmd *cobra.Command, ctrl *app.Controller, profiles *entity.ProfileRegistry) {
	out := cmd.OutOrStdout()
	session := ctrl.Session()

	profile := "none"
	if p, ok := profiles.Profile(session.Selected()); ok {
		profile = p.Label()
	}
	fields := session.Fields()

	fmt.Fprintf(out, "Profile:   %s\n", profile)
	for _, field := range entity.Fields {
		fmt.Fprintf(out, "%-10s %s\n", fieldTitle(field)+":", fields.Get(field))
	}
}
