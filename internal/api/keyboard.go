package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"label-bot/internal/domain/entity"
)

// Префиксы callback data кнопок панели
const (
	cbProfile = "profile"
	cbField   = "field"
	cbRun     = "run"

	profileNoneValue = "none"
	profilesPerRow   = 3
)

var fieldTitles = map[entity.Field]string{
	entity.FieldLikes:     "Likes",
	entity.FieldDislikes:  "Dislikes",
	entity.FieldAllergens: "Allergens",
}

// parseCallback разбирает callback data вида "<kind>:<value>".
func parseCallback(data string) (kind, value string, ok bool) {
	kind, value, ok = strings.Cut(data, ":")
	if !ok || kind == "" || value == "" {
		return "", "", false
	}
	return kind, value, true
}

func callbackData(kind, value string) string {
	return kind + ":" + value
}

// panelText текст панели сессии: профиль, поля, фото и результаты.
func panelText(session *entity.Session, profiles *entity.ProfileRegistry) string {
	var sb strings.Builder
	sb.WriteString("🏷 Food label check\n\n")

	profile := "Custom"
	if p, ok := profiles.Profile(session.Selected()); ok {
		profile = p.Label()
	}
	fmt.Fprintf(&sb, "Profile: %s\n", profile)

	fields := session.Fields()
	for _, f := range entity.Fields {
		text := fields.Get(f)
		if strings.TrimSpace(text) == "" {
			text = "(empty)"
		}
		fmt.Fprintf(&sb, "%s: %s\n", fieldTitles[f], text)
	}

	if img, ok := session.Image(); ok {
		fmt.Fprintf(&sb, "\n📎 Label photo: %s (%d bytes)\n", img.Name, len(img.Data))
	} else {
		sb.WriteString("\n📸 Send a photo of the ingredients label.\n")
	}

	if text := session.IngredientsText(); text != "" {
		sb.WriteString("\n" + text + "\n")
	}
	if text := session.ScoreText(); text != "" {
		sb.WriteString("\n" + text + "\n")
	}

	switch session.State() {
	case entity.StateAwaitingLikes, entity.StateAwaitingDislikes, entity.StateAwaitingAllergens:
		field, _ := session.State().AwaitedField()
		fmt.Fprintf(&sb, "\n✏️ Waiting for %s...\n", strings.ToLower(fieldTitles[field]))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// panelKeyboard кнопки панели: профили, поля и три сценария.
func panelKeyboard(session *entity.Session, profiles *entity.ProfileRegistry) tgbotapi.InlineKeyboardMarkup {
	selected := session.Selected()

	profileButtons := make([]tgbotapi.InlineKeyboardButton, 0, len(profiles.Profiles())+1)
	for _, p := range profiles.Profiles() {
		profileButtons = append(profileButtons, tgbotapi.NewInlineKeyboardButtonData(
			markSelected(p.Label(), p.ID == selected),
			callbackData(cbProfile, string(p.ID)),
		))
	}
	profileButtons = append(profileButtons, tgbotapi.NewInlineKeyboardButtonData(
		markSelected("Custom", selected == entity.ProfileNone),
		callbackData(cbProfile, profileNoneValue),
	))

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 4)
	for start := 0; start < len(profileButtons); start += profilesPerRow {
		end := min(start+profilesPerRow, len(profileButtons))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(profileButtons[start:end]...))
	}

	fieldRow := make([]tgbotapi.InlineKeyboardButton, 0, len(entity.Fields))
	for _, f := range entity.Fields {
		fieldRow = append(fieldRow, tgbotapi.NewInlineKeyboardButtonData("✏️ "+fieldTitles[f], callbackData(cbField, string(f))))
	}
	rows = append(rows, fieldRow)

	for _, t := range []*entity.Trigger{session.Extract, session.Predict, session.Save} {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.Label(), callbackData(cbRun, string(t.ID()))),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func markSelected(label string, selected bool) string {
	if selected {
		return "✅ " + label
	}
	return label
}

// noticeText текст сообщения-баннера.
func noticeText(notice entity.Notice) string {
	if notice.Kind == entity.NoticeError {
		return "⚠️ " + notice.Text
	}
	return "✅ " + notice.Text
}
