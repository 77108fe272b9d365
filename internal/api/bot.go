package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	app "label-bot/internal/application"
	"label-bot/internal/container"
	"label-bot/internal/domain/entity"
)

const (
	msgHelp = `ℹ️ How to use the bot:

1️⃣ Pick a dietary profile or keep Custom
2️⃣ Fill in likes, dislikes and allergens (comma separated)
3️⃣ Send a photo of the ingredients label
4️⃣ Press Extract Ingredients, then Predict Suitability

📋 Commands:
/start — show the panel
/likes, /dislikes, /allergens — edit a field
/profile <id|none> — select a profile
/cancel — stop editing a field`

	msgSendPhoto      = "📸 Send a photo of the ingredients label, or use the panel buttons."
	msgUnknownCommand = "❓ Unknown command. Use /help."
	msgCancelled      = "❌ Editing cancelled."
	msgPleaseWait     = "⏳ Please wait..."
	msgNotAnImage     = "⚠️ Only image files can be checked."
	msgDownloadError  = "⚠️ Could not download the photo. Please try again."
	msgProfileUsage   = "Usage: /profile <id|none>\nAvailable: %s"
	msgFieldPrompt    = "✏️ Send your %s separated by commas.\nCurrent: %s"

	photoName = "label.jpg"
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	out      sender
	sessions *app.SessionService
	profiles *entity.ProfileRegistry
	files    *http.Client

	mu       sync.Mutex
	surfaces map[int64]*chatSurface
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:      api,
		out:      api,
		sessions: c.Sessions,
		profiles: c.Profiles,
		files:    http.DefaultClient,
		surfaces: make(map[int64]*chatSurface),
	}, nil
}

// Run запускает основной цикл обработки обновлений. Каждое обновление
// обрабатывается в своей горутине; при остановке дожидаемся начатых.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	// Начатый запрос доводится до конца даже при остановке
	handlerCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return g.Wait()
		case update, ok := <-updates:
			if !ok {
				return g.Wait()
			}
			g.Go(func() error {
				b.handleUpdate(handlerCtx, update)
				return nil
			})
		}
	}
}

// handleUpdate обрабатывает входящее обновление
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
}

// surface возвращает панель чата, создавая её при первом обращении
func (b *Bot) surface(chatID int64) *chatSurface {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.surfaces[chatID]
	if !ok {
		s = newChatSurface(b.out, chatID, b.profiles)
		b.surfaces[chatID] = s
	}
	return s
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	surface := b.surface(msg.Chat.ID)
	ctrl, err := b.sessions.Open(ctx, msg.Chat.ID, surface)
	if err != nil {
		log.Printf("Error opening session %d: %v", msg.Chat.ID, err)
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, ctrl, surface)
		return
	}

	// Обработка фото и картинок, присланных файлом
	if len(msg.Photo) > 0 || msg.Document != nil {
		b.handleImage(ctx, msg, ctrl, surface)
		return
	}

	// Текст заполняет поле, которое ждёт ввода
	if field, ok := ctrl.Session().State().AwaitedField(); ok {
		surface.Detach()
		if err := ctrl.SetField(ctx, field, msg.Text); err != nil {
			log.Printf("Error setting field %s: %v", field, err)
		}
		return
	}

	surface.send(msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, ctrl *app.Controller, surface *chatSurface) {
	session := ctrl.Session()

	switch cmd := msg.Command(); cmd {
	case "start":
		if err := b.sessions.Cancel(ctx, session); err != nil {
			log.Printf("Error saving session: %v", err)
		}
		surface.Detach()
		surface.Refresh(ctx, session)

	case "help":
		surface.send(msgHelp)

	case "likes", "dislikes", "allergens":
		field, _ := entity.ParseField(cmd)
		b.beginInput(ctx, ctrl, surface, field)

	case "profile":
		id, err := b.profiles.Parse(msg.CommandArguments())
		if err != nil {
			surface.send(fmt.Sprintf(msgProfileUsage, b.profileIDs()))
			return
		}
		surface.Detach()
		if err := ctrl.SelectProfile(ctx, id); err != nil {
			log.Printf("Error selecting profile %q: %v", id, err)
		}

	case "cancel":
		if err := b.sessions.Cancel(ctx, session); err != nil {
			log.Printf("Error saving session: %v", err)
		}
		surface.send(msgCancelled)

	default:
		surface.send(msgUnknownCommand)
	}
}

// handleCallback обрабатывает нажатия на inline-кнопки. Кнопки сценариев
// отвечают на нажатие сами, остальным ответ уходит сразу.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	pending := &pendingCallback{id: cq.ID}
	defer pending.answer(b.out, "", false)

	if cq.Message == nil {
		return
	}

	kind, value, ok := parseCallback(cq.Data)
	if !ok {
		log.Printf("Unknown callback data %q", cq.Data)
		return
	}
	if kind != cbRun {
		pending.answer(b.out, "", false)
	}
	ctx = withCallback(ctx, pending)

	surface := b.surface(cq.Message.Chat.ID)
	ctrl, err := b.sessions.Open(ctx, cq.Message.Chat.ID, surface)
	if err != nil {
		log.Printf("Error opening session %d: %v", cq.Message.Chat.ID, err)
		return
	}

	switch kind {
	case cbProfile:
		id, err := b.profiles.Parse(value)
		if err == nil {
			err = ctrl.SelectProfile(ctx, id)
		}
		if err != nil {
			log.Printf("Error selecting profile %q: %v", value, err)
		}

	case cbField:
		field, err := entity.ParseField(value)
		if err != nil {
			log.Printf("Unknown field %q", value)
			return
		}
		b.beginInput(ctx, ctrl, surface, field)

	case cbRun:
		b.runTrigger(ctx, ctrl, pending, entity.TriggerID(value))

	default:
		log.Printf("Unknown callback data %q", cq.Data)
	}
}

// runTrigger запускает сценарий кнопки. Занятая кнопка повторно не срабатывает.
func (b *Bot) runTrigger(ctx context.Context, ctrl *app.Controller, pending *pendingCallback, id entity.TriggerID) {
	result, err := ctrl.Press(ctx, id)
	if errors.Is(err, app.ErrTriggerBusy) {
		pending.answer(b.out, msgPleaseWait, false)
		return
	}
	if err != nil {
		log.Printf("Chat %d: %v", ctrl.Session().ID, err)
		return
	}
	log.Printf("Chat %d: %s -> %s", ctrl.Session().ID, id, result.Kind)
}

// beginInput просит прислать текст для поля
func (b *Bot) beginInput(ctx context.Context, ctrl *app.Controller, surface *chatSurface, field entity.Field) {
	session := ctrl.Session()
	if err := b.sessions.BeginInput(ctx, session, field); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	current := session.Fields().Get(field)
	if current == "" {
		current = "(empty)"
	}
	surface.send(fmt.Sprintf(msgFieldPrompt, strings.ToLower(fieldTitles[field]), current))
}

// handleImage прикрепляет фото этикетки к сессии
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, ctrl *app.Controller, surface *chatSurface) {
	fileID, name, err := imageFile(msg)
	if err != nil {
		surface.send(msgNotAnImage)
		return
	}

	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		surface.send(msgDownloadError)
		return
	}

	log.Printf("Received image: %d bytes", len(data))
	surface.Detach()
	ctrl.AttachImage(ctx, entity.LabelImage{Name: name, Data: data})
}

var errNotAnImage = errors.New("not an image")

// imageFile выбирает файл для загрузки: фото в максимальном разрешении или картинку-документ
func imageFile(msg *tgbotapi.Message) (fileID, name string, err error) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, photoName, nil
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		name := msg.Document.FileName
		if name == "" {
			name = photoName
		}
		return msg.Document.FileID, name, nil
	}
	return "", "", errNotAnImage
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.files.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

func (b *Bot) profileIDs() string {
	ids := make([]string, 0, len(b.profiles.Profiles())+1)
	for _, p := range b.profiles.Profiles() {
		ids = append(ids, string(p.ID))
	}
	ids = append(ids, profileNoneValue)
	return strings.Join(ids, ", ")
}
