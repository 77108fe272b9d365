package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

// sender часть BotAPI, через которую пишет чат
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// pendingCallback нажатие кнопки, на которое Telegram ждёт ответа.
// Ответить можно только один раз.
type pendingCallback struct {
	id   string
	once sync.Once
}

type callbackKey struct{}

func withCallback(ctx context.Context, cb *pendingCallback) context.Context {
	return context.WithValue(ctx, callbackKey{}, cb)
}

func callbackFrom(ctx context.Context) *pendingCallback {
	cb, _ := ctx.Value(callbackKey{}).(*pendingCallback)
	return cb
}

// answer отвечает на нажатие. Возвращает false, если ответ уже был.
func (p *pendingCallback) answer(api sender, text string, alert bool) bool {
	if p == nil {
		return false
	}
	answered := false
	p.once.Do(func() {
		answered = true
		cfg := tgbotapi.NewCallback(p.id, text)
		if alert {
			cfg = tgbotapi.NewCallbackWithAlert(p.id, text)
		}
		if _, err := api.Request(cfg); err != nil {
			log.Printf("Error answering callback: %v", err)
		}
	})
	return answered
}

// chatSurface панель сессии в одном чате: одно сообщение с кнопками,
// которое перерисовывается, и одно сообщение-баннер.
type chatSurface struct {
	api      sender
	chatID   int64
	profiles *entity.ProfileRegistry

	mu       sync.Mutex
	panelID  int
	rendered string
	noticeID int
}

func newChatSurface(api sender, chatID int64, profiles *entity.ProfileRegistry) *chatSurface {
	return &chatSurface{api: api, chatID: chatID, profiles: profiles}
}

// Alert показывает всплывающее предупреждение на нажатую кнопку, а без кнопки пишет в чат.
func (s *chatSurface) Alert(ctx context.Context, text string) {
	if callbackFrom(ctx).answer(s.api, text, true) {
		return
	}
	s.send(noticeText(entity.ErrorNotice(text)))
}

// Refresh перерисовывает панель. Неизменившаяся панель не отправляется.
func (s *chatSurface) Refresh(ctx context.Context, session *entity.Session) {
	callbackFrom(ctx).answer(s.api, "", false)

	text := panelText(session, s.profiles)
	keyboard := panelKeyboard(session, s.profiles)
	key := panelKey(text, keyboard)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.panelID != 0 && key == s.rendered {
		return
	}

	if s.panelID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(s.chatID, s.panelID, text, keyboard)
		_, err := s.api.Send(edit)
		if err == nil {
			s.rendered = key
			return
		}
		log.Printf("Error editing panel: %v", err)
	}

	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ReplyMarkup = keyboard
	sent, err := s.api.Send(msg)
	if err != nil {
		log.Printf("Error sending panel: %v", err)
		return
	}
	s.panelID = sent.MessageID
	s.rendered = key
}

// panelKey снимок панели по значениям: текст и для каждой кнопки подпись с данными.
func panelKey(text string, keyboard tgbotapi.InlineKeyboardMarkup) string {
	var b strings.Builder
	b.WriteString(text)
	for _, row := range keyboard.InlineKeyboard {
		b.WriteString("\n")
		for _, btn := range row {
			data := ""
			if btn.CallbackData != nil {
				data = *btn.CallbackData
			}
			fmt.Fprintf(&b, "[%s|%s]", btn.Text, data)
		}
	}
	return b.String()
}

// Detach забывает текущую панель: следующий Refresh пришлёт новую внизу чата.
func (s *chatSurface) Detach() {
	s.mu.Lock()
	s.panelID = 0
	s.rendered = ""
	s.mu.Unlock()
}

// ShowNotice показывает баннер, заменяя текст прежнего.
func (s *chatSurface) ShowNotice(ctx context.Context, notice entity.Notice) {
	_ = ctx
	text := noticeText(notice)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.noticeID != 0 {
		edit := tgbotapi.NewEditMessageText(s.chatID, s.noticeID, text)
		if _, err := s.api.Send(edit); err == nil {
			return
		}
	}

	sent, err := s.api.Send(tgbotapi.NewMessage(s.chatID, text))
	if err != nil {
		log.Printf("Error sending notice: %v", err)
		return
	}
	s.noticeID = sent.MessageID
}

// HideNotice удаляет сообщение-баннер.
func (s *chatSurface) HideNotice(ctx context.Context) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.noticeID == 0 {
		return
	}
	if _, err := s.api.Request(tgbotapi.NewDeleteMessage(s.chatID, s.noticeID)); err != nil {
		log.Printf("Error deleting notice: %v", err)
	}
	s.noticeID = 0
}

// send отправляет текстовое сообщение
func (s *chatSurface) send(text string) {
	if _, err := s.api.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// Проверка реализации интерфейса
var _ port.Surface = (*chatSurface)(nil)
