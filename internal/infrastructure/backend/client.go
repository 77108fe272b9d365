// Package backend клиент HTTP-бэкенда: распознавание этикеток, оценка и хранение предпочтений.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"label-bot/internal/domain/entity"
	"label-bot/internal/domain/port"
)

const (
	pathExtract         = "/extract"
	pathPredict         = "/predict"
	pathSavePreferences = "/save_preferences"
	pathGetPreferences  = "/get_preferences"
)

// Client клиент бэкенда одной сессии. У каждого клиента свои cookie:
// хранилище предпочтений на сервере привязано к сессии.
type Client struct {
	baseURL string
	http    *http.Client
	shapes  shapes
}

// NewClient создаёт клиент. Таймаута нет: зависший запрос держит кнопку занятой,
// пока транспорт сам не завершит его.
func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	s, err := loadShapes()
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		shapes:  s,
	}, nil
}

// Factory возвращает фабрику клиентов для новых сессий.
func Factory(baseURL string) port.LabelServiceFactory {
	return func() (port.LabelService, error) {
		return NewClient(baseURL)
	}
}

// serverText текст ошибки, который сервер может положить в ответ
type serverText struct {
	Error   any `json:"error"`
	Message any `json:"message"`
}

func messageOf(raw []byte) string {
	var t serverText
	_ = json.Unmarshal(raw, &t)
	if s, ok := t.Error.(string); ok && s != "" {
		return s
	}
	if s, ok := t.Message.(string); ok {
		return s
	}
	return ""
}

// Extract отправляет фото этикетки multipart-формой
func (c *Client) Extract(ctx context.Context, image entity.LabelImage) (*entity.ExtractReply, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	name := image.Name
	if name == "" {
		name = "label.jpg"
	}
	part, err := w.CreateFormFile("image", name)
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, pathExtract, w.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}

	reply := &entity.ExtractReply{Message: messageOf(raw)}
	if c.shapes.match(shapeExtract, raw) {
		var ok struct {
			Ingredients []string `json:"ingredients"`
		}
		if err := json.Unmarshal(raw, &ok); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", entity.ErrTransport, pathExtract, err)
		}
		reply.OK = true
		reply.Ingredients = append([]string{}, ok.Ingredients...)
	}
	return reply, nil
}

// Predict запрашивает оценку
func (c *Client) Predict(ctx context.Context, req entity.PredictRequest) (*entity.PredictReply, error) {
	req = entity.PredictRequest{
		Ingredients: nonNil(req.Ingredients),
		Likes:       nonNil(req.Likes),
		Dislikes:    nonNil(req.Dislikes),
		Allergens:   nonNil(req.Allergens),
	}

	raw, err := c.postJSON(ctx, pathPredict, req)
	if err != nil {
		return nil, err
	}

	reply := &entity.PredictReply{Message: messageOf(raw)}
	if c.shapes.match(shapePredict, raw) {
		var ok struct {
			Score float64 `json:"suitability_score"`
		}
		if err := json.Unmarshal(raw, &ok); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", entity.ErrTransport, pathPredict, err)
		}
		reply.OK = true
		reply.Score = ok.Score
	}
	return reply, nil
}

// SavePreferences сохраняет предпочтения
func (c *Client) SavePreferences(ctx context.Context, prefs entity.Preferences) (*entity.SaveReply, error) {
	raw, err := c.postJSON(ctx, pathSavePreferences, normalize(prefs))
	if err != nil {
		return nil, err
	}

	return &entity.SaveReply{
		OK:      c.shapes.match(shapeSave, raw),
		Message: messageOf(raw),
	}, nil
}

// GetPreferences загружает сохранённые предпочтения
func (c *Client) GetPreferences(ctx context.Context) (*entity.PreferencesReply, error) {
	raw, err := c.do(ctx, http.MethodGet, pathGetPreferences, "", nil)
	if err != nil {
		return nil, err
	}

	reply := &entity.PreferencesReply{Message: messageOf(raw)}
	if c.shapes.match(shapeGetPreferences, raw) {
		var ok struct {
			Preferences entity.Preferences `json:"preferences"`
		}
		if err := json.Unmarshal(raw, &ok); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %w", entity.ErrTransport, pathGetPreferences, err)
		}
		reply.OK = true
		reply.Preferences = normalize(ok.Preferences)
	}
	return reply, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body))
}

// do выполняет один запрос. Статус HTTP не интерпретируется: JSON-тело с ошибкой
// разбирается как ответ сервера. Сбой сети или тело не-JSON считаются ошибкой транспорта.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	reqID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("backend %s %s failed after %s [%s]: %v", method, path, time.Since(start), reqID, err)
		return nil, fmt.Errorf("%w: %s %s: %w", entity.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", entity.ErrTransport, path, err)
	}

	log.Printf("backend %s %s -> %d (%d bytes, %s) [%s]", method, path, resp.StatusCode, len(raw), time.Since(start), reqID)

	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %s %s: response is not json (status %d)", entity.ErrTransport, method, path, resp.StatusCode)
	}
	return raw, nil
}

func nonNil(tokens []string) []string {
	if tokens == nil {
		return []string{}
	}
	return tokens
}

func normalize(p entity.Preferences) entity.Preferences {
	return entity.Preferences{
		Likes:     nonNil(p.Likes),
		Dislikes:  nonNil(p.Dislikes),
		Allergens: nonNil(p.Allergens),
	}
}

// Проверка реализации интерфейса
var _ port.LabelService = (*Client)(nil)
