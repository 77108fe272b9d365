package entity

import "sync"

// InputState состояние диалога: какое поле заполнит следующее текстовое сообщение
type InputState string

const (
	StateIdle              InputState = "idle"               // ждём нажатий кнопок
	StateAwaitingLikes     InputState = "awaiting_likes"     // следующий текст: любимое
	StateAwaitingDislikes  InputState = "awaiting_dislikes"  // следующий текст: нелюбимое
	StateAwaitingAllergens InputState = "awaiting_allergens" // следующий текст: аллергены
)

// AwaitingState возвращает состояние ожидания ввода для поля.
func AwaitingState(field Field) InputState {
	switch field {
	case FieldLikes:
		return StateAwaitingLikes
	case FieldDislikes:
		return StateAwaitingDislikes
	case FieldAllergens:
		return StateAwaitingAllergens
	}
	return StateIdle
}

// AwaitedField возвращает поле, которое ждёт ввода в этом состоянии.
func (s InputState) AwaitedField() (Field, bool) {
	switch s {
	case StateAwaitingLikes:
		return FieldLikes, true
	case StateAwaitingDislikes:
		return FieldDislikes, true
	case StateAwaitingAllergens:
		return FieldAllergens, true
	}
	return "", false
}

// Session состояние одной пользовательской сессии.
// Извлечённые ингредиенты живут только в сессии и не сохраняются.
type Session struct {
	ID int64 // Telegram Chat ID, 0 для консоли

	Extract *Trigger
	Predict *Trigger
	Save    *Trigger

	mu              sync.Mutex
	state           InputState
	fields          PreferenceFields
	selected        ProfileID
	image           *LabelImage
	ingredients     []string
	ingredientsText string // что показано в блоке ингредиентов
	scoreText       string // что показано в блоке оценки
}

// NewSession создаёт сессию с пустыми полями и свободными кнопками
func NewSession(id int64) *Session {
	return &Session{
		ID:          id,
		Extract:     NewTrigger(TriggerExtract, "Extract Ingredients", "Extracting..."),
		Predict:     NewTrigger(TriggerPredict, "Predict Suitability", "Predicting..."),
		Save:        NewTrigger(TriggerSave, "Save Preferences", "Saving..."),
		state:       StateIdle,
		ingredients: []string{},
	}
}

// Trigger возвращает кнопку по идентификатору.
func (s *Session) Trigger(id TriggerID) (*Trigger, bool) {
	switch id {
	case TriggerExtract:
		return s.Extract, true
	case TriggerPredict:
		return s.Predict, true
	case TriggerSave:
		return s.Save, true
	}
	return nil, false
}

func (s *Session) State() InputState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) SetState(state InputState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) Fields() PreferenceFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

func (s *Session) SetField(field Field, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields.Set(field, text)
}

// SetFields заменяет текст всех трёх полей.
func (s *Session) SetFields(fields PreferenceFields) {
	s.mu.Lock()
	s.fields = fields
	s.mu.Unlock()
}

// Selected возвращает выбранный профиль, ProfileNone означает свой набор.
func (s *Session) Selected() ProfileID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Session) Select(id ProfileID) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
}

// Image возвращает прикреплённое фото этикетки.
func (s *Session) Image() (LabelImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return LabelImage{}, false
	}
	return *s.image, true
}

func (s *Session) AttachImage(img LabelImage) {
	s.mu.Lock()
	s.image = &img
	s.mu.Unlock()
}

// Ingredients возвращает копию последнего успешно извлечённого состава.
func (s *Session) Ingredients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.ingredients...)
}

// ReplaceIngredients заменяет состав целиком, без слияния с прежним.
func (s *Session) ReplaceIngredients(ingredients []string) {
	s.mu.Lock()
	s.ingredients = append([]string{}, ingredients...)
	s.mu.Unlock()
}

func (s *Session) IngredientsText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ingredientsText
}

func (s *Session) SetIngredientsText(text string) {
	s.mu.Lock()
	s.ingredientsText = text
	s.mu.Unlock()
}

func (s *Session) ScoreText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scoreText
}

func (s *Session) SetScoreText(text string) {
	s.mu.Lock()
	s.scoreText = text
	s.mu.Unlock()
}
