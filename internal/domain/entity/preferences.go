package entity

import (
	"fmt"
	"strings"
)

// Field одно из трёх текстовых полей предпочтений
type Field string

const (
	FieldLikes     Field = "likes"
	FieldDislikes  Field = "dislikes"
	FieldAllergens Field = "allergens"
)

// Fields перечисляет поля в порядке отображения.
var Fields = []Field{FieldLikes, FieldDislikes, FieldAllergens}

// ParseField разбирает имя поля.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldLikes, FieldDislikes, FieldAllergens:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field %q", s)
	}
}

// Preferences разобранные предпочтения в том виде, в каком их ждёт бэкенд.
type Preferences struct {
	Likes     []string `json:"likes"`
	Dislikes  []string `json:"dislikes"`
	Allergens []string `json:"allergens"`
}

// PreferenceFields сырой текст трёх полей, как его ввёл пользователь.
type PreferenceFields struct {
	Likes     string
	Dislikes  string
	Allergens string
}

// Get возвращает текст поля.
func (f PreferenceFields) Get(field Field) string {
	switch field {
	case FieldLikes:
		return f.Likes
	case FieldDislikes:
		return f.Dislikes
	case FieldAllergens:
		return f.Allergens
	}
	return ""
}

// Set заменяет текст поля целиком.
func (f *PreferenceFields) Set(field Field, text string) error {
	switch field {
	case FieldLikes:
		f.Likes = text
	case FieldDislikes:
		f.Dislikes = text
	case FieldAllergens:
		f.Allergens = text
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Parse разбирает все три поля.
func (f PreferenceFields) Parse() Preferences {
	return Preferences{
		Likes:     ParseTokens(f.Likes),
		Dislikes:  ParseTokens(f.Dislikes),
		Allergens: ParseTokens(f.Allergens),
	}
}

// FieldsFrom собирает текст полей из сохранённых списков.
func FieldsFrom(p Preferences) PreferenceFields {
	return PreferenceFields{
		Likes:     JoinTokens(p.Likes),
		Dislikes:  JoinTokens(p.Dislikes),
		Allergens: JoinTokens(p.Allergens),
	}
}

// ParseTokens режет строку по запятым, обрезает пробелы и отбрасывает пустые токены.
// Дубликаты сохраняются. Результат никогда не nil.
func ParseTokens(s string) []string {
	tokens := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// JoinTokens склеивает токены через ", ".
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, ", ")
}
