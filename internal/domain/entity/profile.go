package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ProfileID идентификатор диетического профиля
type ProfileID string

const (
	ProfileNone       ProfileID = ""            // свой набор аллергенов, без профиля
	ProfileVegan      ProfileID = "vegan"       // веганский
	ProfileDairyFree  ProfileID = "dairy_free"  // без молочного
	ProfileHalal      ProfileID = "halal"       // халяль
	ProfileGlutenFree ProfileID = "gluten_free" // без глютена
)

// ErrUnknownProfile возвращается для идентификатора, которого нет в каталоге.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile диетический профиль и его канонический список аллергенов
type Profile struct {
	ID        ProfileID
	Title     string   // подпись для пользователя
	Allergens []string // порядок канонический, токены не нормализуются
}

// Label возвращает подпись профиля для кнопок и сообщений.
func (p Profile) Label() string {
	if p.Title != "" {
		return p.Title
	}
	return string(p.ID)
}

// ProfileRegistry неизменяемый каталог профилей в фиксированном порядке перебора
type ProfileRegistry struct {
	profiles []Profile
	index    map[ProfileID]int
}

// NewProfileRegistry создаёт каталог. Порядок профилей сохраняется.
func NewProfileRegistry(profiles []Profile) (*ProfileRegistry, error) {
	r := &ProfileRegistry{
		profiles: make([]Profile, 0, len(profiles)),
		index:    make(map[ProfileID]int, len(profiles)),
	}

	for _, p := range profiles {
		if p.ID == ProfileNone {
			return nil, errors.New("profile id is empty")
		}
		if _, exists := r.index[p.ID]; exists {
			return nil, fmt.Errorf("duplicate profile %q", p.ID)
		}

		r.index[p.ID] = len(r.profiles)
		r.profiles = append(r.profiles, Profile{
			ID:        p.ID,
			Title:     p.Title,
			Allergens: append([]string(nil), p.Allergens...),
		})
	}

	return r, nil
}

// Lookup возвращает копию списка аллергенов профиля
func (r *ProfileRegistry) Lookup(id ProfileID) ([]string, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
	}
	return append([]string(nil), r.profiles[i].Allergens...), nil
}

// Profile возвращает профиль целиком.
func (r *ProfileRegistry) Profile(id ProfileID) (Profile, bool) {
	i, ok := r.index[id]
	if !ok {
		return Profile{}, false
	}
	p := r.profiles[i]
	p.Allergens = append([]string(nil), p.Allergens...)
	return p, true
}

// Profiles возвращает профили в порядке перебора
func (r *ProfileRegistry) Profiles() []Profile {
	out := make([]Profile, len(r.profiles))
	for i, p := range r.profiles {
		p.Allergens = append([]string(nil), p.Allergens...)
		out[i] = p
	}
	return out
}

// Parse разбирает пользовательский ввод: "none" или пустая строка означают отсутствие профиля.
func (r *ProfileRegistry) Parse(s string) (ProfileID, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return ProfileNone, nil
	}
	id := ProfileID(s)
	if _, ok := r.index[id]; !ok {
		return ProfileNone, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
	}
	return id, nil
}
