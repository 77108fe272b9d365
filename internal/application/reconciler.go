package app

import (
	"label-bot/internal/domain/entity"
)

// ProfileReconciler переводит выбранный профиль в текст аллергенов и обратно
type ProfileReconciler struct {
	registry *entity.ProfileRegistry
	sets     []profileSet
}

// profileSet заранее посчитанное множество аллергенов профиля
type profileSet struct {
	id      entity.ProfileID
	size    int
	members map[string]struct{}
}

// NewProfileReconciler создаёт сверщик поверх каталога профилей.
func NewProfileReconciler(registry *entity.ProfileRegistry) *ProfileReconciler {
	profiles := registry.Profiles()
	sets := make([]profileSet, 0, len(profiles))
	for _, p := range profiles {
		members := make(map[string]struct{}, len(p.Allergens))
		for _, a := range p.Allergens {
			members[a] = struct{}{}
		}
		sets = append(sets, profileSet{id: p.ID, size: len(p.Allergens), members: members})
	}

	return &ProfileReconciler{registry: registry, sets: sets}
}

func (r *ProfileReconciler) Registry() *entity.ProfileRegistry {
	return r.registry
}

// ApplyProfile возвращает канонический текст поля аллергенов для профиля.
// Для ProfileNone поле очищается.
func (r *ProfileReconciler) ApplyProfile(id entity.ProfileID) (string, error) {
	if id == entity.ProfileNone {
		return "", nil
	}

	allergens, err := r.registry.Lookup(id)
	if err != nil {
		return "", err
	}
	return entity.JoinTokens(allergens), nil
}

// InferProfile ищет первый профиль, чей список совпадает с сохранённым без учёта порядка.
// Совпадение: длины равны и каждый сохранённый токен есть в профиле.
func (r *ProfileReconciler) InferProfile(allergens []string) entity.ProfileID {
	for _, set := range r.sets {
		if len(allergens) != set.size {
			continue
		}
		if containsAll(set.members, allergens) {
			return set.id
		}
	}
	return entity.ProfileNone
}

func containsAll(members map[string]struct{}, tokens []string) bool {
	for _, t := range tokens {
		if _, ok := members[t]; !ok {
			return false
		}
	}
	return true
}
