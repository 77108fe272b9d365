// Package registry загружает каталог диетических профилей из YAML.
// Новый профиль добавляется правкой данных, без изменения кода.
package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"label-bot/internal/domain/entity"
)

//go:embed profiles.yaml
var builtinProfiles []byte

type document struct {
	Profiles []struct {
		ID        string   `yaml:"id"`
		Title     string   `yaml:"title"`
		Allergens []string `yaml:"allergens"`
	} `yaml:"profiles"`
}

// Builtin возвращает встроенный каталог
func Builtin() (*entity.ProfileRegistry, error) {
	return Parse(bytes.NewReader(builtinProfiles))
}

// Load читает каталог из файла; для пустого пути берётся встроенный.
func Load(path string) (*entity.ProfileRegistry, error) {
	if path == "" {
		return Builtin()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse разбирает YAML-документ с профилями.
func Parse(r io.Reader) (*entity.ProfileRegistry, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("decode profiles: no profiles defined")
	}

	profiles := make([]entity.Profile, 0, len(doc.Profiles))
	for _, p := range doc.Profiles {
		profiles = append(profiles, entity.Profile{
			ID:        entity.ProfileID(p.ID),
			Title:     p.Title,
			Allergens: p.Allergens,
		})
	}

	return entity.NewProfileRegistry(profiles)
}
