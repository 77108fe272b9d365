package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	keyTelegramToken  = "telegram_token"
	keyBackendURL     = "backend_url"
	keyNoticeDuration = "notice_duration"
	keyProfilesFile   = "profiles_file"
	keyLabelMaxSide   = "label_max_side"
)

type Config struct {
	TelegramToken  string
	BackendURL     string
	NoticeDuration time.Duration
	ProfilesFile   string
	LabelMaxSide   int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(keyTelegramToken, "")
	v.SetDefault(keyBackendURL, "http://localhost:5000")
	v.SetDefault(keyNoticeDuration, 4*time.Second)
	v.SetDefault(keyProfilesFile, "")
	v.SetDefault(keyLabelMaxSide, 1600)
	v.AutomaticEnv()

	cfg := &Config{
		TelegramToken:  v.GetString(keyTelegramToken),
		BackendURL:     v.GetString(keyBackendURL),
		NoticeDuration: v.GetDuration(keyNoticeDuration),
		ProfilesFile:   v.GetString(keyProfilesFile),
		LabelMaxSide:   v.GetInt(keyLabelMaxSide),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute url, got %q", c.BackendURL)
	}
	if c.NoticeDuration <= 0 {
		return fmt.Errorf("NOTICE_DURATION must be positive, got %s", c.NoticeDuration)
	}
	if c.LabelMaxSide <= 0 {
		return fmt.Errorf("LABEL_MAX_SIDE must be positive, got %d", c.LabelMaxSide)
	}
	return nil
}
