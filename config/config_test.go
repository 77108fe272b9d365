package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("NOTICE_DURATION", "")
	t.Setenv("PROFILES_FILE", "")
	t.Setenv("LABEL_MAX_SIDE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5000", cfg.BackendURL)
	require.Equal(t, 4*time.Second, cfg.NoticeDuration)
	require.Equal(t, 1600, cfg.LabelMaxSide)
	require.Empty(t, cfg.ProfilesFile)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("BACKEND_URL", "https://labels.example.com")
	t.Setenv("NOTICE_DURATION", "2500ms")
	t.Setenv("PROFILES_FILE", "/etc/labels/profiles.yaml")
	t.Setenv("LABEL_MAX_SIDE", "1024")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.TelegramToken)
	require.Equal(t, "https://labels.example.com", cfg.BackendURL)
	require.Equal(t, 2500*time.Millisecond, cfg.NoticeDuration)
	require.Equal(t, "/etc/labels/profiles.yaml", cfg.ProfilesFile)
	require.Equal(t, 1024, cfg.LabelMaxSide)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"relative url":      {"BACKEND_URL", "localhost:5000"},
		"negative duration": {"NOTICE_DURATION", "-1s"},
		"zero max side":     {"LABEL_MAX_SIDE", "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])

			_, err := Load()
			require.Error(t, err)
		})
	}
}
