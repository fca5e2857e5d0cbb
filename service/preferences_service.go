package service

import (
	"context"
	"fmt"
	"log/slog"

	"fincalc/repository"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	default:
		return "", fmt.Errorf("invalid theme %q: want light, dark or system", s)
	}
}

type PreferencesService struct {
	store repository.KeyValueStore
	log   *slog.Logger
}

func NewPreferencesService(store repository.KeyValueStore, logger *slog.Logger) *PreferencesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferencesService{store: store, log: logger}
}

// Theme returns the stored theme, or ThemeSystem when none is stored or the
// store cannot be read.
func (s *PreferencesService) Theme(ctx context.Context) Theme {
	v, ok, err := s.store.Get(ctx, KeyThemePreference)
	if err != nil {
		s.log.Warn("failed to read theme preference", "key", KeyThemePreference, "err", err)
		return ThemeSystem
	}
	if !ok {
		return ThemeSystem
	}
	t, err := ParseTheme(v)
	if err != nil {
		return ThemeSystem
	}
	return t
}

func (s *PreferencesService) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, KeyThemePreference, string(t)); err != nil {
		return fmt.Errorf("saving theme preference: %w", err)
	}
	return nil
}
