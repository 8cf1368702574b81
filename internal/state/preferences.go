package state

import (
	"fmt"

	"github.com/llehouerou/saverino/internal/catalog"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

const (
	themeKey       = "theme"
	skipLandingKey = "skip_landing"
	qualityKey     = "quality"
)

// Theme returns the saved theme, light by default.
func (m *Manager) Theme() (Theme, error) {
	var theme Theme
	found, err := getRecord(m.db, nsPreferences, themeKey, &theme)
	if err != nil {
		return ThemeLight, err
	}
	if !found || (theme != ThemeLight && theme != ThemeDark) {
		return ThemeLight, nil
	}
	return theme, nil
}

// SetTheme saves the theme. Only light and dark are accepted.
func (m *Manager) SetTheme(theme Theme) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: theme %q", ErrInvalidValue, string(theme))
	}
	return m.putRecord(m.db, nsPreferences, themeKey, theme)
}

// SkipLanding reports whether the landing screen should be skipped.
func (m *Manager) SkipLanding() (bool, error) {
	var skip bool
	if _, err := getRecord(m.db, nsPreferences, skipLandingKey, &skip); err != nil {
		return false, err
	}
	return skip, nil
}

// SetSkipLanding saves the landing-screen flag.
func (m *Manager) SetSkipLanding(skip bool) error {
	return m.putRecord(m.db, nsPreferences, skipLandingKey, skip)
}

// Quality returns the saved quality tier, or def when none is saved.
func (m *Manager) Quality(def catalog.QualityTier) (catalog.QualityTier, error) {
	var raw string
	found, err := getRecord(m.db, nsPreferences, qualityKey, &raw)
	if err != nil || !found {
		return def, err
	}
	tier, err := catalog.ParseTier(raw)
	if err != nil {
		return def, nil //nolint:nilerr // a stale value falls back to the default
	}
	return tier, nil
}

// SetQuality saves the quality tier.
func (m *Manager) SetQuality(tier catalog.QualityTier) error {
	if _, err := catalog.ParseTier(string(tier)); err != nil {
		return err
	}
	return m.putRecord(m.db, nsPreferences, qualityKey, string(tier))
}
