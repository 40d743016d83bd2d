// Package theme resolves and persists the light/dark UI theme.
package theme

import (
	"errors"
	"regexp"
	"strings"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ErrUnknownTheme is returned by Parse for anything but "light" or "dark".
var ErrUnknownTheme = errors.New("unknown theme")

// Parse accepts "light" or "dark", case-insensitively.
func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", ErrUnknownTheme
}

// Toggle returns the other theme. Anything that is not Dark toggles to Dark.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Resolve picks the theme to show: a valid saved preference wins, otherwise the
// operating system preference decides.
func Resolve(saved string, prefersDark bool) Theme {
	if t, err := Parse(saved); err == nil {
		return t
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// PrefersDark reads the Sec-CH-Prefers-Color-Scheme client hint.
func PrefersDark(hint string) bool {
	return strings.EqualFold(strings.Trim(strings.TrimSpace(hint), `"`), "dark")
}

var (
	lightLogo = regexp.MustCompile(`(^|/)(\d+)\.png$`)
	darkLogo  = regexp.MustCompile(`(^|/)dark_(\d+)\.png$`)
)

// LogoPath rewrites a numbered logo path for the theme: "img/3.png" becomes
// "img/dark_3.png" in dark mode and back again in light mode.
func LogoPath(src string, t Theme) string {
	if t == Dark {
		if darkLogo.MatchString(src) {
			return src
		}
		return lightLogo.ReplaceAllString(src, "${1}dark_${2}.png")
	}
	return darkLogo.ReplaceAllString(src, "${1}${2}.png")
}
