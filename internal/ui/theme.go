// Package ui holds the page interaction managers. Handlers are plain
// functions of (event, state) returning the new state or actions; the
// Apply helpers write the result onto a dom.Document.
package ui

import (
	"log"

	"github.com/Zachkp/cv-site/internal/dom"
	"github.com/Zachkp/cv-site/internal/prefs"
)

// Theme is the colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	darkThemeClass = "dark-theme"
	themeIconID    = "theme-icon"
	iconDark       = "☾"
	iconLight      = "☀︎"
)

// RestoreTheme reads the saved theme. Anything but "dark" is light.
func RestoreTheme(p prefs.Prefs) Theme {
	if v, ok := p.Get(prefs.KeyTheme); ok && Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme flips current and persists the result.
func ToggleTheme(p prefs.Prefs, current Theme) Theme {
	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	p.Set(prefs.KeyTheme, string(next))
	log.Printf("Theme changed to: %s", next)
	return next
}

// ApplyTheme sets the body flag and the toggle icon.
func ApplyTheme(doc *dom.Document, theme Theme) {
	if body := doc.Body(); body != nil {
		dom.SetClass(body, darkThemeClass, theme == ThemeDark)
	}
	if icon := doc.First(dom.ByID(themeIconID)); icon != nil {
		if theme == ThemeDark {
			dom.SetText(icon, iconDark)
		} else {
			dom.SetText(icon, iconLight)
		}
	}
}
