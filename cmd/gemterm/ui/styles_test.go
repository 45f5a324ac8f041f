package ui

import "testing"

func TestThemeByName(t *testing.T) {
	if !ThemeByName("dark").IsDark {
		t.Fatal("dark theme not dark")
	}
	if ThemeByName("light").IsDark {
		t.Fatal("light theme is dark")
	}
	if !ThemeByName("").IsDark {
		t.Fatal("unknown theme should default to dark")
	}
}

func TestNewStyles_CarriesTheme(t *testing.T) {
	theme := LightTheme()
	styles := NewStyles(theme)
	if styles.Theme != theme {
		t.Fatal("styles did not carry the theme")
	}
}
