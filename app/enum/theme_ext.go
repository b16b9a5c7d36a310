package enum

// IsDark reports whether the theme is dark.
func (t Theme) IsDark() bool { return t == ThemeDark }

// ThemeFromDark maps the dark-mode flag to a theme.
func ThemeFromDark(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeOrLight parses v and falls back to light for empty or unknown values.
func ThemeOrLight(v string) Theme {
	if t, err := ParseTheme(v); err == nil {
		return t
	}
	return ThemeLight
}
