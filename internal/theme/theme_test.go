package theme

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"fexp/internal/config"
)

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#2e2e2e")
	if !ok || c != (color.NRGBA{R: 0x2e, G: 0x2e, B: 0x2e, A: 0xff}) {
		t.Errorf("ParseHexColor(#2e2e2e) = %v, %v", c, ok)
	}
	for _, bad := range []string{"", "2e2e2e", "#2e2e", "#gggggg"} {
		if _, ok := ParseHexColor(bad); ok {
			t.Errorf("ParseHexColor(%q) accepted", bad)
		}
	}
}

func TestCustomThemeOverrides(t *testing.T) {
	test.NewTempApp(t)
	cfg := &config.Config{Theme: config.ThemeConfig{Dark: true, FontSize: 17, Background: "#102030"}}
	ct := NewCustomTheme(cfg)

	if got := ct.Size(theme.SizeNameText); got != 17 {
		t.Errorf("text size = %v, want 17", got)
	}
	want := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
	if got := ct.Color(theme.ColorNameBackground, theme.VariantDark); got != want {
		t.Errorf("background = %v, want %v", got, want)
	}
	if ct.Color(theme.ColorNameForeground, theme.VariantDark) == nil {
		t.Error("foreground should fall back to the base theme")
	}
}
