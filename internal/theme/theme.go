package theme

import (
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"fexp/internal/config"
)

// CustomTheme implements fyne.Theme with configurable font and background
type CustomTheme struct {
	config     *config.Config
	customFont fyne.Resource
	background color.Color
}

// NewCustomTheme creates a new custom theme with the given configuration
func NewCustomTheme(config *config.Config) *CustomTheme {
	customTheme := &CustomTheme{config: config}

	// Load custom font if specified
	if config.Theme.FontPath != "" {
		customTheme.loadCustomFont()
	}
	if c, ok := ParseHexColor(config.Theme.Background); ok {
		customTheme.background = c
	}

	return customTheme
}

// loadCustomFont loads a custom font from the specified path
func (t *CustomTheme) loadCustomFont() {
	fontPath := t.config.Theme.FontPath

	// Read font file
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		log.Printf("Error reading font file %s: %v", fontPath, err)
		return
	}

	// Create font resource
	t.customFont = fyne.NewStaticResource(filepath.Base(fontPath), fontData)
	log.Printf("Loaded custom font: %s", fontPath)
}

// ParseHexColor parses "#rrggbb"
func ParseHexColor(s string) (color.Color, bool) {
	if len(s) != 7 || s[0] != '#' {
		return nil, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

func (t *CustomTheme) base() fyne.Theme {
	if t.config.Theme.Dark {
		return theme.DarkTheme()
	}
	return theme.DefaultTheme()
}

// Color methods from default theme, with the configured background
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if name == theme.ColorNameBackground && t.background != nil {
		return t.background
	}
	return t.base().Color(name, variant)
}

// Icon methods from default theme
func (t *CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base().Icon(name)
}

// Font method with custom font support
func (t *CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	// Return custom font if loaded and available
	if t.customFont != nil {
		return t.customFont
	}
	return t.base().Font(style)
}

// Size method with custom font size support
func (t *CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.config.Theme.FontSize > 0 {
		return float32(t.config.Theme.FontSize)
	}
	return t.base().Size(name)
}
