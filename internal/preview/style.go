package preview

import (
	"strings"

	"fexp/internal/errors"
)

// Style holds the values substituted into the preview stylesheet.
// They are forwarded verbatim and never interpreted.
type Style struct {
	FontFamily        string `json:"fontFamily"`
	BackgroundColor   string `json:"backgroundColor"`
	TextColor         string `json:"textColor"`
	HeadingColor      string `json:"headingColor"`
	ParagraphFontSize string `json:"paragraphFontSize"`
	LinkColor         string `json:"linkColor"`
}

// DefaultStyle is the green-on-dark terminal look
func DefaultStyle() Style {
	return Style{
		FontFamily:        "'Courier New', Courier, monospace",
		BackgroundColor:   "#2e2e2e",
		TextColor:         "#32cd32",
		HeadingColor:      "#32cd32",
		ParagraphFontSize: "14px",
		LinkColor:         "#32cd32",
	}
}

// IsZero reports whether no field is set
func (s Style) IsZero() bool { return s == Style{} }

// Validate rejects a style with missing fields
func (s Style) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"fontFamily", s.FontFamily},
		{"backgroundColor", s.BackgroundColor},
		{"textColor", s.TextColor},
		{"headingColor", s.HeadingColor},
		{"paragraphFontSize", s.ParagraphFontSize},
		{"linkColor", s.LinkColor},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.NewConfigError("validate_style", "missing style fields: "+strings.Join(missing, ", "), nil)
	}
	return nil
}
