package preview

import (
	"bytes"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"fexp/internal/errors"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
    body {
        font-family: {{.Style.FontFamily}};
        background-color: {{.Style.BackgroundColor}};
        color: {{.Style.TextColor}};
        margin: 20px;
        padding: 20px;
    }
    h1, h2, h3 {
        color: {{.Style.HeadingColor}};
    }
    p {
        font-size: {{.Style.ParagraphFontSize}};
    }
    a {
        color: {{.Style.LinkColor}};
        text-decoration: none;
    }
    a:hover {
        text-decoration: underline;
    }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`

var page = template.Must(template.New("preview").Parse(pageTemplate))

// cssStyle carries style values into the template without CSS escaping
type cssStyle struct {
	FontFamily        template.CSS
	BackgroundColor   template.CSS
	TextColor         template.CSS
	HeadingColor      template.CSS
	ParagraphFontSize template.CSS
	LinkColor         template.CSS
}

type pageData struct {
	Title   string
	Style   cssStyle
	Content template.HTML
}

// newMarkdown creates the goldmark converter used for previews
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// WriteHTML converts markdown content to a standalone styled HTML page
func WriteHTML(w io.Writer, title, content string, style Style) error {
	var buf bytes.Buffer
	if err := newMarkdown().Convert([]byte(content), &buf); err != nil {
		return errors.NewUIError("render_preview", "markdown conversion failed", err)
	}
	data := pageData{
		Title: title,
		Style: cssStyle{
			FontFamily:        template.CSS(style.FontFamily),
			BackgroundColor:   template.CSS(style.BackgroundColor),
			TextColor:         template.CSS(style.TextColor),
			HeadingColor:      template.CSS(style.HeadingColor),
			ParagraphFontSize: template.CSS(style.ParagraphFontSize),
			LinkColor:         template.CSS(style.LinkColor),
		},
		Content: template.HTML(buf.String()),
	}
	if err := page.Execute(w, data); err != nil {
		return errors.NewUIError("render_preview", "template execution failed", err)
	}
	return nil
}
