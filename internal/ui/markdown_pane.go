package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"fexp/internal/fileinfo"
	"fexp/internal/preview"
)

// MarkdownPane renders the current folder's markdown file inside the window.
// It implements preview.Renderer; calls may come from any goroutine.
type MarkdownPane struct {
	title   *widget.Label
	text    *widget.RichText
	scroll  *container.Scroll
	root    *fyne.Container
	path    string
	content string
	style   preview.Style
}

// NewMarkdownPane creates an empty pane
func NewMarkdownPane() *MarkdownPane {
	p := &MarkdownPane{
		title: widget.NewLabel(""),
		text:  widget.NewRichTextFromMarkdown(""),
	}
	p.title.TextStyle = fyne.TextStyle{Bold: true}
	p.title.Truncation = fyne.TextTruncateEllipsis
	p.text.Wrapping = fyne.TextWrapWord
	p.scroll = container.NewVScroll(p.text)
	p.root = container.NewBorder(p.title, nil, nil, nil, p.scroll)
	return p
}

func (p *MarkdownPane) Render(path, content string, style preview.Style) {
	fyne.Do(func() {
		p.path, p.content, p.style = path, content, style
		p.title.SetText(fileinfo.BaseName(path))
		p.text.ParseMarkdown(content)
		p.scroll.ScrollToTop()
	})
}

func (p *MarkdownPane) Clear() {
	fyne.Do(func() {
		p.path, p.content = "", ""
		p.title.SetText("")
		p.text.ParseMarkdown("")
	})
}

// Current returns the rendered document; ok is false when the pane is empty.
// Must be called on the UI goroutine.
func (p *MarkdownPane) Current() (path, content string, style preview.Style, ok bool) {
	return p.path, p.content, p.style, p.path != ""
}

func (p *MarkdownPane) GetContainer() *fyne.Container { return p.root }

var _ preview.Renderer = (*MarkdownPane)(nil)
