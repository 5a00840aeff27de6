package preview

import (
	"io"

	"fexp/internal/errors"
	"fexp/internal/fileinfo"
)

// DefaultMaxFileSize caps how much of a file is read for preview
const DefaultMaxFileSize = 1 << 20

// Renderer displays raw markdown. Clear is called for folders without a
// previewable file.
type Renderer interface {
	Render(path, content string, style Style)
	Clear()
}

// Previewer selects a file from a freshly loaded folder and hands its content
// to a Renderer.
type Previewer struct {
	src        fileinfo.Opener
	renderer   Renderer
	style      Style
	maxSize    int64
	debugPrint func(format string, args ...interface{})
}

// NewPreviewer creates a previewer. maxSize <= 0 selects DefaultMaxFileSize.
func NewPreviewer(src fileinfo.Opener, r Renderer, style Style, maxSize int64, debugPrint func(format string, args ...interface{})) *Previewer {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if debugPrint == nil {
		debugPrint = func(string, ...interface{}) {}
	}
	return &Previewer{src: src, renderer: r, style: style, maxSize: maxSize, debugPrint: debugPrint}
}

// Style returns the style passed to the renderer
func (p *Previewer) Style() Style { return p.style }

// Preview renders the selected file of dir, or clears the renderer.
// Content beyond the size cap is dropped.
func (p *Previewer) Preview(dir string, entries []fileinfo.Entry) error {
	e, ok := Select(entries)
	if !ok {
		p.debugPrint("preview: nothing to show in %s", dir)
		p.renderer.Clear()
		return nil
	}
	path := fileinfo.JoinPath(dir, e.Name)
	content, truncated, err := p.read(path)
	if err != nil {
		p.renderer.Clear()
		return err
	}
	if truncated {
		p.debugPrint("preview: %s truncated to %d bytes", path, p.maxSize)
	}
	p.debugPrint("preview: rendering %s", path)
	p.renderer.Render(path, content, p.style)
	return nil
}

func (p *Previewer) read(path string) (string, bool, error) {
	rc, err := p.src.Open(path)
	if err != nil {
		return "", false, errors.FromOS("preview", path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, p.maxSize+1))
	if err != nil {
		return "", false, errors.FromOS("preview", path, err)
	}
	if int64(len(data)) > p.maxSize {
		return string(data[:p.maxSize]), true, nil
	}
	return string(data), false, nil
}
