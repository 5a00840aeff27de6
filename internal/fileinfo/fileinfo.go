package fileinfo

import (
	"strings"
)

// Kind is the discriminated type of a filesystem entry
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindArchive // a file whose name matches a configured archive extension
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindArchive:
		return "archive"
	default:
		return "file"
	}
}

// Entry represents one named filesystem object.
// Only Name changes after the entry is read from disk (on rename).
type Entry struct {
	Name string
	Kind Kind
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool { return e.Kind == KindDirectory }

// IsHidden reports whether the entry is a dotfile
func (e Entry) IsHidden() bool { return strings.HasPrefix(e.Name, ".") }

// DirEntry is one item of a raw directory listing
type DirEntry struct {
	Name  string
	IsDir bool
}

// Classifier turns raw listing items into typed entries
type Classifier struct {
	extensions []string
}

// NewClassifier creates a classifier for the given archive extensions.
// Extensions are matched case-insensitively against the end of the name, so
// multi-part extensions such as ".tar.gz" work.
func NewClassifier(archiveExtensions []string) *Classifier {
	c := &Classifier{}
	for _, ext := range archiveExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.extensions = append(c.extensions, ext)
	}
	return c
}

// IsArchive reports whether a file name carries an archive extension
func (c *Classifier) IsArchive(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range c.extensions {
		if len(lower) > len(ext) && strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Classify determines the entry kind for a listing item
func (c *Classifier) Classify(d DirEntry) Entry {
	switch {
	case d.IsDir:
		return Entry{Name: d.Name, Kind: KindDirectory}
	case c.IsArchive(d.Name):
		return Entry{Name: d.Name, Kind: KindArchive}
	default:
		return Entry{Name: d.Name, Kind: KindFile}
	}
}

// ClassifyAll classifies a listing, preserving its order
func (c *Classifier) ClassifyAll(items []DirEntry) []Entry {
	out := make([]Entry, len(items))
	for i, d := range items {
		out[i] = c.Classify(d)
	}
	return out
}
