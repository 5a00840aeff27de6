package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"fexp/internal/engine"
	"fexp/internal/fileinfo"
	"fexp/internal/preview"
	"fexp/internal/tree"
)

type mapLister map[string][]fileinfo.DirEntry

func (m mapLister) ListDirectory(path string) ([]fileinfo.DirEntry, error) {
	return m[path], nil
}

func TestNodeUIDRoundTrip(t *testing.T) {
	for _, id := range []tree.NodeID{1, 42, 1 << 40} {
		if got := uidNode(nodeUID(id)); got != id {
			t.Errorf("uidNode(nodeUID(%d)) = %d", id, got)
		}
	}
	if got := uidNode(""); got != 0 {
		t.Errorf("uidNode(\"\") = %d, want 0", got)
	}
	if got := uidNode("x"); got != 0 {
		t.Errorf("uidNode(\"x\") = %d, want 0", got)
	}
}

func TestTreeViewFollowsEngine(t *testing.T) {
	test.NewTempApp(t)

	root := filepath.FromSlash("/r")
	fs := mapLister{
		root: {
			{Name: "docs", IsDir: true},
			{Name: "a.zip"},
			{Name: ".hidden"},
		},
	}
	e := engine.New(fs, engine.Settings{
		ArchiveExtensions: []string{".zip"},
		Sort:              fileinfo.SortOptions{DirectoriesFirst: true},
	}, nil)
	if err := e.SelectRoot(root); err != nil {
		t.Fatal(err)
	}

	tv := NewTreeView(e, func(string, string, func(context.Context) error) {}, nil, func(string, ...interface{}) {})
	w := tv.Widget()

	top := w.ChildUIDs("")
	if len(top) != 1 || uidNode(top[0]) != e.Root() {
		t.Fatalf("top level = %v", top)
	}
	children := w.ChildUIDs(top[0])
	if len(children) != 2 {
		t.Fatalf("children = %v, want docs and a.zip", children)
	}
	if !w.IsBranch(children[0]) {
		t.Error("docs should be a branch")
	}
	if w.IsBranch(children[1]) {
		t.Error("a.zip should be a leaf")
	}

	tv.Sync()
	if !w.IsBranchOpen(top[0]) {
		t.Error("loaded root should be open after Sync")
	}
	if w.IsBranchOpen(children[0]) {
		t.Error("unloaded docs should stay closed")
	}
}

func TestEntryIcon(t *testing.T) {
	test.NewTempApp(t)
	if entryIcon(fileinfo.KindDirectory) == entryIcon(fileinfo.KindFile) {
		t.Error("folders and files share an icon")
	}
	if entryIcon(fileinfo.KindArchive) == entryIcon(fileinfo.KindFile) {
		t.Error("archives and files share an icon")
	}
}

func TestMarkdownPaneKeepsDocument(t *testing.T) {
	test.NewTempApp(t)
	p := NewMarkdownPane()
	if _, _, _, ok := p.Current(); ok {
		t.Fatal("new pane should be empty")
	}

	p.Render("/r/README.md", "# Hi", preview.DefaultStyle())
	path, content, style, ok := p.Current()
	if !ok || path != "/r/README.md" || content != "# Hi" || style != preview.DefaultStyle() {
		t.Errorf("Current = %q %q %+v %v", path, content, style, ok)
	}

	p.Clear()
	if _, _, _, ok := p.Current(); ok {
		t.Error("pane should be empty after Clear")
	}
}

func TestWritePreviewPage(t *testing.T) {
	name, err := writePreviewPage("/r/notes.md", "# Notes\n\nbody", preview.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(name)

	if !strings.HasPrefix(filepath.Base(name), "fexp-preview-") || filepath.Ext(name) != ".html" {
		t.Errorf("temp name = %s", name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	if !strings.Contains(html, "<title>notes.md</title>") || !strings.Contains(html, "<h1") {
		t.Errorf("page = %s", html)
	}
}
