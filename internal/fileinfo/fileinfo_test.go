package fileinfo

import (
	"reflect"
	"testing"
)

func TestClassifier(t *testing.T) {
	c := NewClassifier([]string{".zip", "TAR.GZ", ""})

	testCases := []struct {
		name     string
		item     DirEntry
		expected Kind
	}{
		{"Directory", DirEntry{Name: "docs", IsDir: true}, KindDirectory},
		{"Directory named like an archive", DirEntry{Name: "backup.zip", IsDir: true}, KindDirectory},
		{"Zip archive", DirEntry{Name: "data.zip"}, KindArchive},
		{"Upper-case extension", DirEntry{Name: "DATA.ZIP"}, KindArchive},
		{"Multi-part extension", DirEntry{Name: "src.tar.gz"}, KindArchive},
		{"Bare extension is not an archive", DirEntry{Name: ".zip"}, KindFile},
		{"Regular file", DirEntry{Name: "notes.txt"}, KindFile},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(tc.item)
			if got.Kind != tc.expected {
				t.Errorf("Classify(%+v) kind = %v, want %v", tc.item, got.Kind, tc.expected)
			}
			if got.Name != tc.item.Name {
				t.Errorf("Classify(%+v) name = %q", tc.item, got.Name)
			}
		})
	}
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	c := NewClassifier([]string{"zip"})
	got := c.ClassifyAll([]DirEntry{{Name: "b"}, {Name: "a", IsDir: true}, {Name: "c.zip"}})
	want := []Entry{
		{Name: "b", Kind: KindFile},
		{Name: "a", Kind: KindDirectory},
		{Name: "c.zip", Kind: KindArchive},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClassifyAll = %+v, want %+v", got, want)
	}
}

func TestKindString(t *testing.T) {
	if KindFile.String() != "file" || KindDirectory.String() != "directory" || KindArchive.String() != "archive" {
		t.Errorf("unexpected kind strings: %s %s %s", KindFile, KindDirectory, KindArchive)
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Name: "b.txt", Kind: KindFile},
		{Name: "Zeta", Kind: KindDirectory},
		{Name: "A.txt", Kind: KindFile},
		{Name: "alpha", Kind: KindDirectory},
	}

	testCases := []struct {
		name     string
		opts     SortOptions
		expected []string
	}{
		{"Plain byte order", SortOptions{}, []string{"A.txt", "Zeta", "alpha", "b.txt"}},
		{"Case-insensitive", SortOptions{CaseInsensitive: true}, []string{"A.txt", "alpha", "b.txt", "Zeta"}},
		{"Directories first", SortOptions{DirectoriesFirst: true, CaseInsensitive: true}, []string{"alpha", "Zeta", "A.txt", "b.txt"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(SortEntries(entries, tc.opts))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("SortEntries = %v, want %v", got, tc.expected)
			}
		})
	}

	if entries[0].Name != "b.txt" {
		t.Error("SortEntries modified its input")
	}
}

func TestFilterApply(t *testing.T) {
	entries := []Entry{
		{Name: ".git", Kind: KindDirectory},
		{Name: ".env", Kind: KindFile},
		{Name: "src", Kind: KindDirectory},
		{Name: "README.md", Kind: KindFile},
		{Name: "main.go", Kind: KindFile},
	}

	testCases := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"Hidden dropped", Filter{}, []string{"src", "README.md", "main.go"}},
		{"Hidden shown", Filter{ShowHidden: true}, []string{".git", ".env", "src", "README.md", "main.go"}},
		{"Pattern keeps directories", Filter{Pattern: "*.md"}, []string{"src", "README.md"}},
		{"Pattern ignores case", Filter{Pattern: "*.GO"}, []string{"src", "main.go"}},
		{"Brace pattern", Filter{Pattern: "*.{md,go}", ShowHidden: true}, []string{".git", "src", "README.md", "main.go"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(tc.filter.Apply(entries))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Apply = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestValidatePattern(t *testing.T) {
	if !ValidatePattern("**/*.md") {
		t.Error("expected **/*.md to be valid")
	}
	if ValidatePattern("[") {
		t.Error("expected [ to be invalid")
	}
}
