package fileinfo

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SortOptions controls the presentation order of a listing
type SortOptions struct {
	DirectoriesFirst bool
	CaseInsensitive  bool
}

// SortEntries returns a sorted copy of entries; the input is left untouched.
func SortEntries(entries []Entry, opts SortOptions) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if opts.DirectoriesFirst && a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		if opts.CaseInsensitive {
			la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if la != lb {
				return la < lb
			}
		}
		return a.Name < b.Name
	})
	return out
}

// ValidatePattern reports whether pattern is a usable doublestar glob
func ValidatePattern(pattern string) bool {
	return doublestar.ValidatePattern(strings.ToLower(pattern))
}

// MatchesPattern matches a file name against a doublestar glob, ignoring case
func MatchesPattern(name, pattern string) (bool, error) {
	return doublestar.Match(strings.ToLower(pattern), strings.ToLower(name))
}

// Filter hides entries from a listing view.
// Directories are always shown so the user can keep navigating.
type Filter struct {
	Pattern    string
	ShowHidden bool
}

// Apply returns the entries that pass the filter, in their original order
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !f.ShowHidden && e.IsHidden() {
			continue
		}
		if f.Pattern != "" && !e.IsDir() {
			matched, err := MatchesPattern(e.Name, f.Pattern)
			if err != nil || !matched {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
