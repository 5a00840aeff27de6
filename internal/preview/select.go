// Package preview picks the markdown file to show for a folder and renders it.
package preview

import (
	"path"
	"strings"

	"fexp/internal/fileinfo"
)

const readmeName = "readme.md"

// Select picks at most one file from a listing: a file named readme.md in
// any case wins, otherwise the first .md file in listing order.
func Select(entries []fileinfo.Entry) (fileinfo.Entry, bool) {
	var first fileinfo.Entry
	found := false
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(e.Name, readmeName) {
			return e, true
		}
		if !found && strings.EqualFold(path.Ext(e.Name), ".md") {
			first, found = e, true
		}
	}
	return first, found
}
