package fileinfo

import (
	"path"
	"path/filepath"
	"strings"
)

const smbScheme = "smb://"

// IsSMBDisplay reports whether the path is a canonical smb display path (smb://...).
func IsSMBDisplay(p string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(p)), smbScheme)
}

// CleanPath returns the canonical form used for path identity.
// Local paths go through filepath.Clean; smb:// paths are cleaned URL-style
// with the scheme lowercased and no trailing slash.
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !IsSMBDisplay(p) {
		return filepath.Clean(p)
	}
	rest := path.Clean("/" + p[len(smbScheme):])
	return smbScheme + strings.TrimPrefix(rest, "/")
}

// SamePath reports whether two paths identify the same entry.
// Comparison is exact after cleaning; case folding is left to the host filesystem.
func SamePath(a, b string) bool {
	return CleanPath(a) == CleanPath(b)
}

// JoinPath joins base and name for display paths.
// - For smb:// display paths, it joins using forward slashes.
// - Otherwise it uses filepath.Join.
func JoinPath(base, name string) string {
	if IsSMBDisplay(base) {
		b := strings.TrimRight(base, "/")
		return b + "/" + name
	}
	return filepath.Join(base, name)
}

// ParentPath returns the parent directory for a path.
//   - For smb:// display paths, it trims one segment after the share.
//     Root (smb://host/share) returns itself.
//   - Otherwise it uses filepath.Dir.
func ParentPath(p string) string {
	if !IsSMBDisplay(p) {
		return filepath.Dir(p)
	}
	p = CleanPath(p)
	rest := strings.TrimPrefix(p, smbScheme)
	parts := strings.Split(rest, "/")
	if len(parts) <= 2 { // smb://host/share => root, no parent
		return p
	}
	return smbScheme + strings.Join(parts[:len(parts)-1], "/")
}

// BaseName returns the last path segment analogous to filepath.Base.
// For smb:// paths, it uses URL-style segments.
func BaseName(p string) string {
	if !IsSMBDisplay(p) {
		return filepath.Base(p)
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(CleanPath(p), smbScheme), "/")
	_, last := path.Split(rest)
	return last
}

// RelativeComponents returns the names leading from root down to p.
// ok is false when p is not root or a descendant of it. p equal to root
// yields an empty, non-nil slice.
func RelativeComponents(root, p string) ([]string, bool) {
	root, p = CleanPath(root), CleanPath(p)
	if root == "" || p == "" {
		return nil, false
	}
	if root == p {
		return []string{}, true
	}
	if IsSMBDisplay(root) != IsSMBDisplay(p) {
		return nil, false
	}
	if IsSMBDisplay(root) {
		prefix := strings.TrimSuffix(root, "/") + "/"
		if !strings.HasPrefix(p, prefix) {
			return nil, false
		}
		return strings.Split(p[len(prefix):], "/"), true
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false
	}
	return strings.Split(rel, string(filepath.Separator)), true
}

// IsWithin reports whether p is root itself or lies below it
func IsWithin(root, p string) bool {
	_, ok := RelativeComponents(root, p)
	return ok
}

// ValidName reports whether name can be used as a single path segment
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/`+string(filepath.Separator))
}

// SMBPath is a parsed smb://[domain;][user[:password]@]host/share/rel display path
type SMBPath struct {
	Host     string
	Share    string
	Rel      string // share-relative, forward slashes, no leading slash; "" is the share root
	User     string
	Password string
	Domain   string
}

// Display returns the canonical display path without credentials
func (p SMBPath) Display() string {
	d := smbScheme + p.Host + "/" + p.Share
	if p.Rel != "" {
		d += "/" + p.Rel
	}
	return d
}

// ParseSMBPath parses an smb:// display path. ok is false when the path is
// not an smb path or lacks a host or share.
func ParseSMBPath(p string) (SMBPath, bool) {
	if !IsSMBDisplay(p) {
		return SMBPath{}, false
	}
	rest := strings.TrimSpace(p)[len(smbScheme):]
	var out SMBPath
	if at := strings.LastIndex(rest, "@"); at >= 0 && !strings.Contains(rest[:at], "/") {
		userinfo := rest[:at]
		rest = rest[at+1:]
		if i := strings.Index(userinfo, ";"); i >= 0 {
			out.Domain = userinfo[:i]
			userinfo = userinfo[i+1:]
		}
		if i := strings.Index(userinfo, ":"); i >= 0 {
			out.User = userinfo[:i]
			out.Password = userinfo[i+1:]
		} else {
			out.User = userinfo
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+rest), "/")
	parts := strings.SplitN(cleaned, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return SMBPath{}, false
	}
	out.Host = parts[0]
	out.Share = parts[1]
	if len(parts) == 3 {
		out.Rel = parts[2]
	}
	return out, true
}
