package fileinfo

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestJoinParentBaseWithSMB(t *testing.T) {
	base := "smb://host/share/dir"
	name := "file.txt"
	joined := JoinPath(base, name)
	if joined != "smb://host/share/dir/file.txt" {
		t.Fatalf("JoinPath(smb) got %q", joined)
	}
	parent := ParentPath(joined)
	if parent != base {
		t.Fatalf("ParentPath(smb) got %q, want %q", parent, base)
	}
	if last := BaseName(joined); last != "file.txt" {
		t.Fatalf("BaseName(smb) got %q", last)
	}
	if root := ParentPath("smb://host/share"); root != "smb://host/share" {
		t.Fatalf("ParentPath(share root) got %q", root)
	}
}

func TestJoinParentBaseWithLocal(t *testing.T) {
	base := filepath.Join("tmp", "dir")
	name := "file.txt"
	joined := JoinPath(base, name)
	if joined != filepath.Join("tmp", "dir", "file.txt") {
		t.Fatalf("JoinPath(local) got %q", joined)
	}
	parent := ParentPath(joined)
	if parent != base {
		t.Fatalf("ParentPath(local) got %q", parent)
	}
	if last := BaseName(joined); last != name {
		t.Fatalf("BaseName(local) got %q", last)
	}
}

func TestCleanPath(t *testing.T) {
	testCases := []struct {
		in, expected string
	}{
		{"", ""},
		{"  ", ""},
		{"SMB://host/share/", "smb://host/share"},
		{"smb://host/share/a/../b", "smb://host/share/b"},
		{filepath.Join("a", "b") + string(filepath.Separator), filepath.Join("a", "b")},
	}
	for _, tc := range testCases {
		if got := CleanPath(tc.in); got != tc.expected {
			t.Errorf("CleanPath(%q) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}

func TestRelativeComponents(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")

	testCases := []struct {
		name     string
		root, p  string
		expected []string
		ok       bool
	}{
		{"Same path", root, root, []string{}, true},
		{"Child", root, filepath.Join(root, "a"), []string{"a"}, true},
		{"Grandchild", root, filepath.Join(root, "a", "b"), []string{"a", "b"}, true},
		{"Sibling prefix", root, root + "2", nil, false},
		{"Parent", root, filepath.Dir(root), nil, false},
		{"SMB descendant", "smb://h/s", "smb://h/s/x/y", []string{"x", "y"}, true},
		{"SMB outside", "smb://h/s", "smb://h/other", nil, false},
		{"Mixed schemes", root, "smb://h/s", nil, false},
		{"Empty root", "", root, nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := RelativeComponents(tc.root, tc.p)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("components = %#v, want %#v", got, tc.expected)
			}
		})
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"a", "a.txt", ".hidden", "with space"} {
		if !ValidName(name) {
			t.Errorf("ValidName(%q) = false", name)
		}
	}
	for _, name := range []string{"", ".", "..", "a/b"} {
		if ValidName(name) {
			t.Errorf("ValidName(%q) = true", name)
		}
	}
}

func TestParseSMBPath(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected SMBPath
		ok       bool
	}{
		{"Share root", "smb://nas/media", SMBPath{Host: "nas", Share: "media"}, true},
		{"Nested", "smb://nas/media/a/b.txt", SMBPath{Host: "nas", Share: "media", Rel: "a/b.txt"}, true},
		{"User and password", "smb://bob:pw@nas/media", SMBPath{Host: "nas", Share: "media", User: "bob", Password: "pw"}, true},
		{"Domain", "smb://CORP;bob@nas/media/x", SMBPath{Host: "nas", Share: "media", Rel: "x", User: "bob", Domain: "CORP"}, true},
		{"Missing share", "smb://nas", SMBPath{}, false},
		{"Local path", "/tmp", SMBPath{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseSMBPath(tc.in)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.expected {
				t.Errorf("ParseSMBPath(%q) = %+v, want %+v", tc.in, got, tc.expected)
			}
		})
	}

	p, _ := ParseSMBPath("smb://bob:pw@nas/media/a")
	if p.Display() != "smb://nas/media/a" {
		t.Errorf("Display() = %q", p.Display())
	}
}
