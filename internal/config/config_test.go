package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"fexp/internal/errors"
	"fexp/internal/preview"
)

func writeConfig(t *testing.T, content string) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return &Manager{configPath: path}
}

func TestGetDefaultConfig(t *testing.T) {
	config := getDefaultConfig()

	// Test Theme defaults
	if !config.Theme.Dark {
		t.Error("Expected dark theme to be true by default")
	}
	if config.Theme.FontSize != 14 {
		t.Errorf("Expected default font size 14, got %d", config.Theme.FontSize)
	}

	// Test UI defaults
	if config.UI.ShowHiddenFiles {
		t.Error("Expected ShowHiddenFiles to be false by default")
	}
	if !config.UI.Sort.DirectoriesFirst || !config.UI.Sort.CaseInsensitive {
		t.Errorf("Expected directories-first, case-insensitive sort, got %+v", config.UI.Sort)
	}

	// Test quick access defaults
	var names []string
	for _, qa := range config.QuickAccess {
		names = append(names, qa.Name)
	}
	if !reflect.DeepEqual(names, []string{"Home", "Documents", "Downloads", "Desktop"}) {
		t.Errorf("Unexpected quick access defaults: %v", names)
	}

	// Test archive and preview defaults
	if !reflect.DeepEqual(config.Archive.Extensions, []string{".zip"}) {
		t.Errorf("Expected archive extensions [.zip], got %v", config.Archive.Extensions)
	}
	if !config.Preview.Enabled {
		t.Error("Expected preview to be enabled by default")
	}
	if config.Preview.Style != preview.DefaultStyle() {
		t.Errorf("Expected default preview style, got %+v", config.Preview.Style)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := getConfigPath()

	// Should return a non-empty path
	if path == "" {
		t.Error("Config path should not be empty")
	}

	// Should end with config.json
	if !strings.HasSuffix(path, "config.json") {
		t.Errorf("Config path should end with 'config.json', got '%s'", path)
	}
}

func TestManagerLoadNonExistentFile(t *testing.T) {
	manager := &Manager{configPath: filepath.Join(t.TempDir(), "missing", "config.json")}

	config, err := manager.Load()

	// Should not return an error, but should return default config
	if err != nil {
		t.Fatalf("Load should not return error for non-existent file, got: %v", err)
	}
	if config.Window.Width != 1100 {
		t.Errorf("Should return default config with width 1100, got %d", config.Window.Width)
	}
	home, err := os.UserHomeDir()
	if err == nil && config.QuickAccess[0].Path != home {
		t.Errorf("Expected ~ to expand to %s, got %s", home, config.QuickAccess[0].Path)
	}
}

func TestManagerLoadMergesWithDefaults(t *testing.T) {
	manager := writeConfig(t, `{
		"window": {"width": 1024},
		"ui": {"showHiddenFiles": true},
		"quickAccess": [{"name": "Work", "path": "/srv/work"}],
		"archive": {"extensions": [".zip", ".tar.gz"]}
	}`)

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Window.Width != 1024 || config.Window.Height != 700 {
		t.Errorf("Unexpected window %+v", config.Window)
	}
	if !config.UI.ShowHiddenFiles {
		t.Error("Expected ShowHiddenFiles from file")
	}
	if !config.UI.Sort.DirectoriesFirst {
		t.Error("Missing sort section should keep the default")
	}
	if len(config.QuickAccess) != 1 || config.QuickAccess[0].Name != "Work" {
		t.Errorf("Quick access should be replaced, got %+v", config.QuickAccess)
	}
	if !reflect.DeepEqual(config.Archive.Extensions, []string{".zip", ".tar.gz"}) {
		t.Errorf("Unexpected extensions %v", config.Archive.Extensions)
	}
	if config.Preview.Style != preview.DefaultStyle() {
		t.Error("Missing style should keep the default")
	}
}

func TestManagerLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"Partial style", `{"preview": {"style": {"fontFamily": "serif"}}}`},
		{"Invalid filter", `{"ui": {"fileFilter": {"pattern": "["}}}`},
		{"Invalid background", `{"theme": {"background": "green"}}`},
		{"Nameless quick access", `{"quickAccess": [{"path": "/tmp"}]}`},
		{"Malformed JSON", `{"window": `},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := writeConfig(t, tc.content).Load()
			if !errors.Is(err, errors.ErrorTypeConfig) {
				t.Errorf("Load = %v, want config error", err)
			}
		})
	}
}

func TestManagerLoadCompleteStyle(t *testing.T) {
	manager := writeConfig(t, `{"preview": {"style": {
		"fontFamily": "serif", "backgroundColor": "#fff", "textColor": "#000",
		"headingColor": "#111", "paragraphFontSize": "16px", "linkColor": "blue"}}}`)

	config, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if config.Preview.Style.FontFamily != "serif" || config.Preview.Style.LinkColor != "blue" {
		t.Errorf("Unexpected style %+v", config.Preview.Style)
	}
	if !config.Preview.Enabled {
		t.Error("Expected preview to stay enabled")
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "test_config.json")
	manager := &Manager{configPath: configPath}

	testConfig := getDefaultConfig()
	testConfig.Window = WindowConfig{Width: 1200, Height: 800}
	testConfig.Theme.FontSize = 18
	testConfig.UI.ShowHiddenFiles = true
	testConfig.RecordFilter("*.md")

	// Save the config
	if err := manager.Save(testConfig); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Check that file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	// Load the config
	loadedConfig, err := manager.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loadedConfig.Window.Width != 1200 {
		t.Errorf("Expected loaded width 1200, got %d", loadedConfig.Window.Width)
	}
	if loadedConfig.Theme.FontSize != 18 {
		t.Errorf("Expected loaded font size 18, got %d", loadedConfig.Theme.FontSize)
	}
	if !loadedConfig.UI.ShowHiddenFiles {
		t.Error("Expected loaded ShowHiddenFiles to be true")
	}
	if loadedConfig.UI.FileFilter.Pattern != "*.md" || len(loadedConfig.FilterHistory()) != 1 {
		t.Errorf("Filter not preserved: %+v", loadedConfig.UI.FileFilter)
	}
}

func TestRecordFilter(t *testing.T) {
	config := getDefaultConfig()
	config.UI.FileFilter.MaxEntries = 2

	config.RecordFilter("*.go")
	config.RecordFilter("*.md")
	config.RecordFilter("*.go")

	if got := config.FilterHistory(); !reflect.DeepEqual(got, []string{"*.go", "*.md"}) {
		t.Errorf("history = %v", got)
	}
	if config.UI.FileFilter.Entries[0].UseCount != 2 {
		t.Errorf("use count = %d, want 2", config.UI.FileFilter.Entries[0].UseCount)
	}

	config.RecordFilter("*.txt")
	if got := config.FilterHistory(); !reflect.DeepEqual(got, []string{"*.txt", "*.go"}) {
		t.Errorf("history after overflow = %v", got)
	}

	config.RecordFilter("")
	if config.UI.FileFilter.Pattern != "" || len(config.FilterHistory()) != 2 {
		t.Error("clearing the filter must keep the history")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~"); got != home {
		t.Errorf("ExpandHome(~) = %s", got)
	}
	if got := ExpandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandHome(~/x) = %s", got)
	}
	if got := ExpandHome("/abs/~x"); got != "/abs/~x" {
		t.Errorf("ExpandHome(/abs/~x) = %s", got)
	}
}

func TestStartPath(t *testing.T) {
	dir := t.TempDir()
	config := getDefaultConfig()
	config.QuickAccess = []QuickAccessEntry{
		{Name: "Missing", Path: filepath.Join(dir, "nope")},
		{Name: "Share", Path: "smb://nas/share"},
		{Name: "Here", Path: dir},
	}
	if got := config.StartPath(); got != dir {
		t.Errorf("StartPath = %s, want %s", got, dir)
	}
}
