package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"fexp/internal/errors"
	"fexp/internal/fileinfo"
	"fexp/internal/preview"
)

// Config represents the application configuration
type Config struct {
	Window      WindowConfig       `json:"window"`
	Theme       ThemeConfig        `json:"theme"`
	UI          UIConfig           `json:"ui"`
	QuickAccess []QuickAccessEntry `json:"quickAccess"`
	Archive     ArchiveConfig      `json:"archive"`
	Preview     PreviewConfig      `json:"preview"`
}

// WindowConfig represents window-related settings
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ThemeConfig represents theme-related settings
type ThemeConfig struct {
	Dark       bool   `json:"dark"`
	FontSize   int    `json:"fontSize"`
	FontPath   string `json:"fontPath"`
	Background string `json:"background"` // "#rrggbb"; empty keeps the theme default
}

// UIConfig represents UI-related settings
type UIConfig struct {
	ShowHiddenFiles bool             `json:"showHiddenFiles"`
	Sort            SortConfig       `json:"sort"`
	FileFilter      FileFilterConfig `json:"fileFilter"`
}

// SortConfig represents file sorting settings
type SortConfig struct {
	DirectoriesFirst bool `json:"directoriesFirst"` // Whether to show directories before files
	CaseInsensitive  bool `json:"caseInsensitive"`
}

// FilterEntry represents a single filter pattern with metadata
type FilterEntry struct {
	Pattern  string    `json:"pattern"`  // Doublestar glob pattern
	LastUsed time.Time `json:"lastUsed"` // Last usage timestamp
	UseCount int       `json:"useCount"` // Usage frequency counter
}

// FileFilterConfig represents file filter settings
type FileFilterConfig struct {
	Pattern    string        `json:"pattern"`    // Active pattern; empty shows everything
	MaxEntries int           `json:"maxEntries"` // Maximum number of filter patterns to remember
	Entries    []FilterEntry `json:"entries"`    // Filter history (most recent first)
}

// QuickAccessEntry is one sidebar shortcut. A leading ~ is the home directory.
type QuickAccessEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ArchiveConfig lists the file extensions treated as archives
type ArchiveConfig struct {
	Extensions []string `json:"extensions"`
}

// PreviewConfig represents markdown preview settings
type PreviewConfig struct {
	Enabled     bool          `json:"enabled"`
	MaxFileSize int64         `json:"maxFileSize"` // bytes read from the previewed file
	Style       preview.Style `json:"style"`
}

// Manager provides configuration management functionality
type Manager struct {
	configPath string
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		configPath: getConfigPath(),
	}
}

// Path returns the configuration file location
func (m *Manager) Path() string { return m.configPath }

// Load loads configuration from file and merges with defaults.
// Fields missing from the file keep their defaults, except preview.style:
// a style given in the file must be complete.
func (m *Manager) Load() (*Config, error) {
	// Start with default configuration
	config := getDefaultConfig()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
		return config, normalize(config)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.NewConfigError("load", "error parsing config file "+m.configPath, err)
	}

	// json reuses slice elements and merges into struct values; lists and the
	// style are taken from the file as a whole instead
	var raw struct {
		QuickAccess []QuickAccessEntry `json:"quickAccess"`
		Preview     struct {
			Style *preview.Style `json:"style"`
		} `json:"preview"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewConfigError("load", "error parsing config file "+m.configPath, err)
	}
	if raw.QuickAccess != nil {
		config.QuickAccess = raw.QuickAccess
	}
	if raw.Preview.Style != nil {
		config.Preview.Style = *raw.Preview.Style
	}

	if err := normalize(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to file
func (m *Manager) Save(config *Config) error {
	// Create the config directory if it doesn't exist
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.NewConfigError("save", "error creating config directory", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return errors.NewConfigError("save", "error marshaling config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return errors.NewConfigError("save", "error writing config file", err)
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1100,
			Height: 700,
		},
		Theme: ThemeConfig{
			Dark:     true,
			FontSize: 14,
			FontPath: "",
		},
		UI: UIConfig{
			ShowHiddenFiles: false,
			Sort: SortConfig{
				DirectoriesFirst: true,
				CaseInsensitive:  true,
			},
			FileFilter: FileFilterConfig{
				MaxEntries: 30,
				Entries:    make([]FilterEntry, 0),
			},
		},
		QuickAccess: []QuickAccessEntry{
			{Name: "Home", Path: "~"},
			{Name: "Documents", Path: filepath.Join("~", "Documents")},
			{Name: "Downloads", Path: filepath.Join("~", "Downloads")},
			{Name: "Desktop", Path: filepath.Join("~", "Desktop")},
		},
		Archive: ArchiveConfig{
			Extensions: []string{".zip"},
		},
		Preview: PreviewConfig{
			Enabled:     true,
			MaxFileSize: preview.DefaultMaxFileSize,
			Style:       preview.DefaultStyle(),
		},
	}
}

// normalize expands home-relative paths and validates values that would
// otherwise fail later at render or filter time.
func normalize(config *Config) error {
	for i := range config.QuickAccess {
		config.QuickAccess[i].Path = ExpandHome(config.QuickAccess[i].Path)
	}
	config.Theme.FontPath = ExpandHome(config.Theme.FontPath)

	if config.Preview.MaxFileSize <= 0 {
		config.Preview.MaxFileSize = preview.DefaultMaxFileSize
	}
	if config.UI.FileFilter.MaxEntries <= 0 {
		config.UI.FileFilter.MaxEntries = 30
	}
	if err := config.Preview.Style.Validate(); err != nil {
		return err
	}
	if p := config.UI.FileFilter.Pattern; p != "" && !fileinfo.ValidatePattern(p) {
		return errors.NewConfigError("load", "invalid file filter pattern: "+p, nil)
	}
	if bg := config.Theme.Background; bg != "" && !validHexColor(bg) {
		return errors.NewConfigError("load", "invalid theme background color: "+bg, nil)
	}
	for _, qa := range config.QuickAccess {
		if qa.Name == "" || qa.Path == "" {
			return errors.NewConfigError("load", "quick access entries need a name and a path", nil)
		}
	}
	return nil
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range strings.ToLower(s[1:]) {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// getConfigPath returns the path to the configuration file following OS conventions
func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\fexp\config.json
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "config.json"
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "fexp")

	case "darwin":
		// macOS: ~/Library/Application Support/fexp/config.json
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.json"
		}
		configDir = filepath.Join(home, "Library", "Application Support", "fexp")

	default:
		// Linux/Unix: $XDG_CONFIG_HOME/fexp/config.json or ~/.config/fexp/config.json
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "config.json"
			}
			xdgConfigHome = filepath.Join(home, ".config")
		}
		configDir = filepath.Join(xdgConfigHome, "fexp")
	}

	return filepath.Join(configDir, "config.json")
}

// RecordFilter makes pattern the active filter and moves it to the front of
// the filter history. An empty pattern only clears the active filter.
func (c *Config) RecordFilter(pattern string) {
	c.UI.FileFilter.Pattern = pattern
	if pattern == "" {
		return
	}

	entry := FilterEntry{Pattern: pattern}
	// Remove existing entry if it exists
	for i, e := range c.UI.FileFilter.Entries {
		if e.Pattern == pattern {
			entry = e
			c.UI.FileFilter.Entries = append(c.UI.FileFilter.Entries[:i], c.UI.FileFilter.Entries[i+1:]...)
			break
		}
	}
	entry.LastUsed = time.Now()
	entry.UseCount++

	// Add to beginning of slice (newest first)
	c.UI.FileFilter.Entries = append([]FilterEntry{entry}, c.UI.FileFilter.Entries...)

	// Enforce max entries limit
	if max := c.UI.FileFilter.MaxEntries; max > 0 && len(c.UI.FileFilter.Entries) > max {
		c.UI.FileFilter.Entries = c.UI.FileFilter.Entries[:max]
	}
}

// FilterHistory returns remembered patterns, most recent first
func (c *Config) FilterHistory() []string {
	out := make([]string, 0, len(c.UI.FileFilter.Entries))
	for _, e := range c.UI.FileFilter.Entries {
		out = append(out, e.Pattern)
	}
	return out
}

// StartPath returns the first quick-access folder that exists, or the
// working directory.
func (c *Config) StartPath() string {
	for _, qa := range c.QuickAccess {
		if fileinfo.IsSMBDisplay(qa.Path) {
			continue
		}
		if info, err := os.Stat(qa.Path); err == nil && info.IsDir() {
			return qa.Path
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
