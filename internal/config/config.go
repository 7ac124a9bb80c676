package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/noten/internal/note"
)

// Edit timestamp policies.
const (
	EditTimestampPreserve = "preserve"
	EditTimestampRefresh  = "refresh"
)

// DefaultStorageKey is the key-value entry that holds the serialized note list.
const DefaultStorageKey = "notes_list"

// Config holds application configuration.
type Config struct {
	// TimestampLayout is the Go time layout used for note timestamps.
	TimestampLayout string `json:"timestamp_layout,omitempty"`

	// DisableTimestamps stores notes without a creation timestamp.
	DisableTimestamps bool `json:"disable_timestamps,omitempty"`

	// EditTimestamp decides what an edit does to a note's timestamp:
	// "preserve" keeps the creation time, "refresh" stamps the edit time.
	EditTimestamp string `json:"edit_timestamp,omitempty"`

	// StorageKey is the key under which the note list blob is stored.
	StorageKey string `json:"storage_key,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TimestampLayout: note.DefaultTimestampLayout,
		EditTimestamp:   EditTimestampPreserve,
		StorageKey:      DefaultStorageKey,
	}
}

// Validate reports configuration values that cannot be applied.
func (c *Config) Validate() error {
	switch c.EditTimestamp {
	case "", EditTimestampPreserve, EditTimestampRefresh:
	default:
		return fmt.Errorf("edit_timestamp must be one of: %s, %s (got %q)",
			EditTimestampPreserve, EditTimestampRefresh, c.EditTimestamp)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("storage_key must not be empty")
	}
	return nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.noten.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.noten) and repo (.noten) directories.
// Repo config is found by walking upward from startDir to find the nearest .noten/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	cfg := Merge(Merge(DefaultConfig(), global), repo)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindRepoConfig walks upward from startDir to find the nearest .noten/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".noten", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.TimestampLayout = firstNonEmpty(overlay.TimestampLayout, base.TimestampLayout)
	result.EditTimestamp = firstNonEmpty(overlay.EditTimestamp, base.EditTimestamp)
	result.StorageKey = firstNonEmpty(overlay.StorageKey, base.StorageKey)

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Booleans: overlay wins if true, else base
	result.DisableTimestamps = base.DisableTimestamps || overlay.DisableTimestamps

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
