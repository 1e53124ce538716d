package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the tool-level defaults persisted between runs.
type Settings struct {
	// OutputDir is the default markdown export directory for sources
	// that configure export without a directory of their own.
	OutputDir string `toml:"output_dir"`

	// Verbose enables verbose logging by default.
	Verbose bool `toml:"verbose"`
}

// SettingsStore persists Settings as a TOML file.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewSettingsStore creates a TOML-backed settings store. If configDir
// is empty, defaults to ~/.contentbridge/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".contentbridge")
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, err
	}

	s := &SettingsStore{filePath: filepath.Join(configDir, "config.toml")}
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// Settings returns the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists immediately.
func (s *SettingsStore) Update(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.save()
}

// Load reads settings from the TOML file. A missing file leaves the
// zero settings in place.
func (s *SettingsStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = Settings{}
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &s.settings)
}

// save writes settings to the TOML file (caller must hold lock).
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0o600)
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
