package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"

	"github.com/custodia-labs/contentbridge-cli/internal/core/domain"
	"github.com/custodia-labs/contentbridge-cli/internal/logger"
)

// LoadConfig reads the contentbridge source configuration from a JSON5
// file. When a sibling "<name>.local.<ext>" file exists it is merged on
// top, so developers can override endpoints or credentials without
// touching the checked-in config.
func LoadConfig(path string) (domain.Config, error) {
	var cfg domain.Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	localPath := localOverridePath(path)
	localData, err := os.ReadFile(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config override %s: %w", localPath, err)
	}

	var override domain.Config
	if err := json5.Unmarshal(localData, &override); err != nil {
		return cfg, fmt.Errorf("parsing config override %s: %w", localPath, err)
	}
	if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
		return cfg, fmt.Errorf("merging config override: %w", err)
	}

	logger.Info("merged config with local overrides from %s", localPath)
	return cfg, nil
}

// localOverridePath derives "<name>.local.<ext>" from a config path.
func localOverridePath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, name+".local"+ext)
}
