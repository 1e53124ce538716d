package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfig_JSON5(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contentbridge.config.json5")
	// JSON5: comments, unquoted keys, trailing commas
	writeFile(t, path, `{
		// global cap
		maxItems: 5,
		sources: [
			{
				name: 'blog',
				fetch: { endpointUrl: 'https://api.example.com/posts', },
			},
		],
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.MaxItems)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "blog", cfg.Sources[0].Name)
	assert.Equal(t, "https://api.example.com/posts", cfg.Sources[0].Fetch.EndpointURL)
}

func TestLoadConfig_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.json5")
	writeFile(t, path, `{maxItems: 5, sources: [{name: 'blog'}]}`)
	writeFile(t, filepath.Join(dir, "site.local.json5"), `{maxItems: 99}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 99.0, cfg.MaxItems)
	// Fields absent from the override are kept
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "blog", cfg.Sources[0].Name)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json5"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json5")
	writeFile(t, path, `{sources: [`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLocalOverridePath(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "site.local.json5"),
		localOverridePath(filepath.Join("a", "site.json5")))
	assert.Equal(t, "config.local", localOverridePath("config"))
}
