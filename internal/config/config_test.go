package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/repofind/internal/types"
)

func TestParse(t *testing.T) {
	data := []byte(`
ignore:
  - "*.py"
  - vendor
filter:
  - package.json
  - "**/requirements/*.txt"
maxDepth: 3
concurrency: 4
logLevel: debug
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"*.py", "vendor"}, cfg.Ignore)
	assert.Equal(t, []string{"package.json", "**/requirements/*.txt"}, cfg.Filter)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Zero(t, cfg.Dropped)
}

func TestParse_Defaults(t *testing.T) {
	for _, data := range []string{"", "filter: [Gemfile]\n"} {
		cfg, err := Parse([]byte(data))
		require.NoError(t, err)
		assert.Equal(t, types.DefaultMaxDepth, cfg.MaxDepth)
		assert.Equal(t, "info", cfg.LogLevel)
	}
}

func TestParse_SanitizesPatterns(t *testing.T) {
	cfg, err := Parse([]byte(`
ignore: ["[abc]", "dist"]
filter: ["*.{js,ts}", "pom.xml", "a b"]
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"dist"}, cfg.Ignore)
	assert.Equal(t, []string{"pom.xml"}, cfg.Filter)
	assert.Equal(t, 3, cfg.Dropped)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "ignored: [foo]\n"},
		{"bad depth", "maxDepth: -2\n"},
		{"bad concurrency", "concurrency: -1\n"},
		{"wrong type", "maxDepth: deep\n"},
		{"malformed", "ignore: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "discover.yaml")
		require.NoError(t, os.WriteFile(path, []byte("maxDepth: 2\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.MaxDepth)
	})

	t.Run("explicit missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("default file missing", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("default file present", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("filter: [Gemfile]\n"), 0o644))
		t.Chdir(dir)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, []string{"Gemfile"}, cfg.Filter)
	})

	t.Run("invalid file names path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("nope: 1\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestConfig_Params(t *testing.T) {
	cfg := &Config{Ignore: []string{"dist"}, Filter: []string{"go.mod"}, MaxDepth: 7}

	assert.Equal(t, types.FindParams{
		Path:     "/repo",
		Ignore:   []string{"dist"},
		Filter:   []string{"go.mod"},
		MaxDepth: 7,
	}, cfg.Params("/repo"))
}
