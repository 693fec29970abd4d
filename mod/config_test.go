package mod

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".gek", cfg.Ext)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Empty(t, cfg.Ignore)
}

func TestLoadConfigMissing(t *testing.T) {
	root := newFS(t, nil)
	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, ".gek", cfg.Ext)
	assert.Equal(t, root, cfg.ImportRoot)
}

func TestLoadConfig(t *testing.T) {
	root := newFS(t, []file{{
		path: ConfigFile,
		body: `
ext = "gk"
workers = 3
ignore = ["gen_*", "*_test.gk"]
import_root = "lib"
`,
	}})
	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Ext:        ".gk",
		Workers:    3,
		Ignore:     []string{"gen_*", "*_test.gk"},
		ImportRoot: filepath.Join(root, "lib"),
	}, cfg)
}

func TestLoadConfigAbsImportRoot(t *testing.T) {
	root := newFS(t, []file{{path: ConfigFile, body: `import_root = "/usr/lib/gek"`}})
	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "/usr/lib/gek", cfg.ImportRoot)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "syntax", body: `ext = `, want: "failed to load config"},
		{name: "unknown key", body: "ext = \".gek\"\nwokers = 2\n", want: "unknown keys: wokers"},
		{name: "negative workers", body: `workers = -1`, want: "workers must be positive"},
		{name: "wrong type", body: `workers = "many"`, want: "failed to load config"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			root := newFS(t, []file{{path: ConfigFile, body: test.body}})
			_, err := LoadConfig(root)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}
