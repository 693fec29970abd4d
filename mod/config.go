package mod

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFile is the name of the optional project configuration file
// at the root of a module.
const ConfigFile = "gek.toml"

// Config is the project configuration.
type Config struct {
	// Ext is the source file extension, including the dot.
	Ext string `toml:"ext"`
	// Workers is the number of files parsed concurrently.
	Workers int `toml:"workers"`
	// Ignore are gitignore-style patterns
	// for source files that are never loaded.
	Ignore []string `toml:"ignore"`
	// ImportRoot is the directory in which imported modules are found.
	// A relative ImportRoot is relative to the directory of the config file.
	ImportRoot string `toml:"import_root"`
}

// DefaultConfig returns the configuration used
// when there is no config file.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// LoadConfig loads the config file from dir.
// If there is no config file, the default configuration is returned.
func LoadConfig(dir string) (Config, error) {
	var c Config
	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.applyDefaults()
		c.ImportRoot = dir
		return c, nil
	}
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		var keys []string
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if c.Workers < 0 {
		return Config{}, fmt.Errorf("%s: workers must be positive, got %d", path, c.Workers)
	}
	c.applyDefaults()
	if c.ImportRoot == "" {
		c.ImportRoot = dir
	} else if !filepath.IsAbs(c.ImportRoot) {
		c.ImportRoot = filepath.Join(dir, c.ImportRoot)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Ext == "" {
		c.Ext = ".gek"
	}
	if !strings.HasPrefix(c.Ext, ".") {
		c.Ext = "." + c.Ext
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
}
