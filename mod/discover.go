package mod

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover loads a Mod for each directory beneath root
// that contains source files, along with their dependencies.
// The module path of each is its slash-separated path relative to root,
// and imports are resolved relative to root.
// Hidden directories and those ignored by root's .gitignore
// or cfg.Ignore are skipped.
//
// The returned Mods are in alphabetical order on SrcPath.
// A module imported by several others is loaded only once.
func Discover(root string, cfg Config) ([]*Mod, error) {
	cfg.applyDefaults()
	root, err := realPath(root)
	if err != nil {
		return nil, err
	}
	dirs, err := srcDirs(root, cfg)
	if err != nil {
		return nil, err
	}
	var mods []*Mod
	seen := make(map[string]*Mod)
	for _, dir := range dirs {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return nil, err
		}
		path := filepath.ToSlash(rel)
		if seen[path] != nil {
			mods = append(mods, seen[path])
			continue
		}
		m, err := newMod(dir, path, cfg)
		if err != nil {
			return nil, err
		}
		mods = append(mods, m)
		if err := loadDeps(root, m, seen); err != nil {
			return nil, err
		}
	}
	sort.Slice(mods, func(i, j int) bool {
		return mods[i].SrcPath < mods[j].SrcPath
	})
	return mods, nil
}

func srcDirs(root string, cfg Config) ([]string, error) {
	ignore, err := compileIgnore(root, cfg.Ignore)
	if err != nil {
		return nil, err
	}
	var dirs []string
	has := make(map[string]bool)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") || ignore.MatchesPath(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), cfg.Ext) {
			return nil
		}
		dir := filepath.Dir(path)
		if !has[dir] {
			has[dir] = true
			dirs = append(dirs, dir)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}
