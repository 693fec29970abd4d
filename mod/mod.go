// Package mod loads module source file lists
// along with dependency modules,
// and parses them concurrently.
package mod

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eaburns/gek/ast"
	gitignore "github.com/sabhiram/go-gitignore"
)

// A Mod contains information about the source for a single module.
type Mod struct {
	// ModPath is the module path as it would appear in an import statement.
	ModPath string
	// ModName is the base file name of ModPath.
	ModName string
	// SrcPath is the source file path.
	// This is path to the source file or directory of the module.
	SrcPath string
	// SrcDir may differ from SrcPath for the root module
	// if the root module is given as a source file, not a directory.
	SrcDir string
	// SrcFiles contains the source file paths in alphabetical order.
	SrcFiles []string

	// Deps are the module dependencies
	// in alphabetical order on ModPath.
	//
	// Deps is nil until after a call to LoadDeps.
	Deps []*Mod

	cfg Config
}

// Load returns a *Mod for the module modPath, loaded from srcPath.
// srcPath may be either a source file or a directory of source files
// with the extension given by cfg.Ext.
func Load(srcPath, modPath string, cfg Config) (*Mod, error) {
	cfg.applyDefaults()
	m, err := newMod(srcPath, modPath, cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newMod(srcPath, modPath string, cfg Config) (*Mod, error) {
	srcPath, err := realPath(srcPath)
	if err != nil {
		return nil, err
	}
	srcFiles, srcDir, err := srcFiles(srcPath, cfg)
	if err != nil {
		return nil, err
	}
	m := &Mod{
		ModPath:  modPath,
		ModName:  filepath.Base(modPath),
		SrcPath:  srcPath,
		SrcDir:   srcDir,
		SrcFiles: srcFiles,
		cfg:      cfg,
	}
	return m, err
}

func realPath(dir string) (string, error) {
	switch dir {
	case string([]rune{filepath.Separator}):
		return dir, nil
	case ".":
		return os.Getwd()
	default:
		base := filepath.Base(dir)
		dir, err := realPath(filepath.Dir(dir))
		if err != nil {
			return "", err
		}
		switch base {
		case ".":
			return dir, nil
		case "..":
			return filepath.Dir(dir), nil
		default:
			return filepath.Join(dir, base), nil
		}
	}
}

func srcFiles(srcPath string, cfg Config) ([]string, string, error) {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return nil, "", err
	}
	defer srcFile.Close()
	stat, err := srcFile.Stat()
	if err != nil {
		return nil, "", err
	}
	if !stat.IsDir() {
		return []string{srcPath}, filepath.Dir(srcPath), nil
	}
	finfos, err := srcFile.Readdir(-1)
	if err != nil {
		return nil, "", err
	}
	ignore, err := compileIgnore(srcPath, cfg.Ignore)
	if err != nil {
		return nil, "", err
	}
	var paths []string
	for _, finfo := range finfos {
		name := finfo.Name()
		if finfo.IsDir() || strings.HasPrefix(name, ".") ||
			!strings.HasSuffix(name, cfg.Ext) || ignore.MatchesPath(name) {
			continue
		}
		path := filepath.Join(srcPath, name)
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, srcPath, nil
}

// compileIgnore returns the patterns of the directory's .gitignore file,
// if any, followed by the extra patterns.
func compileIgnore(dir string, extra []string) (*gitignore.GitIgnore, error) {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return gitignore.CompileIgnoreLines(extra...), nil
	}
	ignore, err := gitignore.CompileIgnoreFileAndLines(path, extra...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ignore, nil
}

// LoadDeps loads the modules's dependencies, setting the Deps field.
// Dependencies are loaded transitively, so all modules in Deps
// also have their Deps loaded.
// Imported modules are found relative to root,
// or to the configured import root if root is "".
func (m *Mod) LoadDeps(root string) error {
	if root == "" {
		root = m.cfg.ImportRoot
	}
	if root == "" {
		root = m.SrcDir
	}
	return loadDeps(root, m, map[string]*Mod{})
}

// Parse parses the module's source files concurrently.
func (m *Mod) Parse(ctx context.Context) (*ast.Mod, error) {
	results, err := ParseAll(ctx, m.SrcFiles, m.cfg)
	if err != nil {
		return nil, err
	}
	mod := &ast.Mod{Path: m.ModPath}
	for _, r := range results {
		mod.Trees = append(mod.Trees, r.Tree)
	}
	return mod, nil
}

// loadDeps loads the dependencies of root.
// Modules already in seen are reused, not reloaded.
func loadDeps(modRootDir string, root *Mod, seen map[string]*Mod) error {
	seen[root.ModPath] = root
	var addDeps func(*Mod) error
	addDeps = func(m *Mod) error {
		depFiles, err := deps(m.SrcFiles)
		if err != nil {
			return err
		}
		for _, depFile := range depFiles {
			if d, ok := seen[depFile]; ok {
				m.Deps = append(m.Deps, d)
				continue
			}
			srcPath := filepath.Join(modRootDir, depFile)
			d, err := newMod(srcPath, depFile, m.cfg)
			if err != nil {
				return fmt.Errorf("%s: failed to load import %q: %w", m.ModPath, depFile, err)
			}
			m.Deps = append(m.Deps, d)
			seen[depFile] = d
			if err := addDeps(d); err != nil {
				return err
			}
		}
		return nil
	}
	return addDeps(root)
}

func deps(srcFiles []string) ([]string, error) {
	var deps []string
	for _, file := range srcFiles {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		ds, err := ast.ReadImports(file, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		deps = append(deps, ds...)
	}

	sort.Strings(deps)

	var i int
	for _, d := range deps {
		if i == 0 || d != deps[i-1] {
			deps[i] = d
			i++
		}
	}
	return deps[:i], nil
}

// TopologicalDeps returns the roots and their dependencies
// in topologically sorted order, with dependencies
// before their dependants.
// Ties are broken by the order of roots.
func TopologicalDeps(roots ...*Mod) []*Mod {
	var sorted []*Mod
	seen := make(map[*Mod]bool)
	var add func(*Mod)
	add = func(m *Mod) {
		if seen[m] {
			return
		}
		seen[m] = true
		for _, d := range m.Deps {
			add(d)
		}
		sorted = append(sorted, m)
	}
	for _, root := range roots {
		add(root)
	}
	return sorted
}
