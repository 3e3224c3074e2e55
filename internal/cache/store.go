// Package cache persists the resolved build configuration between runs.
// The cache is a plain HCL attribute file; loading it back before a probe
// means the Homebrew CLI is not consulted again until the cache is
// cleared.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/macbuild/brewprobe/internal/brew"
)

const fileName = "config.hcl"

// Store reads and writes the cached configuration
type Store struct {
	path string
}

// NewStore creates a store at the given path, or at the default cache
// location when path is empty.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache directory: %w", err)
		}
		path = filepath.Join(dir, "brewprobe", fileName)
	}
	return &Store{path: path}, nil
}

// Path returns the cache file location
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a cached configuration is present
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the cached configuration. A missing cache file returns a
// zero Config and no error.
func (s *Store) Load() (brew.Config, error) {
	var cfg brew.Config

	src, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading cache: %w", err)
	}

	file, diags := hclparse.NewParser().ParseHCL(src, s.path)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("parsing cache: %s", diags.Error())
	}

	attrs, attrDiags := file.Body.JustAttributes()
	if attrDiags.HasErrors() {
		return cfg, fmt.Errorf("parsing cache: %s", attrDiags.Error())
	}

	cfg.Root = stringAttr(attrs, "root")
	cfg.PrefixPath = stringListAttr(attrs, "prefix_path")
	cfg.Python = stringAttr(attrs, "python")
	cfg.PythonVersion = stringAttr(attrs, "python_version")
	cfg.DeploymentTarget = stringAttr(attrs, "deployment_target")
	cfg.VTKDir = stringAttr(attrs, "vtk_dir")

	return cfg, nil
}

// Save writes the configuration, creating the cache directory if needed.
// Empty fields are omitted so a later Load treats them as unresolved.
func (s *Store) Save(cfg brew.Config) error {
	var sb strings.Builder

	writeAttr := func(name, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("%s = %q\n", name, value))
		}
	}

	writeAttr("root", cfg.Root)

	if len(cfg.PrefixPath) > 0 {
		quoted := make([]string, len(cfg.PrefixPath))
		for i, entry := range cfg.PrefixPath {
			quoted[i] = fmt.Sprintf("%q", entry)
		}
		sb.WriteString(fmt.Sprintf("prefix_path = [%s]\n", strings.Join(quoted, ", ")))
	}

	writeAttr("python", cfg.Python)
	writeAttr("python_version", cfg.PythonVersion)
	writeAttr("deployment_target", cfg.DeploymentTarget)
	writeAttr("vtk_dir", cfg.VTKDir)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}

	return nil
}

// Clear removes the cached configuration. Clearing an absent cache is
// not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

func stringAttr(attrs hcl.Attributes, name string) string {
	attr, ok := attrs[name]
	if !ok {
		return ""
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || val.Type() != cty.String {
		return ""
	}
	return val.AsString()
}

func stringListAttr(attrs hcl.Attributes, name string) []string {
	attr, ok := attrs[name]
	if !ok {
		return nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || !val.CanIterateElements() {
		return nil
	}

	var result []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() == cty.String && !elem.IsNull() {
			result = append(result, elem.AsString())
		}
	}
	return result
}
