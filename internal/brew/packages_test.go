package brew

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiscoverKegOnlySubset(t *testing.T) {
	// Only 2 of the 9 known keg-only formulae are installed; exactly
	// those 2 must appear, in list order, after the root itself.
	root := makeBrewRoot(t, "icu4c", "sqlite", "not-keg-only")

	p := NewProber(Options{
		GOOS:       "darwin",
		GOARCH:     "arm64",
		RunCommand: fakeRunner(map[string]string{"brew": root}),
	})

	cfg := p.Probe(Config{})

	want := []string{
		root,
		filepath.Join(root, "opt", "icu4c"),
		filepath.Join(root, "opt", "sqlite"),
	}
	if !reflect.DeepEqual(cfg.PrefixPath, want) {
		t.Errorf("PrefixPath = %v, want %v", cfg.PrefixPath, want)
	}
}

func TestDiscoverKegOnlyVersionedFormulae(t *testing.T) {
	root := makeBrewRoot(t, "openssl@1.1", "openssl@3")

	p := NewProber(Options{
		GOOS:       "darwin",
		GOARCH:     "arm64",
		RunCommand: fakeRunner(map[string]string{"brew": root}),
	})

	cfg := p.Probe(Config{})

	want := []string{
		root,
		filepath.Join(root, "opt", "openssl@1.1"),
		filepath.Join(root, "opt", "openssl@3"),
	}
	if !reflect.DeepEqual(cfg.PrefixPath, want) {
		t.Errorf("PrefixPath = %v, want %v", cfg.PrefixPath, want)
	}
}

func TestDiscoverKegOnlyExtraPackages(t *testing.T) {
	root := makeBrewRoot(t, "sqlite", "qt")

	p := NewProber(Options{
		GOOS:          "darwin",
		GOARCH:        "arm64",
		ExtraPackages: []string{"qt", "missing"},
		RunCommand:    fakeRunner(map[string]string{"brew": root}),
	})

	cfg := p.Probe(Config{})

	want := []string{
		root,
		filepath.Join(root, "opt", "sqlite"),
		filepath.Join(root, "opt", "qt"),
	}
	if !reflect.DeepEqual(cfg.PrefixPath, want) {
		t.Errorf("PrefixPath = %v, want %v", cfg.PrefixPath, want)
	}
}

func TestDiscoverKegOnlyWithoutRoot(t *testing.T) {
	p := NewProber(Options{
		GOOS:       "darwin",
		GOARCH:     "amd64",
		RunCommand: fakeRunner(nil),
	})
	setDefaultRoots(t, "/nonexistent-arm", "/nonexistent-intel")

	cfg := p.Probe(Config{})
	if len(cfg.PrefixPath) != 0 {
		t.Errorf("PrefixPath = %v, want empty when no root resolved", cfg.PrefixPath)
	}
}

func TestKegOnlyFormulaeNoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range kegOnlyFormulae {
		if seen[name] {
			t.Errorf("kegOnlyFormulae contains duplicate: %s", name)
		}
		seen[name] = true
	}
}
