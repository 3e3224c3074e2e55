package brew

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// fakeRunner returns a runCommand replacement that serves canned output
// keyed by command name and fails for anything else.
func fakeRunner(outputs map[string]string) func(string, ...string) (string, error) {
	return func(name string, args ...string) (string, error) {
		out, ok := outputs[name]
		if !ok {
			return "", fmt.Errorf("%s: command not available", name)
		}
		return out, nil
	}
}

// countingRunner wraps fakeRunner and counts invocations per command
func countingRunner(outputs map[string]string, calls map[string]int) func(string, ...string) (string, error) {
	inner := fakeRunner(outputs)
	return func(name string, args ...string) (string, error) {
		calls[name]++
		return inner(name, args...)
	}
}

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	mkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte{}, 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// makeBrewRoot builds a fixture Homebrew prefix containing bin/brew and
// an opt directory per formula given.
func makeBrewRoot(t *testing.T, formulae ...string) string {
	t.Helper()
	root := t.TempDir()
	touch(t, filepath.Join(root, "bin", "brew"))
	for _, f := range formulae {
		mkdirAll(t, filepath.Join(root, "opt", f))
	}
	return root
}

func setDefaultRoots(t *testing.T, arm, intel string) {
	t.Helper()
	origARM, origIntel := defaultRootARM, defaultRootIntel
	defaultRootARM, defaultRootIntel = arm, intel
	t.Cleanup(func() {
		defaultRootARM, defaultRootIntel = origARM, origIntel
	})
}

func TestProbeNonDarwinIsNoop(t *testing.T) {
	p := NewProber(Options{
		GOOS: "linux",
		GUI:  true,
		RunCommand: func(name string, args ...string) (string, error) {
			t.Fatalf("unexpected command execution: %s", name)
			return "", nil
		},
	})

	before := Config{
		Root:             "/somewhere",
		PrefixPath:       []string{"/somewhere"},
		Python:           "/somewhere/bin/python3.12",
		PythonVersion:    "3.12",
		DeploymentTarget: "14.0",
	}

	after := p.Probe(before)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("Probe() on non-darwin changed config: %+v != %+v", after, before)
	}
}

func TestResolveRootFromBrew(t *testing.T) {
	p := NewProber(Options{
		GOOS:       "darwin",
		GOARCH:     "arm64",
		RunCommand: fakeRunner(map[string]string{"brew": "  /opt/homebrew\n"}),
	})

	cfg := p.Probe(Config{})
	if cfg.Root != "/opt/homebrew" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/opt/homebrew")
	}
}

func TestResolveRootFallbackPerArch(t *testing.T) {
	armRoot := makeBrewRoot(t)
	intelRoot := makeBrewRoot(t)
	setDefaultRoots(t, armRoot, intelRoot)

	tests := []struct {
		goarch string
		want   string
	}{
		{"arm64", armRoot},
		{"amd64", intelRoot},
	}

	for _, tt := range tests {
		t.Run(tt.goarch, func(t *testing.T) {
			p := NewProber(Options{
				GOOS:       "darwin",
				GOARCH:     tt.goarch,
				RunCommand: fakeRunner(nil), // brew unavailable
			})

			cfg := p.Probe(Config{})
			if cfg.Root != tt.want {
				t.Errorf("Root = %q, want %q", cfg.Root, tt.want)
			}
		})
	}
}

func TestResolveRootFallbackWithoutBrewBinary(t *testing.T) {
	// A fallback prefix that exists but holds no brew executable must
	// not be trusted.
	root := t.TempDir()
	mkdirAll(t, filepath.Join(root, "opt", "sqlite"))
	setDefaultRoots(t, root, root)

	p := NewProber(Options{
		GOOS:       "darwin",
		GOARCH:     "arm64",
		RunCommand: fakeRunner(nil),
	})

	cfg := p.Probe(Config{})
	if cfg.Root != "" {
		t.Errorf("Root = %q, want empty", cfg.Root)
	}
	if len(cfg.PrefixPath) != 0 {
		t.Errorf("PrefixPath = %v, want empty", cfg.PrefixPath)
	}
}

func TestPinnedRootSkipsBrewCommand(t *testing.T) {
	root := makeBrewRoot(t)
	calls := make(map[string]int)

	p := NewProber(Options{
		GOOS:       "darwin",
		GOARCH:     "arm64",
		RunCommand: countingRunner(map[string]string{"brew": "/elsewhere"}, calls),
	})

	cfg := p.Probe(Config{Root: root})
	if cfg.Root != root {
		t.Errorf("Root = %q, want pinned %q", cfg.Root, root)
	}
	if calls["brew"] != 0 {
		t.Errorf("brew invoked %d times for a pinned root, want 0", calls["brew"])
	}
}

func TestProbeIdempotent(t *testing.T) {
	root := makeBrewRoot(t, "sqlite", "readline")
	calls := make(map[string]int)

	p := NewProber(Options{
		GOOS:       "darwin",
		GOARCH:     "arm64",
		RunCommand: countingRunner(map[string]string{"brew": root + "\n", "sw_vers": "15.2\n"}, calls),
	})

	first := p.Probe(Config{})
	second := p.Probe(first)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second probe changed config: %+v != %+v", second, first)
	}
	if calls["brew"] != 1 {
		t.Errorf("brew invoked %d times across two probes, want 1", calls["brew"])
	}

	seen := make(map[string]bool)
	for _, entry := range second.PrefixPath {
		if seen[entry] {
			t.Errorf("PrefixPath contains duplicate entry %q", entry)
		}
		seen[entry] = true
	}
}

func TestAppendUnique(t *testing.T) {
	list := []string{"/a", "/b"}

	list = appendUnique(list, "/a")
	if len(list) != 2 {
		t.Errorf("appendUnique added a duplicate: %v", list)
	}

	list = appendUnique(list, "/c")
	if !reflect.DeepEqual(list, []string{"/a", "/b", "/c"}) {
		t.Errorf("appendUnique() = %v, want [/a /b /c]", list)
	}
}
