// Package brew probes a local Homebrew installation and resolves the
// configuration a macOS build needs from it: the install root, search-path
// entries for keg-only formulae, a Python interpreter with PySide bindings,
// and the deployment target. Every probe is best-effort; failures leave
// fields unset and never abort the run.
package brew

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Config holds the resolved build configuration. Fields that were already
// set before probing (pinned by the user or loaded from cache) are never
// overwritten.
type Config struct {
	// Root is the Homebrew install prefix, empty if not found.
	Root string

	// PrefixPath is the ordered, duplicate-free search-path list handed
	// to the downstream build. Entries are only ever appended.
	PrefixPath []string

	// Python is the selected interpreter executable, empty if none.
	Python string

	// PythonVersion is the major.minor version of the selected interpreter.
	PythonVersion string

	// DeploymentTarget is the minimum macOS version ("<major>.0").
	DeploymentTarget string

	// VTKDir is the VTK CMake package directory, recorded so the
	// downstream build can load VTK's config before its own ordering
	// defect trips it up. See preload.go.
	VTKDir string
}

// Prober resolves a Config against the local system. The zero value is not
// usable; call NewProber.
type Prober struct {
	goos   string
	goarch string
	gui    bool

	// extra formula names probed after the built-in keg-only list.
	extra []string

	// runCommand executes an external command and returns its stdout.
	// Replaced in tests.
	runCommand func(name string, args ...string) (string, error)

	log io.Writer
}

// Options configures a Prober. Zero values fall back to the host system.
type Options struct {
	// GOOS and GOARCH override the host platform, used by tests.
	GOOS   string
	GOARCH string

	// GUI enables Python interpreter alignment for GUI builds.
	GUI bool

	// ExtraPackages are additional formula names to probe for keg-only
	// prefixes, after the built-in list.
	ExtraPackages []string

	// RunCommand overrides external command execution, used by tests.
	RunCommand func(name string, args ...string) (string, error)

	// Log receives progress messages, one line per resolved value.
	Log io.Writer
}

// NewProber creates a Prober for the given options.
func NewProber(opts Options) *Prober {
	p := &Prober{
		goos:       opts.GOOS,
		goarch:     opts.GOARCH,
		gui:        opts.GUI,
		extra:      opts.ExtraPackages,
		runCommand: opts.RunCommand,
		log:        opts.Log,
	}
	if p.goos == "" {
		p.goos = runtime.GOOS
	}
	if p.goarch == "" {
		p.goarch = runtime.GOARCH
	}
	if p.runCommand == nil {
		p.runCommand = runCommandOutput
	}
	if p.log == nil {
		p.log = io.Discard
	}
	return p
}

// Probe resolves the configuration. On non-darwin hosts it returns cfg
// unchanged. It never fails: every unavailable probe leaves the
// corresponding field unset and moves on.
func (p *Prober) Probe(cfg Config) Config {
	if p.goos != "darwin" {
		return cfg
	}

	p.resolveRoot(&cfg)
	if cfg.Root != "" {
		cfg.PrefixPath = appendUnique(cfg.PrefixPath, cfg.Root)
	}
	p.discoverKegOnly(&cfg)
	p.alignPython(&cfg)
	p.preloadVTK(&cfg)
	p.resolveDeploymentTarget(&cfg)

	return cfg
}

func (p *Prober) logf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.log, format+"\n", args...)
}

// runCommandOutput runs a command and returns its stdout
func runCommandOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// appendUnique appends value to list unless it is already present
func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// trimOutput trims surrounding whitespace from command output
func trimOutput(out string) string {
	return strings.TrimSpace(out)
}
