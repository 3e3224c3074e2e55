package brew

import "path/filepath"

// Default install prefixes, keyed by CPU architecture. Apple Silicon
// installs live under /opt/homebrew, everything else under /usr/local.
// Vars so tests can point them at fixture trees.
var (
	defaultRootARM   = "/opt/homebrew"
	defaultRootIntel = "/usr/local"
)

// resolveRoot fills in cfg.Root. A root that is already set (pinned or
// cached) is left alone and the brew CLI is not consulted at all.
func (p *Prober) resolveRoot(cfg *Config) {
	if cfg.Root != "" {
		p.logf("Using Homebrew at %s", cfg.Root)
		return
	}

	// Ask brew itself first. A zero exit status is trusted verbatim,
	// even if the output is empty.
	if out, err := p.runCommand("brew", "--prefix"); err == nil {
		cfg.Root = trimOutput(out)
		if cfg.Root != "" {
			p.logf("Homebrew found at %s", cfg.Root)
		}
		return
	}

	// brew is unavailable, fall back to the architecture default and
	// verify it actually holds a brew executable before trusting it.
	root := defaultRootIntel
	if p.goarch == "arm64" {
		root = defaultRootARM
	}
	if !fileExists(filepath.Join(root, "bin", "brew")) {
		p.logf("Homebrew not found")
		return
	}

	cfg.Root = root
	p.logf("Homebrew found at %s", cfg.Root)
}
