package brew

import "regexp"

var leadingDigits = regexp.MustCompile(`^[0-9]+`)

// resolveDeploymentTarget derives the minimum macOS version from the
// host's product version, keeping only the major component ("15.7.1"
// becomes "15.0"). A pinned value, a failing sw_vers, or output without
// leading digits leaves the target untouched.
func (p *Prober) resolveDeploymentTarget(cfg *Config) {
	if cfg.DeploymentTarget != "" {
		return
	}

	out, err := p.runCommand("sw_vers", "--productVersion")
	if err != nil {
		return
	}

	major := leadingDigits.FindString(trimOutput(out))
	if major == "" {
		return
	}

	cfg.DeploymentTarget = major + ".0"
	p.logf("Targeting macOS %s", cfg.DeploymentTarget)
}
