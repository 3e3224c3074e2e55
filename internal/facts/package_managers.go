package facts

import (
	"os/exec"
	"sort"
)

// Package managers worth reporting on a build host. Homebrew and
// MacPorts cover macOS; the rest show up on Linux CI runners.
var packageManagerCommands = []string{
	"brew", "port",
	"apt", "apt-get", "dnf", "pacman", "zypper",
	"nix-env",
}

func gatherPackageManagerFacts() []string {
	available := []string{}
	for _, cmd := range packageManagerCommands {
		if _, err := exec.LookPath(cmd); err == nil {
			available = append(available, cmd)
		}
	}
	sort.Strings(available)
	return available
}
