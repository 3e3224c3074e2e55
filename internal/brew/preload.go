package brew

import (
	"os"
	"path/filepath"
	"strings"
)

// preloadVTK records the VTK CMake package directory when VTK is
// installed from Homebrew. VTK's own config files mis-order their
// includes when discovered late; handing the build the package
// directory up front sidesteps that. This is a workaround for the
// upstream defect and should go away once VTK fixes its config files.
//
// Every failure here is silent: a missing or unreadable directory just
// leaves VTKDir empty.
func (p *Prober) preloadVTK(cfg *Config) {
	if cfg.Root == "" || cfg.VTKDir != "" {
		return
	}

	base := filepath.Join(cfg.Root, "opt", "vtk", "lib", "cmake")
	entries, err := os.ReadDir(base)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "vtk") {
			cfg.VTKDir = filepath.Join(base, entry.Name())
			p.logf("Preloading VTK config from %s", cfg.VTKDir)
			return
		}
	}
}
