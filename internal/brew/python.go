package brew

import "path/filepath"

// pythonVersions are the candidate interpreter versions, newest first.
// The first version whose PySide bindings and interpreter both exist
// wins; later versions are never tried after a match.
var pythonVersions = []string{"3.13", "3.12", "3.11", "3.10"}

// alignPython selects the interpreter whose PySide bindings are already
// installed under the Homebrew root. Only runs for GUI builds and never
// overrides an interpreter that is already pinned.
func (p *Prober) alignPython(cfg *Config) {
	if !p.gui || cfg.Python != "" || cfg.Root == "" {
		return
	}

	for _, version := range pythonVersions {
		bindings := filepath.Join(cfg.Root, "opt", "pyside", "lib", "python"+version)
		if !dirExists(bindings) {
			continue
		}

		interpreter := filepath.Join(cfg.Root, "opt", "python@"+version, "bin", "python"+version)
		if !fileExists(interpreter) {
			continue
		}

		cfg.Python = interpreter
		cfg.PythonVersion = version
		p.logf("Using Python %s at %s (PySide bindings present)", version, interpreter)
		return
	}
}
