// Package output renders a resolved build configuration for consumption
// by shells and build systems.
package output

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/macbuild/brewprobe/internal/brew"
)

// ExportLines returns shell export statements, one per resolved field.
// Unresolved fields produce no line at all, so a consumer's own defaults
// survive. CMAKE_PREFIX_PATH entries are joined with semicolons as CMake
// expects.
func ExportLines(cfg brew.Config) string {
	var sb strings.Builder

	writeExport := func(name, value string) {
		if value != "" {
			sb.WriteString(fmt.Sprintf("export %s=%q\n", name, value))
		}
	}

	writeExport("HOMEBREW_PREFIX", cfg.Root)
	if len(cfg.PrefixPath) > 0 {
		writeExport("CMAKE_PREFIX_PATH", strings.Join(cfg.PrefixPath, ";"))
	}
	writeExport("PYTHON", cfg.Python)
	writeExport("MACOSX_DEPLOYMENT_TARGET", cfg.DeploymentTarget)
	writeExport("VTK_DIR", cfg.VTKDir)

	return sb.String()
}

// RenderTemplate renders a user-supplied template against the resolved
// configuration. The full sprig function set is available.
func RenderTemplate(cfg brew.Config, text string) (string, error) {
	tmpl, err := template.New("output").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, cfg); err != nil {
		return "", fmt.Errorf("rendering template: %w", err)
	}

	return sb.String(), nil
}
