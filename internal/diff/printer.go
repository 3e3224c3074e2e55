// Package diff prints resolved build configurations and the changes
// between a cached configuration and a fresh probe.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/macbuild/brewprobe/internal/brew"
)

// Printer handles printing configurations with colors
type Printer struct {
	out       io.Writer
	useColors bool
}

// NewPrinter creates a new printer
func NewPrinter(out io.Writer, useColors bool) *Printer {
	if !useColors {
		color.NoColor = true
	}
	return &Printer{
		out:       out,
		useColors: useColors,
	}
}

// PrintConfig prints every resolved value, skipping unresolved fields
func (p *Printer) PrintConfig(cfg brew.Config) {
	if cfg.Root == "" {
		p.printField("root", "(not found)")
	} else {
		p.printField("root", cfg.Root)
	}

	for i, entry := range cfg.PrefixPath {
		if i == 0 {
			p.printField("prefix_path", entry)
		} else {
			_, _ = fmt.Fprintf(p.out, "%-20s  %s\n", "", entry)
		}
	}

	if cfg.Python != "" {
		p.printField("python", fmt.Sprintf("%s (%s)", cfg.Python, cfg.PythonVersion))
	}
	if cfg.DeploymentTarget != "" {
		p.printField("deployment_target", cfg.DeploymentTarget)
	}
	if cfg.VTKDir != "" {
		p.printField("vtk_dir", cfg.VTKDir)
	}
}

func (p *Printer) printField(name, value string) {
	if p.useColors {
		cyan := color.New(color.FgCyan)
		_, _ = cyan.Fprintf(p.out, "%-20s", name)
		_, _ = fmt.Fprintf(p.out, "  %s\n", value)
	} else {
		_, _ = fmt.Fprintf(p.out, "%-20s  %s\n", name, value)
	}
}

// PrintChanges prints the differences between the previously cached
// configuration and a fresh probe result.
func (p *Printer) PrintChanges(before, after brew.Config) {
	changed := p.printScalarChange("root", before.Root, after.Root)
	changed = p.printPrefixPathChange(before.PrefixPath, after.PrefixPath) || changed
	changed = p.printScalarChange("python", before.Python, after.Python) || changed
	changed = p.printScalarChange("python_version", before.PythonVersion, after.PythonVersion) || changed
	changed = p.printScalarChange("deployment_target", before.DeploymentTarget, after.DeploymentTarget) || changed
	changed = p.printScalarChange("vtk_dir", before.VTKDir, after.VTKDir) || changed

	if !changed {
		p.PrintNoChanges()
	}
}

func (p *Printer) printScalarChange(name, oldValue, newValue string) bool {
	if oldValue == newValue {
		return false
	}

	switch {
	case oldValue == "":
		green := color.New(color.FgGreen)
		_, _ = green.Fprintf(p.out, "+ %s = %q\n", name, newValue)
	case newValue == "":
		red := color.New(color.FgRed)
		_, _ = red.Fprintf(p.out, "- %s = %q\n", name, oldValue)
	default:
		yellow := color.New(color.FgYellow)
		_, _ = yellow.Fprintf(p.out, "~ %s: %q => %q\n", name, oldValue, newValue)
	}

	return true
}

// printPrefixPathChange prints a line diff of the search-path list
func (p *Printer) printPrefixPathChange(before, after []string) bool {
	oldText := strings.Join(before, "\n")
	newText := strings.Join(after, "\n")
	if oldText == newText {
		return false
	}

	yellow := color.New(color.FgYellow)
	_, _ = yellow.Fprintf(p.out, "~ prefix_path:\n")

	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(oldText+"\n", newText+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	for _, d := range diffs {
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				_, _ = green.Fprintf(p.out, "  + %s\n", line)
			case diffmatchpatch.DiffDelete:
				_, _ = red.Fprintf(p.out, "  - %s\n", line)
			default:
				_, _ = fmt.Fprintf(p.out, "    %s\n", line)
			}
		}
	}

	return true
}

// PrintNoChanges prints when a fresh probe matches the cached result
func (p *Printer) PrintNoChanges() {
	green := color.New(color.FgGreen)
	if p.useColors {
		_, _ = green.Fprintln(p.out, "No changes. Build configuration is up-to-date.")
	} else {
		_, _ = fmt.Fprintln(p.out, "No changes. Build configuration is up-to-date.")
	}
}
