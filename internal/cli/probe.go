package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/macbuild/brewprobe/internal/brew"
	"github.com/macbuild/brewprobe/internal/config"
	"github.com/macbuild/brewprobe/internal/diff"
	"github.com/macbuild/brewprobe/internal/facts"
)

var (
	probeGUI     bool
	probeRefresh bool
	probeFormat  string
)

// NewProbeCmd creates the probe command
func NewProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe the Homebrew installation and cache the result",
		Long: `The probe command resolves the build configuration from the local
Homebrew installation and writes it to the cache. A previously cached
root is reused without consulting the brew CLI again; use --refresh to
discard the cache and probe from scratch.`,
		RunE: runProbe,
	}

	cmd.Flags().BoolVar(&probeGUI, "gui", false,
		"Resolve a Python interpreter with PySide bindings for a GUI build")
	cmd.Flags().BoolVar(&probeRefresh, "refresh", false,
		"Discard the cached configuration and probe from scratch")
	cmd.Flags().StringVar(&probeFormat, "format", "text",
		"Output format: text, hcl, json, or yaml")

	return cmd
}

func runProbe(cmd *cobra.Command, args []string) error {
	hostFacts, err := facts.Gather()
	if err != nil {
		return fmt.Errorf("gathering host facts: %w", err)
	}

	settings, err := loadSettings(hostFacts)
	if err != nil {
		return err
	}

	store, err := newStore()
	if err != nil {
		return err
	}

	var cached brew.Config
	hadCache := false
	if !probeRefresh {
		cached, err = store.Load()
		if err != nil {
			return err
		}
		hadCache = store.Exists()
	}

	cfg := pinSettings(cached, settings)

	gui := probeGUI
	if settings != nil && settings.GUI != nil {
		gui = gui || *settings.GUI
	}

	var extra []string
	if settings != nil {
		extra = settings.Packages
	}

	prober := brew.NewProber(brew.Options{
		GUI:           gui,
		ExtraPackages: extra,
		Log:           os.Stderr,
	})
	result := prober.Probe(cfg)

	if err := printResult(result, cached, hadCache); err != nil {
		return err
	}

	return store.Save(result)
}

// pinSettings overlays user-pinned values on the cached configuration.
// Pins always win over cached values.
func pinSettings(cfg brew.Config, settings *config.Settings) brew.Config {
	if settings == nil {
		return cfg
	}
	if settings.Root != nil {
		cfg.Root = *settings.Root
	}
	if settings.Python != nil {
		cfg.Python = *settings.Python
	}
	if settings.DeploymentTarget != nil {
		cfg.DeploymentTarget = *settings.DeploymentTarget
	}
	return cfg
}

func printResult(result, cached brew.Config, hadCache bool) error {
	switch strings.ToLower(probeFormat) {
	case "text":
		useColors := !noColor && isTerminal()
		printer := diff.NewPrinter(os.Stdout, useColors)
		printer.PrintConfig(result)
		if hadCache {
			fmt.Println()
			printer.PrintChanges(cached, result)
		}
		return nil
	case "json":
		return outputJSON(result)
	case "yaml", "yml":
		return outputYAML(result)
	case "hcl":
		return outputHCL(result)
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, hcl, json, yaml)", probeFormat)
	}
}

// configOutput is a structured representation of the resolved
// configuration for serialization
type configOutput struct {
	Root             string   `json:"root" yaml:"root"`
	PrefixPath       []string `json:"prefix_path" yaml:"prefix_path"`
	Python           string   `json:"python,omitempty" yaml:"python,omitempty"`
	PythonVersion    string   `json:"python_version,omitempty" yaml:"python_version,omitempty"`
	DeploymentTarget string   `json:"deployment_target,omitempty" yaml:"deployment_target,omitempty"`
	VTKDir           string   `json:"vtk_dir,omitempty" yaml:"vtk_dir,omitempty"`
}

func toConfigOutput(cfg brew.Config) configOutput {
	return configOutput{
		Root:             cfg.Root,
		PrefixPath:       cfg.PrefixPath,
		Python:           cfg.Python,
		PythonVersion:    cfg.PythonVersion,
		DeploymentTarget: cfg.DeploymentTarget,
		VTKDir:           cfg.VTKDir,
	}
}

func outputJSON(cfg brew.Config) error {
	data, err := json.MarshalIndent(toConfigOutput(cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputYAML(cfg brew.Config) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toConfigOutput(cfg)); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}

func outputHCL(cfg brew.Config) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("root = %q\n", cfg.Root))

	if len(cfg.PrefixPath) == 0 {
		sb.WriteString("prefix_path = []\n")
	} else {
		quoted := make([]string, len(cfg.PrefixPath))
		for i, entry := range cfg.PrefixPath {
			quoted[i] = fmt.Sprintf("%q", entry)
		}
		sb.WriteString(fmt.Sprintf("prefix_path = [%s]\n", strings.Join(quoted, ", ")))
	}

	if cfg.Python != "" {
		sb.WriteString(fmt.Sprintf("python         = %q\n", cfg.Python))
		sb.WriteString(fmt.Sprintf("python_version = %q\n", cfg.PythonVersion))
	}
	if cfg.DeploymentTarget != "" {
		sb.WriteString(fmt.Sprintf("deployment_target = %q\n", cfg.DeploymentTarget))
	}
	if cfg.VTKDir != "" {
		sb.WriteString(fmt.Sprintf("vtk_dir = %q\n", cfg.VTKDir))
	}

	fmt.Print(sb.String())
	return nil
}
