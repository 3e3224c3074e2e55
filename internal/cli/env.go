package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/macbuild/brewprobe/internal/brew"
	"github.com/macbuild/brewprobe/internal/facts"
	"github.com/macbuild/brewprobe/internal/output"
)

var envTemplate string

// NewEnvCmd creates the env command
func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the resolved configuration as shell exports",
		Long: `The env command prints the resolved build configuration as shell
export statements, suitable for eval:

  eval "$(brewprobe env)"

The cached configuration is used when present; otherwise a probe runs
first. With --template the configuration is rendered through a Go
template (sprig functions available) instead.`,
		RunE: runEnv,
	}

	cmd.Flags().StringVar(&envTemplate, "template", "",
		"Render the configuration through this template instead of export lines")

	return cmd
}

func runEnv(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if envTemplate != "" {
		rendered, err := output.RenderTemplate(cfg, envTemplate)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	}

	fmt.Print(output.ExportLines(cfg))
	return nil
}

// resolveConfig returns the cached configuration, probing first when no
// cache exists yet. The probe run is quiet; only the result is printed.
func resolveConfig() (brew.Config, error) {
	store, err := newStore()
	if err != nil {
		return brew.Config{}, err
	}

	cfg, err := store.Load()
	if err != nil {
		return brew.Config{}, err
	}
	if store.Exists() {
		return cfg, nil
	}

	hostFacts, err := facts.Gather()
	if err != nil {
		return brew.Config{}, fmt.Errorf("gathering host facts: %w", err)
	}

	settings, err := loadSettings(hostFacts)
	if err != nil {
		return brew.Config{}, err
	}

	cfg = pinSettings(cfg, settings)

	gui := false
	var extra []string
	if settings != nil {
		if settings.GUI != nil {
			gui = *settings.GUI
		}
		extra = settings.Packages
	}

	prober := brew.NewProber(brew.Options{
		GUI:           gui,
		ExtraPackages: extra,
		Log:           io.Discard,
	})
	cfg = prober.Probe(cfg)

	if err := store.Save(cfg); err != nil {
		return brew.Config{}, err
	}

	return cfg, nil
}
