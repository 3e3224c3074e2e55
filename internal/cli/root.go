package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/macbuild/brewprobe/internal/cache"
	"github.com/macbuild/brewprobe/internal/config"
	"github.com/macbuild/brewprobe/internal/facts"
)

var (
	settingsPath string
	cachePath    string
	noColor      bool

	// Version information (set by main)
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from build-time variables
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brewprobe",
		Short: "Resolve build configuration from a local Homebrew installation",
		Long: `brewprobe detects a Homebrew installation on macOS and resolves the
configuration a build needs from it: the install prefix, search paths
for keg-only formulae, a Python interpreter with PySide bindings, and
the macOS deployment target.

The resolved configuration is cached so repeated runs do not probe the
Homebrew CLI again. On other operating systems every command is a no-op.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&settingsPath, "config", "c", "",
		"Path to settings file (default: brewprobe.hcl in the current directory)")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "",
		"Path to cache file (default: the user cache directory)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewProbeCmd())
	rootCmd.AddCommand(NewEnvCmd())
	rootCmd.AddCommand(NewFactsCmd())
	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewUpdateCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("brewprobe %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}

// Execute runs the CLI
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings finds and parses the settings file. A missing default
// settings file yields nil settings, not an error.
func loadSettings(hostFacts *facts.Facts) (*config.Settings, error) {
	path, err := config.FindSettingsFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("locating settings file: %w", err)
	}
	if path == "" {
		return nil, nil
	}

	factsVal := cty.NilVal
	if hostFacts != nil {
		factsVal = hostFacts.ToCtyValue()
	}

	settings, diags := config.NewParser(factsVal).ParseFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}

	return settings, nil
}

func newStore() (*cache.Store, error) {
	return cache.NewStore(cachePath)
}

func isTerminal() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
