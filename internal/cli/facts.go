package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/macbuild/brewprobe/internal/facts"
)

var factsFormat string

// NewFactsCmd creates the facts command
func NewFactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Display gathered host facts",
		Long: `The facts command displays the host facts available to settings-file
expressions via the "fact" namespace: OS information, architecture,
hostname, user details, and package managers found on the PATH.`,
		RunE: runFacts,
	}

	cmd.Flags().StringVar(&factsFormat, "format", "hcl",
		"Output format: hcl, json, or yaml")

	return cmd
}

func runFacts(cmd *cobra.Command, args []string) error {
	f, err := facts.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather facts: %w", err)
	}

	switch strings.ToLower(factsFormat) {
	case "json":
		return factsJSON(f)
	case "yaml", "yml":
		return factsYAML(f)
	case "hcl":
		return factsHCL(f)
	default:
		return fmt.Errorf("unsupported format: %s (supported: hcl, json, yaml)", factsFormat)
	}
}

// factsOutput is a structured representation of facts for serialization
type factsOutput struct {
	OS              osOutput   `json:"os" yaml:"os"`
	Arch            string     `json:"arch" yaml:"arch"`
	Hostname        string     `json:"hostname" yaml:"hostname"`
	User            userOutput `json:"user" yaml:"user"`
	PackageManagers []string   `json:"package_managers" yaml:"package_managers"`
}

type osOutput struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

type userOutput struct {
	Name string `json:"name" yaml:"name"`
	Home string `json:"home" yaml:"home"`
}

func toFactsOutput(f *facts.Facts) factsOutput {
	return factsOutput{
		OS: osOutput{
			Name:    f.OS.Name,
			Version: f.OS.Version,
		},
		Arch:     f.Arch,
		Hostname: f.Hostname,
		User: userOutput{
			Name: f.User.Name,
			Home: f.User.Home,
		},
		PackageManagers: f.PackageManagers,
	}
}

func factsJSON(f *facts.Facts) error {
	data, err := json.MarshalIndent(toFactsOutput(f), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func factsYAML(f *facts.Facts) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toFactsOutput(f)); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}

func factsHCL(f *facts.Facts) error {
	var sb strings.Builder

	sb.WriteString("os = {\n")
	sb.WriteString(fmt.Sprintf("  name    = %q\n", f.OS.Name))
	sb.WriteString(fmt.Sprintf("  version = %q\n", f.OS.Version))
	sb.WriteString("}\n\n")

	sb.WriteString(fmt.Sprintf("arch     = %q\n", f.Arch))
	sb.WriteString(fmt.Sprintf("hostname = %q\n", f.Hostname))

	if len(f.PackageManagers) == 0 {
		sb.WriteString("package_managers = []\n\n")
	} else {
		quoted := make([]string, len(f.PackageManagers))
		for i, pm := range f.PackageManagers {
			quoted[i] = fmt.Sprintf("%q", pm)
		}
		sb.WriteString(fmt.Sprintf("package_managers = [%s]\n\n", strings.Join(quoted, ", ")))
	}

	sb.WriteString("user = {\n")
	sb.WriteString(fmt.Sprintf("  name = %q\n", f.User.Name))
	sb.WriteString(fmt.Sprintf("  home = %q\n", f.User.Home))
	sb.WriteString("}\n")

	fmt.Print(sb.String())
	return nil
}
