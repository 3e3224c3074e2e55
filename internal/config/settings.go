// Package config loads the optional brewprobe.hcl settings file. The
// settings file pins values the prober would otherwise resolve (root,
// interpreter, deployment target) and extends the keg-only package list.
package config

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// DefaultFileName is the settings file looked for in the working directory
const DefaultFileName = "brewprobe.hcl"

// Settings holds user-pinned values. Nil pointers mean "not pinned,
// let the prober resolve it".
type Settings struct {
	Root             *string  `hcl:"root,optional"`
	Python           *string  `hcl:"python,optional"`
	DeploymentTarget *string  `hcl:"deployment_target,optional"`
	GUI              *bool    `hcl:"gui,optional"`
	Packages         []string `hcl:"packages,optional"`
}

// Parser handles parsing the HCL settings file
type Parser struct {
	parser *hclparse.Parser
	facts  cty.Value
}

// NewParser creates a settings parser. The facts value is exposed to
// expressions as the "fact" namespace.
func NewParser(facts cty.Value) *Parser {
	return &Parser{
		parser: hclparse.NewParser(),
		facts:  facts,
	}
}

// ParseFile parses a settings file
func (p *Parser) ParseFile(filename string) (*Settings, hcl.Diagnostics) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Failed to read settings file",
			Detail:   err.Error(),
		}}
	}

	file, diags := p.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var settings Settings
	diags = gohcl.DecodeBody(file.Body, p.evalContext(), &settings)
	if diags.HasErrors() {
		return nil, diags
	}

	return &settings, nil
}

// evalContext creates the evaluation context for HCL expressions
func (p *Parser) evalContext() *hcl.EvalContext {
	variables := map[string]cty.Value{}
	if p.facts != cty.NilVal {
		variables["fact"] = p.facts
	}

	return &hcl.EvalContext{
		Variables: variables,
		Functions: standardFunctions(),
	}
}

// FindSettingsFile resolves the settings file path. An explicit path must
// exist; otherwise brewprobe.hcl in the working directory is used if
// present, and "" means no settings file.
func FindSettingsFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	candidate := filepath.Join(".", DefaultFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", nil
}
