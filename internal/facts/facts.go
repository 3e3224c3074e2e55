// Package facts gathers the host information the prober and the settings
// file need: platform, OS version, current user, and which package
// managers are on the PATH. Facts are gathered once at startup and
// exposed to HCL expressions via the "fact" namespace.
package facts

import (
	"os"
	"runtime"

	"github.com/zclconf/go-cty/cty"
)

// Facts contains all gathered host facts
type Facts struct {
	OS              OSFacts
	Arch            string
	Hostname        string
	User            UserFacts
	PackageManagers []string
}

// Gather collects all host facts
func Gather() (*Facts, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	userFacts, err := gatherUserFacts()
	if err != nil {
		userFacts = UserFacts{Name: "unknown"}
	}

	return &Facts{
		OS:              gatherOSFacts(),
		Arch:            runtime.GOARCH,
		Hostname:        hostname,
		User:            userFacts,
		PackageManagers: gatherPackageManagerFacts(),
	}, nil
}

// ToCtyValue converts Facts to a cty.Value for use in HCL expressions
func (f *Facts) ToCtyValue() cty.Value {
	managers := make([]cty.Value, len(f.PackageManagers))
	for i, pm := range f.PackageManagers {
		managers[i] = cty.StringVal(pm)
	}
	managersVal := cty.ListValEmpty(cty.String)
	if len(managers) > 0 {
		managersVal = cty.ListVal(managers)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"os": cty.ObjectVal(map[string]cty.Value{
			"name":    cty.StringVal(f.OS.Name),
			"version": cty.StringVal(f.OS.Version),
		}),
		"arch":     cty.StringVal(f.Arch),
		"hostname": cty.StringVal(f.Hostname),
		"user": cty.ObjectVal(map[string]cty.Value{
			"name": cty.StringVal(f.User.Name),
			"home": cty.StringVal(f.User.Home),
		}),
		"package_managers": managersVal,
	})
}
