package catalog

import (
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/engine/rules"
)

// DefaultRules is the built-in catalog: the corrections every descriptor
// generated under OS impersonation needs, independent of any
// per-workspace tuning.
func DefaultRules(namePrefix string) ([]ports.Rule, error) {
	nameValue := "${pkg_hyphen}"
	if namePrefix != "" {
		nameValue = namePrefix + "-${pkg_hyphen}"
	}

	normalize, err := rules.NewConventionRule("normalize-identity", 10, true, "", []rules.Patch{
		{Section: "preamble", Action: rules.ActionSetTag, Tag: "Name", Value: nameValue},
		{Section: "preamble", Action: rules.ActionSetTag, Tag: "Source0", Value: "%{name}_%{version}.orig.tar.gz"},
	})
	if err != nil {
		return nil, err
	}

	return []ports.Rule{
		rules.NewMacroRule("descriptor-header-guards", 10,
			[]rules.MacroDef{
				{Name: "debug_package", Expansion: "%{nil}", Insert: true},
				{Name: "__os_install_post", Expansion: "%{nil}", Insert: true},
			},
			[]string{
				"%bcond_without tests",
				"%bcond_without weak_deps",
			},
		),
		rules.NewPathRule("inject-build-environment", 10, nil,
			[]string{
				"export PYTHONPATH=%{python3_sitearch}:%{python3_sitelib}:$PYTHONPATH",
			},
		),
		normalize,
	}, nil
}
