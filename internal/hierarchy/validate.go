package hierarchy

import "fmt"

// Validate checks parent/child role compatibility and returns human-readable
// warnings. Violations never abort processing; the caller still creates the
// directory.
//
// Rules: a canvas must sit directly inside a manifest, and a manifest must
// not sit directly inside another manifest.
func Validate(p Path) []string {
	var warnings []string
	switch p.Role {
	case RoleCanvas:
		if !p.HasParent || p.ParentRole != RoleManifest {
			warnings = append(warnings, fmt.Sprintf(
				"canvas %q is not directly inside a manifest", p.String()))
		}
	case RoleManifest:
		if p.HasParent && p.ParentRole == RoleManifest {
			warnings = append(warnings, fmt.Sprintf(
				"manifest %q is nested inside another manifest", p.String()))
		}
	}
	return warnings
}
