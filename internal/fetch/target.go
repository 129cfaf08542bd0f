// Package fetch acquires rustdoc JSON for a target crate, either from the
// docs.rs prebuilt JSON endpoint or by invoking a local nightly cargo build.
// Fetched documents are cached on disk, zstd-compressed.
package fetch

import (
	"fmt"
	"strings"
)

// Target is a parsed target specification: an entrypoint followed by an
// optional item path, with components separated by "::".
//
//	serde
//	serde@1.0.219
//	serde::de::Deserialize
//	rustdoc-types::Crate
type Target struct {
	Name    string
	Version string
	Filter  string
}

// ParseTarget splits a target specification into the crate entrypoint and
// the filter path below the crate root.
func ParseTarget(spec string) (Target, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Target{}, fmt.Errorf("empty target specification")
	}

	components := strings.Split(spec, "::")
	for _, c := range components {
		if c == "" {
			return Target{}, fmt.Errorf("invalid target %q: empty path component", spec)
		}
	}

	entrypoint := components[0]
	name, version := entrypoint, ""
	if at := strings.Index(entrypoint, "@"); at >= 0 {
		name, version = entrypoint[:at], entrypoint[at+1:]
		if name == "" || version == "" {
			return Target{}, fmt.Errorf("invalid target %q: malformed name@version entrypoint", spec)
		}
	}

	filter := ""
	if len(components) > 1 {
		rest := append([]string(nil), components[1:]...)
		// The first path component may be a crate name spelled with hyphens.
		rest[0] = ImportName(rest[0])
		filter = strings.Join(rest, "::")
	}

	return Target{Name: name, Version: version, Filter: filter}, nil
}

// ImportName converts a package name into its canonical import form.
func ImportName(packageName string) string {
	return strings.ReplaceAll(packageName, "-", "_")
}
