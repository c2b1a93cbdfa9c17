package cargo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the marker whose presence makes a directory a Cargo project.
const ManifestFile = "Cargo.toml"

// ValidateProject checks that dir exists and contains a Cargo.toml.
// Every tool runs this gate before spawning any subprocess.
func ValidateProject(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("project path %s is not accessible: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project path %s is not a directory", dir)
	}

	manifest := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(manifest); err != nil {
		return fmt.Errorf("not a Cargo project: no %s found in %s", ManifestFile, dir)
	}
	return nil
}

// ProjectInfo is the package metadata read from Cargo.toml.
type ProjectInfo struct {
	Name         string
	Version      string
	Edition      string
	Dependencies []string // sorted crate names
}

// manifest mirrors the subset of Cargo.toml the info reader needs.
// Version and edition decode as primitives because either may be a
// plain string or a workspace-inheritance table.
type manifest struct {
	Package struct {
		Name    string         `toml:"name"`
		Version toml.Primitive `toml:"version"`
		Edition toml.Primitive `toml:"edition"`
	} `toml:"package"`
	Dependencies map[string]toml.Primitive `toml:"dependencies"`
}

// ReadProjectInfo parses dir's Cargo.toml for name, version, edition
// and direct dependency names.
//
// A workspace-inherited version ("version.workspace = true") is not
// resolved against the workspace manifest; it reads as "unknown".
// That is a deliberate simplification for an info convenience lookup.
func ReadProjectInfo(dir string) (*ProjectInfo, error) {
	if err := ValidateProject(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, ManifestFile)
	var m manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s in %s has no [package] name", ManifestFile, dir)
	}

	info := &ProjectInfo{
		Name:    m.Package.Name,
		Version: decodeManifestString(md, m.Package.Version, "unknown"),
		Edition: decodeManifestString(md, m.Package.Edition, "2015"),
	}

	for name := range m.Dependencies {
		info.Dependencies = append(info.Dependencies, name)
	}
	sort.Strings(info.Dependencies)

	return info, nil
}

// decodeManifestString extracts a string field that may instead be a
// workspace-inheritance table, falling back to def when it is not a
// plain string.
func decodeManifestString(md toml.MetaData, prim toml.Primitive, def string) string {
	var s string
	if err := md.PrimitiveDecode(prim, &s); err != nil || s == "" {
		return def
	}
	return s
}

// FormatProjectInfo renders project metadata as plain text.
func FormatProjectInfo(info *ProjectInfo) string {
	text := fmt.Sprintf("Project: %s\nVersion: %s\nEdition: %s\n",
		info.Name, info.Version, info.Edition)
	if len(info.Dependencies) > 0 {
		text += fmt.Sprintf("Dependencies (%d): %s\n",
			len(info.Dependencies), strings.Join(info.Dependencies, ", "))
	} else {
		text += "Dependencies: none\n"
	}
	return text
}
