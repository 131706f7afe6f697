package scanner

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ManifestFileName is the per-package metadata file every installable
// package ships at its root
const ManifestFileName = "manifest.json"

// Manifest is the raw, untrusted shape of a package manifest. Validation
// happens when it is turned into catalog metadata.
type Manifest struct {
	Title              string            `json:"title"`
	Creator            string            `json:"creator"`
	Version            string            `json:"version"`
	ContentType        string            `json:"content_type"`
	PackageVersion     string            `json:"package_version"`
	MinimumGameVersion string            `json:"minimum_game_version"`
	ReleaseNotes       map[string]string `json:"release_notes"`
}

// ParseManifest reads and decodes a manifest file
func ParseManifest(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("cannot parse manifest: %w", err)
	}

	// Some packages only carry a package_version
	if strings.TrimSpace(manifest.Version) == "" {
		manifest.Version = manifest.PackageVersion
	}

	return &manifest, nil
}

// FindManifest locates the manifest of a package folder. It checks the
// folder root first, then immediate subfolders, for multi-package layouts
// where the real package lives one level down.
func FindManifest(fs afero.Fs, packageDir string) (string, error) {
	rootManifest := filepath.Join(packageDir, ManifestFileName)
	if ok, _ := afero.Exists(fs, rootManifest); ok {
		return rootManifest, nil
	}

	entries, err := afero.ReadDir(fs, packageDir)
	if err != nil {
		return "", fmt.Errorf("cannot read package folder: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		nested := filepath.Join(packageDir, entry.Name(), ManifestFileName)
		if ok, _ := afero.Exists(fs, nested); ok {
			return nested, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoManifest, packageDir)
}
