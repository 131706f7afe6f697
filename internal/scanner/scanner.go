package scanner

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/hangarhub/hangarctl/internal/catalog"
)

var (
	ErrNoManifest   = errors.New("no manifest found")
	ErrCommunityDir = errors.New("cannot access community folder")
)

// Scanner discovers installed add-on packages in the community folder and
// turns their manifests into catalog addons. Packages with a missing or
// invalid manifest are logged and skipped; they never fail a scan.
type Scanner struct {
	fs  afero.Fs
	dir string
	log *log.Logger
}

// New creates a scanner over the OS filesystem
func New(communityDir string, logger *log.Logger) *Scanner {
	return NewWithFs(afero.NewOsFs(), communityDir, logger)
}

// NewWithFs creates a scanner on the given filesystem, used by tests to run
// against an in-memory fs
func NewWithFs(fs afero.Fs, communityDir string, logger *log.Logger) *Scanner {
	return &Scanner{
		fs:  fs,
		dir: communityDir,
		log: logger,
	}
}

// Dir returns the community folder being scanned
func (s *Scanner) Dir() string {
	return s.dir
}

// Scan walks the community folder and returns one addon per discovered
// package. A community folder that does not exist yet scans as empty.
// Cancellation is honored between entries.
func (s *Scanner) Scan(ctx context.Context) ([]*catalog.Addon, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("Community folder does not exist yet", "dir", s.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCommunityDir, err)
	}

	discoveredAt := time.Now()
	addons := make([]*catalog.Addon, 0, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		packageDir := filepath.Join(s.dir, entry.Name())
		addon, err := s.ScanPackage(packageDir, discoveredAt)
		if err != nil {
			s.log.Warn("Skipping package", "dir", packageDir, "error", err)
			continue
		}
		addons = append(addons, addon)
	}

	s.log.Info("Community folder scanned", "dir", s.dir, "addons", len(addons))
	return addons, nil
}

// ScanPackage builds one addon from a single package folder
func (s *Scanner) ScanPackage(packageDir string, discoveredAt time.Time) (*catalog.Addon, error) {
	manifestPath, err := FindManifest(s.fs, packageDir)
	if err != nil {
		return nil, err
	}

	manifest, err := ParseManifest(s.fs, manifestPath)
	if err != nil {
		return nil, err
	}

	title := manifest.Title
	if strings.TrimSpace(title) == "" {
		title = filepath.Base(packageDir)
	}

	meta, err := catalog.NewAddonMetadata(
		title,
		manifest.Creator,
		manifest.Version,
		catalog.ParseContentType(manifest.ContentType),
		manifest.PackageVersion,
		manifest.MinimumGameVersion,
		manifest.ReleaseNotes,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", manifestPath, err)
	}

	return catalog.NewAddon(StableID(packageDir), meta, packageDir, discoveredAt)
}

// StableID derives the addon identity from its install path, so a package
// rediscovered on a later scan keeps the same id and replaces its old record
func StableID(installPath string) string {
	sum := sha1.Sum([]byte(installPath))
	return hex.EncodeToString(sum[:])
}
