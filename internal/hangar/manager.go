package hangar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/hangarhub/hangarctl/internal/catalog"
	"github.com/hangarhub/hangarctl/internal/config"
	"github.com/hangarhub/hangarctl/internal/fetch"
	"github.com/hangarhub/hangarctl/internal/publish"
	"github.com/hangarhub/hangarctl/internal/scanner"
	"github.com/hangarhub/hangarctl/internal/store"
)

// ErrPackageExists is returned when installing over an existing package folder
var ErrPackageExists = errors.New("package already installed")

// Manager wires the community-folder scanner, the catalog aggregate and the
// snapshot store together, and hands the selected set to a publishing
// platform. The CLI and the TUI both drive this type.
type Manager struct {
	cfg     *config.Config
	fs      afero.Fs
	store   *store.Store
	scanner *scanner.Scanner
	log     *log.Logger
}

// NewManager creates a manager over the OS filesystem
func NewManager(cfg *config.Config, logger *log.Logger) *Manager {
	return NewManagerWithFs(afero.NewOsFs(), cfg, logger)
}

// NewManagerWithFs creates a manager whose store and scanner share the given
// filesystem, used by tests to run fully in memory
func NewManagerWithFs(fs afero.Fs, cfg *config.Config, logger *log.Logger) *Manager {
	return &Manager{
		cfg:     cfg,
		fs:      fs,
		store:   store.NewWithFs(fs, cfg.CatalogPath(), logger),
		scanner: scanner.NewWithFs(fs, cfg.CommunityDir, logger),
		log:     logger,
	}
}

// Catalog rebuilds the in-memory aggregate from the store
func (m *Manager) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	addons, err := m.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot load catalog: %w", err)
	}

	cat := catalog.New()
	for _, addon := range addons {
		if err := cat.AddAddon(addon); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// Get looks up one stored addon by id
func (m *Manager) Get(ctx context.Context, id string) (*catalog.Addon, bool, error) {
	return m.store.GetByID(ctx, id)
}

// ScanReport summarizes one reconciliation pass
type ScanReport struct {
	Discovered int
	Added      int
	Updated    int
	Removed    int
}

// Rescan walks the community folder and reconciles the store with what is
// actually installed: new packages are added, re-discovered packages replace
// their records (selection and creation time survive), and records whose
// folder is gone are dropped.
func (m *Manager) Rescan(ctx context.Context) (*ScanReport, error) {
	scanned, err := m.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := m.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]*catalog.Addon, len(stored))
	for _, addon := range stored {
		existing[addon.ID()] = addon
	}

	report := &ScanReport{Discovered: len(scanned)}
	seen := make(map[string]struct{}, len(scanned))

	for _, discovered := range scanned {
		seen[discovered.ID()] = struct{}{}

		previous, known := existing[discovered.ID()]
		if !known {
			if err := m.store.Add(ctx, discovered); err != nil {
				return nil, err
			}
			report.Added++
			continue
		}

		if previous.Metadata().Equal(discovered.Metadata()) && previous.InstallPath() == discovered.InstallPath() {
			continue
		}

		merged, err := catalog.RehydrateAddon(
			discovered.ID(), discovered.Metadata(), discovered.InstallPath(),
			previous.IsSelected(), previous.DiscoveredAt(), previous.CreatedAt(), time.Now(),
		)
		if err != nil {
			return nil, err
		}
		if err := m.store.Update(ctx, merged); err != nil {
			return nil, err
		}
		report.Updated++
	}

	for id := range existing {
		if _, ok := seen[id]; ok {
			continue
		}
		if err := m.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		report.Removed++
	}

	m.log.Info("Catalog reconciled", "discovered", report.Discovered,
		"added", report.Added, "updated", report.Updated, "removed", report.Removed)
	return report, nil
}

// SetSelection selects or deselects one addon and persists the change.
// Setting the state it already has is a no-op.
func (m *Manager) SetSelection(ctx context.Context, id string, selected bool) error {
	addon, found, err := m.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", store.ErrAddonNotFound, id)
	}

	if addon.IsSelected() == selected {
		return nil
	}
	if selected {
		addon.Select()
	} else {
		addon.Deselect()
	}
	return m.store.Update(ctx, addon)
}

// ToggleSelection flips one addon's selection, returning the new state
func (m *Manager) ToggleSelection(ctx context.Context, id string) (bool, error) {
	addon, found, err := m.store.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, fmt.Errorf("%w: %s", store.ErrAddonNotFound, id)
	}

	state := addon.Toggle()
	if err := m.store.Update(ctx, addon); err != nil {
		return false, err
	}
	return state, nil
}

// SelectAll selects every stored addon, returning how many flipped
func (m *Manager) SelectAll(ctx context.Context) (int, error) {
	return m.setAll(ctx, true)
}

// ClearSelection deselects every stored addon, returning how many flipped
func (m *Manager) ClearSelection(ctx context.Context) (int, error) {
	return m.setAll(ctx, false)
}

func (m *Manager) setAll(ctx context.Context, selected bool) (int, error) {
	addons, err := m.store.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for _, addon := range addons {
		if addon.IsSelected() == selected {
			continue
		}
		if selected {
			addon.Select()
		} else {
			addon.Deselect()
		}
		if err := m.store.Update(ctx, addon); err != nil {
			return flipped, err
		}
		flipped++
	}
	return flipped, nil
}

// Publish delivers the currently selected addons to the named platform.
// Remote failures come back inside the result; only cancellation and an
// unknown or misconfigured platform surface as errors.
func (m *Manager) Publish(ctx context.Context, platformName string) (catalog.PublishResult, error) {
	platform, err := publish.New(platformName, m.cfg, m.log)
	if err != nil {
		return catalog.PublishResult{}, err
	}

	cat, err := m.Catalog(ctx)
	if err != nil {
		return catalog.PublishResult{}, err
	}

	return platform.Publish(ctx, cat.SelectedAddons())
}

// Remove drops an addon from the catalog and optionally deletes its package
// folder from the community directory
func (m *Manager) Remove(ctx context.Context, id string, deleteFiles bool) error {
	addon, found, err := m.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", store.ErrAddonNotFound, id)
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	if deleteFiles {
		if err := m.fs.RemoveAll(addon.InstallPath()); err != nil {
			return fmt.Errorf("record removed but cannot delete package folder: %w", err)
		}
		m.log.Info("Package folder deleted", "path", addon.InstallPath())
	}

	m.log.Info("Addon removed from catalog", "id", id, "title", addon.Metadata().Title())
	return nil
}

// Install clones a package repository into the community folder and catalogs
// it. Clones always run against the OS filesystem since git owns the folder.
func (m *Manager) Install(ctx context.Context, gitURL string, progress io.Writer) (*catalog.Addon, error) {
	if err := fetch.ValidateURL(gitURL); err != nil {
		return nil, err
	}
	gitURL = fetch.NormalizeURL(gitURL)

	name := fetch.PackageName(gitURL)
	destPath := filepath.Join(m.cfg.CommunityDir, name)
	if _, err := os.Stat(destPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageExists, name)
	}

	if err := fetch.Clone(ctx, gitURL, destPath, progress); err != nil {
		_ = fetch.CleanupFailedClone(destPath)
		return nil, err
	}

	addon, err := m.catalogPackage(ctx, destPath)
	if err != nil {
		return nil, err
	}

	m.log.Info("Package installed", "name", name, "url", gitURL)
	return addon, nil
}

// UpdatePackage fast-forwards an installed package and refreshes its record
func (m *Manager) UpdatePackage(ctx context.Context, name string, progress io.Writer) (*catalog.Addon, error) {
	packageDir := filepath.Join(m.cfg.CommunityDir, name)

	if err := fetch.Update(ctx, packageDir, progress); err != nil {
		if errors.Is(err, fetch.ErrAlreadyUpToDate) {
			return nil, err
		}
		return nil, fmt.Errorf("cannot update %s: %w", name, err)
	}

	addon, err := m.catalogPackage(ctx, packageDir)
	if err != nil {
		return nil, err
	}

	m.log.Info("Package updated", "name", name)
	return addon, nil
}

// catalogPackage scans one package folder and upserts its record, keeping
// selection and creation time when the id is already known
func (m *Manager) catalogPackage(ctx context.Context, packageDir string) (*catalog.Addon, error) {
	addon, err := m.scanner.ScanPackage(packageDir, time.Now())
	if err != nil {
		return nil, err
	}

	previous, known, err := m.store.GetByID(ctx, addon.ID())
	if err != nil {
		return nil, err
	}
	if !known {
		return addon, m.store.Add(ctx, addon)
	}

	merged, err := catalog.RehydrateAddon(
		addon.ID(), addon.Metadata(), addon.InstallPath(),
		previous.IsSelected(), previous.DiscoveredAt(), previous.CreatedAt(), time.Now(),
	)
	if err != nil {
		return nil, err
	}
	return merged, m.store.Update(ctx, merged)
}
