package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/hangarhub/hangarctl/internal/catalog"
)

var (
	ErrAddonExists   = errors.New("addon already stored")
	ErrAddonNotFound = errors.New("addon not found")
)

// Store persists addon records as a single JSON snapshot file. The file is
// rewritten in full on every mutating operation; there is no incremental
// write path. A missing file reads as an empty catalog.
//
// Every read-modify-write cycle runs under the instance's exclusive lock, so
// concurrent writers against one Store cannot lose updates. Independent Store
// instances pointed at different files operate fully in parallel; a second
// instance opened against the same file after a successful write observes the
// written state.
type Store struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
	log  *log.Logger
}

// New creates a store backed by the OS filesystem
func New(path string, logger *log.Logger) *Store {
	return NewWithFs(afero.NewOsFs(), path, logger)
}

// NewWithFs creates a store on the given filesystem, used by tests to run
// against an in-memory fs
func NewWithFs(fs afero.Fs, path string, logger *log.Logger) *Store {
	return &Store{
		fs:   fs,
		path: path,
		log:  logger,
	}
}

// catalogFile is the on-disk document: an ordered sequence of addon records
type catalogFile struct {
	Addons []addonRecord `json:"addons"`
}

// addonRecord is the persisted shape of one addon, independent of the
// aggregate's in-memory representation
type addonRecord struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Creator            string            `json:"creator"`
	Version            string            `json:"version"`
	ContentType        string            `json:"content_type"`
	PackageVersion     string            `json:"package_version"`
	MinimumGameVersion string            `json:"minimum_game_version"`
	ReleaseNotes       map[string]string `json:"release_notes,omitempty"`
	InstallPath        string            `json:"install_path"`
	IsSelected         bool              `json:"is_selected"`
	DiscoveredAt       time.Time         `json:"discovered_at"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func toRecord(a *catalog.Addon) addonRecord {
	meta := a.Metadata()
	return addonRecord{
		ID:                 a.ID(),
		Title:              meta.Title(),
		Creator:            meta.Creator(),
		Version:            meta.Version(),
		ContentType:        meta.ContentType().String(),
		PackageVersion:     meta.PackageVersion(),
		MinimumGameVersion: meta.MinimumGameVersion(),
		ReleaseNotes:       meta.ReleaseNotes(),
		InstallPath:        a.InstallPath(),
		IsSelected:         a.IsSelected(),
		DiscoveredAt:       a.DiscoveredAt(),
		CreatedAt:          a.CreatedAt(),
		UpdatedAt:          a.UpdatedAt(),
	}
}

func fromRecord(rec addonRecord) (*catalog.Addon, error) {
	meta, err := catalog.NewAddonMetadata(
		rec.Title, rec.Creator, rec.Version,
		catalog.ParseContentType(rec.ContentType),
		rec.PackageVersion, rec.MinimumGameVersion,
		rec.ReleaseNotes,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid record %s: %w", rec.ID, err)
	}

	return catalog.RehydrateAddon(rec.ID, meta, rec.InstallPath, rec.IsSelected,
		rec.DiscoveredAt, rec.CreatedAt, rec.UpdatedAt)
}

// GetAll returns every stored addon. A store file that does not exist yet
// reads as an empty sequence, not an error.
func (s *Store) GetAll(ctx context.Context) ([]*catalog.Addon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return nil, err
	}

	addons := make([]*catalog.Addon, 0, len(records))
	for _, rec := range records {
		addon, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		addons = append(addons, addon)
	}
	return addons, nil
}

// GetByID looks up one addon. Absence is reported via the bool, not an error.
func (s *Store) GetByID(ctx context.Context, id string) (*catalog.Addon, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return nil, false, err
	}

	for _, rec := range records {
		if rec.ID == id {
			addon, err := fromRecord(rec)
			if err != nil {
				return nil, false, err
			}
			return addon, true, nil
		}
	}
	return nil, false, nil
}

// Add stores a new addon, failing with ErrAddonExists if the id is taken
func (s *Store) Add(ctx context.Context, addon *catalog.Addon) error {
	if addon == nil {
		return catalog.ErrNilAddon
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.ID == addon.ID() {
			return fmt.Errorf("%w: %s", ErrAddonExists, addon.ID())
		}
	}

	return s.write(append(records, toRecord(addon)))
}

// Update replaces a stored addon, failing with ErrAddonNotFound if absent
func (s *Store) Update(ctx context.Context, addon *catalog.Addon) error {
	if addon == nil {
		return catalog.ErrNilAddon
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.ID == addon.ID() {
			records[i] = toRecord(addon)
			return s.write(records)
		}
	}
	return fmt.Errorf("%w: %s", ErrAddonNotFound, addon.ID())
}

// Delete removes a stored addon, failing with ErrAddonNotFound if absent
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}

	for i, rec := range records {
		if rec.ID == id {
			return s.write(append(records[:i], records[i+1:]...))
		}
	}
	return fmt.Errorf("%w: %s", ErrAddonNotFound, id)
}

// Count returns the number of stored addons
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// read loads the full snapshot. Callers must hold s.mu.
func (s *Store) read() ([]addonRecord, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse catalog file: %w", err)
	}
	return file.Addons, nil
}

// write rewrites the full snapshot. Callers must hold s.mu.
func (s *Store) write(records []addonRecord) error {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("cannot create catalog directory: %w", err)
	}

	data, err := json.MarshalIndent(catalogFile{Addons: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal catalog: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return fmt.Errorf("cannot write catalog file: %w", err)
	}

	s.log.Debug("Catalog snapshot written", "path", s.path, "addons", len(records))
	return nil
}
