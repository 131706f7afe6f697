package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNilAddon is returned when a nil addon is handed to the catalog
var ErrNilAddon = errors.New("addon must not be nil")

// Catalog is the in-memory consistency boundary over the current addon set
// and its selection state. It is the sole mutator of membership and of the
// selection flag of every addon reachable through it. updatedAt is a
// watermark that advances only when an operation changed observable state.
//
// Catalog operations are synchronous and never block; persistence is the
// store's job.
type Catalog struct {
	id        string
	addons    map[string]*Addon
	createdAt time.Time
	updatedAt time.Time
}

// New creates an empty catalog for this process session
func New() *Catalog {
	now := time.Now()
	return &Catalog{
		id:        uuid.NewString(),
		addons:    make(map[string]*Addon),
		createdAt: now,
		updatedAt: now,
	}
}

// Rehydrate rebuilds a catalog from raw persisted state. The incoming map is
// deep-copied: later mutation of the source map or its addons cannot corrupt
// the aggregate.
func Rehydrate(id string, createdAt, updatedAt time.Time, addons map[string]*Addon) (*Catalog, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: catalog id", ErrBlankField)
	}

	copied := make(map[string]*Addon, len(addons))
	for addonID, addon := range addons {
		if addon == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilAddon, addonID)
		}
		copied[addonID] = addon.clone()
	}

	return &Catalog{
		id:        id,
		addons:    copied,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Catalog) ID() string           { return c.id }
func (c *Catalog) CreatedAt() time.Time { return c.createdAt }
func (c *Catalog) UpdatedAt() time.Time { return c.updatedAt }
func (c *Catalog) Len() int             { return len(c.addons) }

// AddAddon inserts the addon, replacing any existing entry with the same id
// (last write wins). An add is always a structural change, so the watermark
// advances unconditionally.
func (c *Catalog) AddAddon(addon *Addon) error {
	if addon == nil {
		return ErrNilAddon
	}
	c.addons[addon.id] = addon
	c.touch()
	return nil
}

// RemoveAddon removes the addon with the given id, reporting whether anything
// was removed. Removing an absent id leaves the watermark untouched.
func (c *Catalog) RemoveAddon(id string) bool {
	if _, ok := c.addons[id]; !ok {
		return false
	}
	delete(c.addons, id)
	c.touch()
	return true
}

// AddonByID looks up an addon by id
func (c *Catalog) AddonByID(id string) (*Addon, bool) {
	addon, ok := c.addons[id]
	return addon, ok
}

// Contains reports whether an addon with the given id is cataloged
func (c *Catalog) Contains(id string) bool {
	_, ok := c.addons[id]
	return ok
}

// AllAddons returns a snapshot of every cataloged addon, sorted by title then
// id. The returned slice is the caller's to mutate.
func (c *Catalog) AllAddons() []*Addon {
	return c.snapshot(func(*Addon) bool { return true })
}

// SelectedAddons returns a snapshot of the currently selected addons
func (c *Catalog) SelectedAddons() []*Addon {
	return c.snapshot(func(a *Addon) bool { return a.selected })
}

// AddonsByType returns a snapshot of the addons with the given content type.
// No matches is an empty result, not an error.
func (c *Catalog) AddonsByType(contentType ContentType) []*Addon {
	return c.snapshot(func(a *Addon) bool { return a.metadata.contentType == contentType })
}

// SelectAll selects every addon, returning how many actually flipped. The
// watermark advances only when at least one did.
func (c *Catalog) SelectAll() int {
	flipped := 0
	for _, addon := range c.addons {
		if !addon.selected {
			addon.Select()
			flipped++
		}
	}
	if flipped > 0 {
		c.touch()
	}
	return flipped
}

// ClearSelection deselects every addon, returning how many actually flipped
func (c *Catalog) ClearSelection() int {
	flipped := 0
	for _, addon := range c.addons {
		if addon.selected {
			addon.Deselect()
			flipped++
		}
	}
	if flipped > 0 {
		c.touch()
	}
	return flipped
}

// Clear drops every addon. The watermark advances only if the set was
// non-empty.
func (c *Catalog) Clear() {
	if len(c.addons) == 0 {
		return
	}
	c.addons = make(map[string]*Addon)
	c.touch()
}

func (c *Catalog) snapshot(keep func(*Addon) bool) []*Addon {
	result := make([]*Addon, 0, len(c.addons))
	for _, addon := range c.addons {
		if keep(addon) {
			result = append(result, addon)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ti := strings.ToLower(result[i].metadata.title)
		tj := strings.ToLower(result[j].metadata.title)
		if ti != tj {
			return ti < tj
		}
		return result[i].id < result[j].id
	})
	return result
}

func (c *Catalog) touch() {
	if now := time.Now(); now.After(c.updatedAt) {
		c.updatedAt = now
	}
}
