package catalog

import (
	"fmt"
	"time"
)

// Addon is one discovered installable package. Identity is the id alone: two
// instances with the same id are the same logical addon regardless of
// differing metadata, which is what makes replace-on-add work in the catalog.
//
// Selection state is mutable only through Select/Deselect/Toggle so that
// updatedAt advances exactly when observable state actually changes.
type Addon struct {
	id           string
	metadata     AddonMetadata
	installPath  string
	selected     bool
	discoveredAt time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewAddon builds a freshly discovered, unselected addon
func NewAddon(id string, metadata AddonMetadata, installPath string, discoveredAt time.Time) (*Addon, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: addon id", ErrBlankField)
	}
	if installPath == "" {
		return nil, fmt.Errorf("%w: install path", ErrBlankField)
	}

	now := time.Now()
	return &Addon{
		id:           id,
		metadata:     metadata,
		installPath:  installPath,
		discoveredAt: discoveredAt,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// RehydrateAddon rebuilds an addon from persisted state, timestamps included
func RehydrateAddon(id string, metadata AddonMetadata, installPath string, selected bool, discoveredAt, createdAt, updatedAt time.Time) (*Addon, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: addon id", ErrBlankField)
	}
	if installPath == "" {
		return nil, fmt.Errorf("%w: install path", ErrBlankField)
	}

	return &Addon{
		id:           id,
		metadata:     metadata,
		installPath:  installPath,
		selected:     selected,
		discoveredAt: discoveredAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (a *Addon) ID() string              { return a.id }
func (a *Addon) Metadata() AddonMetadata { return a.metadata }
func (a *Addon) InstallPath() string     { return a.installPath }
func (a *Addon) IsSelected() bool        { return a.selected }
func (a *Addon) DiscoveredAt() time.Time { return a.discoveredAt }
func (a *Addon) CreatedAt() time.Time    { return a.createdAt }
func (a *Addon) UpdatedAt() time.Time    { return a.updatedAt }

// Select marks the addon selected. Selecting an already-selected addon is a
// no-op and does not advance updatedAt.
func (a *Addon) Select() {
	if a.selected {
		return
	}
	a.selected = true
	a.touch()
}

// Deselect clears the selection flag; a no-op when already deselected
func (a *Addon) Deselect() {
	if !a.selected {
		return
	}
	a.selected = false
	a.touch()
}

// Toggle flips the selection flag and returns the new state
func (a *Addon) Toggle() bool {
	a.selected = !a.selected
	a.touch()
	return a.selected
}

// touch advances updatedAt, keeping it monotonically non-decreasing
func (a *Addon) touch() {
	if now := time.Now(); now.After(a.updatedAt) {
		a.updatedAt = now
	}
}

// clone returns an independent copy sharing no mutable state
func (a *Addon) clone() *Addon {
	copied := *a
	return &copied
}
