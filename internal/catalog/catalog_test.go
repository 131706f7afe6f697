package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAddonThenLookup(t *testing.T) {
	cat := New()
	addon := newTestAddon(t, "abc123", "A32NX")

	require.NoError(t, cat.AddAddon(addon))

	got, ok := cat.AddonByID("abc123")
	require.True(t, ok)
	assert.True(t, got.Metadata().Equal(addon.Metadata()))
	assert.True(t, cat.Contains("abc123"))
}

func TestAddAddonRejectsNil(t *testing.T) {
	cat := New()
	assert.ErrorIs(t, cat.AddAddon(nil), ErrNilAddon)
}

func TestAddAddonReplacesById(t *testing.T) {
	cat := New()
	require.NoError(t, cat.AddAddon(newTestAddon(t, "abc123", "A32NX")))

	replacement := newTestAddon(t, "abc123", "A32NX Stable")
	require.NoError(t, cat.AddAddon(replacement))

	assert.Equal(t, 1, cat.Len())
	got, ok := cat.AddonByID("abc123")
	require.True(t, ok)
	assert.True(t, got.Metadata().Equal(replacement.Metadata()))
}

func TestRemoveAddon(t *testing.T) {
	cat := New()
	require.NoError(t, cat.AddAddon(newTestAddon(t, "abc123", "A32NX")))

	assert.True(t, cat.RemoveAddon("abc123"))
	assert.False(t, cat.Contains("abc123"))

	watermark := cat.UpdatedAt()
	assert.False(t, cat.RemoveAddon("missing"))
	assert.Equal(t, watermark, cat.UpdatedAt())
}

func TestSelectAllAndClearSelection(t *testing.T) {
	cat := New()
	require.NoError(t, cat.AddAddon(newTestAddon(t, "a", "Alpha")))
	require.NoError(t, cat.AddAddon(newTestAddon(t, "b", "Bravo")))
	require.NoError(t, cat.AddAddon(newTestAddon(t, "c", "Charlie")))

	assert.Equal(t, 3, cat.SelectAll())
	assert.Len(t, cat.SelectedAddons(), cat.Len())

	assert.Equal(t, 3, cat.ClearSelection())
	assert.Empty(t, cat.SelectedAddons())
}

func TestBulkSelectionIsIdempotent(t *testing.T) {
	cat := New()
	require.NoError(t, cat.AddAddon(newTestAddon(t, "a", "Alpha")))

	cat.ClearSelection()
	watermark := cat.UpdatedAt()

	// Clearing an already-cleared catalog must not move the watermark
	assert.Equal(t, 0, cat.ClearSelection())
	assert.Equal(t, watermark, cat.UpdatedAt())

	cat.SelectAll()
	watermark = cat.UpdatedAt()
	assert.Equal(t, 0, cat.SelectAll())
	assert.Equal(t, watermark, cat.UpdatedAt())
}

func TestSelectedAddonsSnapshotIsDetached(t *testing.T) {
	cat := New()
	require.NoError(t, cat.AddAddon(newTestAddon(t, "a", "Alpha")))
	require.NoError(t, cat.AddAddon(newTestAddon(t, "b", "Bravo")))
	cat.SelectAll()

	snapshot := cat.SelectedAddons()
	require.Len(t, snapshot, 2)

	// Mutating the returned slice must not affect the catalog
	snapshot[0] = nil
	snapshot = snapshot[:0]
	_ = snapshot

	assert.Len(t, cat.SelectedAddons(), 2)
}

func TestAddonsByType(t *testing.T) {
	cat := New()

	aircraft := newTestAddon(t, "a", "Alpha")
	require.NoError(t, cat.AddAddon(aircraft))

	meta, err := NewAddonMetadata("EDDF", "Aerosoft", "2.0", ContentTypeScenery, "2.0.0", "1.30.0", nil)
	require.NoError(t, err)
	scenery, err := NewAddon("b", meta, "/sim/Community/eddf", time.Now())
	require.NoError(t, err)
	require.NoError(t, cat.AddAddon(scenery))

	byType := cat.AddonsByType(ContentTypeScenery)
	require.Len(t, byType, 1)
	assert.Equal(t, "b", byType[0].ID())

	assert.Empty(t, cat.AddonsByType(ContentTypeMission))
}

func TestAllAddonsSortedByTitle(t *testing.T) {
	cat := New()
	require.NoError(t, cat.AddAddon(newTestAddon(t, "c", "Charlie")))
	require.NoError(t, cat.AddAddon(newTestAddon(t, "a", "alpha")))
	require.NoError(t, cat.AddAddon(newTestAddon(t, "b", "Bravo")))

	all := cat.AllAddons()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID())
	assert.Equal(t, "b", all[1].ID())
	assert.Equal(t, "c", all[2].ID())
}

func TestClear(t *testing.T) {
	cat := New()
	require.NoError(t, cat.AddAddon(newTestAddon(t, "a", "Alpha")))

	cat.Clear()
	assert.Equal(t, 0, cat.Len())

	watermark := cat.UpdatedAt()
	cat.Clear()
	assert.Equal(t, watermark, cat.UpdatedAt())
}

func TestRehydrateValidatesID(t *testing.T) {
	_, err := Rehydrate("  ", time.Now(), time.Now(), nil)
	assert.ErrorIs(t, err, ErrBlankField)
}

func TestRehydrateDeepCopiesSource(t *testing.T) {
	addon := newTestAddon(t, "a", "Alpha")
	source := map[string]*Addon{"a": addon}

	cat, err := Rehydrate("cat-1", time.Now(), time.Now(), source)
	require.NoError(t, err)

	// Mutating the source map after construction must not corrupt the catalog
	delete(source, "a")
	addon.Select()

	got, ok := cat.AddonByID("a")
	require.True(t, ok)
	assert.False(t, got.IsSelected())
	assert.Equal(t, 1, cat.Len())
}

func TestWatermarkAdvancesOnAdd(t *testing.T) {
	cat := New()
	before := cat.UpdatedAt()

	time.Sleep(time.Millisecond)
	require.NoError(t, cat.AddAddon(newTestAddon(t, "a", "Alpha")))

	assert.True(t, cat.UpdatedAt().After(before))
}
