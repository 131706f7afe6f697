package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarhub/hangarctl/internal/catalog"
)

func testLogger() *log.Logger {
	logger := log.Default()
	logger.SetLevel(log.FatalLevel)
	return logger
}

func testStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewWithFs(fs, "/data/catalog.json", testLogger()), fs
}

func storedAddon(t *testing.T, id, title string) *catalog.Addon {
	t.Helper()

	meta, err := catalog.NewAddonMetadata(title, "Test Creator", "1.0.0",
		catalog.ContentTypeAircraft, "1.0.0", "1.30.0",
		map[string]string{"neutral": "First cut"})
	require.NoError(t, err)

	addon, err := catalog.NewAddon(id, meta, "/sim/Community/"+id, time.Now())
	require.NoError(t, err)
	return addon
}

func TestGetAllOnMissingFile(t *testing.T) {
	s, _ := testStore(t)

	addons, err := s.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, addons)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddAndGetByID(t *testing.T) {
	s, _ := testStore(t)
	addon := storedAddon(t, "abc123", "A32NX")

	require.NoError(t, s.Add(context.Background(), addon))

	got, found, err := s.GetByID(context.Background(), "abc123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, addon.ID(), got.ID())
	assert.True(t, got.Metadata().Equal(addon.Metadata()))
	assert.Equal(t, addon.InstallPath(), got.InstallPath())
	assert.Equal(t, addon.IsSelected(), got.IsSelected())
}

func TestGetByIDAbsent(t *testing.T) {
	s, _ := testStore(t)

	got, found, err := s.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestAddDuplicateFails(t *testing.T) {
	s, _ := testStore(t)
	require.NoError(t, s.Add(context.Background(), storedAddon(t, "abc123", "A32NX")))

	err := s.Add(context.Background(), storedAddon(t, "abc123", "A32NX Stable"))
	assert.ErrorIs(t, err, ErrAddonExists)
}

func TestUpdateMissingFails(t *testing.T) {
	s, _ := testStore(t)
	err := s.Update(context.Background(), storedAddon(t, "abc123", "A32NX"))
	assert.ErrorIs(t, err, ErrAddonNotFound)
}

func TestUpdateReplacesRecord(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	addon := storedAddon(t, "abc123", "A32NX")
	require.NoError(t, s.Add(ctx, addon))

	addon.Select()
	require.NoError(t, s.Update(ctx, addon))

	got, found, err := s.GetByID(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.IsSelected())
}

func TestDeleteMissingFails(t *testing.T) {
	s, _ := testStore(t)
	assert.ErrorIs(t, s.Delete(context.Background(), "missing"), ErrAddonNotFound)
}

func TestDelete(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, storedAddon(t, "abc123", "A32NX")))
	require.NoError(t, s.Delete(ctx, "abc123"))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDurabilityAcrossInstances(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	first := NewWithFs(fs, "/data/catalog.json", testLogger())
	addon := storedAddon(t, "abc123", "A32NX")
	require.NoError(t, first.Add(ctx, addon))

	// A second instance against the same backing file must observe the write
	second := NewWithFs(fs, "/data/catalog.json", testLogger())
	got, found, err := second.GetByID(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Metadata().Equal(addon.Metadata()))
	assert.Equal(t, addon.DiscoveredAt().Unix(), got.DiscoveredAt().Unix())
}

func TestConcurrentAddsLoseNoWrites(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	const n = 20
	addons := make([]*catalog.Addon, n)
	for i := range addons {
		addons[i] = storedAddon(t, fmt.Sprintf("addon-%02d", i), fmt.Sprintf("Addon %02d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Add(ctx, addons[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "add %d", i)
	}

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestOperationsHonorCancelledContext(t *testing.T) {
	s, _ := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	assert.ErrorIs(t, s.Add(ctx, storedAddon(t, "abc123", "A32NX")), context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, "abc123"), context.Canceled)
}

func TestSnapshotOrderIsStable(t *testing.T) {
	s, fs := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, storedAddon(t, "charlie", "Charlie")))
	require.NoError(t, s.Add(ctx, storedAddon(t, "alpha", "Alpha")))
	require.NoError(t, s.Add(ctx, storedAddon(t, "bravo", "Bravo")))

	data, err := afero.ReadFile(fs, "/data/catalog.json")
	require.NoError(t, err)

	// Records are written sorted by id so snapshots diff cleanly
	assert.Regexp(t, `(?s)alpha.*bravo.*charlie`, string(data))
}
