// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aichikawa/pubtrack/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history", "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(doi string, downloads types.Count) types.MetricRecord {
	return types.MetricRecord{
		DOI:       doi,
		Title:     "Sample Publication: A Study",
		Platform:  types.PlatformZenodo,
		Views:     types.KnownCount(100),
		Downloads: downloads,
		DLRate:    "25.0%",
		Social:    types.SocialSignal{Score: 4.5},
		Reads:     types.ReadsOf(12),
	}
}

func TestRecordRun(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	records := []types.MetricRecord{
		sampleRecord("10.5281/zenodo.1111", types.KnownCount(25)),
		sampleRecord("10.31224/4444", types.Count{}),
	}
	stats := types.CorpusStats{TotalDownloads: 25, AverageDownloads: 25, Averaged: 1}

	require.NoError(t, store.RecordRun(ctx, "2026-08-30 09:00 UTC", stats, records))

	n, err := store.RunCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	trend, err := store.DownloadTrend(ctx, "10.5281/zenodo.1111")
	require.NoError(t, err)
	assert.Equal(t, []int{25}, trend)

	// Absent counts are stored as NULL and excluded from trends.
	trend, err = store.DownloadTrend(ctx, "10.31224/4444")
	require.NoError(t, err)
	assert.Empty(t, trend)
}

func TestDownloadTrendAcrossRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, dl := range []int{10, 15, 25} {
		records := []types.MetricRecord{sampleRecord("10.5281/zenodo.1111", types.KnownCount(dl))}
		stats := types.CorpusStats{TotalDownloads: dl, AverageDownloads: float64(dl), Averaged: 1}
		require.NoError(t, store.RecordRun(ctx, "2026-08-30 09:00 UTC", stats, records))
	}

	trend, err := store.DownloadTrend(ctx, "10.5281/zenodo.1111")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 15, 25}, trend)

	n, err := store.RunCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.RunCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
