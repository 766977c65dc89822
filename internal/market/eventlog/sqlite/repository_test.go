package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshly-yours/marketplace/internal/market/eventlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "trail.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndGetLatest(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := []*eventlog.Event{
		{OrderID: "order-1", Kind: eventlog.EventPlaced, ActorID: "vendor-1", Status: "placed", OccurredAt: base},
		{OrderID: "order-1", Kind: eventlog.EventStatusChanged, ActorID: "supplier-1", Status: "accepted", OccurredAt: base.Add(time.Minute)},
		{OrderID: "order-2", Kind: eventlog.EventPlaced, ActorID: "vendor-2", Status: "placed", OccurredAt: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		require.NoError(t, repo.Save(ctx, e))
	}

	latest, err := repo.GetLatest(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, eventlog.EventStatusChanged, latest.Kind)
	assert.Equal(t, "accepted", latest.Status)
	assert.Equal(t, "supplier-1", latest.ActorID)
	assert.True(t, latest.OccurredAt.Equal(base.Add(time.Minute)))
}

func TestGetLatestUnknownOrder(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetLatest(context.Background(), "never-placed")
	assert.Error(t, err)
}

func TestSaveCarriesTraceFields(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	// NewEntry with no active span leaves the correlation fields empty.
	entry := eventlog.NewEntry(ctx, "order-1", eventlog.EventPlaced, "vendor-1", "placed")
	assert.Empty(t, entry.TraceID)
	assert.Empty(t, entry.SpanID)
	require.NoError(t, repo.Save(ctx, entry))

	stamped := *entry
	stamped.TraceID = "0af7651916cd43dd8448eb211c80319c"
	stamped.SpanID = "b7ad6b7169203331"
	stamped.Status = "accepted"
	stamped.Kind = eventlog.EventStatusChanged
	stamped.OccurredAt = entry.OccurredAt.Add(time.Second)
	require.NoError(t, repo.Save(ctx, &stamped))

	latest, err := repo.GetLatest(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", latest.TraceID)
	assert.Equal(t, "b7ad6b7169203331", latest.SpanID)
}
