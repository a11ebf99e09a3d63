package auditlog

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/dmitrijs2005/billgate/internal/server/models"
	"github.com/stretchr/testify/require"
)

// fakeLogRepo keeps entries in memory with the same ordering contract as
// the Postgres repository.
type fakeLogRepo struct {
	entries []*models.GenerationLogEntry
}

func (f *fakeLogRepo) Insert(ctx context.Context, entry *models.GenerationLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogRepo) filtered(typeFilter models.RunMode) []*models.GenerationLogEntry {
	var result []*models.GenerationLogEntry
	for _, e := range f.entries {
		if typeFilter == "" || e.Type == typeFilter {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return result
}

func (f *fakeLogRepo) Select(ctx context.Context, offset, limit int, typeFilter models.RunMode) ([]*models.GenerationLogEntry, error) {
	all := f.filtered(typeFilter)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeLogRepo) Count(ctx context.Context, typeFilter models.RunMode) (int, error) {
	return len(f.filtered(typeFilter)), nil
}

func seedEntries(t *testing.T, store *Store, n int) {
	t.Helper()
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		mode := models.RunModeAuto
		if i%2 == 1 {
			mode = models.RunModeManual
		}
		err := store.Append(context.Background(), &models.GenerationLogEntry{
			ID:        string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Type:      mode,
			Success:   true,
		})
		require.NoError(t, err)
	}
}

func TestQuery_PagesNewestFirst(t *testing.T) {
	store := NewStore(&fakeLogRepo{})
	seedEntries(t, store, 25)

	page1, err := store.Query(context.Background(), 1, 10, "")
	require.NoError(t, err)
	require.Len(t, page1.Entries, 10)
	require.Equal(t, 25, page1.Total)
	require.Equal(t, 3, page1.Pages)

	// Newest first.
	require.True(t, page1.Entries[0].Timestamp.After(page1.Entries[9].Timestamp))

	page3, err := store.Query(context.Background(), 3, 10, "")
	require.NoError(t, err)
	require.Len(t, page3.Entries, 5)
}

func TestQuery_FilterByType(t *testing.T) {
	store := NewStore(&fakeLogRepo{})
	seedEntries(t, store, 10) // 5 auto, 5 manual

	res, err := store.Query(context.Background(), 1, 10, models.RunModeManual)
	require.NoError(t, err)
	require.Len(t, res.Entries, 5)
	require.Equal(t, 5, res.Total)
	require.Equal(t, 1, res.Pages)
	for _, e := range res.Entries {
		require.Equal(t, models.RunModeManual, e.Type)
	}
}

func TestQuery_ClampsPageAndLimit(t *testing.T) {
	store := NewStore(&fakeLogRepo{})
	seedEntries(t, store, 3)

	res, err := store.Query(context.Background(), 0, 0, "")
	require.NoError(t, err)
	require.Equal(t, 1, res.Page)
	require.Equal(t, defaultLimit, res.Limit)

	res, err = store.Query(context.Background(), 1, 10_000, "")
	require.NoError(t, err)
	require.Equal(t, maxLimit, res.Limit)
}

func TestQuery_PastLastPageIsEmpty(t *testing.T) {
	store := NewStore(&fakeLogRepo{})
	seedEntries(t, store, 5)

	res, err := store.Query(context.Background(), 4, 10, "")
	require.NoError(t, err)
	require.Empty(t, res.Entries)
	require.Equal(t, 5, res.Total)
	require.Equal(t, 1, res.Pages)
}
