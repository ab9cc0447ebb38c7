package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technohunter_bot/internal/domain/application"
	"technohunter_bot/internal/domain/form"
)

func newRecord(userID int64, at time.Time, name string) *application.Record {
	return &application.Record{
		UserID:      userID,
		Type:        form.BranchCompany,
		SubmittedAt: at,
		Data:        form.Values{form.KeyCompanyName: name},
	}
}

func TestApplicationRepository_CreateAssignsID(t *testing.T) {
	repo := NewApplicationRepository()
	ctx := context.Background()
	at := time.UnixMilli(1760000000000)

	rec := newRecord(42, at, "ООО Ромашка")
	require.NoError(t, repo.Create(ctx, rec))

	assert.Equal(t, "TH-42-1760000000000", rec.ID)
	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "ООО Ромашка", got.DisplayName())
}

func TestApplicationRepository_NeverOverwrites(t *testing.T) {
	repo := NewApplicationRepository()
	ctx := context.Background()
	at := time.UnixMilli(1760000000000)

	first := newRecord(42, at, "first")
	second := newRecord(42, at, "second")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.NotEqual(t, first.ID, second.ID)
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.DisplayName())
	count, _ := repo.Count(ctx)
	assert.Equal(t, 2, count)
}

func TestApplicationRepository_ConcurrentCreate(t *testing.T) {
	repo := NewApplicationRepository()
	ctx := context.Background()
	at := time.Now()

	const writers = 50
	ids := make([]string, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := newRecord(int64(1000+i), at, fmt.Sprintf("company-%d", i))
			assert.NoError(t, repo.Create(ctx, rec))
			ids[i] = rec.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		got, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("company-%d", i), got.DisplayName())
	}
	count, _ := repo.Count(ctx)
	assert.Equal(t, writers, count)
}

func TestApplicationRepository_GetByIDNotFound(t *testing.T) {
	repo := NewApplicationRepository()

	_, err := repo.GetByID(context.Background(), "TH-1-1")
	assert.ErrorIs(t, err, application.ErrApplicationNotFound)
}

func TestApplicationRepository_ListKeepsInsertionOrder(t *testing.T) {
	repo := NewApplicationRepository()
	ctx := context.Background()
	base := time.UnixMilli(1760000000000)
	for i := 0; i < 5; i++ {
		// Later inserts carry earlier timestamps on purpose.
		require.NoError(t, repo.Create(ctx, newRecord(int64(i+1), base.Add(-time.Duration(i)*time.Hour), fmt.Sprint(i))))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, rec := range all {
		assert.Equal(t, fmt.Sprint(i), rec.DisplayName())
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "3", recent[0].DisplayName())
	assert.Equal(t, "4", recent[1].DisplayName())

	recent, err = repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 5)
}

func TestApplicationRepository_ReturnsCopies(t *testing.T) {
	repo := NewApplicationRepository()
	ctx := context.Background()
	rec := newRecord(7, time.Now(), "original")
	require.NoError(t, repo.Create(ctx, rec))

	rec.Data[form.KeyCompanyName] = "changed by caller"
	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	got.Data[form.KeyCompanyName] = "changed again"

	again, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.DisplayName())
	assert.True(t, strings.HasPrefix(again.ID, "TH-7-"))
}

func TestApplicationRepository_RejectsMissingUser(t *testing.T) {
	repo := NewApplicationRepository()

	err := repo.Create(context.Background(), newRecord(0, time.Now(), "x"))
	assert.ErrorIs(t, err, ErrMissingUser)
}
