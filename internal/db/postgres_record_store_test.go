package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitTrackerAPI/internal/record"
)

// Runs against a live database only when TEST_DATABASE_URL is set.
func TestPostgresRecordStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, _, err := OpenPostgres(ctx, url, 4)
	require.NoError(t, err)
	store := NewPostgresRecordStore(pool)
	defer store.Close()

	_, err = pool.Exec(ctx, `DELETE FROM wakeup_records WHERE date LIKE '1999-%'`)
	require.NoError(t, err)

	first := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return first })
	require.NoError(t, store.Upsert(ctx, record.UpsertInput{Date: "1999-01-02", Checked: true, Note: strPtr("a")}))
	require.NoError(t, store.Upsert(ctx, record.UpsertInput{Date: "1999-01-01", Checked: true}))

	store.SetClock(func() time.Time { return first.Add(time.Hour) })
	require.NoError(t, store.Upsert(ctx, record.UpsertInput{Date: "1999-01-02", Checked: false}))

	got, err := store.FetchOne(ctx, "1999-01-02")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Checked)
	assert.Nil(t, got.Note)
	assert.True(t, got.CreatedAt.Equal(first))

	rows, err := store.FetchRange(ctx, "1999-01-01", "1999-01-31")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1999-01-01", rows[0].Date)

	require.NoError(t, store.Patch(ctx, "1999-01-03", record.Patch{Note: record.OptionalString{Set: true, Value: strPtr("x")}}))
	patched, err := store.FetchOne(ctx, "1999-01-03")
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.False(t, patched.Checked)

	require.NoError(t, store.Upsert(ctx, record.UpsertInput{Date: "1999-01-01", Checked: true, UTCOffsetMinutes: intPtr(540)}))
	require.NoError(t, store.Upsert(ctx, record.UpsertInput{Date: "1999-01-01", Checked: false, KeepUTCOffset: true}))
	kept, err := store.FetchOne(ctx, "1999-01-01")
	require.NoError(t, err)
	require.NotNil(t, kept.UTCOffsetMinutes)
	assert.Equal(t, 540, *kept.UTCOffsetMinutes)
	assert.False(t, kept.Checked)

	for _, date := range []string{"1999-01-01", "1999-01-02", "1999-01-03"} {
		removed, err := store.Delete(ctx, date)
		require.NoError(t, err)
		assert.True(t, removed)
	}
	missing, err := store.FetchOne(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
