package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habitTrackerAPI/internal/apperror"
	"habitTrackerAPI/internal/record"
	"habitTrackerAPI/internal/record/recordtest"
)

func newTestRecordService(t *testing.T) (*RecordService, *recordtest.MemStore) {
	t.Helper()
	store := recordtest.NewMemStore()
	return NewRecordService(store, zap.NewNop()), store
}

func strPtr(s string) *string { return &s }

func TestRecordService_ListDefaultsToEverything(t *testing.T) {
	svc, store := newTestRecordService(t)
	seedChecked(store, true, "1999-12-31", "2025-01-01")

	records, err := svc.List(context.Background(), record.RangeQuery{})
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, recordtest.RangeCall{From: "0000-01-01", To: "9999-12-31"}, store.RangeCalls[0])
}

func TestRecordService_ListRejectsBadBounds(t *testing.T) {
	svc, store := newTestRecordService(t)

	_, err := svc.List(context.Background(), record.RangeQuery{From: "2025-1-1"})
	assertAppError(t, err, http.StatusBadRequest, apperror.CodeValidation)
	assert.Contains(t, err.(*apperror.Error).Message, "from must be YYYY-MM-DD")
	assert.Empty(t, store.RangeCalls)
}

func TestRecordService_UpsertValidates(t *testing.T) {
	tests := []struct {
		name string
		req  record.UpsertRequest
		msg  string
	}{
		{"missing date", record.UpsertRequest{}, "date is required"},
		{"bad date", record.UpsertRequest{Date: "tomorrow"}, "date must be YYYY-MM-DD"},
		{"bad url", record.UpsertRequest{Date: "2025-01-01", ImageURL: strPtr("not a url")}, "imageUrl must be a valid URL"},
		{"long note", record.UpsertRequest{Date: "2025-01-01", Note: strPtr(strings.Repeat("x", 501))}, "note is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestRecordService(t)
			err := svc.Upsert(context.Background(), &tt.req)
			assertAppError(t, err, http.StatusBadRequest, apperror.CodeValidation)
			assert.Contains(t, err.(*apperror.Error).Message, tt.msg)
			assert.Equal(t, 0, store.UpsertCalls)
		})
	}
}

func TestRecordService_UpsertKeepsStoredOffset(t *testing.T) {
	svc, store := newTestRecordService(t)
	offset := -420
	store.Seed(record.WakeupRecord{Date: "2025-01-01", Checked: true, UTCOffsetMinutes: &offset})

	err := svc.Upsert(context.Background(), &record.UpsertRequest{
		Date:     "2025-01-01",
		Checked:  true,
		ImageURL: strPtr("https://res.cloudinary.com/demo/image/upload/a.jpg"),
	})
	require.NoError(t, err)

	stored, ok := store.Get("2025-01-01")
	require.True(t, ok)
	require.NotNil(t, stored.UTCOffsetMinutes)
	assert.Equal(t, -420, *stored.UTCOffsetMinutes)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/a.jpg", *stored.ImageURL)
	assert.Equal(t, 0, store.FetchOneCalls, "offset must be kept by the store write, not read back first")
	assert.Equal(t, 1, store.UpsertCalls)
}

func TestRecordService_PatchTouchesOnlyProvidedFields(t *testing.T) {
	svc, store := newTestRecordService(t)
	store.Seed(record.WakeupRecord{Date: "2025-01-01", Checked: true, Note: strPtr("keep"), ImageURL: strPtr("https://a.example/x.jpg")})

	var req record.PatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"imageUrl":null}`), &req))
	require.NoError(t, svc.Patch(context.Background(), "2025-01-01", &req))

	stored, _ := store.Get("2025-01-01")
	assert.True(t, stored.Checked)
	assert.Nil(t, stored.ImageURL)
	require.NotNil(t, stored.Note)
	assert.Equal(t, "keep", *stored.Note)
}

func TestRecordService_PatchCreatesMissing(t *testing.T) {
	svc, store := newTestRecordService(t)

	var req record.PatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"note":"later"}`), &req))
	require.NoError(t, svc.Patch(context.Background(), "2025-02-02", &req))

	stored, ok := store.Get("2025-02-02")
	require.True(t, ok)
	assert.False(t, stored.Checked)
	assert.Equal(t, "later", *stored.Note)
}

func TestRecordService_PatchValidates(t *testing.T) {
	svc, store := newTestRecordService(t)

	var req record.PatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"imageUrl":"nope"}`), &req))
	err := svc.Patch(context.Background(), "2025-02-02", &req)
	assertAppError(t, err, http.StatusBadRequest, apperror.CodeValidation)

	err = svc.Patch(context.Background(), "02-02-2025", &record.PatchRequest{})
	assertAppError(t, err, http.StatusBadRequest, apperror.CodeValidation)
	assert.Equal(t, 0, store.PatchCalls)
}

func TestRecordService_DeleteMissingIsFine(t *testing.T) {
	svc, store := newTestRecordService(t)

	require.NoError(t, svc.Delete(context.Background(), "2025-01-01"))
	assert.Equal(t, 1, store.DeleteCalls)

	err := svc.Delete(context.Background(), "bad")
	assertAppError(t, err, http.StatusBadRequest, apperror.CodeValidation)
}

func TestRecordService_CheckinBatch(t *testing.T) {
	svc, store := newTestRecordService(t)

	result, err := svc.CheckinBatch(context.Background(), &record.CheckinBatchRequest{Checkins: []record.UpsertRequest{
		{Date: "2025-01-01", Checked: true},
		{Date: "2025-01-02", ImageURL: strPtr("::")},
		{Date: "2025-01-03", Checked: true},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []BatchItemResult{{Date: "2025-01-01", Success: true}, {Date: "2025-01-03", Success: true}}, result.Results)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, BatchItemError{Index: 1, Date: "2025-01-02", Error: "imageUrl must be a valid URL"}, result.Errors[0])
	assert.Equal(t, 2, store.Len())
}

func TestRecordService_CheckinBatchLimits(t *testing.T) {
	svc, _ := newTestRecordService(t)

	_, err := svc.CheckinBatch(context.Background(), &record.CheckinBatchRequest{})
	assertAppError(t, err, http.StatusBadRequest, apperror.CodeValidation)

	_, err = svc.CheckinBatch(context.Background(), &record.CheckinBatchRequest{Checkins: make([]record.UpsertRequest, maxBatchItems+1)})
	assertAppError(t, err, http.StatusBadRequest, apperror.CodeValidation)
}
