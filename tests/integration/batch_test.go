package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitTrackerAPI/tests/helpers"
)

func TestBatchCheckinPartialFailure(t *testing.T) {
	store := helpers.SetupTestStore(t)
	router := helpers.NewTestRouter(t, store, time.Date(2031, 8, 5, 12, 0, 0, 0, time.UTC))
	defer helpers.CleanupRecords(t, store, "2031-08-01", "2031-08-03")

	status, body := helpers.Do(t, router, http.MethodPost, "/api/checkin", []byte(`{"checkins":[
		{"date":"2031-08-01","checked":true},
		{"date":"2031-8-2","checked":true},
		{"date":"2031-08-03","checked":true,"note":"late"}
	]}`), nil)
	require.Equal(t, http.StatusOK, status, body)

	assert.EqualValues(t, 2, body["processed"])
	assert.EqualValues(t, 1, body["failed"])
	errs := body["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.EqualValues(t, 1, errs[0].(map[string]interface{})["index"])

	ctx := context.Background()
	for _, date := range []string{"2031-08-01", "2031-08-03"} {
		rec, err := store.FetchOne(ctx, date)
		require.NoError(t, err)
		assert.NotNil(t, rec, date)
	}
}

func TestActionBatchCheckin(t *testing.T) {
	store := helpers.SetupTestStore(t)
	router := helpers.NewTestRouter(t, store, time.Date(2031, 9, 2, 12, 0, 0, 0, time.UTC))
	defer helpers.CleanupRecords(t, store, "2031-09-01", "2031-09-02")

	status, body := helpers.Invoke(t, router, "habit.checkin", map[string]interface{}{
		"checkins": []map[string]interface{}{
			{"date": "2031-09-01", "wakeTime": "05:10"},
			{},
		},
	}, helpers.Caller("user-1", "habit:write"))
	require.Equal(t, http.StatusOK, status, body)

	result := body["result"].(map[string]interface{})
	assert.EqualValues(t, 2, result["processed"])
	assert.EqualValues(t, 0, result["failed"])
	assert.NotContains(t, result, "errors")

	today, err := store.FetchOne(context.Background(), "2031-09-02")
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.True(t, today.Checked)
}
