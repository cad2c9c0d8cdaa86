package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"habitTrackerAPI/handlers"
	"habitTrackerAPI/internal/config"
	"habitTrackerAPI/internal/db"
	"habitTrackerAPI/internal/record"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

// SetupTestStore opens a store against TEST_DATABASE_URL when it is set,
// otherwise a fresh SQLite file in a temp dir. The store is closed when the
// test ends.
func SetupTestStore(t *testing.T) record.Store {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		url = filepath.Join(t.TempDir(), "habits.db")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, _, err := db.OpenRecordStore(ctx, url, 4, nil)
	require.NoError(t, err, "open test store")
	t.Cleanup(store.Close)
	return store
}

// CleanupRecords deletes the given dates so shared databases stay clean.
func CleanupRecords(t *testing.T, store record.Store, dates ...string) {
	t.Helper()
	for _, date := range dates {
		if _, err := store.Delete(context.Background(), date); err != nil {
			t.Logf("Warning: failed to cleanup record %s: %v", date, err)
		}
	}
}

// NewTestRouter wires the full HTTP surface with the action clock pinned to
// now.
func NewTestRouter(t *testing.T, store record.Store, now time.Time) http.Handler {
	t.Helper()

	actionService := services.NewActionService(store, nil)
	actionService.SetClock(func() time.Time { return now })
	recordService := services.NewRecordService(store, nil)

	return handlers.NewRouter(handlers.RouterDeps{
		Invoke:    handlers.NewInvokeHandler(actionService, nil),
		Records:   handlers.NewRecordsHandler(recordService),
		Checkin:   handlers.NewCheckinHandler(recordService),
		Signature: handlers.NewSignatureHandler(services.NewSignatureService(config.CloudinaryConfig{})),
		Meta:      handlers.NewMetaHandler(store, nil),
	})
}

// Caller builds gateway identity headers.
func Caller(userID, scopes string) map[string]string {
	return map[string]string{
		middleware.HeaderCallerID:     userID,
		middleware.HeaderCallerScopes: scopes,
	}
}

// Invoke posts an action to the router and decodes the envelope.
func Invoke(t *testing.T, router http.Handler, name string, params interface{}, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()

	payload := map[string]interface{}{"action": name}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return Do(t, router, http.MethodPost, "/api/v1/invoke", body, headers)
}

// Do sends a request and decodes a JSON object response.
func Do(t *testing.T, router http.Handler, method, path string, body []byte, headers map[string]string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return rr.Code, out
}
