package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nexuite/sync-backend/internal/database"
	"github.com/nexuite/sync-backend/internal/middleware"
	"github.com/nexuite/sync-backend/pkg/logger"
	"gorm.io/gorm"
)

const testAPIKey = "test-sync-key"

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(logger.Init)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed automigrating models: %v", err)
	}

	healthHandler := NewHealthHandler(db)
	syncHandler := NewSyncHandler(db)
	exportHandler := NewExportHandler(nil)

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", healthHandler.Check)

	syncRoutes := app.Group("/sync", middleware.RequireAPIKey(testAPIKey))
	syncRoutes.Post("/push", syncHandler.Push)
	syncRoutes.Get("/export", exportHandler.Trigger)

	return &testEnv{app: app, db: db}
}

func syncHeaders() map[string]string {
	return map[string]string{"api-key": testAPIKey}
}

func makeEvent(t *testing.T, globalEventID, actionType string, payload map[string]interface{}) SyncEvent {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed marshalling payload: %v", err)
	}
	return SyncEvent{
		Timestamp:     "2026-08-01 10:30:00",
		ActionType:    actionType,
		PayloadJSON:   string(raw),
		User:          "ana",
		AppVersion:    "3.2.1",
		Hash:          "deadbeef",
		GlobalEventID: globalEventID,
	}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, int((10 * time.Second).Milliseconds()))
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, app, method, path, body, requestHeaders)
}

func pushEvents(t *testing.T, env *testEnv, events ...SyncEvent) *http.Response {
	t.Helper()
	return performJSONRequest(t, env.app, http.MethodPost, "/sync/push", events, syncHeaders())
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed reading response body: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, string(raw))
	}

	return payload
}

func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

func assertInserted(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assertStatus(t, resp, http.StatusOK)
	body := decodeJSONMap(t, resp)
	if status, _ := body["status"].(string); status != "success" {
		t.Fatalf("expected status success, got %+v", body)
	}
	if inserted, _ := body["inserted"].(float64); int(inserted) != expected {
		t.Fatalf("expected inserted=%d, got %+v", expected, body)
	}
}
