package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finance/internal/config"
	"finance/internal/logger"
	"finance/internal/server"
	"finance/internal/testutil"
	"finance/internal/validator"
)

// fixedNow pins "today" to 2024-03-15 for every flow.
func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
}

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register(fixedNow)
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		Env:               "test",
		SessionSecret:     "integration-secret",
		SessionTTL:        time.Hour,
		SessionCookieName: "FINANCE_SESSION",
		Location:          time.UTC,
	}

	router := server.NewRouter(server.Options{Config: cfg, DB: db, Now: fixedNow})
	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	return errObj["code"].(string)
}

// registerUser registers a new user and returns its ID.
func (app *testApp) registerUser(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q,"full_name":"Test User","phone_number":"555-0100"}`, username, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	return user["id"].(string)
}

// loginUser logs in and returns the session token.
func (app *testApp) loginUser(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// signUp registers and logs in, returning the session token.
func (app *testApp) signUp(t *testing.T, username string) string {
	t.Helper()
	app.registerUser(t, username, "password123")
	return app.loginUser(t, username, "password123")
}

// createTransaction posts a transaction and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token, amount, date, category string) string {
	t.Helper()
	body := fmt.Sprintf(`{"amount":%q,"date":%q,"category_name":%q,"description":"flow"}`, amount, date, category)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(string)
}
