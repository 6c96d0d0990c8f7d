package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	app := setup(t)

	rec := app.do(http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestInfo(t *testing.T) {
	app := setup(t)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: []byte(`{
			"school": {"name": "Emel Laboratory School", "code": "484281", "emis": "00505030438"},
			"college": {"name": "Arojbegi Laboratory College", "eiin": "139583"},
			"message": "Welcome to our combined institution API"
		}`),
	}, app.do(http.MethodGet, "/info"))
}

func TestLiveness(t *testing.T) {
	app := setup(t)

	rec := app.do(http.MethodGet, "/test")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
	ts, err := time.Parse(time.RFC3339, body["time"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
	assert.Equal(t, time.UTC, ts.Location())
}

func TestCORS(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/notices")
	req.Header.Set("Origin", "https://emel.edu.bd")
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://emel.edu.bd", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	// preflight
	req, rec = newRequest(http.MethodOptions, "/admissions")
	req.Header.Set("Origin", "https://arojbegi.edu.bd")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://arojbegi.edu.bd", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "Content-Type, X-Custom", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestLogin(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "valid credentials",
			body:     []byte(`{"username": "admin", "password": "admin123"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"token": "demo-token", "user": {"name": "Administrator"}}`),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"username": "admin", "password": "wrong"}`),
			wantCode: http.StatusUnauthorized,
			wantData: []byte(`{"error": "invalid credentials"}`),
		},
		{
			name:     "wrong username",
			body:     []byte(`{"username": "root", "password": "admin123"}`),
			wantCode: http.StatusUnauthorized,
			wantData: []byte(`{"error": "invalid credentials"}`),
		},
		{
			name:     "missing password",
			body:     []byte(`{"username": "admin"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"password": "this field is required"}`),
		},
		{
			name:     "malformed body",
			body:     []byte(`{"username": `),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(http.MethodPost, "/admin/login", tt.body))
		})
	}
}
