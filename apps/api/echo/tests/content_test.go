package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emellab/campus/core"
	"github.com/emellab/campus/core/content"
	testutil "github.com/emellab/campus/tests"
)

func TestNotices(t *testing.T) {
	app := setup(t)

	rec := app.do(http.MethodPost, "/notices", []byte(`{"title":"Exam","content":"Starts Monday","audience":"school"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[map[string]string](t, rec)
	require.Len(t, created, 1)
	assert.True(t, primitive.IsValidObjectID(created["id"]))

	rec = app.do(http.MethodGet, "/notices?audience=school")
	require.Equal(t, http.StatusOK, rec.Code)
	notices := decode[[]map[string]interface{}](t, rec)
	require.Len(t, notices, 1)
	n := notices[0]
	assert.Equal(t, created["id"], n["_id"])
	assert.Equal(t, "Exam", n["title"])
	assert.Equal(t, "general", n["category"])
	assert.NotEmpty(t, n["date"])
	assert.NotEmpty(t, n["created_at"])
	assert.Equal(t, n["created_at"], n["updated_at"])

	rec = app.do(http.MethodGet, "/notices?audience=college")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNotices_ClientMetadataIgnored(t *testing.T) {
	app := setup(t)
	clientID := primitive.NewObjectID().Hex()

	rec := app.do(http.MethodPost, "/notices", []byte(fmt.Sprintf(
		`{"_id":%q,"created_at":"2000-01-01T00:00:00Z","title":"Exam","content":"c","audience":"both"}`, clientID,
	)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[map[string]string](t, rec)
	assert.NotEqual(t, clientID, created["id"])

	notices, err := app.store.List(context.Background(), "notice", nil, 0)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	createdAt := notices[0][core.FieldCreatedAt].(primitive.DateTime).Time()
	assert.True(t, createdAt.After(time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestAdmissions(t *testing.T) {
	app := setup(t)

	rec := app.do(http.MethodPost, "/admissions", []byte(`{
		"level": "school",
		"first_name": "Rafi",
		"last_name": "Hasan",
		"class_or_stream": "6",
		"phone": "01700000000",
		"email": "guardian@example.com"
	}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[map[string]string](t, rec)
	assert.Equal(t, "submitted", created["status"])
	assert.True(t, primitive.IsValidObjectID(created["id"]))

	sent := app.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "guardian@example.com", sent[0].To[0].Address)

	rec = app.do(http.MethodPost, "/admissions", []byte(`{
		"level": "college", "first_name": "Nusrat", "last_name": "Jahan",
		"class_or_stream": "Science", "phone": "01800000000", "status": "reviewed"
	}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "reviewed", decode[map[string]string](t, rec)["status"])

	rec = app.do(http.MethodGet, "/admissions?status=submitted")
	require.Equal(t, http.StatusOK, rec.Code)
	admissions := decode[[]content.Admission](t, rec)
	require.Len(t, admissions, 1)
	assert.Equal(t, created["id"], admissions[0].ID)
	assert.Equal(t, "Rafi", admissions[0].FirstName)

	rec = app.do(http.MethodGet, "/admissions?level=college&status=reviewed")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]content.Admission](t, rec), 1)
}

func TestCreate_Validation(t *testing.T) {
	app := setup(t)

	tests := []struct {
		httpTest
		coll string
	}{
		{
			httpTest: httpTest{
				name:     "faculty with level both",
				path:     "/faculty",
				body:     []byte(`{"name":"Dr. Karim","designation":"Lecturer","department":"Physics","level":"both"}`),
				wantCode: http.StatusBadRequest,
				wantData: []byte(`{"level": "level must be one of: school, college"}`),
			},
			coll: "faculty",
		},
		{
			httpTest: httpTest{
				name:     "notice missing fields",
				path:     "/notices",
				body:     []byte(`{"audience":"school"}`),
				wantCode: http.StatusBadRequest,
				wantData: []byte(`{"title": "this field is required", "content": "this field is required"}`),
			},
			coll: "notice",
		},
		{
			httpTest: httpTest{
				name:     "admission with invalid email",
				path:     "/admissions",
				body:     []byte(`{"level":"school","first_name":"A","last_name":"B","class_or_stream":"6","phone":"1","email":"nope"}`),
				wantCode: http.StatusBadRequest,
				wantData: []byte(`{"email": "enter a valid email address"}`),
			},
			coll: "admission",
		},
		{
			httpTest: httpTest{
				name:     "event with malformed date",
				path:     "/events",
				body:     []byte(`{"title":"Sports","description":"d","audience":"both","start_date":"next week"}`),
				wantCode: http.StatusBadRequest,
			},
			coll: "event",
		},
		{
			httpTest: httpTest{
				name:     "department with unknown level",
				path:     "/departments",
				body:     []byte(`{"name":"Physics","level":"university"}`),
				wantCode: http.StatusBadRequest,
				wantData: []byte(`{"level": "level must be one of: school, college, both"}`),
			},
			coll: "department",
		},
		{
			httpTest: httpTest{
				name:     "gallery malformed json",
				path:     "/gallery",
				body:     []byte(`{"title": [}`),
				wantCode: http.StatusBadRequest,
			},
			coll: "galleryimage",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt.httpTest, app.do(http.MethodPost, tt.path, tt.body))

			docs, err := app.store.List(context.Background(), tt.coll, nil, 0)
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
	assert.Empty(t, app.mailSvc.SentMessages())
}

func TestList_Params(t *testing.T) {
	app := setup(t)

	for i := 0; i < 3; i++ {
		rec := app.do(http.MethodPost, "/gallery", []byte(fmt.Sprintf(
			`{"title":"Photo %d","url":"https://img.example.com/%d.jpg","level":"college","album":"Sports Day"}`, i, i,
		)))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	tests := []struct {
		path      string
		wantCode  int
		wantCount int
	}{
		{path: "/gallery", wantCode: http.StatusOK, wantCount: 3},
		{path: "/gallery/", wantCode: http.StatusOK, wantCount: 3},
		{path: "/gallery?limit=2", wantCode: http.StatusOK, wantCount: 2},
		{path: "/gallery?album=Sports%20Day&level=college", wantCode: http.StatusOK, wantCount: 3},
		{path: "/gallery?album=Prize%20Giving", wantCode: http.StatusOK, wantCount: 0},
		{path: "/gallery?level=alumni", wantCode: http.StatusOK, wantCount: 0},
		{path: "/gallery?limit=0", wantCode: http.StatusBadRequest},
		{path: "/gallery?limit=1001", wantCode: http.StatusBadRequest},
		{path: "/gallery?limit=abc", wantCode: http.StatusBadRequest},
		{path: "/faculty", wantCode: http.StatusOK, wantCount: 0},
		{path: "/departments", wantCode: http.StatusOK, wantCount: 0},
		{path: "/events", wantCode: http.StatusOK, wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := app.do(http.MethodGet, tt.path)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusOK {
				assert.Contains(t, decode[map[string]string](t, rec), "limit")
				return
			}
			assert.Len(t, decode[[]map[string]interface{}](t, rec), tt.wantCount)
		})
	}
}

func TestStoreUnavailable(t *testing.T) {
	conf := core.NewTestConfig()
	logger := testutil.NewLogger(conf)
	validate, translator := testutil.NewValidator()
	server := newServer(conf, logger, content.NewServices(unavailableStore{}, validate, translator, nil))

	for _, tt := range []httpTest{
		{method: http.MethodGet, path: "/events"},
		{method: http.MethodPost, path: "/events", body: []byte(`{"title":"t","description":"d","audience":"both","start_date":"2025-03-01T10:00:00Z"}`)},
	} {
		req, rec := newRequest(tt.method, tt.path, tt.body)
		server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusServiceUnavailable,
			wantData: marshallObj(t, httpErr{Error: "service unavailable"}),
		}, rec)
	}
}
