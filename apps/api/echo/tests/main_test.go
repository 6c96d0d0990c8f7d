package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	echoapi "github.com/emellab/campus/apps/api/echo"
	"github.com/emellab/campus/core"
	"github.com/emellab/campus/core/content"
	emailsvc "github.com/emellab/campus/services/email"
	inmemdb "github.com/emellab/campus/storage/database/inmem"
	testutil "github.com/emellab/campus/tests"
)

type testApp struct {
	server  *echoapi.Server
	store   *inmemdb.Store
	mailSvc *emailsvc.ConsoleServiceMock
	conf    *core.Config
}

func setup(t *testing.T) *testApp {
	t.Helper()
	conf := core.NewTestConfig()
	logger := testutil.NewLogger(conf)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	svcs, store := testutil.NewServices(t, mailSvc)

	return &testApp{
		server:  newServer(conf, logger, svcs),
		store:   store,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func newServer(conf *core.Config, logger core.Logger, svcs *content.Services) *echoapi.Server {
	validate, translator := testutil.NewValidator()
	return echoapi.NewServer(&echoapi.Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		Services:       svcs,
		Validate:       validate,
		Translator:     translator,
	})
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (app *testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.server.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	if tt.wantData != nil {
		require.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

// unavailableStore fails every operation as if MongoDB could not be reached.
type unavailableStore struct{}

var errUnreachable = core.NewStoreUnavailableError(context.DeadlineExceeded)

func (unavailableStore) Connect(context.Context) error { return errUnreachable }
func (unavailableStore) Close(context.Context) error   { return nil }
func (unavailableStore) Create(context.Context, string, core.Document) (string, error) {
	return "", errUnreachable
}
func (unavailableStore) List(context.Context, string, core.Filter, int64) ([]core.Document, error) {
	return nil, errUnreachable
}
func (unavailableStore) Update(context.Context, string, string, core.Document) (int64, error) {
	return 0, errUnreachable
}
func (unavailableStore) Delete(context.Context, string, string) (int64, error) {
	return 0, errUnreachable
}
