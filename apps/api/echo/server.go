package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/emellab/campus/core"
	"github.com/emellab/campus/core/content"
)

type Options struct {
	Address        string
	DisableReqLogs bool
	Conf           *core.Config
	Logger         core.Logger
	Services       *content.Services
	Validate       *validator.Validate
	Translator     ut.Translator
}

type Server struct {
	opts     *Options
	app      *echo.Echo
	errors   chan error
	shutdown chan os.Signal
}

func NewServer(opts *Options) *Server {
	s := &Server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.opts.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: newRequestID}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(corsConfig))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", home)
	s.app.GET("/info", info)
	s.app.GET("/test", liveness)

	registerAdminAPI(s.app.Group("/admin"), conf.Admin, s.opts.Validate, s.opts.Translator)

	svcs := s.opts.Services
	registerContentAPI(s.app.Group("/notices"), svcs.Notices, nil)
	registerContentAPI(s.app.Group("/events"), svcs.Events, nil)
	registerContentAPI(s.app.Group("/faculty"), svcs.Faculty, nil)
	registerContentAPI(s.app.Group("/departments"), svcs.Departments, nil)
	registerContentAPI(s.app.Group("/admissions"), svcs.Admissions, admissionCreated)
	registerContentAPI(s.app.Group("/gallery"), svcs.Gallery, nil)
}

// Start listens on the configured address and blocks until the server stops.
// Listener failures are reported on Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
