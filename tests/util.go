package testutil

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emellab/campus/core"
	"github.com/emellab/campus/core/content"
	logsvc "github.com/emellab/campus/services/logger"
	inmemdb "github.com/emellab/campus/storage/database/inmem"
)

var (
	mongoOnce sync.Once
	mongoURL  string
	mongoErr  error
)

// NewLogger returns a logger writing nowhere, with error reporting disabled.
func NewLogger(conf *core.Config) core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

// NewValidator returns a validator and translator with every custom tag registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	content.InitValidators(validate, translator)
	return validate, translator
}

// NewServices returns content services backed by a fresh in-memory store.
func NewServices(t *testing.T, mailSvc core.EmailService) (*content.Services, *inmemdb.Store) {
	t.Helper()
	store := inmemdb.NewStore()
	validate, translator := NewValidator()
	return content.NewServices(store, validate, translator, mailSvc), store
}

// MongoURL starts a shared MongoDB container (once for the entire test run) and returns its URL.
// The test is skipped in -short mode or when no container provider is available.
func MongoURL(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	mongoOnce.Do(func() {
		mongoURL, mongoErr = startMongo()
	})
	if mongoErr != nil {
		t.Fatalf("testutil: failed to start MongoDB: %v", mongoErr)
	}
	return mongoURL
}

func startMongo() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}
