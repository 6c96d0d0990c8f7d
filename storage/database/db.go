package database

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/emellab/campus/core"
	inmemdb "github.com/emellab/campus/storage/database/inmem"
	"github.com/emellab/campus/storage/database/mongodb"
)

// Open returns the DocumentStore selected by conf.Database.Engine.
func Open(conf *core.Config, logger core.Logger) (core.DocumentStore, error) {
	switch conf.Database.Engine {
	case core.EngineMongo:
		return mongodb.NewStore(conf.Database, logger), nil
	case core.EngineMemory:
		return inmemdb.NewStore(), nil
	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
}

type pinger interface {
	Ping(ctx context.Context) error
}

// WaitReady waits for the database to be reachable. Waits 100ms longer between each attempt.
// Stores that cannot be pinged are always ready.
func WaitReady(ctx context.Context, store core.DocumentStore, maxAttempts int) error {
	p, ok := store.(pinger)
	if !ok {
		return nil
	}

	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = p.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for database")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}
