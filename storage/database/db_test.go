package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emellab/campus/core"
	inmemdb "github.com/emellab/campus/storage/database/inmem"
	"github.com/emellab/campus/storage/database/mongodb"
	testutil "github.com/emellab/campus/tests"
)

func TestOpen(t *testing.T) {
	conf := core.NewTestConfig()
	logger := testutil.NewLogger(conf)

	store, err := Open(conf, logger)
	require.NoError(t, err)
	assert.IsType(t, &inmemdb.Store{}, store)

	conf.Database.Engine = core.EngineMongo
	store, err = Open(conf, logger)
	require.NoError(t, err)
	assert.IsType(t, &mongodb.Store{}, store)

	conf.Database.Engine = "postgres"
	_, err = Open(conf, logger)
	assert.EqualError(t, err, `unsupported database engine "postgres"`)
}

func TestWaitReady(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, WaitReady(ctx, inmemdb.NewStore(), 1))

	conf := core.NewTestConfig()
	conf.Database.URL = "mongodb://127.0.0.1:1"
	conf.Database.Timeout = 50 * time.Millisecond
	store := mongodb.NewStore(conf.Database, testutil.NewLogger(conf))

	err := WaitReady(ctx, store, 2)
	require.Error(t, err)
	assert.True(t, core.IsStoreUnavailable(err), "got %v", err)
}
