// Package mongodb implements core.DocumentStore on top of the MongoDB Go driver.
package mongodb

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/emellab/campus/core"
)

type Store struct {
	conf   core.DatabaseConfig
	logger core.Logger
	now    func() time.Time

	once       sync.Once
	client     *mongo.Client
	db         *mongo.Database
	connectErr error
}

var _ core.DocumentStore = (*Store)(nil)

// NewStore returns a Store for conf. No connection is made until first use.
func NewStore(conf core.DatabaseConfig, logger core.Logger) *Store {
	return &Store{
		conf:   conf,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Connect creates the shared client. Only the first call does any work; later calls
// return the outcome of the first one.
func (s *Store) Connect(ctx context.Context) error {
	s.once.Do(func() {
		opts := options.Client().ApplyURI(s.conf.URL)
		if s.conf.Timeout > 0 {
			opts.SetServerSelectionTimeout(s.conf.Timeout).SetConnectTimeout(s.conf.Timeout)
		}
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			s.connectErr = core.NewStoreUnavailableError(errors.Wrap(err, "connecting to mongodb"))
			return
		}
		s.client = client
		s.db = client.Database(s.conf.Name)
		s.logger.Info("mongodb client ready", map[string]interface{}{"database": s.conf.Name})
	})
	return s.connectErr
}

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Connect(ctx); err != nil {
		return err
	}
	return storeError(s.client.Ping(ctx, nil), "pinging mongodb")
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return errors.Wrap(s.client.Disconnect(ctx), "disconnecting from mongodb")
}

func (s *Store) collection(ctx context.Context, name string) (*mongo.Collection, error) {
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}
	return s.db.Collection(name), nil
}

func (s *Store) Create(ctx context.Context, collection string, doc core.Document) (string, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return "", err
	}

	now := s.now()
	data := make(bson.M, len(doc)+2)
	for k, v := range doc {
		data[k] = v
	}
	delete(data, core.FieldID)
	data[core.FieldCreatedAt] = now
	data[core.FieldUpdatedAt] = now

	res, err := coll.InsertOne(ctx, data)
	if err != nil {
		return "", storeError(err, "inserting into "+collection)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *Store) List(ctx context.Context, collection string, filter core.Filter, limit int64) ([]core.Document, error) {
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = core.DefaultListLimit
	}

	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cur, err := coll.Find(ctx, query, options.Find().SetLimit(limit))
	if err != nil {
		return nil, storeError(err, "finding in "+collection)
	}
	var rows []bson.M
	if err = cur.All(ctx, &rows); err != nil {
		return nil, storeError(err, "reading cursor of "+collection)
	}

	docs := make([]core.Document, 0, len(rows))
	for _, row := range rows {
		if oid, ok := row[core.FieldID].(primitive.ObjectID); ok {
			row[core.FieldID] = oid.Hex()
		}
		docs = append(docs, core.Document(row))
	}
	return docs, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, partial core.Document) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, core.ErrInvalidID
	}
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return 0, err
	}

	set := make(bson.M, len(partial)+1)
	for k, v := range partial {
		if k == core.FieldID || k == core.FieldCreatedAt {
			continue
		}
		set[k] = v
	}
	set[core.FieldUpdatedAt] = s.now()

	res, err := coll.UpdateOne(ctx, bson.M{core.FieldID: oid}, bson.M{"$set": set})
	if err != nil {
		return 0, storeError(err, "updating "+collection)
	}
	return res.ModifiedCount, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, core.ErrInvalidID
	}
	coll, err := s.collection(ctx, collection)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteOne(ctx, bson.M{core.FieldID: oid})
	if err != nil {
		return 0, storeError(err, "deleting from "+collection)
	}
	return res.DeletedCount, nil
}

// storeError wraps err, flagging connectivity failures as core.StoreUnavailableError.
func storeError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var selErr topology.ServerSelectionError
	if mongo.IsNetworkError(err) ||
		mongo.IsTimeout(err) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.As(err, &selErr) {
		return core.NewStoreUnavailableError(errors.Wrap(err, msg))
	}
	return errors.Wrap(err, msg)
}
