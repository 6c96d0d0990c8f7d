// Package inmemdb implements core.DocumentStore in memory. Data is lost on restart.
package inmemdb

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emellab/campus/core"
)

type table struct {
	ids  []primitive.ObjectID // insertion order
	docs map[primitive.ObjectID]bson.M
}

// Store keeps documents the way MongoDB would: ObjectID identifiers, natural (insertion) order
// and equality filters where an array field matches any of its elements.
// Safe for concurrent use.
type Store struct {
	mutex  sync.RWMutex
	tables map[string]*table
	now    func() time.Time
}

var _ core.DocumentStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		tables: make(map[string]*table),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Connect(context.Context) error { return nil }
func (s *Store) Close(context.Context) error   { return nil }

// Reset drops every collection.
func (s *Store) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.tables = make(map[string]*table)
}

func (s *Store) Create(ctx context.Context, collection string, doc core.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := clone(doc)
	if err != nil {
		return "", errors.Wrap(err, "encoding document")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := primitive.NewDateTimeFromTime(s.now())
	oid := primitive.NewObjectID()
	data[core.FieldID] = oid
	data[core.FieldCreatedAt] = now
	data[core.FieldUpdatedAt] = now

	tbl, ok := s.tables[collection]
	if !ok {
		tbl = &table{docs: make(map[primitive.ObjectID]bson.M)}
		s.tables[collection] = tbl
	}
	tbl.ids = append(tbl.ids, oid)
	tbl.docs[oid] = data
	return oid.Hex(), nil
}

func (s *Store) List(ctx context.Context, collection string, filter core.Filter, limit int64) ([]core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = core.DefaultListLimit
	}
	query, err := clone(filter)
	if err != nil {
		return nil, errors.Wrap(err, "encoding filter")
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	docs := make([]core.Document, 0)
	tbl, ok := s.tables[collection]
	if !ok {
		return docs, nil
	}
	for _, oid := range tbl.ids {
		if int64(len(docs)) >= limit {
			break
		}
		data := tbl.docs[oid]
		if !matches(data, query) {
			continue
		}
		doc, err := clone(data)
		if err != nil {
			return nil, errors.Wrap(err, "copying document")
		}
		doc[core.FieldID] = oid.Hex()
		docs = append(docs, core.Document(doc))
	}
	return docs, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, partial core.Document) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, core.ErrInvalidID
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}
	set, err := clone(partial)
	if err != nil {
		return 0, errors.Wrap(err, "encoding update")
	}
	delete(set, core.FieldID)
	delete(set, core.FieldCreatedAt)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	tbl, ok := s.tables[collection]
	if !ok {
		return 0, nil
	}
	data, ok := tbl.docs[oid]
	if !ok {
		return 0, nil
	}
	for k, v := range set {
		data[k] = v
	}
	data[core.FieldUpdatedAt] = primitive.NewDateTimeFromTime(s.now())
	return 1, nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, core.ErrInvalidID
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	tbl, ok := s.tables[collection]
	if !ok {
		return 0, nil
	}
	if _, ok = tbl.docs[oid]; !ok {
		return 0, nil
	}
	delete(tbl.docs, oid)
	for i, o := range tbl.ids {
		if o == oid {
			tbl.ids = append(tbl.ids[:i], tbl.ids[i+1:]...)
			break
		}
	}
	return 1, nil
}

// clone deep copies m by round-tripping it through BSON, which also gives
// values the types the mongo driver would decode them to.
func clone(m map[string]interface{}) (bson.M, error) {
	if m == nil {
		return bson.M{}, nil
	}
	data, err := bson.Marshal(m)
	if err != nil {
		return nil, err
	}
	out := bson.M{}
	if err = bson.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matches(doc, query bson.M) bool {
	for k, want := range query {
		got, ok := doc[k]
		if !ok {
			return false
		}
		if reflect.DeepEqual(got, want) {
			continue
		}
		arr, isArr := got.(primitive.A)
		if !isArr || !containsValue(arr, want) {
			return false
		}
	}
	return true
}

func containsValue(arr primitive.A, want interface{}) bool {
	for _, v := range arr {
		if reflect.DeepEqual(v, want) {
			return true
		}
	}
	return false
}
