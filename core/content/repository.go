package content

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/emellab/campus/core"
)

// Repository gives typed access to the collection of T on top of a core.DocumentStore.
type Repository[T Entity[T]] struct {
	store core.DocumentStore
}

func NewRepository[T Entity[T]](store core.DocumentStore) *Repository[T] {
	return &Repository[T]{store: store}
}

func (repo *Repository[T]) Collection() string {
	var zero T
	return zero.Collection()
}

func (repo *Repository[T]) Create(ctx context.Context, rec T) (string, error) {
	doc, err := toDocument(rec)
	if err != nil {
		return "", errors.Wrapf(err, "encoding %s", repo.Collection())
	}
	delete(doc, core.FieldID)
	return repo.store.Create(ctx, repo.Collection(), doc)
}

func (repo *Repository[T]) List(ctx context.Context, filter core.Filter, limit int64) ([]T, error) {
	docs, err := repo.store.List(ctx, repo.Collection(), filter, limit)
	if err != nil {
		return nil, err
	}
	recs := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := fromDocument[T](doc)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s %v", repo.Collection(), doc[core.FieldID])
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (repo *Repository[T]) Update(ctx context.Context, id string, partial core.Document) (int64, error) {
	return repo.store.Update(ctx, repo.Collection(), id, partial)
}

func (repo *Repository[T]) Delete(ctx context.Context, id string) (int64, error) {
	return repo.store.Delete(ctx, repo.Collection(), id)
}

func toDocument(v interface{}) (core.Document, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := make(core.Document)
	if err = bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument[T any](doc core.Document) (T, error) {
	var rec T
	data, err := bson.Marshal(doc)
	if err != nil {
		return rec, err
	}
	err = bson.Unmarshal(data, &rec)
	return rec, err
}
