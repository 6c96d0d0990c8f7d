package core

import "context"

const DefaultListLimit = 50

type (
	// Document is a schema-less record as stored in a collection.
	Document map[string]interface{}

	// Filter is an equality filter; all clauses are ANDed. A nil Filter matches every document.
	Filter map[string]interface{}

	// DocumentStore is the collection-agnostic persistence adapter.
	//
	// Create stamps created_at and updated_at; Update only touches updated_at.
	// Update and Delete report a zero count (not an error) when nothing matched the identifier,
	// and ErrInvalidID when the identifier is malformed.
	DocumentStore interface {
		Connect(ctx context.Context) error
		Create(ctx context.Context, collection string, doc Document) (string, error)
		List(ctx context.Context, collection string, filter Filter, limit int64) ([]Document, error)
		Update(ctx context.Context, collection, id string, partial Document) (int64, error)
		Delete(ctx context.Context, collection, id string) (int64, error)
		Close(ctx context.Context) error
	}
)

// Field names managed by the store.
const (
	FieldID        = "_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)
