package content

import (
	"context"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/emellab/campus/core"
)

// CreatedHook is called after a record was stored, with its new identifier.
type CreatedHook[T any] func(id string, rec T)

// Service validates records of T before handing them to the repository.
type Service[T Entity[T]] struct {
	repo       *Repository[T]
	validate   *validator.Validate
	translator ut.Translator
	hooks      []CreatedHook[T]
	now        func() time.Time
}

func NewService[T Entity[T]](
	repo *Repository[T],
	validate *validator.Validate,
	translator ut.Translator,
	hooks ...CreatedHook[T],
) *Service[T] {
	return &Service[T]{
		repo:       repo,
		validate:   validate,
		translator: translator,
		hooks:      hooks,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (svc *Service[T]) Collection() string { return svc.repo.Collection() }

// Create normalizes and validates rec, then stores it.
// It returns the new identifier and the record as it was stored (without store metadata).
func (svc *Service[T]) Create(ctx context.Context, rec T) (string, T, error) {
	rec = rec.Normalize(svc.now())
	if err := core.ValidateStruct(svc.validate, svc.translator, rec); err != nil {
		return "", rec, err
	}

	id, err := svc.repo.Create(ctx, rec)
	if err != nil {
		return "", rec, errors.Wrapf(err, "creating %s", svc.Collection())
	}
	for _, hook := range svc.hooks {
		hook(id, rec)
	}
	return id, rec, nil
}

func (svc *Service[T]) List(ctx context.Context, q ListQuery) ([]T, error) {
	recs, err := svc.repo.List(ctx, q.Filter, q.Limit)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", svc.Collection())
	}
	return recs, nil
}

// Update applies a validated partial update to the record identified by id.
// It returns 0 when no record matched.
func (svc *Service[T]) Update(ctx context.Context, id string, patch core.Document) (int64, error) {
	patch, err := CheckPatch[T](svc.validate, svc.translator, patch)
	if err != nil {
		return 0, err
	}
	n, err := svc.repo.Update(ctx, id, patch)
	if err != nil {
		return 0, errors.Wrapf(err, "updating %s %s", svc.Collection(), id)
	}
	return n, nil
}

// Delete removes the record identified by id. It returns 0 when no record matched.
func (svc *Service[T]) Delete(ctx context.Context, id string) (int64, error) {
	n, err := svc.repo.Delete(ctx, id)
	if err != nil {
		return 0, errors.Wrapf(err, "deleting %s %s", svc.Collection(), id)
	}
	return n, nil
}
