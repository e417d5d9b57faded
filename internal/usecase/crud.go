package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vadimbarashkov/video-api/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrMaxRetriesExceeded is returned when no free identifier could be generated.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating id")

const defaultIDLength = 21

// Resource is implemented by the pointer type of every entity managed by CRUDUseCase.
type Resource[T any] interface {
	*T
	Assign(id string, now time.Time)
	Apply(src *T, now time.Time)
}

type resourceRepository[T any] interface {
	Insert(ctx context.Context, rec *T) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]*T, error)
	Update(ctx context.Context, rec *T) (*T, error)
	Delete(ctx context.Context, id string) error
}

// CRUDUseCase implements create, read, update and delete for resources that
// carry no rules of their own.
type CRUDUseCase[T any, P Resource[T]] struct {
	repo     resourceRepository[T]
	idLength int
	now      func() time.Time
}

// NewCRUDUseCase creates a CRUDUseCase generating identifiers of idLength
// characters. A non-positive idLength selects the default length.
func NewCRUDUseCase[T any, P Resource[T]](repo resourceRepository[T], idLength int) *CRUDUseCase[T, P] {
	if idLength <= 0 {
		idLength = defaultIDLength
	}

	return &CRUDUseCase[T, P]{
		repo:     repo,
		idLength: idLength,
		now:      time.Now,
	}
}

func (uc *CRUDUseCase[T, P]) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Microsecond)
}

// Create assigns a fresh identifier and the creation timestamps to rec and
// inserts it, retrying with a longer identifier when the generated one is taken.
func (uc *CRUDUseCase[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	const op = "usecase.CRUDUseCase.Create"
	const maxRetries = 5

	idLength := uc.idLength

	for i := 0; i < maxRetries; i++ {
		id, err := gonanoid.New(idLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate id: %w", op, err)
		}

		P(rec).Assign(id, uc.timestamp())

		saved, err := uc.repo.Insert(ctx, rec)
		if err != nil {
			if errors.Is(err, entity.ErrDuplicateID) {
				idLength++
				continue
			}

			return nil, fmt.Errorf("%s: failed to insert record: %w", op, err)
		}

		return saved, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// Get returns the record with the given id.
func (uc *CRUDUseCase[T, P]) Get(ctx context.Context, id string) (*T, error) {
	const op = "usecase.CRUDUseCase.Get"

	rec, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get record: %w", op, err)
	}

	return rec, nil
}

// List returns every record.
func (uc *CRUDUseCase[T, P]) List(ctx context.Context) ([]*T, error) {
	const op = "usecase.CRUDUseCase.List"

	recs, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list records: %w", op, err)
	}

	if recs == nil {
		recs = []*T{}
	}

	return recs, nil
}

// Update copies the mutable fields of candidate into the stored record with the given id.
func (uc *CRUDUseCase[T, P]) Update(ctx context.Context, id string, candidate *T) (*T, error) {
	const op = "usecase.CRUDUseCase.Update"

	rec, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get record: %w", op, err)
	}

	P(rec).Apply(candidate, uc.timestamp())

	saved, err := uc.repo.Update(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update record: %w", op, err)
	}

	return saved, nil
}

// Delete removes the record with the given id.
func (uc *CRUDUseCase[T, P]) Delete(ctx context.Context, id string) error {
	const op = "usecase.CRUDUseCase.Delete"

	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: failed to delete record: %w", op, err)
	}

	return nil
}
