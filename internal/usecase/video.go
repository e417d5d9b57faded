// Package usecase holds the business rules of the service. It sits between the
// HTTP delivery layer and the repositories and is the only place where
// decisions about videos and clips are made.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

const (
	defaultPageSize = 10
	defaultMaxSize  = 100
)

type videoRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Video, error)
	GetByTitle(ctx context.Context, title string) ([]*entity.Video, error)
	GetByTitleAndPublishedAt(ctx context.Context, title string, publishedAt time.Time) ([]*entity.Video, error)
	Save(ctx context.Context, video *entity.Video) (*entity.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int, sort entity.Sort) ([]*entity.Video, error)
	IncrementLikes(ctx context.Context, id uuid.UUID, modifiedAt time.Time) (*entity.Video, error)
}

// videoCandidate lists the fields checked on creation. Description is declared
// first so its violation is reported before the title one.
type videoCandidate struct {
	Description string `validate:"required"`
	Title       string `validate:"required"`
}

var candidateMessages = map[string]string{
	"Description": "descrição não pode estar vazio",
	"Title":       "título não pode estar vazio",
}

// VideoOption configures a VideoUseCase.
type VideoOption func(*VideoUseCase)

// WithPageSize sets the page size used when a request has none and the largest size accepted.
func WithPageSize(defaultSize, maxSize int) VideoOption {
	return func(uc *VideoUseCase) {
		if defaultSize > 0 {
			uc.defaultSize = defaultSize
		}
		if maxSize > 0 {
			uc.maxSize = maxSize
		}
	}
}

// VideoUseCase implements the video lifecycle: creation, lookups, updates,
// deletion, likes and paginated listing.
type VideoUseCase struct {
	repo        videoRepository
	validate    *validator.Validate
	now         func() time.Time
	newID       func() uuid.UUID
	defaultSize int
	maxSize     int
}

// NewVideoUseCase creates a VideoUseCase backed by repo.
func NewVideoUseCase(repo videoRepository, opts ...VideoOption) *VideoUseCase {
	uc := &VideoUseCase{
		repo:        repo,
		validate:    validator.New(),
		now:         time.Now,
		newID:       uuid.New,
		defaultSize: defaultPageSize,
		maxSize:     defaultMaxSize,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// timestamp reads the clock once, in UTC and at the precision every store keeps.
func (uc *VideoUseCase) timestamp() time.Time {
	return uc.now().UTC().Truncate(time.Microsecond)
}

func (uc *VideoUseCase) validateCandidate(video *entity.Video) error {
	err := uc.validate.Struct(videoCandidate{
		Description: video.Description,
		Title:       video.Title,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	vErr := &entity.ValidationError{}
	for _, fe := range fieldErrs {
		vErr.Violations = append(vErr.Violations, entity.Violation{
			Field:   fe.Field(),
			Message: candidateMessages[fe.Field()],
		})
	}

	return vErr
}

// Create validates the candidate, assigns a new identifier and the creation
// timestamps, and stores it. The candidate's own ID and Likes are ignored.
func (uc *VideoUseCase) Create(ctx context.Context, candidate *entity.Video) (*entity.Video, error) {
	const op = "usecase.VideoUseCase.Create"

	if err := uc.validateCandidate(candidate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := uc.timestamp()
	video := &entity.Video{
		ID:          uc.newID(),
		Title:       candidate.Title,
		Description: candidate.Description,
		URL:         candidate.URL,
		Likes:       0,
		PublishedAt: now,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	saved, err := uc.repo.Save(ctx, video)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save video: %w", op, err)
	}

	return saved, nil
}

// GetByID returns the video with the given id or entity.ErrVideoNotFound.
func (uc *VideoUseCase) GetByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	const op = "usecase.VideoUseCase.GetByID"

	video, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get video: %w", op, err)
	}

	return video, nil
}

// GetByTitle returns every video with the given title. When publishedAt is not
// nil only videos published at that instant are returned. No match is not an error.
func (uc *VideoUseCase) GetByTitle(ctx context.Context, title string, publishedAt *time.Time) ([]*entity.Video, error) {
	const op = "usecase.VideoUseCase.GetByTitle"

	var (
		videos []*entity.Video
		err    error
	)

	if publishedAt == nil {
		videos, err = uc.repo.GetByTitle(ctx, title)
	} else {
		videos, err = uc.repo.GetByTitleAndPublishedAt(ctx, title, publishedAt.UTC().Truncate(time.Microsecond))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get videos by title: %w", op, err)
	}

	if videos == nil {
		videos = []*entity.Video{}
	}

	return videos, nil
}

// Update replaces the description and URL of the stored video. The candidate
// must carry the same ID as the stored video, otherwise entity.ErrVideoIDMismatch
// is returned and nothing is written. The title is never modified.
func (uc *VideoUseCase) Update(ctx context.Context, id uuid.UUID, candidate *entity.Video) (*entity.Video, error) {
	const op = "usecase.VideoUseCase.Update"

	video, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get video: %w", op, err)
	}

	if video.ID != candidate.ID {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrVideoIDMismatch)
	}

	video.ModifiedAt = entity.NextModifiedAt(video.ModifiedAt, uc.timestamp())
	video.Description = candidate.Description
	video.URL = candidate.URL

	saved, err := uc.repo.Save(ctx, video)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save video: %w", op, err)
	}

	return saved, nil
}

// Delete removes the video with the given id. It reports true on success and
// entity.ErrVideoNotFound when the video doesn't exist.
func (uc *VideoUseCase) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "usecase.VideoUseCase.Delete"

	if _, err := uc.repo.Get(ctx, id); err != nil {
		return false, fmt.Errorf("%s: failed to get video: %w", op, err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return false, fmt.Errorf("%s: failed to delete video: %w", op, err)
	}

	return true, nil
}

// IncrementLike adds one like to the video. The counter itself is incremented
// by the repository in a single statement so concurrent likes are never lost.
func (uc *VideoUseCase) IncrementLike(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	const op = "usecase.VideoUseCase.IncrementLike"

	video, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get video: %w", op, err)
	}

	liked, err := uc.repo.IncrementLikes(ctx, id, entity.NextModifiedAt(video.ModifiedAt, uc.timestamp()))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to increment likes: %w", op, err)
	}

	return liked, nil
}

// List returns one page of videos. Missing or invalid paging values fall back
// to page 0, the default size and publication time descending.
func (uc *VideoUseCase) List(ctx context.Context, req entity.PageRequest) (*entity.Page[*entity.Video], error) {
	const op = "usecase.VideoUseCase.List"

	req = uc.normalize(req)

	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to count videos: %w", op, err)
	}

	var videos []*entity.Video
	if req.InRange(total) {
		videos, err = uc.repo.List(ctx, req.Offset(), req.Size, req.Sort)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to list videos: %w", op, err)
		}
	}

	return entity.NewPage(videos, req, total), nil
}

func (uc *VideoUseCase) normalize(req entity.PageRequest) entity.PageRequest {
	if req.Page < 0 {
		req.Page = 0
	}

	switch {
	case req.Size <= 0:
		req.Size = uc.defaultSize
	case req.Size > uc.maxSize:
		req.Size = uc.maxSize
	}

	if !req.Sort.Field.Valid() {
		req.Sort.Field = entity.DefaultSort.Field
	}
	if !req.Sort.Direction.Valid() {
		req.Sort.Direction = entity.DefaultSort.Direction
	}

	return req
}
