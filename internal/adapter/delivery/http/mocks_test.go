package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

type mockVideoUseCase struct {
	mock.Mock
}

func (m *mockVideoUseCase) Create(ctx context.Context, candidate *entity.Video) (*entity.Video, error) {
	args := m.Called(ctx, candidate)
	video, _ := args.Get(0).(*entity.Video)
	return video, args.Error(1)
}

func (m *mockVideoUseCase) GetByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*entity.Video)
	return video, args.Error(1)
}

func (m *mockVideoUseCase) GetByTitle(ctx context.Context, title string, publishedAt *time.Time) ([]*entity.Video, error) {
	args := m.Called(ctx, title, publishedAt)
	videos, _ := args.Get(0).([]*entity.Video)
	return videos, args.Error(1)
}

func (m *mockVideoUseCase) Update(ctx context.Context, id uuid.UUID, candidate *entity.Video) (*entity.Video, error) {
	args := m.Called(ctx, id, candidate)
	video, _ := args.Get(0).(*entity.Video)
	return video, args.Error(1)
}

func (m *mockVideoUseCase) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockVideoUseCase) IncrementLike(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*entity.Video)
	return video, args.Error(1)
}

func (m *mockVideoUseCase) List(ctx context.Context, req entity.PageRequest) (*entity.Page[*entity.Video], error) {
	args := m.Called(ctx, req)
	page, _ := args.Get(0).(*entity.Page[*entity.Video])
	return page, args.Error(1)
}

type mockClipUseCase struct {
	mock.Mock
}

func (m *mockClipUseCase) Create(ctx context.Context, clip *entity.Clip) (*entity.Clip, error) {
	args := m.Called(ctx, clip)
	saved, _ := args.Get(0).(*entity.Clip)
	return saved, args.Error(1)
}

func (m *mockClipUseCase) Get(ctx context.Context, id string) (*entity.Clip, error) {
	args := m.Called(ctx, id)
	clip, _ := args.Get(0).(*entity.Clip)
	return clip, args.Error(1)
}

func (m *mockClipUseCase) List(ctx context.Context) ([]*entity.Clip, error) {
	args := m.Called(ctx)
	clips, _ := args.Get(0).([]*entity.Clip)
	return clips, args.Error(1)
}

func (m *mockClipUseCase) Update(ctx context.Context, id string, candidate *entity.Clip) (*entity.Clip, error) {
	args := m.Called(ctx, id, candidate)
	clip, _ := args.Get(0).(*entity.Clip)
	return clip, args.Error(1)
}

func (m *mockClipUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
