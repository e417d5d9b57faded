package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

type mockClipRepository struct {
	mock.Mock
}

func (r *mockClipRepository) Insert(ctx context.Context, clip *entity.Clip) (*entity.Clip, error) {
	args := r.Called(ctx, clip)
	saved, _ := args.Get(0).(*entity.Clip)
	return saved, args.Error(1)
}

func (r *mockClipRepository) Get(ctx context.Context, id string) (*entity.Clip, error) {
	args := r.Called(ctx, id)
	clip, _ := args.Get(0).(*entity.Clip)
	return clip, args.Error(1)
}

func (r *mockClipRepository) List(ctx context.Context) ([]*entity.Clip, error) {
	args := r.Called(ctx)
	clips, _ := args.Get(0).([]*entity.Clip)
	return clips, args.Error(1)
}

func (r *mockClipRepository) Update(ctx context.Context, clip *entity.Clip) (*entity.Clip, error) {
	args := r.Called(ctx, clip)
	saved, _ := args.Get(0).(*entity.Clip)
	return saved, args.Error(1)
}

func (r *mockClipRepository) Delete(ctx context.Context, id string) error {
	args := r.Called(ctx, id)
	return args.Error(0)
}

type CRUDUseCaseTestSuite struct {
	suite.Suite
	errUnknown error
	now        time.Time
	repoMock   *mockClipRepository
	uc         *CRUDUseCase[entity.Clip, *entity.Clip]
}

func (suite *CRUDUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.now = time.Date(2024, time.March, 10, 12, 30, 0, 0, time.UTC)
}

func (suite *CRUDUseCaseTestSuite) SetupSubTest() {
	suite.repoMock = new(mockClipRepository)
	suite.uc = NewCRUDUseCase[entity.Clip](suite.repoMock, 0)
	suite.uc.now = func() time.Time { return suite.now }
}

func (suite *CRUDUseCaseTestSuite) TearDownSubTest() {
	suite.repoMock.AssertExpectations(suite.T())
}

func idOfLength(n int) func(*entity.Clip) bool {
	return func(c *entity.Clip) bool {
		return len(c.ID) == n
	}
}

func (suite *CRUDUseCaseTestSuite) TestCreate() {
	suite.Run("unknown error", func() {
		suite.repoMock.
			On("Insert", context.Background(), mock.Anything).
			Once().
			Return(nil, suite.errUnknown)

		clip, err := suite.uc.Create(context.Background(), &entity.Clip{Title: "intro"})

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(clip)
	})

	suite.Run("max retries exceeded", func() {
		suite.repoMock.
			On("Insert", context.Background(), mock.Anything).
			Times(5).
			Return(nil, entity.ErrDuplicateID)

		clip, err := suite.uc.Create(context.Background(), &entity.Clip{Title: "intro"})

		suite.ErrorIs(err, ErrMaxRetriesExceeded)
		suite.Nil(clip)
	})

	suite.Run("retry with longer id", func() {
		suite.repoMock.
			On("Insert", context.Background(), mock.MatchedBy(idOfLength(defaultIDLength))).
			Once().
			Return(nil, entity.ErrDuplicateID)
		suite.repoMock.
			On("Insert", context.Background(), mock.MatchedBy(idOfLength(defaultIDLength+1))).
			Once().
			Return(&entity.Clip{ID: "stored", Title: "intro"}, nil)

		clip, err := suite.uc.Create(context.Background(), &entity.Clip{Title: "intro"})

		suite.NoError(err)
		suite.Equal("stored", clip.ID)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("Insert", context.Background(), mock.MatchedBy(func(c *entity.Clip) bool {
				return len(c.ID) == defaultIDLength &&
					c.Title == "intro" &&
					c.PublishedAt.Equal(suite.now) &&
					c.CreatedAt.Equal(suite.now) &&
					c.ModifiedAt.Equal(suite.now)
			})).
			Once().
			Return(&entity.Clip{ID: "stored", Title: "intro"}, nil)

		clip, err := suite.uc.Create(context.Background(), &entity.Clip{Title: "intro"})

		suite.NoError(err)
		suite.Equal("intro", clip.Title)
	})
}

func (suite *CRUDUseCaseTestSuite) TestGet() {
	suite.Run("clip not found", func() {
		suite.repoMock.
			On("Get", context.Background(), "abc").
			Once().
			Return(nil, entity.ErrClipNotFound)

		clip, err := suite.uc.Get(context.Background(), "abc")

		suite.ErrorIs(err, entity.ErrNotFound)
		suite.Nil(clip)
	})

	suite.Run("success", func() {
		stored := &entity.Clip{ID: "abc", Title: "intro"}

		suite.repoMock.
			On("Get", context.Background(), "abc").
			Once().
			Return(stored, nil)

		clip, err := suite.uc.Get(context.Background(), "abc")

		suite.NoError(err)
		suite.Equal(stored, clip)
	})
}

func (suite *CRUDUseCaseTestSuite) TestList() {
	suite.Run("unknown error", func() {
		suite.repoMock.
			On("List", context.Background()).
			Once().
			Return(nil, suite.errUnknown)

		clips, err := suite.uc.List(context.Background())

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(clips)
	})

	suite.Run("empty", func() {
		suite.repoMock.
			On("List", context.Background()).
			Once().
			Return(nil, nil)

		clips, err := suite.uc.List(context.Background())

		suite.NoError(err)
		suite.NotNil(clips)
		suite.Empty(clips)
	})
}

func (suite *CRUDUseCaseTestSuite) TestUpdate() {
	suite.Run("clip not found", func() {
		suite.repoMock.
			On("Get", context.Background(), "abc").
			Once().
			Return(nil, entity.ErrClipNotFound)

		clip, err := suite.uc.Update(context.Background(), "abc", &entity.Clip{})

		suite.ErrorIs(err, entity.ErrClipNotFound)
		suite.Nil(clip)
	})

	suite.Run("success", func() {
		created := suite.now.Add(-time.Hour)
		stored := &entity.Clip{
			ID:          "abc",
			Title:       "intro",
			PublishedAt: created,
			CreatedAt:   created,
			ModifiedAt:  created,
		}

		suite.repoMock.
			On("Get", context.Background(), "abc").
			Once().
			Return(stored, nil)
		suite.repoMock.
			On("Update", context.Background(), mock.MatchedBy(func(c *entity.Clip) bool {
				return c.ID == "abc" &&
					c.Title == "outro" &&
					c.URL == "https://example.com/clips/abc" &&
					c.CreatedAt.Equal(created) &&
					c.ModifiedAt.Equal(suite.now)
			})).
			Once().
			Return(stored, nil)

		clip, err := suite.uc.Update(context.Background(), "abc", &entity.Clip{
			ID:    "ignored",
			Title: "outro",
			URL:   "https://example.com/clips/abc",
		})

		suite.NoError(err)
		suite.Equal("abc", clip.ID)
		suite.Equal("outro", clip.Title)
	})

	suite.Run("modified within the same microsecond", func() {
		stored := &entity.Clip{
			ID:          "abc",
			Title:       "intro",
			PublishedAt: suite.now,
			CreatedAt:   suite.now,
			ModifiedAt:  suite.now,
		}

		suite.repoMock.
			On("Get", context.Background(), "abc").
			Once().
			Return(stored, nil)
		suite.repoMock.
			On("Update", context.Background(), mock.MatchedBy(func(c *entity.Clip) bool {
				return c.ModifiedAt.Equal(suite.now.Add(time.Microsecond))
			})).
			Once().
			Return(stored, nil)

		clip, err := suite.uc.Update(context.Background(), "abc", &entity.Clip{Title: "outro"})

		suite.NoError(err)
		suite.True(clip.ModifiedAt.After(clip.CreatedAt))
	})
}

func (suite *CRUDUseCaseTestSuite) TestDelete() {
	suite.Run("clip not found", func() {
		suite.repoMock.
			On("Delete", context.Background(), "abc").
			Once().
			Return(entity.ErrClipNotFound)

		err := suite.uc.Delete(context.Background(), "abc")

		suite.ErrorIs(err, entity.ErrClipNotFound)
	})

	suite.Run("success", func() {
		suite.repoMock.
			On("Delete", context.Background(), "abc").
			Once().
			Return(nil)

		err := suite.uc.Delete(context.Background(), "abc")

		suite.NoError(err)
	})
}

func TestCRUDUseCase(t *testing.T) {
	suite.Run(t, new(CRUDUseCaseTestSuite))
}
