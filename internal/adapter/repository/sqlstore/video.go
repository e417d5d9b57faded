package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

const videoColumns = `id, title, description, url, likes, published_at, created_at, modified_at`

var sortColumns = map[entity.SortField]string{
	entity.SortByPublishedAt: "published_at",
	entity.SortByCreatedAt:   "created_at",
	entity.SortByModifiedAt:  "modified_at",
	entity.SortByTitle:       "title",
	entity.SortByLikes:       "likes",
}

type videoDB struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	URL         string    `db:"url"`
	Likes       int64     `db:"likes"`
	PublishedAt time.Time `db:"published_at"`
	CreatedAt   time.Time `db:"created_at"`
	ModifiedAt  time.Time `db:"modified_at"`
}

func (v *videoDB) toEntity() *entity.Video {
	return &entity.Video{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		URL:         v.URL,
		Likes:       v.Likes,
		PublishedAt: v.PublishedAt.UTC(),
		CreatedAt:   v.CreatedAt.UTC(),
		ModifiedAt:  v.ModifiedAt.UTC(),
	}
}

func toVideos(rows []videoDB) []*entity.Video {
	videos := make([]*entity.Video, 0, len(rows))
	for i := range rows {
		videos = append(videos, rows[i].toEntity())
	}
	return videos
}

// orderBy renders the ORDER BY clause for s. The id column always breaks ties.
func orderBy(s entity.Sort) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = sortColumns[entity.DefaultSort.Field]
	}

	dir := "DESC"
	if s.Direction == entity.Asc {
		dir = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s, id %s", col, dir, dir)
}

// VideoRepository stores videos in the videos table.
type VideoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) get(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (*entity.Video, error) {
	query := r.db.Rebind(`SELECT ` + videoColumns + ` FROM videos WHERE id = ?`)

	var video videoDB

	if err := sqlx.GetContext(ctx, q, &video, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrVideoNotFound
		}

		return nil, fmt.Errorf("failed to get row from videos table: %w", err)
	}

	return video.toEntity(), nil
}

func (r *VideoRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	const op = "adapter.repository.sqlstore.VideoRepository.Get"

	video, err := r.get(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return video, nil
}

func (r *VideoRepository) GetByTitle(ctx context.Context, title string) ([]*entity.Video, error) {
	const op = "adapter.repository.sqlstore.VideoRepository.GetByTitle"
	query := r.db.Rebind(`SELECT ` + videoColumns + ` FROM videos WHERE title = ? ORDER BY published_at DESC, id DESC`)

	var rows []videoDB

	if err := r.db.SelectContext(ctx, &rows, query, title); err != nil {
		return nil, fmt.Errorf("%s: failed to select from videos table: %w", op, err)
	}

	return toVideos(rows), nil
}

func (r *VideoRepository) GetByTitleAndPublishedAt(ctx context.Context, title string, publishedAt time.Time) ([]*entity.Video, error) {
	const op = "adapter.repository.sqlstore.VideoRepository.GetByTitleAndPublishedAt"
	query := r.db.Rebind(`SELECT ` + videoColumns + ` FROM videos WHERE title = ? AND published_at = ? ORDER BY id DESC`)

	var rows []videoDB

	if err := r.db.SelectContext(ctx, &rows, query, title, publishedAt.UTC()); err != nil {
		return nil, fmt.Errorf("%s: failed to select from videos table: %w", op, err)
	}

	return toVideos(rows), nil
}

// Save inserts video or, when a row with the same id exists, replaces it.
func (r *VideoRepository) Save(ctx context.Context, video *entity.Video) (*entity.Video, error) {
	const op = "adapter.repository.sqlstore.VideoRepository.Save"
	query := r.db.Rebind(`INSERT INTO videos (` + videoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	description = excluded.description,
	url = excluded.url,
	likes = excluded.likes,
	published_at = excluded.published_at,
	created_at = excluded.created_at,
	modified_at = excluded.modified_at`)

	var saved *entity.Video

	err := inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			video.ID,
			video.Title,
			video.Description,
			video.URL,
			video.Likes,
			video.PublishedAt.UTC(),
			video.CreatedAt.UTC(),
			video.ModifiedAt.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert into videos table: %w", err)
		}

		saved, err = r.get(ctx, tx, video.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "adapter.repository.sqlstore.VideoRepository.Delete"
	query := r.db.Rebind(`DELETE FROM videos WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete from videos table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrVideoNotFound)
	}

	return nil
}

func (r *VideoRepository) Count(ctx context.Context) (int64, error) {
	const op = "adapter.repository.sqlstore.VideoRepository.Count"
	const query = `SELECT COUNT(*) FROM videos`

	var total int64

	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("%s: failed to count rows of videos table: %w", op, err)
	}

	return total, nil
}

// List returns at most limit videos after skipping offset of them in the given order.
func (r *VideoRepository) List(ctx context.Context, offset, limit int, sort entity.Sort) ([]*entity.Video, error) {
	const op = "adapter.repository.sqlstore.VideoRepository.List"
	query := r.db.Rebind(`SELECT ` + videoColumns + ` FROM videos ` + orderBy(sort) + ` LIMIT ? OFFSET ?`)

	var rows []videoDB

	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("%s: failed to select from videos table: %w", op, err)
	}

	return toVideos(rows), nil
}

// IncrementLikes adds one like to the video in a single UPDATE statement and
// returns the row as left by that statement.
func (r *VideoRepository) IncrementLikes(ctx context.Context, id uuid.UUID, modifiedAt time.Time) (*entity.Video, error) {
	const op = "adapter.repository.sqlstore.VideoRepository.IncrementLikes"
	query := r.db.Rebind(`UPDATE videos SET likes = likes + 1, modified_at = ? WHERE id = ?`)

	var video *entity.Video

	err := inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, modifiedAt.UTC(), id)
		if err != nil {
			return fmt.Errorf("failed to update videos table row: %w", err)
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get number of affected rows: %w", err)
		}

		if rowsAffected != 1 {
			return entity.ErrVideoNotFound
		}

		video, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return video, nil
}
