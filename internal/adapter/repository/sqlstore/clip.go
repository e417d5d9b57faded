package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/video-api/internal/entity"
)

const clipColumns = `id, title, description, url, published_at, created_at, modified_at`

type clipDB struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	URL         string    `db:"url"`
	PublishedAt time.Time `db:"published_at"`
	CreatedAt   time.Time `db:"created_at"`
	ModifiedAt  time.Time `db:"modified_at"`
}

func (c *clipDB) toEntity() *entity.Clip {
	return &entity.Clip{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		URL:         c.URL,
		PublishedAt: c.PublishedAt.UTC(),
		CreatedAt:   c.CreatedAt.UTC(),
		ModifiedAt:  c.ModifiedAt.UTC(),
	}
}

// ClipRepository stores clips in the clips table.
type ClipRepository struct {
	db *sqlx.DB
}

func NewClipRepository(db *sqlx.DB) *ClipRepository {
	return &ClipRepository{db: db}
}

func (r *ClipRepository) get(ctx context.Context, q sqlx.QueryerContext, id string) (*entity.Clip, error) {
	query := r.db.Rebind(`SELECT ` + clipColumns + ` FROM clips WHERE id = ?`)

	var clip clipDB

	if err := sqlx.GetContext(ctx, q, &clip, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrClipNotFound
		}

		return nil, fmt.Errorf("failed to get row from clips table: %w", err)
	}

	return clip.toEntity(), nil
}

// Insert adds a new clip. entity.ErrDuplicateID is returned when its id is taken.
func (r *ClipRepository) Insert(ctx context.Context, clip *entity.Clip) (*entity.Clip, error) {
	const op = "adapter.repository.sqlstore.ClipRepository.Insert"
	query := r.db.Rebind(`INSERT INTO clips (` + clipColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)

	var saved *entity.Clip

	err := inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			clip.ID,
			clip.Title,
			clip.Description,
			clip.URL,
			clip.PublishedAt.UTC(),
			clip.CreatedAt.UTC(),
			clip.ModifiedAt.UTC(),
		)
		if err != nil {
			if isUniqueViolationError(err) {
				return entity.ErrDuplicateID
			}

			return fmt.Errorf("failed to insert into clips table: %w", err)
		}

		saved, err = r.get(ctx, tx, clip.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *ClipRepository) Get(ctx context.Context, id string) (*entity.Clip, error) {
	const op = "adapter.repository.sqlstore.ClipRepository.Get"

	clip, err := r.get(ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return clip, nil
}

// List returns every clip, newest publication first.
func (r *ClipRepository) List(ctx context.Context) ([]*entity.Clip, error) {
	const op = "adapter.repository.sqlstore.ClipRepository.List"
	const query = `SELECT ` + clipColumns + ` FROM clips ORDER BY published_at DESC, id DESC`

	var rows []clipDB

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%s: failed to select from clips table: %w", op, err)
	}

	clips := make([]*entity.Clip, 0, len(rows))
	for i := range rows {
		clips = append(clips, rows[i].toEntity())
	}

	return clips, nil
}

func (r *ClipRepository) Update(ctx context.Context, clip *entity.Clip) (*entity.Clip, error) {
	const op = "adapter.repository.sqlstore.ClipRepository.Update"
	query := r.db.Rebind(`UPDATE clips SET title = ?, description = ?, url = ?, modified_at = ? WHERE id = ?`)

	var saved *entity.Clip

	err := inTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, clip.Title, clip.Description, clip.URL, clip.ModifiedAt.UTC(), clip.ID)
		if err != nil {
			return fmt.Errorf("failed to update clips table row: %w", err)
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get number of affected rows: %w", err)
		}

		if rowsAffected != 1 {
			return entity.ErrClipNotFound
		}

		saved, err = r.get(ctx, tx, clip.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (r *ClipRepository) Delete(ctx context.Context, id string) error {
	const op = "adapter.repository.sqlstore.ClipRepository.Delete"
	query := r.db.Rebind(`DELETE FROM clips WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: failed to delete from clips table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrClipNotFound)
	}

	return nil
}
