package bookmarks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/linkvault/internal/common"
	"github.com/dmitrijs2005/linkvault/internal/dbx"
	"github.com/dmitrijs2005/linkvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a bookmark. A foreign-key violation means the owning user
// does not exist and is reported as common.ErrorValidation.
func (r *PostgresRepository) Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {

	query :=
		`INSERT INTO bookmarks (id, title, description, link, user_id)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		bookmark.ID, bookmark.Title, bookmark.Description, bookmark.Link, bookmark.UserID).
		Scan(&bookmark.CreatedAt, &bookmark.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503", "23502", "22P02":
				return nil, common.ErrorValidation
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bookmark, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	query :=
		`SELECT id, title, description, link, user_id, created_at, updated_at FROM bookmarks
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Bookmark{}
	for rows.Next() {
		b := &models.Bookmark{}
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Link, &b.UserID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Delete removes a bookmark only if it is owned by the given user.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query :=
		`DELETE FROM bookmarks
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
