// Package bookmarks persists saved links. The "user's bookmarks" view is a
// query over the owning-user column, not a list stored on the user record.
package bookmarks

import (
	"context"

	"github.com/dmitrijs2005/linkvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error)
	Delete(ctx context.Context, id string, userID string) error
}
