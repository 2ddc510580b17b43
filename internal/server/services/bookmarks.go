package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/linkvault/internal/common"
	"github.com/dmitrijs2005/linkvault/internal/dbx"
	"github.com/dmitrijs2005/linkvault/internal/server/models"
	"github.com/dmitrijs2005/linkvault/internal/server/repositories/repomanager"
)

// BookmarkService manages a user's saved links. Ownership is enforced at the
// storage layer: a bookmark always references an existing user, and reads and
// deletes are scoped to the owner.
type BookmarkService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewBookmarkService(db dbx.DBTX, m repomanager.RepositoryManager) *BookmarkService {
	return &BookmarkService{db: db, repomanager: m}
}

// Create saves a link for the given user. Title and link are required; the
// foreign-key constraint rejects bookmarks whose owner does not exist.
func (s *BookmarkService) Create(ctx context.Context, userID, title, link string, description *string) (*models.Bookmark, error) {
	if title == "" || link == "" {
		return nil, common.ErrorValidation
	}

	bookmark := &models.Bookmark{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Link:        link,
		UserID:      userID,
	}

	repo := s.repomanager.Bookmarks(s.db)
	bookmark, err := repo.Create(ctx, bookmark)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return nil, common.ErrorValidation
		}
		return nil, fmt.Errorf("error creating bookmark: %w", err)
	}

	return bookmark, nil
}

// ListByUser returns the user's bookmarks, computed by query over the
// owning-user column.
func (s *BookmarkService) ListByUser(ctx context.Context, userID string) ([]*models.Bookmark, error) {
	repo := s.repomanager.Bookmarks(s.db)
	list, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookmarks: %w", err)
	}
	return list, nil
}

// Delete removes the user's bookmark; deleting someone else's bookmark is
// indistinguishable from deleting a missing one.
func (s *BookmarkService) Delete(ctx context.Context, id, userID string) error {
	repo := s.repomanager.Bookmarks(s.db)
	if err := repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting bookmark: %w", err)
	}
	return nil
}
