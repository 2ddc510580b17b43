// Package users contains the credential store gateway: lookup and creation
// of user records.
package users

import (
	"context"

	"github.com/dmitrijs2005/linkvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
