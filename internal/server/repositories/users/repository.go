package users

import (
	"context"

	"github.com/bimobaru/kanban-api/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, username string, email string) (*models.User, error)
	SelectAll(ctx context.Context) ([]*models.User, error)
}
