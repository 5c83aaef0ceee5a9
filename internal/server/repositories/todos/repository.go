package todos

import (
	"context"

	"github.com/bimobaru/kanban-api/internal/server/models"
)

// Repository is the todo store adapter: pure persistence operations with
// no ownership or validation rules.
type Repository interface {
	SelectAll(ctx context.Context) ([]*models.Todo, error)
	Find(ctx context.Context, id string) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Update(ctx context.Context, id string, title string, content string, order models.Order) (*models.Todo, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Todo, error)
	Delete(ctx context.Context, id string) error
}
