package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/bimobaru/kanban-api/internal/common"
	"github.com/bimobaru/kanban-api/internal/dbx"
	"github.com/bimobaru/kanban-api/internal/server/config"
	"github.com/bimobaru/kanban-api/internal/server/models"
	"github.com/bimobaru/kanban-api/internal/server/repositories/repomanager"
	"github.com/bimobaru/kanban-api/internal/server/repositories/todos"
)

// TodoService is the todo lifecycle engine. It enforces ownership and
// validates the status/priority enums; persistence itself is delegated to
// the repository. Mutating operations check existence, then ownership,
// then field validity, in that order, inside a single transaction.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService using repositories and server config.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// List returns every todo on the board, each with its owner's public
// projection embedded. There is no ownership filter: the board is shared.
func (s *TodoService) List(ctx context.Context) ([]*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)

	list, err := repo.SelectAll(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}

// Create persists a new todo owned by callerID. The title must be
// non-empty and the order must be a known tier; status is always
// initialized to "todo"; an empty order defaults to "low".
func (s *TodoService) Create(ctx context.Context, callerID, title, content string, order models.Order) (*models.Todo, error) {
	if callerID == "" {
		return nil, common.ErrorUnauthenticated
	}

	if strings.TrimSpace(title) == "" {
		return nil, common.ErrorEmptyTitle
	}

	if order == "" {
		order = models.OrderLow
	}
	if !order.Valid() {
		return nil, common.ErrorInvalidOrder
	}

	todo := &models.Todo{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Status:  models.StatusTodo,
		Order:   order,
		UserID:  callerID,
	}

	repo := s.repomanager.Todos(s.db)
	created, err := repo.Create(ctx, todo)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}

// Update edits title/content/order of the caller's todo. Nil fields are
// left unchanged; a present title must be non-empty and a present order
// must be a known tier. Status is never modified here.
func (s *TodoService) Update(ctx context.Context, callerID, id string, title, content *string, order *models.Order) (*models.Todo, error) {
	var updated *models.Todo

	err := s.inTx(ctx, func(ctx context.Context, repo todos.Repository) error {
		todo, err := s.findOwned(ctx, repo, callerID, id)
		if err != nil {
			return err
		}

		if title != nil {
			if strings.TrimSpace(*title) == "" {
				return common.ErrorEmptyTitle
			}
			todo.Title = *title
		}
		if content != nil {
			todo.Content = *content
		}
		if order != nil {
			if !order.Valid() {
				return common.ErrorInvalidOrder
			}
			todo.Order = *order
		}

		updated, err = repo.Update(ctx, id, todo.Title, todo.Content, todo.Order)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return common.ErrorInternal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateStatus is the sole entry point for status transitions. The status
// set is flat: any column may move to any other column.
func (s *TodoService) UpdateStatus(ctx context.Context, callerID, id string, status models.Status) (*models.Todo, error) {
	var updated *models.Todo

	err := s.inTx(ctx, func(ctx context.Context, repo todos.Repository) error {
		if _, err := s.findOwned(ctx, repo, callerID, id); err != nil {
			return err
		}

		if !status.Valid() {
			return common.ErrorInvalidStatus
		}

		var err error
		updated, err = repo.UpdateStatus(ctx, id, status)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return common.ErrorInternal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the caller's todo. Hard delete, no cascading side effects.
func (s *TodoService) Delete(ctx context.Context, callerID, id string) error {
	return s.inTx(ctx, func(ctx context.Context, repo todos.Repository) error {
		if _, err := s.findOwned(ctx, repo, callerID, id); err != nil {
			return err
		}

		if err := repo.Delete(ctx, id); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return common.ErrorInternal
		}
		return nil
	})
}

// inTx runs fn with a repository bound to a single transaction, so the
// ownership check and the following write see the same row. Begin/commit
// failures surface as ErrorInternal; taxonomy errors from fn pass through
// untouched.
func (s *TodoService) inTx(ctx context.Context, fn func(ctx context.Context, repo todos.Repository) error) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.repomanager.Todos(tx))
	})
	if err != nil && !isTaxonomyError(err) {
		return common.ErrorInternal
	}
	return err
}

func isTaxonomyError(err error) bool {
	for _, known := range []error{
		common.ErrorNotFound, common.ErrorForbidden, common.ErrorInvalidStatus,
		common.ErrorInvalidOrder, common.ErrorEmptyTitle, common.ErrorInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// findOwned loads the todo and checks ownership. The existence check runs
// before the ownership check so the two failures stay distinguishable.
func (s *TodoService) findOwned(ctx context.Context, repo todos.Repository, callerID, id string) (*models.Todo, error) {
	todo, err := repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if todo.UserID != callerID {
		return nil, common.ErrorForbidden
	}

	return todo, nil
}
