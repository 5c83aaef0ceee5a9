// Package todos provides the PostgreSQL-backed repository for board card
// persistence.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bimobaru/kanban-api/internal/common"
	"github.com/bimobaru/kanban-api/internal/dbx"
	"github.com/bimobaru/kanban-api/internal/server/models"
)

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const todoColumns = `id, title, COALESCE(content, ''), status, "order", user_id, created_at, updated_at`

// SelectAll returns every todo joined with its owner's public projection.
// The owner's email is intentionally not selected.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Todo, error) {
	query := `
		SELECT t.id, t.title, COALESCE(t.content, ''), t.status, t."order", t.user_id, t.created_at, t.updated_at,
		       u.id, u.username, u.full_name
		FROM todos t
		JOIN users u ON u.id = t.user_id
		`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	var result []*models.Todo
	for rows.Next() {
		var item models.Todo
		var owner models.PublicUser
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Content, &item.Status, &item.Order,
			&item.UserID, &item.CreatedAt, &item.UpdatedAt,
			&owner.ID, &owner.Username, &owner.FullName,
		); err != nil {
			return nil, err
		}
		item.User = &owner
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Find returns the todo with the given id, or common.ErrorNotFound when no
// row matches.
func (r *PostgresRepository) Find(ctx context.Context, id string) (*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID, &todo.Title, &todo.Content, &todo.Status, &todo.Order,
		&todo.UserID, &todo.CreatedAt, &todo.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {

	query :=
		`INSERT INTO todos (id, title, content, status, "order", user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Title, todo.Content, todo.Status, todo.Order, todo.UserID).
		Scan(&todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, title string, content string, order models.Order) (*models.Todo, error) {

	query :=
		`UPDATE todos SET title = $2, content = $3, "order" = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + todoColumns

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, title, content, order).Scan(
		&todo.ID, &todo.Title, &todo.Content, &todo.Status, &todo.Order,
		&todo.UserID, &todo.CreatedAt, &todo.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Todo, error) {

	query :=
		`UPDATE todos SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + todoColumns

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, status).Scan(
		&todo.ID, &todo.Title, &todo.Content, &todo.Status, &todo.Order,
		&todo.UserID, &todo.CreatedAt, &todo.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Delete removes the row. Deleting an absent id yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM todos WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
