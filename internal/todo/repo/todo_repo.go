package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/krysmro/todo-service/internal/todo/entity"
)

// Every query below calls one of the todo stored procedures. Procedure names
// and parameter shapes are a versioned contract shared with other consumers
// of the database; the application never touches the todos table directly,
// and every procedure filters by the owning user so an unscoped todo id can
// never reach storage.
const (
	qGetAllAssigned = `SELECT id, assigned_to, task, is_complete FROM sp_todos_get_all_assigned(:user_id)`
	qGetOneAssigned = `SELECT id, assigned_to, task, is_complete FROM sp_todos_get_one_assigned(:user_id, :todo_id)`
	qCreate         = `SELECT id, assigned_to, task, is_complete FROM sp_todos_create(:task, :user_id)`
	qUpdateTask     = `SELECT sp_todos_update_task(:todo_id, :user_id, :task)`
	qComplete       = `SELECT sp_todos_complete(:todo_id, :user_id)`
	qDelete         = `SELECT sp_todos_delete(:user_id, :todo_id)`
)

// Typed parameter structs, one per procedure call.

type GetAllAssignedParams struct {
	UserID int64 `db:"user_id"`
}

type GetOneAssignedParams struct {
	UserID int64 `db:"user_id"`
	TodoID int64 `db:"todo_id"`
}

type CreateParams struct {
	Task   string `db:"task"`
	UserID int64  `db:"user_id"`
}

type UpdateTaskParams struct {
	TodoID int64  `db:"todo_id"`
	UserID int64  `db:"user_id"`
	Task   string `db:"task"`
}

type CompleteParams struct {
	TodoID int64 `db:"todo_id"`
	UserID int64 `db:"user_id"`
}

type DeleteParams struct {
	UserID int64 `db:"user_id"`
	TodoID int64 `db:"todo_id"`
}

// TodoRepo provides data access for todo items via stored procedures. It
// holds only the pooled handle; connections are checked out per call.
type TodoRepo struct {
	db *sqlx.DB
}

func NewTodoRepo(db *sqlx.DB) *TodoRepo { return &TodoRepo{db: db} }

// GetAllAssigned returns every item owned by the user. Order is whatever
// storage returns; callers must not rely on it.
func (r *TodoRepo) GetAllAssigned(ctx context.Context, userID int64) ([]entity.Todo, error) {
	rows, err := r.db.NamedQueryContext(ctx, qGetAllAssigned, GetAllAssignedParams{UserID: userID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]entity.Todo, 0)
	for rows.Next() {
		var t entity.Todo
		if err := rows.StructScan(&t); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// GetOneAssigned returns the item if it exists and is owned by the user,
// sql.ErrNoRows otherwise. A missing item and someone else's item look the
// same.
func (r *TodoRepo) GetOneAssigned(ctx context.Context, userID, todoID int64) (*entity.Todo, error) {
	rows, err := r.db.NamedQueryContext(ctx, qGetOneAssigned, GetOneAssignedParams{UserID: userID, TodoID: todoID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}
	var t entity.Todo
	if err := rows.StructScan(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts an item for the user and returns the stored row.
func (r *TodoRepo) Create(ctx context.Context, task string, userID int64) (*entity.Todo, error) {
	rows, err := r.db.NamedQueryContext(ctx, qCreate, CreateParams{Task: task, UserID: userID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("sp_todos_create returned no row")
	}
	var t entity.Todo
	if err := rows.StructScan(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTask replaces the task text and reports how many rows changed.
func (r *TodoRepo) UpdateTask(ctx context.Context, todoID, userID int64, task string) (int64, error) {
	return r.execAffected(ctx, qUpdateTask, UpdateTaskParams{TodoID: todoID, UserID: userID, Task: task})
}

// Complete sets the completion flag and reports how many rows changed.
func (r *TodoRepo) Complete(ctx context.Context, todoID, userID int64) (int64, error) {
	return r.execAffected(ctx, qComplete, CompleteParams{TodoID: todoID, UserID: userID})
}

// Delete removes the item and reports how many rows changed. Deletion is
// final; there is no soft delete.
func (r *TodoRepo) Delete(ctx context.Context, userID, todoID int64) (int64, error) {
	return r.execAffected(ctx, qDelete, DeleteParams{UserID: userID, TodoID: todoID})
}

// execAffected runs a mutating procedure that returns its affected row count.
func (r *TodoRepo) execAffected(ctx context.Context, query string, params any) (int64, error) {
	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, errors.New("stored procedure returned no affected count")
	}
	var affected int64
	if err := rows.Scan(&affected); err != nil {
		return 0, err
	}
	return affected, nil
}
