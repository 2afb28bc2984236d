package todo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/krysmro/todo-service/internal/todo/entity"
)

// Repository is the user-scoped capability interface over todo storage.
// Every operation takes the owning user id; there is no way to reach an item
// through this interface without one.
type Repository interface {
	GetAllAssigned(ctx context.Context, userID int64) ([]entity.Todo, error)
	GetOneAssigned(ctx context.Context, userID, todoID int64) (*entity.Todo, error)
	Create(ctx context.Context, task string, userID int64) (*entity.Todo, error)
	UpdateTask(ctx context.Context, todoID, userID int64, task string) (int64, error)
	Complete(ctx context.Context, todoID, userID int64) (int64, error)
	Delete(ctx context.Context, userID, todoID int64) (int64, error)
}

// sentinel errors for common failure modes
var (
	// ErrNotFound covers both an absent item and an item owned by someone
	// else. The two cases are indistinguishable on purpose: existence of
	// other users' items must not leak.
	ErrNotFound = errors.New("todo not found")
	// ErrTaskRequired rejects empty or blank task text.
	ErrTaskRequired = errors.New("task is required")
)

// Service encapsulates validation and outcome mapping over the repository.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service { return &Service{repo: r} }

// List returns all items owned by userID.
func (s *Service) List(ctx context.Context, userID int64) ([]entity.Todo, error) {
	return s.repo.GetAllAssigned(ctx, userID)
}

// Get returns one owned item, or ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, todoID int64) (*entity.Todo, error) {
	t, err := s.repo.GetOneAssigned(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Create stores a new incomplete item for userID and returns it.
func (s *Service) Create(ctx context.Context, task string, userID int64) (*entity.Todo, error) {
	if strings.TrimSpace(task) == "" {
		return nil, ErrTaskRequired
	}
	return s.repo.Create(ctx, task, userID)
}

// UpdateTask replaces the task text of an owned item. A non-owned or
// non-existent id is reported as ErrNotFound rather than silently ignored.
func (s *Service) UpdateTask(ctx context.Context, todoID, userID int64, task string) error {
	if strings.TrimSpace(task) == "" {
		return ErrTaskRequired
	}
	affected, err := s.repo.UpdateTask(ctx, todoID, userID, task)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete marks an owned item complete.
func (s *Service) Complete(ctx context.Context, todoID, userID int64) error {
	affected, err := s.repo.Complete(ctx, todoID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an owned item.
func (s *Service) Delete(ctx context.Context, userID, todoID int64) error {
	affected, err := s.repo.Delete(ctx, userID, todoID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
