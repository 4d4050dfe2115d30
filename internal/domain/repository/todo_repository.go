// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"tasklist/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for todo persistence.
var (
	// ErrTodoNotFound is returned when a todo is not found.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrTodoCompleteConflict is returned by CompleteIfOwnerAndIncomplete when
	// the conditional update matched no row. The caller re-reads the todo to
	// distinguish missing, foreign-owned and already-complete items.
	ErrTodoCompleteConflict = errors.New("todo conditional completion matched no row")
)

// TodoRepository defines the standard operations for todo persistence.
type TodoRepository interface {
	// FindByID retrieves a single todo by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error)

	// ListAll retrieves todos across all users with offset/limit paging.
	ListAll(ctx context.Context, offset, limit int) ([]*entity.Todo, error)

	// ListByOwner retrieves all todos owned by a specific user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error)

	// Create persists a new todo entity to the storage.
	Create(ctx context.Context, todo *entity.Todo) error

	// CompleteIfOwnerAndIncomplete atomically sets the completion flag of the
	// todo identified by id, but only when it is owned by ownerID and still
	// incomplete. Returns the updated todo on success and
	// ErrTodoCompleteConflict when no row matched all three conditions.
	CompleteIfOwnerAndIncomplete(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error)
}
