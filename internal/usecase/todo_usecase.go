package usecase

import (
	"context"

	"tasklist/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTodoInput defines the data required to create a todo item.
type CreateTodoInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// ListTodosInput defines paging for todo listings.
type ListTodosInput struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

// TodoUsecase defines the interface for todo-related business operations.
type TodoUsecase interface {
	ListTodos(ctx context.Context, input *ListTodosInput) ([]*entity.Todo, error)
	ListMyTodos(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error)
	CreateTodo(ctx context.Context, ownerID uuid.UUID, input *CreateTodoInput) (*entity.Todo, error)
	// CompleteTodo marks the todo as complete on behalf of the requesting
	// user. Only the owner of an incomplete todo may complete it.
	CompleteTodo(ctx context.Context, todoID uuid.UUID, userID uuid.UUID) (*entity.Todo, error)
}
