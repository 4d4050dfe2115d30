package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tasklist/internal/delivery/http/middleware"
	"tasklist/internal/delivery/http/response"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TodoResponse is the wire representation of a todo item.
type TodoResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsComplete  bool      `json:"is_complete"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTodoResponse(todo *entity.Todo) TodoResponse {
	return TodoResponse{
		ID:          todo.ID,
		OwnerID:     todo.OwnerID,
		Title:       todo.Title,
		Description: todo.Description,
		IsComplete:  todo.IsComplete,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

func toTodoResponses(todos []*entity.Todo) []TodoResponse {
	result := make([]TodoResponse, len(todos))
	for i, todo := range todos {
		result[i] = toTodoResponse(todo)
	}

	return result
}

// TodoHandler holds dependencies for todo-related handlers.
type TodoHandler struct {
	uc     usecase.TodoUsecase
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(uc usecase.TodoUsecase, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListTodos handles the request to list todos across all users.
func (h *TodoHandler) ListTodos(c echo.Context) error {
	input := &usecase.ListTodosInput{}
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid paging parameters")
	}

	todos, err := h.uc.ListTodos(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoResponses(todos), "Todos retrieved successfully")
}

// ListMyTodos handles the request to list the authenticated user's todos.
func (h *TodoHandler) ListMyTodos(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	todos, err := h.uc.ListMyTodos(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoResponses(todos), "Todos retrieved successfully")
}

// CreateTodo handles the request to create a todo owned by the caller.
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	input := new(usecase.CreateTodoInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	todo, err := h.uc.CreateTodo(c.Request().Context(), user.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toTodoResponse(todo), "Todo created successfully")
}

// CompleteTodo handles the request to mark a todo as complete.
func (h *TodoHandler) CompleteTodo(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	todoID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid todo id")
	}

	todo, err := h.uc.CompleteTodo(c.Request().Context(), todoID, user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTodoResponse(todo), "Todo completed successfully")
}
