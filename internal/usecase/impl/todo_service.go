package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tasklist/internal/delivery/context"
	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// todoService implements the TodoUsecase interface.
type todoService struct {
	todoRepo repository.TodoRepository
	logger   *slog.Logger
}

// TodoServiceParams holds dependencies for TodoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TodoRepo repository.TodoRepository
	Logger   *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		todoRepo: params.TodoRepo,
		logger:   params.Logger,
	}
}

func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListTodos returns a page of all todos regardless of owner.
func (srv *todoService) ListTodos(ctx context.Context, input *usecase.ListTodosInput) ([]*entity.Todo, error) {
	skip, limit := normalizePaging(input.Skip, input.Limit)

	todos, err := srv.todoRepo.ListAll(ctx, skip, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	return todos, nil
}

// ListMyTodos returns every todo owned by the given user.
func (srv *todoService) ListMyTodos(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error) {
	todos, err := srv.todoRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos by owner")
	}

	return todos, nil
}

// CreateTodo creates a new incomplete todo owned by the given user.
func (srv *todoService) CreateTodo(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateTodoInput) (*entity.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("todo title must not be empty")
	}

	todo := &entity.Todo{
		OwnerID:     ownerID,
		Title:       title,
		Description: input.Description,
		IsComplete:  false,
	}
	if err := srv.todoRepo.Create(ctx, todo); err != nil {
		return nil, errors.Wrap(err, "failed to create todo")
	}

	srv.log(ctx).Info("Todo created",
		slog.String("todo_id", todo.ID.String()),
		slog.String("owner_id", ownerID.String()))

	return todo, nil
}

// CompleteTodo marks a todo as complete on behalf of userID. The flip from
// incomplete to complete happens as a single conditional update in the
// repository, so two concurrent requests cannot both observe the incomplete
// state and both succeed. When the update matches no row, the todo is
// re-read once to decide which precondition failed, checked in order:
// existence, then ownership, then completion state.
func (srv *todoService) CompleteTodo(ctx context.Context, todoID uuid.UUID, userID uuid.UUID) (*entity.Todo, error) {
	todo, err := srv.todoRepo.CompleteIfOwnerAndIncomplete(ctx, todoID, userID)
	if err == nil {
		srv.log(ctx).Info("Todo completed",
			slog.String("todo_id", todoID.String()),
			slog.String("user_id", userID.String()))

		return todo, nil
	}
	if !errors.Is(err, repository.ErrTodoCompleteConflict) {
		return nil, errors.Wrap(err, "failed to complete todo")
	}

	return nil, srv.classifyCompleteConflict(ctx, todoID, userID)
}

func (srv *todoService) classifyCompleteConflict(ctx context.Context, todoID uuid.UUID, userID uuid.UUID) error {
	todo, err := srv.todoRepo.FindByID(ctx, todoID)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return domainerrors.ErrTodoNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to inspect todo after conflicting update")
	}

	if todo.OwnerID != userID {
		return domainerrors.ErrForbidden.WrapMessage("only the owner can complete a todo")
	}
	if todo.IsComplete {
		return domainerrors.ErrTodoAlreadyComplete
	}

	// The conditional update matched nothing, yet the row now exists,
	// belongs to the caller and is incomplete. Another writer must have
	// touched the row in between. Treat it as a transient failure.
	return domainerrors.ErrTransactionFailed.WrapMessage("todo changed concurrently, retry the request")
}
