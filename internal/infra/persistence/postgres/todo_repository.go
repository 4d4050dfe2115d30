// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"tasklist/internal/domain/entity"
	domainerrors "tasklist/internal/domain/errors"
	"tasklist/internal/domain/repository"
	"tasklist/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// todoRepository implements the domain.TodoRepository interface using GORM.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository is the constructor for todoRepository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// FindByID retrieves a single todo by its unique ID.
func (repo *todoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Todo, error) {
	var todoM model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&todoM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to find todo by id")
	}

	return toTodoDomain(&todoM), nil
}

// ListAll retrieves todos across all users with offset/limit paging.
func (repo *todoRepository) ListAll(ctx context.Context, offset, limit int) ([]*entity.Todo, error) {
	var todoModels []model.TodoModel
	err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&todoModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	return toTodoDomainSlice(todoModels), nil
}

// ListByOwner retrieves all todos owned by a specific user.
func (repo *todoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Todo, error) {
	var todoModels []model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&todoModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos by owner")
	}

	return toTodoDomainSlice(todoModels), nil
}

// Create persists a new todo entity to the database.
func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	if err := repo.db.WithContext(ctx).Create(todoM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("todo owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required todo information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create todo")
	}

	todo.ID = todoM.ID
	todo.CreatedAt = todoM.CreatedAt
	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

// CompleteIfOwnerAndIncomplete atomically flips the completion flag with a
// single conditional UPDATE scoped by id, owner and current state. Two
// concurrent calls can both read the same incomplete row, but only one
// UPDATE can match; the loser gets ErrTodoCompleteConflict.
func (repo *todoRepository) CompleteIfOwnerAndIncomplete(ctx context.Context, id, ownerID uuid.UUID) (*entity.Todo, error) {
	res := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ? AND owner_id = ? AND is_complete = ?", id, ownerID, false).
		Update("is_complete", true)
	if res.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(res.Error, "failed to complete todo")
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrTodoCompleteConflict
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

// toTodoDomain converts a GORM TodoModel to a domain Todo entity.
func toTodoDomain(data *model.TodoModel) *entity.Todo {
	if data == nil {
		return nil
	}

	return &entity.Todo{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Title:       data.Title,
		Description: data.Description,
		IsComplete:  data.IsComplete,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toTodoDomainSlice(data []model.TodoModel) []*entity.Todo {
	todos := make([]*entity.Todo, 0, len(data))
	for i := range data {
		todos = append(todos, toTodoDomain(&data[i]))
	}

	return todos
}

// fromTodoDomain converts a domain Todo entity to a GORM TodoModel for persistence.
func fromTodoDomain(data *entity.Todo) *model.TodoModel {
	if data == nil {
		return nil
	}

	return &model.TodoModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Title:       data.Title,
		Description: data.Description,
		IsComplete:  data.IsComplete,
	}
}
