// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single to-do item owned by exactly one user.
// The completion flag transitions one-way from false to true; the service
// never flips a completed item back.
type Todo struct {
	ID          uuid.UUID // The unique identifier for the todo.
	OwnerID     uuid.UUID // Links this todo to the User that created it.
	Title       string    // Short description of the task. Never empty.
	Description string    // Optional longer description.
	IsComplete  bool      // Whether the task has been completed.
	CreatedAt   time.Time // Timestamp of when this todo was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this todo.
}
