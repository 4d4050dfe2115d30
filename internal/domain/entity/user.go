// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing a single account.
// Usernames are case-normalized to lowercase before storage and lookup, so
// two users can never differ only by letter case.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // The unique, lowercased login identifier.
	PasswordHash string    // The bcrypt hash of the user's password. The plaintext is never stored.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}
