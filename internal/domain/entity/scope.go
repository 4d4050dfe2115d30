// Package entity contains the core business objects of the project.
package entity

import "slices"

// Scope represents a named permission granted to an access token.
// Scopes are additive grants checked by exact membership: holding a "higher"
// scope never implies a "lower" one.
type Scope string

const (
	// ScopeBasic is granted to every authenticated user.
	ScopeBasic Scope = "basic"
	// ScopeAdmin allows reading other users' data.
	ScopeAdmin Scope = "admin"
	// ScopeSuperAdmin is reserved for operational tooling.
	ScopeSuperAdmin Scope = "super_admin"
)

// String returns the string representation of the Scope.
func (s Scope) String() string {
	return string(s)
}

// IsValid checks if the Scope is a valid value.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeBasic, ScopeAdmin, ScopeSuperAdmin:
		return true
	default:
		return false
	}
}

// Scopes is a slice of Scope for convenience.
type Scopes []Scope

// Contains checks if the scopes slice contains a specific scope.
func (ss Scopes) Contains(scope Scope) bool {
	return slices.Contains(ss, scope)
}

// ContainsAll checks if every scope in required is present in the slice.
func (ss Scopes) ContainsAll(required Scopes) bool {
	for _, scope := range required {
		if !ss.Contains(scope) {
			return false
		}
	}

	return true
}

// ToStrings converts Scopes to []string for JWT compatibility.
func (ss Scopes) ToStrings() []string {
	result := make([]string, len(ss))
	for i, s := range ss {
		result[i] = s.String()
	}

	return result
}

// ScopesFromStrings converts []string to Scopes, filtering out invalid scope strings.
func ScopesFromStrings(strs []string) Scopes {
	result := make(Scopes, 0, len(strs))
	for _, s := range strs {
		scope := Scope(s)
		if scope.IsValid() {
			result = append(result, scope)
		}
	}

	return result
}
