// File: internal/profile/model.go
package profile

import "time"

// User types permitted at signup and on profile update.
const (
	UserTypeTenant   = "tenant"
	UserTypeLandlord = "landlord"
	UserTypeBuyer    = "buyer"
)

// IsValidUserType reports whether t is one of the enumerated user types.
func IsValidUserType(t string) bool {
	switch t {
	case UserTypeTenant, UserTypeLandlord, UserTypeBuyer:
		return true
	}
	return false
}

// UserProfile is the per-user record persisted in the key-value store.
// ID and Email always mirror the identity provider's record for the user
// and are never writable by callers.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UserType  string    `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateRequest carries the caller-editable subset of UserProfile fields.
// Unknown fields in the request body are rejected at the boundary.
type UpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=150"`
	UserType *string `json:"userType" binding:"omitempty,oneof=tenant landlord buyer"`
}
