package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	Role        domain.UserRole
	// RepID links the caller to their sales rep record. Nil for
	// admins and crew accounts that are not also reps.
	RepID *uuid.UUID
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRole) bool {
	return u.Role == role
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRole) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is an office admin
func (u *UserContext) IsAdmin() bool {
	return u.HasRole(domain.RoleAdmin)
}

// IsRep checks if user is a sales rep
func (u *UserContext) IsRep() bool {
	return u.HasRole(domain.RoleRep)
}

// OwnsRep reports whether the caller is the rep identified by repID.
// Admins are never owners; ownership is a rep concept.
func (u *UserContext) OwnsRep(repID uuid.UUID) bool {
	return u.RepID != nil && *u.RepID == repID
}

// CanEditDeal checks if user can modify a deal assigned to repID.
// Admins can edit any deal; reps can only edit their own.
func (u *UserContext) CanEditDeal(repID *uuid.UUID) bool {
	if u.IsAdmin() {
		return true
	}
	if !u.IsRep() || repID == nil {
		return false
	}
	return u.OwnsRep(*repID)
}

// GetDisplayNameInitials returns initials from the display name (e.g., "John Doe" -> "JD")
func (u *UserContext) GetDisplayNameInitials() string {
	if u.DisplayName == "" {
		return ""
	}
	parts := strings.Fields(u.DisplayName)
	initials := ""
	for _, part := range parts {
		if len(part) > 0 {
			initials += strings.ToUpper(string(part[0]))
		}
	}
	return initials
}
