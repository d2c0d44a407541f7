package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkspaceMembership associates one user with one workspace and exactly
// one role. Unique per (workspace, user) pair. Every workspace must keep
// at least one OWNER membership; the repository enforces that invariant
// atomically with any role change or removal.
type WorkspaceMembership struct {
	WorkspaceID uuid.UUID `json:"workspace_id"`
	UserID      uuid.UUID `json:"user_id"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// MembershipInvite represents an invitation request
type MembershipInvite struct {
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role" validate:"required"`
}

// MembershipUpdate represents a role change request
type MembershipUpdate struct {
	Role Role `json:"role" validate:"required"`
}

// MemberInfo is a membership joined with the member's user record
type MemberInfo struct {
	WorkspaceMembership
	Email string `json:"email"`
}

// MembershipRepository handles membership persistence. UpdateRole and
// Remove must refuse, atomically with the mutation, any change that would
// leave the workspace without an OWNER.
type MembershipRepository interface {
	Create(ctx context.Context, member *WorkspaceMembership) error
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*WorkspaceMembership, error)
	ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]MemberInfo, error)
	UpdateRole(ctx context.Context, workspaceID, userID uuid.UUID, role Role) error
	Remove(ctx context.Context, workspaceID, userID uuid.UUID) error
}

// MembershipReader is the narrow lookup the role gate depends on.
type MembershipReader interface {
	GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*WorkspaceMembership, error)
}
