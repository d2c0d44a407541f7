package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entity is a business-object record (customer, vendor, ...) inside a
// workspace. Work items and documents may reference it.
type Entity struct {
	ID          uuid.UUID      `json:"id"`
	WorkspaceID uuid.UUID      `json:"workspace_id"`
	Name        string         `json:"name"`
	Kind        string         `json:"kind,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// EntityCreate represents entity creation data
type EntityCreate struct {
	Name     string         `json:"name" validate:"required,max=255"`
	Kind     string         `json:"kind" validate:"omitempty,max=100"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// EntityUpdate represents entity update data
type EntityUpdate struct {
	Name     *string        `json:"name,omitempty" validate:"omitempty,max=255"`
	Kind     *string        `json:"kind,omitempty" validate:"omitempty,max=100"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// EntityRepository handles entity persistence
type EntityRepository interface {
	Create(ctx context.Context, entity *Entity) error
	GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*Entity, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Entity, error)
	Update(ctx context.Context, id, workspaceID uuid.UUID, update *EntityUpdate) error
	Delete(ctx context.Context, id, workspaceID uuid.UUID) error
}

// EntityLookup is the narrow capability other services use to verify an
// entity exists in a workspace.
type EntityLookup interface {
	GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*Entity, error)
}
