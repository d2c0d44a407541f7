package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SchemaField describes one metadata field a document type requires.
type SchemaField struct {
	Key      string `json:"key" validate:"required,max=100"`
	Label    string `json:"label" validate:"required,max=255"`
	Kind     string `json:"kind" validate:"required,oneof=string number date boolean"`
	Required bool   `json:"required"`
}

// DocumentType defines a category of documents and the metadata schema
// uploads against it must satisfy.
type DocumentType struct {
	ID          uuid.UUID     `json:"id"`
	WorkspaceID uuid.UUID     `json:"workspace_id"`
	Name        string        `json:"name"`
	Schema      []SchemaField `json:"schema,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DocumentTypeCreate represents document type creation data
type DocumentTypeCreate struct {
	Name   string        `json:"name" validate:"required,max=255"`
	Schema []SchemaField `json:"schema,omitempty" validate:"omitempty,dive"`
}

// DocumentTypeUpdate represents document type update data
type DocumentTypeUpdate struct {
	Name   *string       `json:"name,omitempty" validate:"omitempty,max=255"`
	Schema []SchemaField `json:"schema,omitempty" validate:"omitempty,dive"`
}

// ValidateSchemaFields rejects duplicate field keys.
func ValidateSchemaFields(fields []SchemaField) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Key]; dup {
			return Validation("duplicate schema field key %q", f.Key)
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

// DocumentTypeRepository handles document type persistence
type DocumentTypeRepository interface {
	Create(ctx context.Context, dt *DocumentType) error
	GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*DocumentType, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]DocumentType, error)
	Update(ctx context.Context, id, workspaceID uuid.UUID, update *DocumentTypeUpdate) error
	Delete(ctx context.Context, id, workspaceID uuid.UUID) error
}
