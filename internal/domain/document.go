package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document is a registered file record. Storage of the bytes themselves
// lives behind an external object store; this model tracks the metadata
// and the expiry date.
type Document struct {
	ID          uuid.UUID      `json:"id"`
	WorkspaceID uuid.UUID      `json:"workspace_id"`
	TypeID      uuid.UUID      `json:"type_id"`
	EntityID    *uuid.UUID     `json:"entity_id,omitempty"`
	Name        string         `json:"name"`
	FileKey     string         `json:"file_key"`
	MimeType    string         `json:"mime_type,omitempty"`
	SizeBytes   int64          `json:"size_bytes,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
	UploadedBy  uuid.UUID      `json:"uploaded_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DocumentCreate represents document registration data
type DocumentCreate struct {
	TypeID    uuid.UUID      `json:"type_id" validate:"required"`
	EntityID  *uuid.UUID     `json:"entity_id,omitempty"`
	Name      string         `json:"name" validate:"required,max=255"`
	FileKey   string         `json:"file_key" validate:"required,max=512"`
	MimeType  string         `json:"mime_type" validate:"omitempty,max=255"`
	SizeBytes int64          `json:"size_bytes" validate:"omitempty,min=0"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
}

// DocumentRepository handles document persistence
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*Document, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Document, error)
	ListExpiring(ctx context.Context, workspaceID uuid.UUID, before time.Time) ([]Document, error)
	Delete(ctx context.Context, id, workspaceID uuid.UUID) error
}

// DocumentLookup is the narrow capability the work-item service uses to
// verify a document exists in a workspace before linking it.
type DocumentLookup interface {
	GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*Document, error)
}
