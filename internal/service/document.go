package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// DocumentService handles document type and document operations
type DocumentService struct {
	docRepo  domain.DocumentRepository
	typeRepo domain.DocumentTypeRepository
	entities domain.EntityLookup
	audit    *AuditService
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo domain.DocumentRepository,
	typeRepo domain.DocumentTypeRepository,
	entities domain.EntityLookup,
	audit *AuditService,
) *DocumentService {
	return &DocumentService{
		docRepo:  docRepo,
		typeRepo: typeRepo,
		entities: entities,
		audit:    audit,
	}
}

// CreateType creates a document type
func (s *DocumentService) CreateType(ctx context.Context, userID, workspaceID uuid.UUID, input domain.DocumentTypeCreate) (*domain.DocumentType, error) {
	if err := domain.ValidateSchemaFields(input.Schema); err != nil {
		return nil, err
	}

	now := time.Now()
	dt := &domain.DocumentType{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Schema:      input.Schema,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.typeRepo.Create(ctx, dt); err != nil {
		return nil, fmt.Errorf("failed to create document type: %w", err)
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionDocumentTypeCreated, "document_type", &dt.ID)

	return dt, nil
}

// GetType retrieves a document type
func (s *DocumentService) GetType(ctx context.Context, id, workspaceID uuid.UUID) (*domain.DocumentType, error) {
	dt, err := s.typeRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document type: %w", err)
	}
	if dt == nil {
		return nil, domain.NotFound("document type not found")
	}

	return dt, nil
}

// ListTypes retrieves all document types in a workspace
func (s *DocumentService) ListTypes(ctx context.Context, workspaceID uuid.UUID) ([]domain.DocumentType, error) {
	types, err := s.typeRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document types: %w", err)
	}
	return types, nil
}

// UpdateType updates a document type
func (s *DocumentService) UpdateType(ctx context.Context, userID, id, workspaceID uuid.UUID, input domain.DocumentTypeUpdate) (*domain.DocumentType, error) {
	if input.Schema != nil {
		if err := domain.ValidateSchemaFields(input.Schema); err != nil {
			return nil, err
		}
	}

	if err := s.typeRepo.Update(ctx, id, workspaceID, &input); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionDocumentTypeUpdated, "document_type", &id)

	return s.GetType(ctx, id, workspaceID)
}

// DeleteType deletes a document type
func (s *DocumentService) DeleteType(ctx context.Context, userID, id, workspaceID uuid.UUID) error {
	if err := s.typeRepo.Delete(ctx, id, workspaceID); err != nil {
		return err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionDocumentTypeDeleted, "document_type", &id)

	return nil
}

// Register records an uploaded document against a document type and
// validates its metadata against the type's schema.
func (s *DocumentService) Register(ctx context.Context, userID, workspaceID uuid.UUID, input domain.DocumentCreate) (*domain.Document, error) {
	dt, err := s.typeRepo.GetByID(ctx, input.TypeID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document type: %w", err)
	}
	if dt == nil {
		return nil, domain.Validation("document type does not exist in this workspace")
	}

	for _, field := range dt.Schema {
		if !field.Required {
			continue
		}
		if _, ok := input.Metadata[field.Key]; !ok {
			return nil, domain.Validation("missing required metadata field %q", field.Key)
		}
	}

	if input.EntityID != nil {
		entity, err := s.entities.GetByID(ctx, *input.EntityID, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up entity: %w", err)
		}
		if entity == nil {
			return nil, domain.Validation("entity does not exist in this workspace")
		}
	}

	now := time.Now()
	doc := &domain.Document{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		TypeID:      input.TypeID,
		EntityID:    input.EntityID,
		Name:        input.Name,
		FileKey:     input.FileKey,
		MimeType:    input.MimeType,
		SizeBytes:   input.SizeBytes,
		Metadata:    input.Metadata,
		ExpiresAt:   input.ExpiresAt,
		UploadedBy:  userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionDocumentUploaded, "document", &doc.ID)

	return doc, nil
}

// GetByID retrieves a document
func (s *DocumentService) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if doc == nil {
		return nil, domain.NotFound("document not found")
	}

	return doc, nil
}

// List retrieves all documents in a workspace
func (s *DocumentService) List(ctx context.Context, workspaceID uuid.UUID) ([]domain.Document, error) {
	docs, err := s.docRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// ListExpiring retrieves documents expiring within the given number of days
func (s *DocumentService) ListExpiring(ctx context.Context, workspaceID uuid.UUID, days int) ([]domain.Document, error) {
	if days <= 0 {
		days = 30
	}

	before := time.Now().AddDate(0, 0, days)
	docs, err := s.docRepo.ListExpiring(ctx, workspaceID, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring documents: %w", err)
	}

	return docs, nil
}

// Delete deletes a document record
func (s *DocumentService) Delete(ctx context.Context, userID, id, workspaceID uuid.UUID) error {
	if err := s.docRepo.Delete(ctx, id, workspaceID); err != nil {
		return err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionDocumentDeleted, "document", &id)

	return nil
}
