package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// EntityService handles entity operations
type EntityService struct {
	entityRepo domain.EntityRepository
	audit      *AuditService
}

// NewEntityService creates a new entity service
func NewEntityService(entityRepo domain.EntityRepository, audit *AuditService) *EntityService {
	return &EntityService{entityRepo: entityRepo, audit: audit}
}

// Create creates a new entity
func (s *EntityService) Create(ctx context.Context, userID, workspaceID uuid.UUID, input domain.EntityCreate) (*domain.Entity, error) {
	now := time.Now()
	entity := &domain.Entity{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Kind:        input.Kind,
		Metadata:    input.Metadata,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.entityRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionEntityCreated, "entity", &entity.ID)

	return entity, nil
}

// GetByID retrieves an entity
func (s *EntityService) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.Entity, error) {
	entity, err := s.entityRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	if entity == nil {
		return nil, domain.NotFound("entity not found")
	}

	return entity, nil
}

// List retrieves all entities in a workspace
func (s *EntityService) List(ctx context.Context, workspaceID uuid.UUID) ([]domain.Entity, error) {
	entities, err := s.entityRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, nil
}

// Update updates an entity
func (s *EntityService) Update(ctx context.Context, userID, id, workspaceID uuid.UUID, input domain.EntityUpdate) (*domain.Entity, error) {
	if err := s.entityRepo.Update(ctx, id, workspaceID, &input); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionEntityUpdated, "entity", &id)

	return s.GetByID(ctx, id, workspaceID)
}

// Delete deletes an entity
func (s *EntityService) Delete(ctx context.Context, userID, id, workspaceID uuid.UUID) error {
	if err := s.entityRepo.Delete(ctx, id, workspaceID); err != nil {
		return err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionEntityDeleted, "entity", &id)

	return nil
}
