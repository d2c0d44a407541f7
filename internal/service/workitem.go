package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// WorkItemService handles work item operations, including the lifecycle
// state machine and document links.
type WorkItemService struct {
	itemRepo  domain.WorkItemRepository
	entities  domain.EntityLookup
	documents domain.DocumentLookup
	audit     *AuditService
}

// NewWorkItemService creates a new work item service
func NewWorkItemService(
	itemRepo domain.WorkItemRepository,
	entities domain.EntityLookup,
	documents domain.DocumentLookup,
	audit *AuditService,
) *WorkItemService {
	return &WorkItemService{
		itemRepo:  itemRepo,
		entities:  entities,
		documents: documents,
		audit:     audit,
	}
}

// Create creates a work item in DRAFT
func (s *WorkItemService) Create(ctx context.Context, userID, workspaceID uuid.UUID, input domain.WorkItemCreate) (*domain.WorkItem, error) {
	entity, err := s.entities.GetByID(ctx, input.EntityID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up entity: %w", err)
	}
	if entity == nil {
		return nil, domain.Validation("entity does not exist in this workspace")
	}

	priority := input.Priority
	if priority == "" {
		priority = "MEDIUM"
	}

	now := time.Now()
	item := &domain.WorkItem{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		TypeID:      input.TypeID,
		EntityID:    input.EntityID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      domain.StatusDraft,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create work item: %w", err)
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkItemCreated, "work_item", &item.ID)

	return item, nil
}

// GetByID retrieves a work item
func (s *WorkItemService) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.WorkItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work item: %w", err)
	}
	if item == nil {
		return nil, domain.NotFound("work item not found")
	}

	return item, nil
}

// List retrieves work items with filters
func (s *WorkItemService) List(ctx context.Context, workspaceID uuid.UUID, filter domain.WorkItemFilter) ([]domain.WorkItem, error) {
	if filter.Status != nil && !domain.ValidStatus(*filter.Status) {
		return nil, domain.Validation("invalid status %q", *filter.Status)
	}

	items, err := s.itemRepo.ListByWorkspace(ctx, workspaceID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list work items: %w", err)
	}

	return items, nil
}

// Update updates work item fields. Status is never touched here; status
// changes go through Transition only.
func (s *WorkItemService) Update(ctx context.Context, userID, id, workspaceID uuid.UUID, input domain.WorkItemUpdate) (*domain.WorkItem, error) {
	if input.EntityID != nil {
		entity, err := s.entities.GetByID(ctx, *input.EntityID, workspaceID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up entity: %w", err)
		}
		if entity == nil {
			return nil, domain.Validation("entity does not exist in this workspace")
		}
	}

	if err := s.itemRepo.Update(ctx, id, workspaceID, &input); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkItemUpdated, "work_item", &id)

	return s.GetByID(ctx, id, workspaceID)
}

// Transition moves a work item to a new lifecycle status. The persistence
// write is conditional on the status read here; when a concurrent request
// changed it in between, the loser gets a Conflict and must re-read.
func (s *WorkItemService) Transition(ctx context.Context, userID, id, workspaceID uuid.UUID, target domain.WorkItemStatus) (*domain.WorkItem, error) {
	if !domain.ValidStatus(target) {
		return nil, domain.Validation("invalid status %q", target)
	}

	item, err := s.itemRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work item: %w", err)
	}
	if item == nil {
		return nil, domain.NotFound("work item not found")
	}

	if item.Status == target {
		return nil, domain.Validation("work item is already in status %s", target)
	}

	if !domain.CanTransition(item.Status, target) {
		return nil, domain.Validation(
			"cannot transition from %s to %s (allowed: %v)",
			item.Status, target, domain.AllowedTransitions(item.Status),
		)
	}

	swapped, err := s.itemRepo.UpdateStatus(ctx, id, workspaceID, item.Status, target)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if !swapped {
		return nil, domain.Conflict("work item status changed concurrently, retry with a fresh read")
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkItemStatusChanged, "work_item", &id)

	item.Status = target
	return item, nil
}

// Delete deletes a work item; document links cascade
func (s *WorkItemService) Delete(ctx context.Context, userID, id, workspaceID uuid.UUID) error {
	if err := s.itemRepo.Delete(ctx, id, workspaceID); err != nil {
		return err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkItemDeleted, "work_item", &id)

	return nil
}

// LinkDocument links a document in the same workspace to a work item
func (s *WorkItemService) LinkDocument(ctx context.Context, userID, id, workspaceID, documentID uuid.UUID) (*domain.WorkItemDocument, error) {
	item, err := s.itemRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work item: %w", err)
	}
	if item == nil {
		return nil, domain.NotFound("work item not found")
	}

	doc, err := s.documents.GetByID(ctx, documentID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up document: %w", err)
	}
	if doc == nil {
		return nil, domain.Validation("document does not exist in this workspace")
	}

	link, err := s.itemRepo.LinkDocument(ctx, id, documentID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkItemDocLinked, "work_item", &id)

	return link, nil
}

// UnlinkDocument removes a document link
func (s *WorkItemService) UnlinkDocument(ctx context.Context, userID, id, workspaceID, documentID uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get work item: %w", err)
	}
	if item == nil {
		return domain.NotFound("work item not found")
	}

	if err := s.itemRepo.UnlinkDocument(ctx, id, documentID); err != nil {
		return err
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkItemDocUnlinked, "work_item", &id)

	return nil
}

// ListDocuments retrieves the documents linked to a work item
func (s *WorkItemService) ListDocuments(ctx context.Context, id, workspaceID uuid.UUID) ([]domain.Document, error) {
	item, err := s.itemRepo.GetByID(ctx, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get work item: %w", err)
	}
	if item == nil {
		return nil, domain.NotFound("work item not found")
	}

	docs, err := s.itemRepo.ListDocuments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked documents: %w", err)
	}

	return docs, nil
}
