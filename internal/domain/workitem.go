package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkItemStatus is a work item lifecycle status. Wire values are the
// upper-case strings below.
type WorkItemStatus string

const (
	StatusDraft     WorkItemStatus = "DRAFT"
	StatusActive    WorkItemStatus = "ACTIVE"
	StatusCompleted WorkItemStatus = "COMPLETED"
)

// ValidStatus reports whether s is one of the three lifecycle statuses.
func ValidStatus(s WorkItemStatus) bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// transitions is the fixed edge set of the status graph. DRAFT<->COMPLETED
// is never permitted in either direction.
var transitions = map[WorkItemStatus][]WorkItemStatus{
	StatusDraft:     {StatusActive},
	StatusActive:    {StatusDraft, StatusCompleted},
	StatusCompleted: {StatusActive},
}

// CanTransition reports whether from->to is a permitted status move.
func CanTransition(from, to WorkItemStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the given one.
func AllowedTransitions(from WorkItemStatus) []WorkItemStatus {
	return transitions[from]
}

// WorkItem is a trackable task with a lifecycle status, linked to an
// entity and optionally to documents. Field updates never touch the
// status; status changes go through the transition operation only.
type WorkItem struct {
	ID          uuid.UUID      `json:"id"`
	WorkspaceID uuid.UUID      `json:"workspace_id"`
	TypeID      *uuid.UUID     `json:"type_id,omitempty"`
	EntityID    uuid.UUID      `json:"entity_id"`
	AssigneeID  *uuid.UUID     `json:"assignee_id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    string         `json:"priority"`
	Status      WorkItemStatus `json:"status"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// WorkItemCreate represents work item creation data. Items are always
// created in DRAFT.
type WorkItemCreate struct {
	TypeID      *uuid.UUID `json:"type_id,omitempty"`
	EntityID    uuid.UUID  `json:"entity_id" validate:"required"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"omitempty,max=4000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// WorkItemUpdate represents a field update. Status is deliberately absent.
type WorkItemUpdate struct {
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=4000"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// WorkItemFilter narrows work item listings
type WorkItemFilter struct {
	Status     *WorkItemStatus
	EntityID   *uuid.UUID
	AssigneeID *uuid.UUID
	Limit      int
	Offset     int
}

// WorkItemDocument links a work item to a document
type WorkItemDocument struct {
	WorkItemID uuid.UUID `json:"work_item_id"`
	DocumentID uuid.UUID `json:"document_id"`
	LinkedAt   time.Time `json:"linked_at"`
}

// WorkItemRepository handles work item persistence. UpdateStatus is a
// conditional write guarded by the previously read status; it reports
// false when the guard missed (the status changed concurrently).
type WorkItemRepository interface {
	Create(ctx context.Context, item *WorkItem) error
	GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*WorkItem, error)
	ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, filter WorkItemFilter) ([]WorkItem, error)
	Update(ctx context.Context, id, workspaceID uuid.UUID, update *WorkItemUpdate) error
	UpdateStatus(ctx context.Context, id, workspaceID uuid.UUID, from, to WorkItemStatus) (bool, error)
	Delete(ctx context.Context, id, workspaceID uuid.UUID) error
	LinkDocument(ctx context.Context, workItemID, documentID uuid.UUID) (*WorkItemDocument, error)
	UnlinkDocument(ctx context.Context, workItemID, documentID uuid.UUID) error
	ListDocuments(ctx context.Context, workItemID uuid.UUID) ([]Document, error)
}
