package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditAction identifies which kind of state change occurred.
type AuditAction string

const (
	ActionWorkspaceCreated      AuditAction = "workspace.created"
	ActionWorkspaceUpdated      AuditAction = "workspace.updated"
	ActionWorkspaceDeleted      AuditAction = "workspace.deleted"
	ActionMemberInvited         AuditAction = "member.invited"
	ActionMemberRoleUpdated     AuditAction = "member.role_updated"
	ActionMemberRemoved         AuditAction = "member.removed"
	ActionEntityCreated         AuditAction = "entity.created"
	ActionEntityUpdated         AuditAction = "entity.updated"
	ActionEntityDeleted         AuditAction = "entity.deleted"
	ActionDocumentTypeCreated   AuditAction = "document_type.created"
	ActionDocumentTypeUpdated   AuditAction = "document_type.updated"
	ActionDocumentTypeDeleted   AuditAction = "document_type.deleted"
	ActionDocumentUploaded      AuditAction = "document.uploaded"
	ActionDocumentDeleted       AuditAction = "document.deleted"
	ActionWorkItemCreated       AuditAction = "workitem.created"
	ActionWorkItemUpdated       AuditAction = "workitem.updated"
	ActionWorkItemDeleted       AuditAction = "workitem.deleted"
	ActionWorkItemStatusChanged AuditAction = "workitem.status_changed"
	ActionWorkItemDocLinked     AuditAction = "workitem.document_linked"
	ActionWorkItemDocUnlinked   AuditAction = "workitem.document_unlinked"
)

// broadcastEvents maps the audited actions that also fan out as real-time
// notifications to their event names. Actions absent from this table are
// recorded but never broadcast.
var broadcastEvents = map[AuditAction]string{
	ActionWorkItemStatusChanged: "work-item:status-changed",
	ActionWorkItemDocLinked:     "work-item:document-linked",
	ActionWorkItemDocUnlinked:   "work-item:document-unlinked",
	ActionDocumentUploaded:      "document:uploaded",
	ActionDocumentDeleted:       "document:deleted",
	ActionMemberInvited:         "workspace:member-invited",
	ActionMemberRoleUpdated:     "workspace:member-updated",
	ActionMemberRemoved:         "workspace:member-removed",
}

// BroadcastEvent returns the real-time event name for an action, if any.
func BroadcastEvent(action AuditAction) (string, bool) {
	name, ok := broadcastEvents[action]
	return name, ok
}

// AuditLogEntry is an append-only record of a state change. Entries are
// never mutated or deleted by the application.
type AuditLogEntry struct {
	ID          uuid.UUID   `json:"id"`
	WorkspaceID uuid.UUID   `json:"workspace_id"`
	UserID      uuid.UUID   `json:"user_id"`
	Action      AuditAction `json:"action"`
	TargetType  string      `json:"target_type"`
	TargetID    *uuid.UUID  `json:"target_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// AuditLogFilter narrows audit log queries
type AuditLogFilter struct {
	UserID     *uuid.UUID
	Action     *AuditAction
	TargetType *string
	TargetID   *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// AuditLogRepository handles audit log persistence
type AuditLogRepository interface {
	Create(ctx context.Context, entry *AuditLogEntry) error
	List(ctx context.Context, workspaceID uuid.UUID, filter AuditLogFilter) ([]AuditLogEntry, int64, error)
}

// EventPayload is the body of a workspace-scoped real-time notification.
type EventPayload struct {
	TargetID    *uuid.UUID `json:"targetId,omitempty"`
	TargetType  string     `json:"targetType"`
	WorkspaceID uuid.UUID  `json:"workspaceId"`
}

// EventPublisher publishes workspace-scoped real-time events. Publish
// failures are the caller's to swallow; emission is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, workspaceID uuid.UUID, event string, payload EventPayload) error
}
