package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// DefaultAuditPageSize caps audit pages when the caller gives no limit.
const DefaultAuditPageSize = 50

// AuditService records audit trail entries and fans selected actions out
// as real-time events. Recording is strictly best-effort: a failing audit
// store or event bus must never fail the business operation that
// triggered it.
type AuditService struct {
	repo   domain.AuditLogRepository
	events domain.EventPublisher
}

// NewAuditService creates a new audit service
func NewAuditService(repo domain.AuditLogRepository, events domain.EventPublisher) *AuditService {
	return &AuditService{repo: repo, events: events}
}

// Record appends an audit entry and, for broadcastable actions, publishes
// the workspace-scoped event. It never returns an error; failures go to
// the operator log only.
func (s *AuditService) Record(ctx context.Context, workspaceID, userID uuid.UUID, action domain.AuditAction, targetType string, targetID *uuid.UUID) {
	entry := &domain.AuditLogEntry{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		log.Error().Err(err).
			Str("workspace_id", workspaceID.String()).
			Str("action", string(action)).
			Msg("failed to persist audit log entry")
		return
	}

	event, ok := domain.BroadcastEvent(action)
	if !ok {
		return
	}

	payload := domain.EventPayload{
		TargetID:    targetID,
		TargetType:  targetType,
		WorkspaceID: workspaceID,
	}
	if err := s.events.Publish(ctx, workspaceID, event, payload); err != nil {
		log.Warn().Err(err).
			Str("workspace_id", workspaceID.String()).
			Str("event", event).
			Msg("failed to publish realtime event")
	}
}

// List returns audit entries for a workspace newest first along with the
// total under the same filters. The default page size is applied here.
func (s *AuditService) List(ctx context.Context, workspaceID uuid.UUID, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultAuditPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.List(ctx, workspaceID, filter)
}
