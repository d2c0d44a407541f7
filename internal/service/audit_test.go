package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()
	userID := uuid.New()
	targetID := uuid.New()

	t.Run("broadcastable action publishes event", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		mockEvents := new(MockEventPublisher)
		svc := NewAuditService(mockRepo, mockEvents)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)
		mockEvents.On("Publish", ctx, workspaceID, "work-item:status-changed", mock.AnythingOfType("domain.EventPayload")).Return(nil)

		svc.Record(ctx, workspaceID, userID, domain.ActionWorkItemStatusChanged, "work_item", &targetID)

		mockRepo.AssertExpectations(t)
		mockEvents.AssertExpectations(t)
	})

	t.Run("non-broadcastable action publishes nothing", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		mockEvents := new(MockEventPublisher)
		svc := NewAuditService(mockRepo, mockEvents)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

		svc.Record(ctx, workspaceID, userID, domain.ActionWorkspaceCreated, "workspace", &workspaceID)

		mockRepo.AssertExpectations(t)
		mockEvents.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is swallowed", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		mockEvents := new(MockEventPublisher)
		svc := NewAuditService(mockRepo, mockEvents)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Return(errors.New("db down"))

		// Must not panic and must not publish when the entry was not stored
		svc.Record(ctx, workspaceID, userID, domain.ActionWorkItemStatusChanged, "work_item", &targetID)

		mockEvents.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure is swallowed", func(t *testing.T) {
		mockRepo := new(MockAuditLogRepository)
		mockEvents := new(MockEventPublisher)
		svc := NewAuditService(mockRepo, mockEvents)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)
		mockEvents.On("Publish", ctx, workspaceID, "document:uploaded", mock.AnythingOfType("domain.EventPayload")).Return(errors.New("redis down"))

		svc.Record(ctx, workspaceID, userID, domain.ActionDocumentUploaded, "document", &targetID)

		mockRepo.AssertExpectations(t)
		mockEvents.AssertExpectations(t)
	})
}

func TestAuditService_List(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	mockRepo := new(MockAuditLogRepository)
	mockEvents := new(MockEventPublisher)
	svc := NewAuditService(mockRepo, mockEvents)

	t.Run("applies default page size", func(t *testing.T) {
		expected := domain.AuditLogFilter{Limit: DefaultAuditPageSize}
		mockRepo.On("List", ctx, workspaceID, expected).Return([]domain.AuditLogEntry{}, int64(0), nil).Once()

		_, _, err := svc.List(ctx, workspaceID, domain.AuditLogFilter{})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("keeps explicit limit", func(t *testing.T) {
		expected := domain.AuditLogFilter{Limit: 10, Offset: 20}
		entries := []domain.AuditLogEntry{{ID: uuid.New(), WorkspaceID: workspaceID}}
		mockRepo.On("List", ctx, workspaceID, expected).Return(entries, int64(31), nil).Once()

		got, total, err := svc.List(ctx, workspaceID, domain.AuditLogFilter{Limit: 10, Offset: 20})
		assert.NoError(t, err)
		assert.Equal(t, int64(31), total)
		assert.Len(t, got, 1)
	})
}
