package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMembershipRepository mocks the MembershipRepository interface
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, member *domain.WorkspaceMembership) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMembershipRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMembership, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMembership), args.Error(1)
}

func (m *MockMembershipRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.MemberInfo, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.MemberInfo), args.Error(1)
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, workspaceID, userID uuid.UUID, role domain.Role) error {
	args := m.Called(ctx, workspaceID, userID, role)
	return args.Error(0)
}

func (m *MockMembershipRepository) Remove(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

// MockEntityRepository mocks the EntityRepository interface
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) Create(ctx context.Context, entity *domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.Entity, error) {
	args := m.Called(ctx, id, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Entity, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockEntityRepository) Update(ctx context.Context, id, workspaceID uuid.UUID, update *domain.EntityUpdate) error {
	args := m.Called(ctx, id, workspaceID, update)
	return args.Error(0)
}

func (m *MockEntityRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	args := m.Called(ctx, id, workspaceID)
	return args.Error(0)
}

// MockDocumentTypeRepository mocks the DocumentTypeRepository interface
type MockDocumentTypeRepository struct {
	mock.Mock
}

func (m *MockDocumentTypeRepository) Create(ctx context.Context, dt *domain.DocumentType) error {
	args := m.Called(ctx, dt)
	return args.Error(0)
}

func (m *MockDocumentTypeRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.DocumentType, error) {
	args := m.Called(ctx, id, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.DocumentType, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepository) Update(ctx context.Context, id, workspaceID uuid.UUID, update *domain.DocumentTypeUpdate) error {
	args := m.Called(ctx, id, workspaceID, update)
	return args.Error(0)
}

func (m *MockDocumentTypeRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	args := m.Called(ctx, id, workspaceID)
	return args.Error(0)
}

// MockDocumentRepository mocks the DocumentRepository interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListExpiring(ctx context.Context, workspaceID uuid.UUID, before time.Time) ([]domain.Document, error) {
	args := m.Called(ctx, workspaceID, before)
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	args := m.Called(ctx, id, workspaceID)
	return args.Error(0)
}

// MockWorkItemRepository mocks the WorkItemRepository interface
type MockWorkItemRepository struct {
	mock.Mock
}

func (m *MockWorkItemRepository) Create(ctx context.Context, item *domain.WorkItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWorkItemRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.WorkItem, error) {
	args := m.Called(ctx, id, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkItem), args.Error(1)
}

func (m *MockWorkItemRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, filter domain.WorkItemFilter) ([]domain.WorkItem, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]domain.WorkItem), args.Error(1)
}

func (m *MockWorkItemRepository) Update(ctx context.Context, id, workspaceID uuid.UUID, update *domain.WorkItemUpdate) error {
	args := m.Called(ctx, id, workspaceID, update)
	return args.Error(0)
}

func (m *MockWorkItemRepository) UpdateStatus(ctx context.Context, id, workspaceID uuid.UUID, from, to domain.WorkItemStatus) (bool, error) {
	args := m.Called(ctx, id, workspaceID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkItemRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	args := m.Called(ctx, id, workspaceID)
	return args.Error(0)
}

func (m *MockWorkItemRepository) LinkDocument(ctx context.Context, workItemID, documentID uuid.UUID) (*domain.WorkItemDocument, error) {
	args := m.Called(ctx, workItemID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkItemDocument), args.Error(1)
}

func (m *MockWorkItemRepository) UnlinkDocument(ctx context.Context, workItemID, documentID uuid.UUID) error {
	args := m.Called(ctx, workItemID, documentID)
	return args.Error(0)
}

func (m *MockWorkItemRepository) ListDocuments(ctx context.Context, workItemID uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, workItemID)
	return args.Get(0).([]domain.Document), args.Error(1)
}

// MockAuditLogRepository mocks the AuditLogRepository interface
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, workspaceID uuid.UUID, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, int64, error) {
	args := m.Called(ctx, workspaceID, filter)
	return args.Get(0).([]domain.AuditLogEntry), args.Get(1).(int64), args.Error(2)
}

// MockEventPublisher mocks the EventPublisher interface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, workspaceID uuid.UUID, event string, payload domain.EventPayload) error {
	args := m.Called(ctx, workspaceID, event, payload)
	return args.Error(0)
}
