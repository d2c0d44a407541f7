package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

func newTestAudit() (*AuditService, *MockAuditLogRepository, *MockEventPublisher) {
	mockRepo := new(MockAuditLogRepository)
	mockEvents := new(MockEventPublisher)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil).Maybe()
	mockEvents.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewAuditService(mockRepo, mockEvents), mockRepo, mockEvents
}

func TestWorkspaceService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	mockWorkspaceRepo := new(MockWorkspaceRepository)
	mockMemberRepo := new(MockMembershipRepository)
	mockUserRepo := new(MockUserRepository)
	audit, _, _ := newTestAudit()

	svc := NewWorkspaceService(mockWorkspaceRepo, mockMemberRepo, mockUserRepo, audit)

	mockWorkspaceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Workspace")).Return(nil)
	mockMemberRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.WorkspaceMembership) bool {
		return m.UserID == userID && m.Role == domain.RoleOwner
	})).Return(nil)

	workspace, err := svc.Create(ctx, userID, domain.WorkspaceCreate{Name: "Ops"})
	assert.NoError(t, err)
	assert.Equal(t, "Ops", workspace.Name)

	mockWorkspaceRepo.AssertExpectations(t)
	mockMemberRepo.AssertExpectations(t)
}

func TestWorkspaceService_InviteMember(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	workspaceID := uuid.New()

	newService := func() (*WorkspaceService, *MockMembershipRepository, *MockUserRepository) {
		mockWorkspaceRepo := new(MockWorkspaceRepository)
		mockMemberRepo := new(MockMembershipRepository)
		mockUserRepo := new(MockUserRepository)
		audit, _, _ := newTestAudit()
		return NewWorkspaceService(mockWorkspaceRepo, mockMemberRepo, mockUserRepo, audit), mockMemberRepo, mockUserRepo
	}

	t.Run("success", func(t *testing.T) {
		svc, mockMemberRepo, mockUserRepo := newService()
		invitee := &domain.User{ID: uuid.New(), Email: "new@example.com"}

		mockUserRepo.On("GetByEmail", ctx, "new@example.com").Return(invitee, nil)
		mockMemberRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.WorkspaceMembership) bool {
			return m.UserID == invitee.ID && m.Role == domain.RoleMember && m.WorkspaceID == workspaceID
		})).Return(nil)

		member, err := svc.InviteMember(ctx, requesterID, workspaceID, domain.MembershipInvite{
			Email: "new@example.com",
			Role:  domain.RoleMember,
		})
		assert.NoError(t, err)
		assert.Equal(t, invitee.ID, member.UserID)

		mockMemberRepo.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.InviteMember(ctx, requesterID, workspaceID, domain.MembershipInvite{
			Email: "new@example.com",
			Role:  "SUPERUSER",
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("cannot invite as owner", func(t *testing.T) {
		svc, _, _ := newService()

		_, err := svc.InviteMember(ctx, requesterID, workspaceID, domain.MembershipInvite{
			Email: "new@example.com",
			Role:  domain.RoleOwner,
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("no account for email", func(t *testing.T) {
		svc, _, mockUserRepo := newService()

		mockUserRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil)

		_, err := svc.InviteMember(ctx, requesterID, workspaceID, domain.MembershipInvite{
			Email: "ghost@example.com",
			Role:  domain.RoleViewer,
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("already a member", func(t *testing.T) {
		svc, mockMemberRepo, mockUserRepo := newService()
		invitee := &domain.User{ID: uuid.New(), Email: "dup@example.com"}

		mockUserRepo.On("GetByEmail", ctx, "dup@example.com").Return(invitee, nil)
		mockMemberRepo.On("Create", ctx, mock.Anything).
			Return(domain.Validation("user is already a member of this workspace"))

		_, err := svc.InviteMember(ctx, requesterID, workspaceID, domain.MembershipInvite{
			Email: "dup@example.com",
			Role:  domain.RoleAdmin,
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestWorkspaceService_UpdateMemberRole(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	workspaceID := uuid.New()
	memberID := uuid.New()

	newService := func() (*WorkspaceService, *MockMembershipRepository) {
		mockWorkspaceRepo := new(MockWorkspaceRepository)
		mockMemberRepo := new(MockMembershipRepository)
		mockUserRepo := new(MockUserRepository)
		audit, _, _ := newTestAudit()
		return NewWorkspaceService(mockWorkspaceRepo, mockMemberRepo, mockUserRepo, audit), mockMemberRepo
	}

	t.Run("success", func(t *testing.T) {
		svc, mockMemberRepo := newService()
		updated := &domain.WorkspaceMembership{WorkspaceID: workspaceID, UserID: memberID, Role: domain.RoleAdmin}

		mockMemberRepo.On("UpdateRole", ctx, workspaceID, memberID, domain.RoleAdmin).Return(nil)
		mockMemberRepo.On("GetMember", ctx, workspaceID, memberID).Return(updated, nil)

		member, err := svc.UpdateMemberRole(ctx, requesterID, workspaceID, memberID, domain.MembershipUpdate{Role: domain.RoleAdmin})
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, member.Role)
	})

	t.Run("last owner demotion rejected", func(t *testing.T) {
		svc, mockMemberRepo := newService()

		mockMemberRepo.On("UpdateRole", ctx, workspaceID, memberID, domain.RoleMember).
			Return(domain.Validation("cannot demote the last owner of a workspace"))

		_, err := svc.UpdateMemberRole(ctx, requesterID, workspaceID, memberID, domain.MembershipUpdate{Role: domain.RoleMember})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("invalid role", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.UpdateMemberRole(ctx, requesterID, workspaceID, memberID, domain.MembershipUpdate{Role: "GOD"})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestWorkspaceService_RemoveMember(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	workspaceID := uuid.New()
	memberID := uuid.New()

	mockWorkspaceRepo := new(MockWorkspaceRepository)
	mockMemberRepo := new(MockMembershipRepository)
	mockUserRepo := new(MockUserRepository)
	audit, _, _ := newTestAudit()
	svc := NewWorkspaceService(mockWorkspaceRepo, mockMemberRepo, mockUserRepo, audit)

	t.Run("last owner removal rejected", func(t *testing.T) {
		mockMemberRepo.On("Remove", ctx, workspaceID, memberID).
			Return(domain.Validation("cannot remove the last owner of a workspace")).Once()

		err := svc.RemoveMember(ctx, requesterID, workspaceID, memberID)
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("success", func(t *testing.T) {
		mockMemberRepo.On("Remove", ctx, workspaceID, memberID).Return(nil).Once()

		err := svc.RemoveMember(ctx, requesterID, workspaceID, memberID)
		assert.NoError(t, err)
	})
}
