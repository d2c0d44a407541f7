package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// WorkspaceService handles workspace and membership operations. Role
// checks for who may call each operation live in the route middleware;
// this service owns the business rules that remain (invitee resolution,
// role validity, the last-owner invariant via the repository).
type WorkspaceService struct {
	workspaceRepo domain.WorkspaceRepository
	memberRepo    domain.MembershipRepository
	userRepo      domain.UserRepository
	audit         *AuditService
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaceRepo domain.WorkspaceRepository,
	memberRepo domain.MembershipRepository,
	userRepo domain.UserRepository,
	audit *AuditService,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		audit:         audit,
	}
}

// Create creates a new workspace and adds the creator as owner
func (s *WorkspaceService) Create(ctx context.Context, userID uuid.UUID, input domain.WorkspaceCreate) (*domain.Workspace, error) {
	now := time.Now()
	workspace := &domain.Workspace{
		ID:        uuid.New(),
		Name:      input.Name,
		Settings:  input.Settings,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.workspaceRepo.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	member := &domain.WorkspaceMembership{
		WorkspaceID: workspace.ID,
		UserID:      userID,
		Role:        domain.RoleOwner,
		CreatedAt:   now,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.audit.Record(ctx, workspace.ID, userID, domain.ActionWorkspaceCreated, "workspace", &workspace.ID)

	return workspace, nil
}

// GetByID retrieves a workspace by ID
func (s *WorkspaceService) GetByID(ctx context.Context, workspaceID uuid.UUID) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace == nil {
		return nil, domain.NotFound("workspace not found")
	}

	return workspace, nil
}

// ListByUser retrieves all workspaces the user belongs to
func (s *WorkspaceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return workspaces, nil
}

// Update updates a workspace
func (s *WorkspaceService) Update(ctx context.Context, userID, workspaceID uuid.UUID, input domain.WorkspaceUpdate) (*domain.Workspace, error) {
	if err := s.workspaceRepo.Update(ctx, workspaceID, &input); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkspaceUpdated, "workspace", &workspaceID)

	return s.GetByID(ctx, workspaceID)
}

// Delete deletes a workspace
func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID uuid.UUID) error {
	if err := s.workspaceRepo.Delete(ctx, workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.audit.Record(ctx, workspaceID, userID, domain.ActionWorkspaceDeleted, "workspace", &workspaceID)

	return nil
}

// ListMembers retrieves all members of a workspace
func (s *WorkspaceService) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.MemberInfo, error) {
	members, err := s.memberRepo.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// InviteMember adds an existing user to a workspace by email
func (s *WorkspaceService) InviteMember(ctx context.Context, requesterID, workspaceID uuid.UUID, input domain.MembershipInvite) (*domain.WorkspaceMembership, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.Validation("invalid role %q", input.Role)
	}
	if input.Role == domain.RoleOwner {
		return nil, domain.Validation("cannot invite a member as OWNER")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up invitee: %w", err)
	}
	if user == nil {
		return nil, domain.Validation("no account exists for %s", input.Email)
	}

	member := &domain.WorkspaceMembership{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Role:        input.Role,
		CreatedAt:   time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, workspaceID, requesterID, domain.ActionMemberInvited, "membership", &user.ID)

	return member, nil
}

// UpdateMemberRole changes a member's role. The membership repository
// rejects, atomically, a change that would demote the last owner.
func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, requesterID, workspaceID, userID uuid.UUID, input domain.MembershipUpdate) (*domain.WorkspaceMembership, error) {
	if !domain.ValidRole(input.Role) {
		return nil, domain.Validation("invalid role %q", input.Role)
	}

	if err := s.memberRepo.UpdateRole(ctx, workspaceID, userID, input.Role); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, workspaceID, requesterID, domain.ActionMemberRoleUpdated, "membership", &userID)

	return s.memberRepo.GetMember(ctx, workspaceID, userID)
}

// RemoveMember removes a member from a workspace. The membership
// repository rejects, atomically, removing the last owner.
func (s *WorkspaceService) RemoveMember(ctx context.Context, requesterID, workspaceID, userID uuid.UUID) error {
	if err := s.memberRepo.Remove(ctx, workspaceID, userID); err != nil {
		return err
	}

	s.audit.Record(ctx, workspaceID, requesterID, domain.ActionMemberRemoved, "membership", &userID)

	return nil
}
