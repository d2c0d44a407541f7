package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

const uniqueViolation = "23505"

// MembershipRepository handles workspace membership data access. Role
// changes and removals run inside a transaction that locks the workspace's
// membership rows, so no interleaving of two requests can leave a
// workspace without an OWNER.
type MembershipRepository struct {
	db *DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create adds a member to a workspace
func (r *MembershipRepository) Create(ctx context.Context, member *domain.WorkspaceMembership) error {
	query := `
		INSERT INTO workspace_memberships (workspace_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		member.WorkspaceID,
		member.UserID,
		member.Role,
		member.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Validation("user is already a member of this workspace")
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// GetMember retrieves a workspace membership
func (r *MembershipRepository) GetMember(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMembership, error) {
	query := `
		SELECT workspace_id, user_id, role, created_at
		FROM workspace_memberships
		WHERE workspace_id = $1 AND user_id = $2
	`

	var member domain.WorkspaceMembership
	err := r.db.Pool.QueryRow(ctx, query, workspaceID, userID).Scan(
		&member.WorkspaceID,
		&member.UserID,
		&member.Role,
		&member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// ListMembers retrieves all members of a workspace with their emails
func (r *MembershipRepository) ListMembers(ctx context.Context, workspaceID uuid.UUID) ([]domain.MemberInfo, error) {
	query := `
		SELECT wm.workspace_id, wm.user_id, wm.role, wm.created_at, u.email
		FROM workspace_memberships wm
		INNER JOIN users u ON u.id = wm.user_id
		WHERE wm.workspace_id = $1
		ORDER BY wm.created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []domain.MemberInfo
	for rows.Next() {
		var m domain.MemberInfo
		if err := rows.Scan(
			&m.WorkspaceID,
			&m.UserID,
			&m.Role,
			&m.CreatedAt,
			&m.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, nil
}

// UpdateRole changes a member's role. Demoting the last OWNER is rejected
// inside the same transaction that performs the update.
func (r *MembershipRepository) UpdateRole(ctx context.Context, workspaceID, userID uuid.UUID, role domain.Role) error {
	return r.mutateGuarded(ctx, workspaceID, userID, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE workspace_memberships SET role = $3 WHERE workspace_id = $1 AND user_id = $2`,
			workspaceID, userID, role,
		)
		if err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NotFound("membership not found")
		}
		return nil
	}, role == domain.RoleOwner, "cannot demote the last owner of a workspace")
}

// Remove deletes a membership. Removing the last OWNER is rejected inside
// the same transaction that performs the delete.
func (r *MembershipRepository) Remove(ctx context.Context, workspaceID, userID uuid.UUID) error {
	return r.mutateGuarded(ctx, workspaceID, userID, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM workspace_memberships WHERE workspace_id = $1 AND user_id = $2`,
			workspaceID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NotFound("membership not found")
		}
		return nil
	}, false, "cannot remove the last owner of a workspace")
}

// mutateGuarded locks the workspace's membership rows, verifies the target
// exists, and if the target is currently an OWNER whose mutation would
// reduce the owner count, checks the count before applying the mutation.
// ownerPreserved is true when the mutation keeps the target an OWNER.
func (r *MembershipRepository) mutateGuarded(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
	mutate func(ctx context.Context, tx pgx.Tx) error,
	ownerPreserved bool,
	guardMessage string,
) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT user_id, role FROM workspace_memberships WHERE workspace_id = $1 FOR UPDATE`,
		workspaceID,
	)
	if err != nil {
		return fmt.Errorf("failed to lock memberships: %w", err)
	}

	var targetRole domain.Role
	var targetFound bool
	var ownerCount int
	for rows.Next() {
		var memberID uuid.UUID
		var role domain.Role
		if err := rows.Scan(&memberID, &role); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan membership: %w", err)
		}
		if role == domain.RoleOwner {
			ownerCount++
		}
		if memberID == userID {
			targetFound = true
			targetRole = role
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read memberships: %w", err)
	}

	if !targetFound {
		return domain.NotFound("membership not found")
	}

	if targetRole == domain.RoleOwner && ownerCount <= 1 {
		// ownerPreserved covers OWNER -> OWNER role updates, which do not
		// reduce the count.
		if !ownerPreserved {
			return domain.Validation(guardMessage)
		}
	}

	if err := mutate(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
