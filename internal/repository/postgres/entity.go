package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// EntityRepository handles entity data access
type EntityRepository struct {
	db *DB
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(db *DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// Create creates a new entity
func (r *EntityRepository) Create(ctx context.Context, entity *domain.Entity) error {
	metadata, err := json.Marshal(entity.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO entities (id, workspace_id, name, kind, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		entity.ID,
		entity.WorkspaceID,
		entity.Name,
		entity.Kind,
		metadata,
		entity.CreatedAt,
		entity.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}

	return nil
}

// GetByID retrieves an entity scoped to a workspace
func (r *EntityRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.Entity, error) {
	query := `
		SELECT id, workspace_id, name, kind, metadata, created_at, updated_at
		FROM entities
		WHERE id = $1 AND workspace_id = $2
	`

	var entity domain.Entity
	var metadataJSON []byte

	err := r.db.Pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&entity.ID,
		&entity.WorkspaceID,
		&entity.Name,
		&entity.Kind,
		&metadataJSON,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &entity.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	return &entity, nil
}

// ListByWorkspace retrieves all entities in a workspace
func (r *EntityRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Entity, error) {
	query := `
		SELECT id, workspace_id, name, kind, metadata, created_at, updated_at
		FROM entities
		WHERE workspace_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	defer rows.Close()

	var entities []domain.Entity
	for rows.Next() {
		var entity domain.Entity
		var metadataJSON []byte

		if err := rows.Scan(
			&entity.ID,
			&entity.WorkspaceID,
			&entity.Name,
			&entity.Kind,
			&metadataJSON,
			&entity.CreatedAt,
			&entity.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}

		if len(metadataJSON) > 0 {
			json.Unmarshal(metadataJSON, &entity.Metadata)
		}

		entities = append(entities, entity)
	}

	return entities, nil
}

// Update updates an entity
func (r *EntityRepository) Update(ctx context.Context, id, workspaceID uuid.UUID, update *domain.EntityUpdate) error {
	var metadata []byte
	if update.Metadata != nil {
		var err error
		metadata, err = json.Marshal(update.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	query := `
		UPDATE entities
		SET name = COALESCE($3, name),
		    kind = COALESCE($4, kind),
		    metadata = COALESCE($5, metadata),
		    updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID, update.Name, update.Kind, metadata)
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("entity not found")
	}

	return nil
}

// Delete deletes an entity
func (r *EntityRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	query := `DELETE FROM entities WHERE id = $1 AND workspace_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("entity not found")
	}

	return nil
}
