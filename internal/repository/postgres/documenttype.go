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

// DocumentTypeRepository handles document type data access
type DocumentTypeRepository struct {
	db *DB
}

// NewDocumentTypeRepository creates a new document type repository
func NewDocumentTypeRepository(db *DB) *DocumentTypeRepository {
	return &DocumentTypeRepository{db: db}
}

// Create creates a new document type
func (r *DocumentTypeRepository) Create(ctx context.Context, dt *domain.DocumentType) error {
	schema, err := json.Marshal(dt.Schema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	query := `
		INSERT INTO document_types (id, workspace_id, name, schema, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		dt.ID,
		dt.WorkspaceID,
		dt.Name,
		schema,
		dt.CreatedAt,
		dt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document type: %w", err)
	}

	return nil
}

// GetByID retrieves a document type scoped to a workspace
func (r *DocumentTypeRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.DocumentType, error) {
	query := `
		SELECT id, workspace_id, name, schema, created_at, updated_at
		FROM document_types
		WHERE id = $1 AND workspace_id = $2
	`

	var dt domain.DocumentType
	var schemaJSON []byte

	err := r.db.Pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&dt.ID,
		&dt.WorkspaceID,
		&dt.Name,
		&schemaJSON,
		&dt.CreatedAt,
		&dt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document type: %w", err)
	}

	if len(schemaJSON) > 0 {
		if err := json.Unmarshal(schemaJSON, &dt.Schema); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
		}
	}

	return &dt, nil
}

// ListByWorkspace retrieves all document types in a workspace
func (r *DocumentTypeRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.DocumentType, error) {
	query := `
		SELECT id, workspace_id, name, schema, created_at, updated_at
		FROM document_types
		WHERE workspace_id = $1
		ORDER BY name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document types: %w", err)
	}
	defer rows.Close()

	var types []domain.DocumentType
	for rows.Next() {
		var dt domain.DocumentType
		var schemaJSON []byte

		if err := rows.Scan(
			&dt.ID,
			&dt.WorkspaceID,
			&dt.Name,
			&schemaJSON,
			&dt.CreatedAt,
			&dt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document type: %w", err)
		}

		if len(schemaJSON) > 0 {
			json.Unmarshal(schemaJSON, &dt.Schema)
		}

		types = append(types, dt)
	}

	return types, nil
}

// Update updates a document type
func (r *DocumentTypeRepository) Update(ctx context.Context, id, workspaceID uuid.UUID, update *domain.DocumentTypeUpdate) error {
	var schema []byte
	if update.Schema != nil {
		var err error
		schema, err = json.Marshal(update.Schema)
		if err != nil {
			return fmt.Errorf("failed to marshal schema: %w", err)
		}
	}

	query := `
		UPDATE document_types
		SET name = COALESCE($3, name),
		    schema = COALESCE($4, schema),
		    updated_at = NOW()
		WHERE id = $1 AND workspace_id = $2
	`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID, update.Name, schema)
	if err != nil {
		return fmt.Errorf("failed to update document type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("document type not found")
	}

	return nil
}

// Delete deletes a document type
func (r *DocumentTypeRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	query := `DELETE FROM document_types WHERE id = $1 AND workspace_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete document type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("document type not found")
	}

	return nil
}
