package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

// DocumentRepository handles document data access
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO documents (
			id, workspace_id, type_id, entity_id, name, file_key,
			mime_type, size_bytes, metadata, expires_at, uploaded_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		doc.ID,
		doc.WorkspaceID,
		doc.TypeID,
		doc.EntityID,
		doc.Name,
		doc.FileKey,
		doc.MimeType,
		doc.SizeBytes,
		metadata,
		doc.ExpiresAt,
		doc.UploadedBy,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document scoped to a workspace
func (r *DocumentRepository) GetByID(ctx context.Context, id, workspaceID uuid.UUID) (*domain.Document, error) {
	query := documentSelect + ` WHERE id = $1 AND workspace_id = $2`

	rows, err := r.db.Pool.Query(ctx, query, id, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	return &docs[0], nil
}

// ListByWorkspace retrieves all documents in a workspace
func (r *DocumentRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.Document, error) {
	query := documentSelect + ` WHERE workspace_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListExpiring retrieves documents whose expiry falls on or before the
// given time, soonest first.
func (r *DocumentRepository) ListExpiring(ctx context.Context, workspaceID uuid.UUID, before time.Time) ([]domain.Document, error) {
	query := documentSelect + `
		WHERE workspace_id = $1 AND expires_at IS NOT NULL AND expires_at <= $2
		ORDER BY expires_at ASC`

	rows, err := r.db.Pool.Query(ctx, query, workspaceID, before)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// Delete deletes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1 AND workspace_id = $2`

	tag, err := r.db.Pool.Exec(ctx, query, id, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("document not found")
	}

	return nil
}

const documentSelect = `
	SELECT id, workspace_id, type_id, entity_id, name, file_key,
	       mime_type, size_bytes, metadata, expires_at, uploaded_by,
	       created_at, updated_at
	FROM documents`

func scanDocuments(rows pgx.Rows) ([]domain.Document, error) {
	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var metadataJSON []byte

		if err := rows.Scan(
			&doc.ID,
			&doc.WorkspaceID,
			&doc.TypeID,
			&doc.EntityID,
			&doc.Name,
			&doc.FileKey,
			&doc.MimeType,
			&doc.SizeBytes,
			&metadataJSON,
			&doc.ExpiresAt,
			&doc.UploadedBy,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		if len(metadataJSON) > 0 {
			json.Unmarshal(metadataJSON, &doc.Metadata)
		}

		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return docs, nil
}
