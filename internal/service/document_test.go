package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
)

func newDocumentService() (*DocumentService, *MockDocumentRepository, *MockDocumentTypeRepository, *MockEntityRepository) {
	mockDocRepo := new(MockDocumentRepository)
	mockTypeRepo := new(MockDocumentTypeRepository)
	mockEntityRepo := new(MockEntityRepository)
	audit, _, _ := newTestAudit()
	svc := NewDocumentService(mockDocRepo, mockTypeRepo, mockEntityRepo, audit)
	return svc, mockDocRepo, mockTypeRepo, mockEntityRepo
}

func TestDocumentService_CreateType(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	workspaceID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc, _, mockTypeRepo, _ := newDocumentService()

		mockTypeRepo.On("Create", ctx, mock.AnythingOfType("*domain.DocumentType")).Return(nil)

		dt, err := svc.CreateType(ctx, userID, workspaceID, domain.DocumentTypeCreate{
			Name: "Invoice",
			Schema: []domain.SchemaField{
				{Key: "invoice_number", Label: "Invoice Number", Kind: "string", Required: true},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Invoice", dt.Name)
	})

	t.Run("duplicate schema key", func(t *testing.T) {
		svc, _, _, _ := newDocumentService()

		_, err := svc.CreateType(ctx, userID, workspaceID, domain.DocumentTypeCreate{
			Name: "Invoice",
			Schema: []domain.SchemaField{
				{Key: "amount", Label: "Amount", Kind: "number"},
				{Key: "amount", Label: "Amount Again", Kind: "number"},
			},
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestDocumentService_Register(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	workspaceID := uuid.New()
	typeID := uuid.New()

	invoiceType := &domain.DocumentType{
		ID:          typeID,
		WorkspaceID: workspaceID,
		Name:        "Invoice",
		Schema: []domain.SchemaField{
			{Key: "invoice_number", Label: "Invoice Number", Kind: "string", Required: true},
			{Key: "notes", Label: "Notes", Kind: "string"},
		},
	}

	t.Run("success", func(t *testing.T) {
		svc, mockDocRepo, mockTypeRepo, _ := newDocumentService()

		mockTypeRepo.On("GetByID", ctx, typeID, workspaceID).Return(invoiceType, nil)
		mockDocRepo.On("Create", ctx, mock.AnythingOfType("*domain.Document")).Return(nil)

		doc, err := svc.Register(ctx, userID, workspaceID, domain.DocumentCreate{
			TypeID:   typeID,
			Name:     "invoice-42.pdf",
			FileKey:  "uploads/invoice-42.pdf",
			MimeType: "application/pdf",
			Metadata: map[string]any{"invoice_number": "INV-42"},
		})
		assert.NoError(t, err)
		assert.Equal(t, userID, doc.UploadedBy)
	})

	t.Run("unknown document type", func(t *testing.T) {
		svc, _, mockTypeRepo, _ := newDocumentService()

		mockTypeRepo.On("GetByID", ctx, typeID, workspaceID).Return(nil, nil)

		_, err := svc.Register(ctx, userID, workspaceID, domain.DocumentCreate{
			TypeID: typeID,
			Name:   "invoice-42.pdf",
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("missing required metadata", func(t *testing.T) {
		svc, _, mockTypeRepo, _ := newDocumentService()

		mockTypeRepo.On("GetByID", ctx, typeID, workspaceID).Return(invoiceType, nil)

		_, err := svc.Register(ctx, userID, workspaceID, domain.DocumentCreate{
			TypeID:   typeID,
			Name:     "invoice-42.pdf",
			Metadata: map[string]any{"notes": "no number"},
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("entity outside workspace", func(t *testing.T) {
		svc, _, mockTypeRepo, mockEntityRepo := newDocumentService()
		entityID := uuid.New()

		mockTypeRepo.On("GetByID", ctx, typeID, workspaceID).Return(invoiceType, nil)
		mockEntityRepo.On("GetByID", ctx, entityID, workspaceID).Return(nil, nil)

		_, err := svc.Register(ctx, userID, workspaceID, domain.DocumentCreate{
			TypeID:   typeID,
			Name:     "invoice-42.pdf",
			EntityID: &entityID,
			Metadata: map[string]any{"invoice_number": "INV-42"},
		})
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})
}

func TestDocumentService_ListExpiring(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	svc, mockDocRepo, _, _ := newDocumentService()

	mockDocRepo.On("ListExpiring", ctx, workspaceID, mock.AnythingOfType("time.Time")).
		Return([]domain.Document{}, nil)

	_, err := svc.ListExpiring(ctx, workspaceID, 0)
	assert.NoError(t, err)
	mockDocRepo.AssertExpectations(t)
}
