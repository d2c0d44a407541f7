package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/response"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/service"
)

// DocumentTypeHandler handles document type endpoints
type DocumentTypeHandler struct {
	documentService *service.DocumentService
}

// NewDocumentTypeHandler creates a new document type handler
func NewDocumentTypeHandler(documentService *service.DocumentService) *DocumentTypeHandler {
	return &DocumentTypeHandler{documentService: documentService}
}

// Create handles document type creation
func (h *DocumentTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	var input domain.DocumentTypeCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		if errors, ok := validationMessages(err); ok {
			response.BadRequest(w, errors)
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	docType, err := h.documentService.CreateType(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, docType)
}

// List returns the workspace's document types
func (h *DocumentTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	types, err := h.documentService.ListTypes(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, types)
}

// Get returns a single document type
func (h *DocumentTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "typeID")
	if !ok {
		response.BadRequest(w, "invalid document type ID")
		return
	}

	docType, err := h.documentService.GetType(r.Context(), id, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, docType)
}

// Update handles document type updates
func (h *DocumentTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "typeID")
	if !ok {
		response.BadRequest(w, "invalid document type ID")
		return
	}

	var input domain.DocumentTypeUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	docType, err := h.documentService.UpdateType(r.Context(), userID, id, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, docType)
}

// Delete handles document type deletion
func (h *DocumentTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "typeID")
	if !ok {
		response.BadRequest(w, "invalid document type ID")
		return
	}

	if err := h.documentService.DeleteType(r.Context(), userID, id, workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
