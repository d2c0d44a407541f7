package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/response"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/service"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Register records an uploaded document
func (h *DocumentHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	var input domain.DocumentCreate
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

	document, err := h.documentService.Register(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, document)
}

// List returns the workspace's documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	documents, err := h.documentService.List(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, documents)
}

// Get returns a single document
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "documentID")
	if !ok {
		response.BadRequest(w, "invalid document ID")
		return
	}

	document, err := h.documentService.GetByID(r.Context(), id, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, document)
}

// Expiring returns documents expiring within ?days=N (default 30)
func (h *DocumentHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "days must be a positive integer")
			return
		}
		days = parsed
	}

	documents, err := h.documentService.ListExpiring(r.Context(), workspaceID, days)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, documents)
}

// Delete handles document deletion
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "documentID")
	if !ok {
		response.BadRequest(w, "invalid document ID")
		return
	}

	if err := h.documentService.Delete(r.Context(), userID, id, workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
