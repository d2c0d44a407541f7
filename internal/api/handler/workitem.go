package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/response"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/service"
)

// WorkItemHandler handles work item endpoints
type WorkItemHandler struct {
	workItemService *service.WorkItemService
}

// NewWorkItemHandler creates a new work item handler
func NewWorkItemHandler(workItemService *service.WorkItemService) *WorkItemHandler {
	return &WorkItemHandler{workItemService: workItemService}
}

// Create handles work item creation
func (h *WorkItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	var input domain.WorkItemCreate
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

	item, err := h.workItemService.Create(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, item)
}

// List returns the workspace's work items, optionally filtered
func (h *WorkItemHandler) List(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	filter, err := parseWorkItemFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	items, err := h.workItemService.List(r.Context(), workspaceID, filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, items)
}

func parseWorkItemFilter(r *http.Request) (domain.WorkItemFilter, error) {
	var filter domain.WorkItemFilter
	q := r.URL.Query()

	if status := q.Get("status"); status != "" {
		s := domain.WorkItemStatus(status)
		filter.Status = &s
	}
	if raw := q.Get("entityId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domain.Validation("invalid entityId filter")
		}
		filter.EntityID = &id
	}
	if raw := q.Get("assigneeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domain.Validation("invalid assigneeId filter")
		}
		filter.AssigneeID = &id
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, domain.Validation("limit must be a positive integer")
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, domain.Validation("offset must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}

// Get returns a single work item
func (h *WorkItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "itemID")
	if !ok {
		response.BadRequest(w, "invalid work item ID")
		return
	}

	item, err := h.workItemService.GetByID(r.Context(), id, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, item)
}

// Update handles work item field updates. Status is not updatable here;
// use the status endpoint.
func (h *WorkItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "itemID")
	if !ok {
		response.BadRequest(w, "invalid work item ID")
		return
	}

	var input domain.WorkItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	item, err := h.workItemService.Update(r.Context(), userID, id, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, item)
}

// Transition moves a work item to a new status
func (h *WorkItemHandler) Transition(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "itemID")
	if !ok {
		response.BadRequest(w, "invalid work item ID")
		return
	}

	var input struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.workItemService.Transition(r.Context(), userID, id, workspaceID, domain.WorkItemStatus(input.Status))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, item)
}

// Delete handles work item deletion
func (h *WorkItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "itemID")
	if !ok {
		response.BadRequest(w, "invalid work item ID")
		return
	}

	if err := h.workItemService.Delete(r.Context(), userID, id, workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// LinkDocument attaches a document to a work item
func (h *WorkItemHandler) LinkDocument(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "itemID")
	if !ok {
		response.BadRequest(w, "invalid work item ID")
		return
	}

	var input struct {
		DocumentID uuid.UUID `json:"documentId" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if input.DocumentID == uuid.Nil {
		response.BadRequest(w, "documentId is required")
		return
	}

	link, err := h.workItemService.LinkDocument(r.Context(), userID, id, workspaceID, input.DocumentID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, link)
}

// UnlinkDocument detaches a document from a work item
func (h *WorkItemHandler) UnlinkDocument(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "itemID")
	if !ok {
		response.BadRequest(w, "invalid work item ID")
		return
	}

	documentID, ok := parseUUIDParam(r, "documentID")
	if !ok {
		response.BadRequest(w, "invalid document ID")
		return
	}

	if err := h.workItemService.UnlinkDocument(r.Context(), userID, id, workspaceID, documentID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// ListDocuments returns the documents linked to a work item
func (h *WorkItemHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "itemID")
	if !ok {
		response.BadRequest(w, "invalid work item ID")
		return
	}

	documents, err := h.workItemService.ListDocuments(r.Context(), id, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, documents)
}
