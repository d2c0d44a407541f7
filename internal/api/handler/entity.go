package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/response"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/service"
)

// EntityHandler handles entity endpoints
type EntityHandler struct {
	entityService *service.EntityService
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(entityService *service.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// Create handles entity creation
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	var input domain.EntityCreate
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

	entity, err := h.entityService.Create(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, entity)
}

// List returns the workspace's entities
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	entities, err := h.entityService.List(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entities)
}

// Get returns a single entity
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "entityID")
	if !ok {
		response.BadRequest(w, "invalid entity ID")
		return
	}

	entity, err := h.entityService.GetByID(r.Context(), id, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entity)
}

// Update handles entity updates
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "entityID")
	if !ok {
		response.BadRequest(w, "invalid entity ID")
		return
	}

	var input domain.EntityUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	entity, err := h.entityService.Update(r.Context(), userID, id, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entity)
}

// Delete handles entity deletion
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	id, ok := parseUUIDParam(r, "entityID")
	if !ok {
		response.BadRequest(w, "invalid entity ID")
		return
	}

	if err := h.entityService.Delete(r.Context(), userID, id, workspaceID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
