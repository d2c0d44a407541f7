package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/api/response"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/domain"
	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/service"
)

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns the workspace's audit trail, newest first
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestContext(w, r)
	if !ok {
		return
	}

	filter, err := parseAuditFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if filter.Limit <= 0 {
		filter.Limit = service.DefaultAuditPageSize
	}

	logs, total, err := h.auditService.List(r.Context(), workspaceID, filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if logs == nil {
		logs = []domain.AuditLogEntry{}
	}

	response.OK(w, map[string]any{
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
		"logs":   logs,
	})
}

func parseAuditFilter(r *http.Request) (domain.AuditLogFilter, error) {
	var filter domain.AuditLogFilter
	q := r.URL.Query()

	if raw := q.Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domain.Validation("invalid userId filter")
		}
		filter.UserID = &id
	}
	if raw := q.Get("action"); raw != "" {
		action := domain.AuditAction(raw)
		filter.Action = &action
	}
	if raw := q.Get("targetType"); raw != "" {
		filter.TargetType = &raw
	}
	if raw := q.Get("targetId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, domain.Validation("invalid targetId filter")
		}
		filter.TargetID = &id
	}
	if raw := q.Get("fromDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.Validation("fromDate must be RFC3339")
		}
		filter.FromDate = &t
	}
	if raw := q.Get("toDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, domain.Validation("toDate must be RFC3339")
		}
		filter.ToDate = &t
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
