package lead

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leadcrm/internal/pkg/response"
	"leadcrm/internal/pkg/validator"
)

// Handler handles lead HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListLeads handles GET /api/v1/leads?q=&page=
func (h *Handler) ListLeads(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(c, http.StatusBadRequest, "INVALID_PAGE", "Page must be a positive integer")
			return
		}
		page = parsed
	}

	result, err := h.service.FetchPage(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch leads")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetLead handles GET /api/v1/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	l, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch lead")
		return
	}

	response.Success(c, http.StatusOK, l)
}

// CreateLead handles POST /api/v1/leads
func (h *Handler) CreateLead(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid lead", errs)
		return
	}

	l, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create lead")
		return
	}

	response.Success(c, http.StatusCreated, l)
}

// UpdateLead handles PUT /api/v1/leads/:id
func (h *Handler) UpdateLead(c *gin.Context) {
	var req UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid lead", errs)
		return
	}

	l, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update lead")
		return
	}

	response.Success(c, http.StatusOK, l)
}

// DeleteLead handles DELETE /api/v1/leads/:id
func (h *Handler) DeleteLead(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete lead")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ImportLeads handles POST /api/v1/leads/import. The CSV can arrive either
// as a multipart "file" part or as the raw request body.
func (h *Handler) ImportLeads(c *gin.Context) {
	raw, ok := readImportBody(c)
	if !ok {
		return
	}

	result, err := h.service.Import(c.Request.Context(), raw)
	if err != nil {
		var missing *MissingColumnsError
		switch {
		case errors.As(err, &missing):
			response.Error(c, http.StatusBadRequest, "MISSING_COLUMNS", missing.Error())
		case errors.Is(err, ErrNoValidLeads):
			response.Error(c, http.StatusBadRequest, "NO_VALID_LEADS", ErrNoValidLeads.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to import leads")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ExportLeads handles GET /api/v1/leads/export?q=
func (h *Handler) ExportLeads(c *gin.Context) {
	filename, data, err := h.service.Export(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export leads")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(data))
}

// GetStats handles GET /api/v1/leads/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}

func readImportBody(c *gin.Context) (string, bool) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_FILE", "Failed to open uploaded file")
			return "", false
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_FILE", "Failed to read uploaded file")
			return "", false
		}
		return string(data), true
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		response.Error(c, http.StatusBadRequest, "EMPTY_BODY", "Missing CSV content")
		return "", false
	}
	return string(data), true
}
