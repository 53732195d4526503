package lead

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/pkg/apperr"
	"github.com/nilehomes/landing/internal/pkg/metrics"
	"github.com/nilehomes/landing/internal/pkg/response"
	"github.com/nilehomes/landing/internal/pkg/validate"
)

type Handler struct {
	svc     *Service
	metrics *metrics.Metrics
}

// NewHandler builds the lead handler. m may be nil.
func NewHandler(svc *Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

// RegisterRoutes mounts the public form endpoint and the admin lead routes under rg.
// submitGuards run in order before the public create handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, submitGuards ...gin.HandlerFunc) {
	rg.POST("/leads", append(submitGuards, h.create)...)

	a := rg.Group("/admin/leads", authMW)
	a.GET("", h.list)
	a.GET("/export/csv", h.export)
	a.GET("/:id", h.get)
	a.PATCH("/:id/status", h.updateStatus)
	a.PATCH("/:id", h.update)
	a.DELETE("/:id", h.delete)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Invalid("id", "must be a positive integer")
	}
	return uint(id), nil
}

// create decodes before validating so a filled honeypot is rejected without field details.
func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := validate.Decode(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	if dto.Honeypot != "" {
		h.metrics.LeadSubmitted(metrics.LeadRejected)
		response.Error(c, apperr.ErrRejected)
		return
	}
	if err := validate.Struct(dto); err != nil {
		h.metrics.LeadSubmitted(metrics.LeadInvalid)
		response.Error(c, err)
		return
	}
	l, err := h.svc.Create(c.Request.Context(), dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.LeadSubmitted(metrics.LeadCreated)
	response.Created(c, createResponse{Message: "Thank you! We will contact you soon.", LeadID: l.ID})
}

func (h *Handler) list(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]leadResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	response.OK(c, out)
}

func (h *Handler) get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	l, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(l))
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var dto StatusDTO
	if err := validate.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	l, err := h.svc.UpdateStatus(c.Request.Context(), id, dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(l))
}

func (h *Handler) update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var dto UpdateDTO
	if err := validate.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, dto); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Lead updated")
}

func (h *Handler) delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Lead deleted")
}

// export renders the whole document before any header is written.
func (h *Handler) export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request.Context(), &buf); err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=leads-%d.csv", time.Now().Unix()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
