package project

import (
	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/pkg/response"
	"github.com/nilehomes/landing/internal/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public catalogue under rg and the admin CRUD under rg/admin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/projects", h.list)
	rg.GET("/projects/:slug", h.get)

	a := rg.Group("/admin/projects", authMW)
	a.GET("", h.list)
	a.GET("/:slug", h.get)
	a.POST("", h.create)
	a.PUT("/:slug", h.update)
	a.DELETE("/:slug", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponses(projects))
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) create(c *gin.Context) {
	var dto ProjectDTO
	if err := validate.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, createResponse{Message: "Project created", ID: p.ID, Slug: p.Slug})
}

func (h *Handler) update(c *gin.Context) {
	var dto ProjectDTO
	if err := validate.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("slug"), dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toResponse(p))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Project deleted")
}
