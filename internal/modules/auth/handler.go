package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/middleware"
	"github.com/nilehomes/landing/internal/pkg/response"
	"github.com/nilehomes/landing/internal/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts /auth under rg. loginGuard runs before the login handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, loginGuard gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/login", loginGuard, h.login)
	a.GET("/verify", authMW, h.verify)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := validate.Bind(c, &dto); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, loginResponse{Token: res.Token, User: toUserResponse(res.User)})
}

func (h *Handler) verify(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Access token required")
		return
	}
	response.OK(c, verifyResponse{
		Valid: true,
		User:  userResponse{ID: p.UserID, Email: p.Email, Role: p.Role},
	})
}
