package settings

import (
	"github.com/logfretaulnay/hr-zen/internal/middleware"
	"github.com/logfretaulnay/hr-zen/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	roleSource middleware.RoleSource,
) {
	group := r.Group("/settings")
	group.Use(middleware.AuthMiddleware(), middleware.ResolveRole(roleSource))
	{
		group.GET("/branding", middleware.RBACAuthorize(rbacService, "settings", "read"), handler.GetBranding)
		group.PUT("/branding", middleware.RBACAuthorize(rbacService, "settings", "manage"), handler.UpdateBranding)
	}
}
