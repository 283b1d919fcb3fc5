package profile

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
	profiles := r.Group("/profiles")
	profiles.Use(middleware.AuthMiddleware(), middleware.ResolveRole(roleSource))
	{
		profiles.GET("/me", middleware.RBACAuthorize(rbacService, "profile", "read"), handler.GetMe)
		profiles.PUT("/me", middleware.RBACAuthorize(rbacService, "profile", "update"), handler.UpdateMe)
		profiles.GET("", middleware.RBACAuthorize(rbacService, "profile", "manage"), handler.GetAll)
		profiles.PUT("/:id", middleware.RBACAuthorize(rbacService, "profile", "manage"), handler.AdminUpdate)
	}
}
