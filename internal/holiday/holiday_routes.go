package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(), middleware.ResolveRole(roleSource))
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.GetAll)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Create)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Update)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "manage"), handler.Delete)
	}
}
