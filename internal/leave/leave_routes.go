package leave

import (
	"github.com/logfretaulnay/hr-zen/internal/middleware"
	"github.com/logfretaulnay/hr-zen/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	roleSource middleware.RoleSource,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware(), middleware.ResolveRole(roleSource))
	{
		leaves.POST("",
			middleware.RBACAuthorize(rbacService, "leave", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListOwn)
		leaves.GET("/all", middleware.RBACAuthorize(rbacService, "leave", "read_all"), handler.ListAll)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.ListPending)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetByID)
		leaves.POST("/:id/decision", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.Decide)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave", "cancel"), handler.Cancel)
	}
}
