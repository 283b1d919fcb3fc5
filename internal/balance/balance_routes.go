package balance

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware(), middleware.ResolveRole(roleSource))
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "balance", "read"), handler.GetOwn)
		balances.GET("/:user_id", middleware.RBACAuthorize(rbacService, "balance", "read_all"), handler.GetForUser)
		balances.PUT("/:user_id/allotments", middleware.RBACAuthorize(rbacService, "balance", "manage"), handler.SetAllotment)
	}
}
