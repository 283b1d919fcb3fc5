package notification

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
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(), middleware.ResolveRole(roleSource))
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.List)
		notifications.GET("/unread-count", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.UnreadCount)
		notifications.POST("/:id/read", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkRead)
		notifications.POST("/read-all", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkAllRead)
	}
}
