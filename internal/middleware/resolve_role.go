package middleware

import (
	"context"

	"github.com/logfretaulnay/hr-zen/internal/role"
	"github.com/logfretaulnay/hr-zen/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoleSource is a local interface so this package does not depend on the
// profile module. The profile repository satisfies it.
type RoleSource interface {
	RoleByUserID(ctx context.Context, userID string) (string, error)
}

// ResolveRole computes the effective role from the token metadata role and the
// stored profile role. A failed profile lookup degrades to the metadata value
// or the default instead of blocking the request.
func ResolveRole(src RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		metadataRole := c.GetString("metadata_role")

		profileRole := ""
		if src != nil {
			r, err := src.RoleByUserID(c.Request.Context(), userID)
			if err != nil {
				zap.L().Named("middleware.resolve_role").Debug("profile role lookup failed, degrading",
					zap.String("user_id", userID),
					zap.Error(err),
				)
			} else {
				profileRole = r
			}
		}

		res := role.Resolve(metadataRole, profileRole)
		c.Set("role", string(res.Role))
		c.Set("role_source", string(res.Source))

		ctx := contextutil.WithRole(c.Request.Context(), string(res.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
