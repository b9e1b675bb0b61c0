package auth

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		group.POST("/refresh", middleware.RateLimitByIP(0.2, 5), handler.Refresh)
		group.POST("/logout", handler.Logout)
		group.GET("/me", middleware.AuthMiddleware(), handler.Me)
		group.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "user", "create"),
			handler.Register,
		)
	}
}
