package leaverequest

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	redisClient *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("", middleware.RBACAuthorize(rbacService, "leave_request", "create"), handler.Create)
		requests.GET("", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_request", "read"), handler.GetByID)
		requests.POST("/:id/decide",
			middleware.RBACAuthorize(rbacService, "leave_request", "decide"),
			middleware.IdempotencyGuard(redisClient),
			handler.Decide,
		)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "leave_request", "cancel"), handler.Cancel)
	}
}
