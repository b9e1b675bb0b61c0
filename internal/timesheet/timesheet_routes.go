package timesheet

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
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.POST("", middleware.RBACAuthorize(rbacService, "time_entry", "create"), handler.Create)
		entries.GET("", middleware.RBACAuthorize(rbacService, "time_entry", "read"), handler.GetAll)
		entries.GET("/:id", middleware.RBACAuthorize(rbacService, "time_entry", "read"), handler.GetByID)
		entries.PUT("/:id", middleware.RBACAuthorize(rbacService, "time_entry", "update"), handler.Update)
		entries.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "time_entry", "submit"), handler.Submit)
		entries.POST("/:id/decide",
			middleware.RBACAuthorize(rbacService, "time_entry", "decide"),
			middleware.IdempotencyGuard(redisClient),
			handler.Decide,
		)
		entries.POST("/bulk-decide",
			middleware.RBACAuthorize(rbacService, "time_entry", "bulk_decide"),
			middleware.IdempotencyGuard(redisClient),
			handler.BulkDecide,
		)
		entries.DELETE("/:id", middleware.RBACAuthorize(rbacService, "time_entry", "delete"), handler.Delete)
	}
}
