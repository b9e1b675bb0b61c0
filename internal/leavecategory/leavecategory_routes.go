package leavecategory

import (
	"go-workforce/internal/middleware"
	"go-workforce/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	categories := r.Group("/leave-categories")
	categories.Use(middleware.AuthMiddleware())
	{
		categories.POST("", middleware.RBACAuthorize(rbacService, "leave_category", "create"), handler.Create)
		categories.GET("", middleware.RBACAuthorize(rbacService, "leave_category", "read"), handler.GetAll)
		categories.GET("/:id", middleware.RBACAuthorize(rbacService, "leave_category", "read"), handler.GetByID)
		categories.PUT("/:id", middleware.RBACAuthorize(rbacService, "leave_category", "update"), handler.Update)
	}
}
