package project

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
	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware())
	{
		projects.POST("", middleware.RBACAuthorize(rbacService, "project", "create"), handler.Create)
		projects.GET("", middleware.RBACAuthorize(rbacService, "project", "read"), handler.GetAll)
		projects.GET("/:id", middleware.RBACAuthorize(rbacService, "project", "read"), handler.GetByID)
		projects.PUT("/:id", middleware.RBACAuthorize(rbacService, "project", "update"), handler.Update)
	}
}
