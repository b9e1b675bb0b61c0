package app

import (
	"database/sql"

	"go-workforce/internal/auth"
	"go-workforce/internal/employee"
	"go-workforce/internal/leavecategory"
	"go-workforce/internal/leaverequest"
	"go-workforce/internal/ledger"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/notification"
	"go-workforce/internal/project"
	"go-workforce/internal/rbac"
	"go-workforce/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	ledgerRepo := ledger.NewRepository(gormDB, db)
	timesheetRepo := timesheet.NewRepository(gormDB, db)
	leaveRequestRepo := leaverequest.NewRepository(gormDB, db)
	notificationRepo := notification.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB, db)
	leaveCategoryRepo := leavecategory.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	dispatcher := notification.NewDispatcher(notificationRepo, outboxRepo)
	ledgerService := ledger.NewService(ledgerRepo)
	timesheetService := timesheet.NewService(timesheetRepo, dispatcher)
	leaveRequestService := leaverequest.NewService(db, leaveRequestRepo, ledgerService, dispatcher)
	notificationService := notification.NewService(notificationRepo)
	employeeService := employee.NewService(db, employeeRepo, ledgerService, outboxRepo, rdb)
	leaveCategoryService := leavecategory.NewService(leaveCategoryRepo)
	projectService := project.NewService(projectRepo)
	authService := auth.NewService(authRepo, employeeRepo)

	// --- Handlers ---
	ledgerHandler := ledger.NewHandler(ledgerService)
	timesheetHandler := timesheet.NewHandler(timesheetService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)
	notificationHandler := notification.NewHandler(notificationService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveCategoryHandler := leavecategory.NewHandler(leaveCategoryService)
	projectHandler := project.NewHandler(projectService)
	authHandler := auth.NewHandler(authService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService, rdb)
		leaverequest.RegisterRoutes(api, leaveRequestHandler, rbacService, rdb)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavecategory.RegisterRoutes(api, leaveCategoryHandler, rbacService)
		project.RegisterRoutes(api, projectHandler, rbacService)
	}

	return nil
}
