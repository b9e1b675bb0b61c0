package ledger

import (
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/response"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("ledger.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func yearParam(c *gin.Context) int {
	year, err := strconv.Atoi(c.DefaultQuery("year", ""))
	if err != nil || year < 1 {
		return time.Now().UTC().Year()
	}
	return year
}

// GetMine returns the calling employee's balances for the requested year.
func (h *Handler) GetMine(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.GetString("employee_id")

	resp, err := h.service.GetBalances(ctx, employeeID, yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetByEmployee returns another employee's balances; route-level rbac keeps
// this to managers and admins.
func (h *Handler) GetByEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID := c.Param("employee_id")

	resp, err := h.service.GetBalances(ctx, employeeID, yearParam(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
