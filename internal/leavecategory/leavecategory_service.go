package leavecategory

import (
	"context"
	"errors"
	"net/http"

	"go-workforce/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrCategoryNotFound = apperror.New(
	apperror.CodeNotFound,
	"leave category not found",
	http.StatusNotFound,
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveCategoryRequest) (LeaveCategoryResponse, error)
	GetAll(ctx context.Context) ([]LeaveCategoryResponse, error)
	GetByID(ctx context.Context, id string) (LeaveCategoryResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveCategoryRequest) (LeaveCategoryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavecategory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavecategory.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveCategoryRequest) (LeaveCategoryResponse, error) {
	lc := &LeaveCategory{
		ID:                 uuid.New(),
		Name:               req.Name,
		Paid:               req.Paid,
		ApprovalRequired:   req.ApprovalRequired,
		AttachmentRequired: req.AttachmentRequired,
		DefaultAllocation:  decimal.NewFromFloat(req.DefaultAllocation),
		Active:             true,
	}
	if err := s.repo.Create(ctx, lc); err != nil {
		s.logger.Error("create leave category failed", zap.Error(err))
		return LeaveCategoryResponse{}, err
	}

	s.logger.Info("leave category created",
		zap.String("category_id", lc.ID.String()),
		zap.String("name", lc.Name),
	)
	return mapToResponse(*lc), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveCategoryResponse, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveCategoryResponse, len(categories))
	for i, lc := range categories {
		resp[i] = mapToResponse(lc)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveCategoryResponse, error) {
	lc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveCategoryResponse{}, ErrCategoryNotFound
		}
		return LeaveCategoryResponse{}, err
	}
	return mapToResponse(*lc), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveCategoryRequest) (LeaveCategoryResponse, error) {
	lc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveCategoryResponse{}, ErrCategoryNotFound
		}
		return LeaveCategoryResponse{}, err
	}

	lc.Name = req.Name
	lc.Paid = req.Paid
	lc.ApprovalRequired = req.ApprovalRequired
	lc.AttachmentRequired = req.AttachmentRequired
	lc.DefaultAllocation = decimal.NewFromFloat(req.DefaultAllocation)
	lc.Active = req.Active

	if err := s.repo.Update(ctx, lc); err != nil {
		s.logger.Error("update leave category failed",
			zap.String("category_id", id),
			zap.Error(err),
		)
		return LeaveCategoryResponse{}, err
	}

	s.logger.Info("leave category updated", zap.String("category_id", id))
	return mapToResponse(*lc), nil
}

func mapToResponse(lc LeaveCategory) LeaveCategoryResponse {
	return LeaveCategoryResponse{
		ID:                 lc.ID.String(),
		Name:               lc.Name,
		Paid:               lc.Paid,
		ApprovalRequired:   lc.ApprovalRequired,
		AttachmentRequired: lc.AttachmentRequired,
		DefaultAllocation:  lc.DefaultAllocation.String(),
		Active:             lc.Active,
	}
}
