package project

import (
	"context"
	"errors"
	"net/http"

	"go-workforce/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrProjectNotFound = apperror.New(
	apperror.CodeNotFound,
	"project not found",
	http.StatusNotFound,
)

type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	p := &Project{
		ID:              uuid.New(),
		Name:            req.Name,
		Code:            req.Code,
		BillableDefault: req.BillableDefault,
		Active:          true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create project failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("project created",
		zap.String("project_id", p.ID.String()),
		zap.String("code", p.Code),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectResponse{}, ErrProjectNotFound
		}
		return ProjectResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProjectResponse{}, ErrProjectNotFound
		}
		return ProjectResponse{}, err
	}

	p.Name = req.Name
	p.Code = req.Code
	p.BillableDefault = req.BillableDefault
	p.Active = req.Active

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update project failed",
			zap.String("project_id", id),
			zap.Error(err),
		)
		return ProjectResponse{}, err
	}

	s.logger.Info("project updated", zap.String("project_id", id))
	return mapToResponse(*p), nil
}

func mapToResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Code:            p.Code,
		BillableDefault: p.BillableDefault,
		Active:          p.Active,
	}
}
