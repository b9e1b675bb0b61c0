package leavecategory

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, lc *LeaveCategory) error
	FindAll(ctx context.Context) ([]LeaveCategory, error)
	FindByID(ctx context.Context, id string) (*LeaveCategory, error)
	Update(ctx context.Context, lc *LeaveCategory) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lc *LeaveCategory) error {
	return r.db.WithContext(ctx).Create(lc).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveCategory, error) {
	var categories []LeaveCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveCategory, error) {
	var lc LeaveCategory
	err := r.db.WithContext(ctx).First(&lc, "id = ?", id).Error
	return &lc, err
}

func (r *repository) Update(ctx context.Context, lc *LeaveCategory) error {
	return r.db.WithContext(ctx).Save(lc).Error
}
