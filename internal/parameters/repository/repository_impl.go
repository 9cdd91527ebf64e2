package repository

import (
	"context"

	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) paramdomain.Repository {
	return &repository{db: db}
}

func (r *repository) ListByYear(ctx context.Context, fiscalYear int) ([]paramdomain.FiscalParameter, error) {
	var items []paramdomain.FiscalParameter
	err := r.db.WithContext(ctx).
		Model(&paramdomain.FiscalParameter{}).
		Where("fiscal_year = ?", fiscalYear).
		Order("param_key ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
