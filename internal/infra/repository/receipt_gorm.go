package repository

import (
	"context"

	"kiosk/internal/domain/model"
	repo "kiosk/internal/repository"

	"gorm.io/gorm"
)

type receiptGormRepository struct {
	db *gorm.DB
}

func NewReceiptGormRepository(db *gorm.DB) repo.ReceiptRepository {
	return &receiptGormRepository{db: db}
}

func (r *receiptGormRepository) Create(ctx context.Context, rc model.Receipt) error {
	if err := r.db.WithContext(ctx).Create(&rc).Error; err != nil {
		return err
	}
	return nil
}

func (r *receiptGormRepository) List(ctx context.Context, filter repo.ReceiptFilter) ([]model.Receipt, error) {
	q := r.db.WithContext(ctx).Model(&model.Receipt{})

	if filter.SessionID != nil {
		q = q.Where("session_id = ?", *filter.SessionID)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}

	//新しい順
	q = q.Order("created_at DESC")

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	q = q.Limit(limit).Offset(filter.Offset)

	var out []model.Receipt
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
