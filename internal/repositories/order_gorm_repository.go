package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
)

type GORMOrderRepository struct {
	db *gorm.DB
}

func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return gormErr(err, "failed to create order")
	}
	return nil
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, gormErr(err, "order with ID %s", id)
	}
	return &o, nil
}

func (r *GORMOrderRepository) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	if err := scope(r.db.WithContext(ctx)).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("user_id = ?", userID).Order("created_at ASC")
	})
}

func (r *GORMOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q.Order("created_at ASC") })
}

func (r *GORMOrderRepository) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q.Order("created_at DESC").Limit(limit) })
}

func (r *GORMOrderRepository) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).
		Select("is_paid", "paid_at", "payment_result", "is_delivered", "delivered_at", "tracking_number", "updated_at").
		Updates(order)
	if res.Error != nil {
		return gormErr(res.Error, "failed to update order %s", order.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for update: %w", order.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMOrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

func (r *GORMOrderRepository) PaidRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum paid orders: %w", err)
	}
	return total, nil
}
