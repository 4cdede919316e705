package repositories

import (
	"context"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *courseModels.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error, "create order")
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]courseModels.Order, error) {
	var orders []courseModels.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&orders).Error
	return orders, translate(err, "list orders")
}
