package repositories

import (
	"context"
	"time"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Create inserts the item. The (user_id, course_id) unique index turns a
// concurrent double add into ErrDuplicate.
func (r *CartRepository) Create(ctx context.Context, item *courseModels.CartItem) error {
	return translate(r.db.WithContext(ctx).Create(item).Error, "create cart item")
}

func (r *CartRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&courseModels.CartItem{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, translate(err, "count cart items")
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]courseModels.CartItem, error) {
	var items []courseModels.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	return items, translate(err, "list cart items")
}

func (r *CartRepository) Delete(ctx context.Context, userID, courseID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&courseModels.CartItem{}).Error
	return translate(err, "delete cart item")
}

func (r *CartRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&courseModels.CartItem{}).Error
	return translate(err, "delete cart items")
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&courseModels.CartItem{}).Error
	return translate(err, "clear cart")
}

// ListStale returns never-reminded items added before the cutoff.
func (r *CartRepository) ListStale(ctx context.Context, before time.Time) ([]courseModels.CartItem, error) {
	var items []courseModels.CartItem
	err := r.db.WithContext(ctx).
		Where("reminder_sent_at IS NULL AND created_at < ?", before).
		Order("user_id asc, created_at asc").
		Find(&items).Error
	return items, translate(err, "list stale cart items")
}

func (r *CartRepository) MarkReminded(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&courseModels.CartItem{}).
		Where("id IN ?", ids).
		Update("reminder_sent_at", at).Error
	return translate(err, "mark cart items reminded")
}
