package enrollment

import (
	"context"
	"time"

	courseModels "learnhub/models/course"
	"learnhub/repositories"
	"learnhub/services/catalog"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type CartItemView struct {
	ID          string          `json:"id"`
	CourseID    string          `json:"course_id"`
	CourseTitle string          `json:"course_title"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	AddedAt     time.Time       `json:"added_at"`
}

type CartSummary struct {
	Items      []CartItemView  `json:"items"`
	ItemCount  int             `json:"item_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// AddToCart stores a pending enrollment with the course's current price.
func (s *Service) AddToCart(ctx context.Context, userID, courseID string) (courseModels.CartItem, error) {
	exists, err := s.catalog.CourseExists(ctx, courseID)
	if err != nil {
		return courseModels.CartItem{}, errors.Wrap(err, "check course")
	}
	if !exists {
		return courseModels.CartItem{}, ErrCourseNotFound
	}

	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return courseModels.CartItem{}, err
	}
	if enrolled {
		return courseModels.CartItem{}, ErrAlreadyEnrolled
	}

	inCart, err := s.carts.Exists(ctx, userID, courseID)
	if err != nil {
		return courseModels.CartItem{}, err
	}
	if inCart {
		return courseModels.CartItem{}, ErrAlreadyInCart
	}

	price, err := s.catalog.CoursePrice(ctx, courseID)
	if err != nil {
		return courseModels.CartItem{}, courseErr(err, "load price")
	}

	item := courseModels.CartItem{UserID: userID, CourseID: courseID, UnitPrice: price}
	if err := s.carts.Create(ctx, &item); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return courseModels.CartItem{}, ErrAlreadyInCart
		}
		return courseModels.CartItem{}, err
	}
	s.metrics.CartAdded()
	return item, nil
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, courseID string) error {
	return s.carts.Delete(ctx, userID, courseID)
}

// ListCart totals the prices captured at add time, not the current course prices.
func (s *Service) ListCart(ctx context.Context, userID string) (CartSummary, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return CartSummary{}, err
	}

	summary := CartSummary{Items: make([]CartItemView, 0, len(items)), TotalPrice: decimal.Zero}
	for _, item := range items {
		title, err := s.catalog.CourseTitle(ctx, item.CourseID)
		if err != nil && !errors.Is(err, catalog.ErrCourseNotFound) {
			return CartSummary{}, errors.Wrap(err, "load course title")
		}
		summary.Items = append(summary.Items, CartItemView{
			ID:          item.ID,
			CourseID:    item.CourseID,
			CourseTitle: title,
			UnitPrice:   item.UnitPrice,
			AddedAt:     item.CreatedAt,
		})
		summary.TotalPrice = summary.TotalPrice.Add(item.UnitPrice)
	}
	summary.ItemCount = len(summary.Items)
	return summary, nil
}

func (s *Service) ClearCart(ctx context.Context, userID string) error {
	return s.carts.DeleteByUser(ctx, userID)
}

// courseErr maps a missing course to ErrCourseNotFound and wraps anything else.
func courseErr(err error, op string) error {
	if errors.Is(err, catalog.ErrCourseNotFound) {
		return ErrCourseNotFound
	}
	return errors.Wrap(err, op)
}
