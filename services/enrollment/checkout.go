package enrollment

import (
	"context"
	"log"
	"time"

	courseModels "learnhub/models/course"
	"learnhub/repositories"
	"learnhub/services/events"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type CheckoutItem struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
}

type CheckoutResult struct {
	EnrolledCourses int            `json:"enrolled_courses"`
	OrderDate       time.Time      `json:"order_date"`
	Items           []CheckoutItem `json:"items"`
	// Skipped lists courses the user already owned when checkout reached them.
	Skipped []string `json:"skipped,omitempty"`
	// Failed lists courses left in the cart because their enrollment could not be written.
	Failed  []string `json:"failed,omitempty"`
	OrderID string   `json:"order_id,omitempty"`
}

// Checkout converts every cart item into an enrollment. Items are processed
// independently: an item the user already owns is skipped, and an item whose
// insert fails stays in the cart for the next attempt. Calling it again is safe.
func (s *Service) Checkout(ctx context.Context, userID string) (CheckoutResult, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(items) == 0 {
		s.metrics.CheckoutDone("empty", 0)
		return CheckoutResult{}, ErrEmptyCart
	}

	now := s.now()
	result := CheckoutResult{OrderDate: now, Items: []CheckoutItem{}}
	var (
		settled   []string
		orderRows []courseModels.OrderItem
		created   []events.Event
		total     = decimal.Zero
		firstErr  error
	)

	for _, item := range items {
		enrollment, err := s.enroll(ctx, userID, item.CourseID, now)
		switch {
		case errors.Is(err, ErrAlreadyEnrolled):
			result.Skipped = append(result.Skipped, item.CourseID)
			settled = append(settled, item.ID)
			continue
		case err != nil:
			log.Printf("[CHECKOUT] user %s course %s: %v", userID, item.CourseID, err)
			result.Failed = append(result.Failed, item.CourseID)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		settled = append(settled, item.ID)
		title, err := s.catalog.CourseTitle(ctx, item.CourseID)
		if err != nil {
			log.Printf("[CHECKOUT] title for course %s: %v", item.CourseID, err)
		}
		result.Items = append(result.Items, CheckoutItem{CourseID: item.CourseID, Title: title})
		orderRows = append(orderRows, courseModels.OrderItem{CourseID: item.CourseID, Title: title, Price: item.UnitPrice})
		total = total.Add(item.UnitPrice)
		created = append(created, events.Event{
			Type:       events.TypeEnrollmentCreated,
			Key:        userID,
			OccurredAt: now,
			Payload:    events.EnrollmentCreated{EnrollmentID: enrollment.ID, UserID: userID, CourseID: item.CourseID},
		})
	}
	result.EnrolledCourses = len(result.Items)

	if len(result.Failed) == len(items) {
		s.metrics.CheckoutDone("error", 0)
		return CheckoutResult{}, firstErr
	}

	if len(result.Failed) == 0 {
		err = s.ClearCart(ctx, userID)
	} else {
		err = s.carts.DeleteByIDs(ctx, userID, settled)
	}
	if err != nil {
		return CheckoutResult{}, errors.Wrap(err, "clear cart")
	}

	if result.EnrolledCourses > 0 {
		order := courseModels.Order{
			UserID:          userID,
			OrderDate:       now,
			EnrolledCourses: result.EnrolledCourses,
			TotalPrice:      total,
			Items:           orderRows,
		}
		if err := s.orders.Create(ctx, &order); err != nil {
			log.Printf("[CHECKOUT] order receipt for user %s: %v", userID, err)
		} else {
			result.OrderID = order.ID
		}
		s.publish(ctx, created...)
		s.confirmEnrollment(ctx, userID, result.Items)
	}

	if len(result.Failed) > 0 {
		s.metrics.CheckoutDone("partial", result.EnrolledCourses)
	} else {
		s.metrics.CheckoutDone("ok", result.EnrolledCourses)
	}
	log.Printf("[CHECKOUT] user %s enrolled in %d course(s), skipped %d, failed %d",
		userID, result.EnrolledCourses, len(result.Skipped), len(result.Failed))
	return result, nil
}

func (s *Service) confirmEnrollment(ctx context.Context, userID string, items []CheckoutItem) {
	if s.notifier == nil {
		return
	}
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	if err := s.notifier.EnrollmentConfirmed(ctx, userID, titles); err != nil {
		log.Printf("[CHECKOUT] notify user %s: %v", userID, err)
	}
}

// enroll creates the enrollment unless the pair already has one.
func (s *Service) enroll(ctx context.Context, userID, courseID string, at time.Time) (courseModels.Enrollment, error) {
	exists, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return courseModels.Enrollment{}, err
	}
	if exists {
		return courseModels.Enrollment{}, ErrAlreadyEnrolled
	}

	enrollment := courseModels.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: at}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return courseModels.Enrollment{}, ErrAlreadyEnrolled
		}
		return courseModels.Enrollment{}, err
	}
	return enrollment, nil
}

// IsEnrolled reports whether the user holds an enrollment for the course.
func (s *Service) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	return s.enrollments.Exists(ctx, userID, courseID)
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]courseModels.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
