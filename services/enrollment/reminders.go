package enrollment

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// SendCartReminders notifies every user whose cart holds items older than
// olderThan that were never reminded, then stamps those items. It returns the
// number of users notified.
func (s *Service) SendCartReminders(ctx context.Context, olderThan time.Duration) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}
	now := s.now()
	stale, err := s.carts.ListStale(ctx, now.Add(-olderThan))
	if err != nil {
		return 0, err
	}

	type pending struct {
		itemIDs []string
		titles  []string
	}
	byUser := make(map[string]*pending)
	for _, item := range stale {
		p, ok := byUser[item.UserID]
		if !ok {
			p = &pending{}
			byUser[item.UserID] = p
		}
		title, err := s.catalog.CourseTitle(ctx, item.CourseID)
		if err != nil {
			log.Printf("[CART-REMINDER] title for course %s: %v", item.CourseID, err)
			continue
		}
		p.itemIDs = append(p.itemIDs, item.ID)
		p.titles = append(p.titles, title)
	}

	users := make([]string, 0, len(byUser))
	for userID := range byUser {
		users = append(users, userID)
	}
	sort.Strings(users)

	sent := 0
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return sent, errors.Wrap(err, "cart reminders interrupted")
		}
		p := byUser[userID]
		if len(p.itemIDs) == 0 {
			continue
		}
		if err := s.notifier.CartReminder(ctx, userID, p.titles); err != nil {
			log.Printf("[CART-REMINDER] notify user %s: %v", userID, err)
			continue
		}
		if err := s.carts.MarkReminded(ctx, p.itemIDs, now); err != nil {
			return sent, err
		}
		sent++
	}
	s.metrics.RemindersSent(sent)
	return sent, nil
}
