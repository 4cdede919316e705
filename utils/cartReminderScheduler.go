package utils

import (
	"context"
	"log"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

// CartReminderRunner sends reminders for carts idle longer than olderThan.
type CartReminderRunner interface {
	SendCartReminders(ctx context.Context, olderThan time.Duration) (int, error)
}

// InitializeCartReminderScheduler schedules RunCartReminders on spec and starts the cron.
// Callers stop the returned cron on shutdown.
func InitializeCartReminderScheduler(spec string, runner CartReminderRunner, olderThan time.Duration) (*cron.Cron, error) {
	log.Println("[CART-REMINDER] Initializing cart reminder scheduler...")

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Println("[CART-REMINDER] Running abandoned cart check...")
		RunCartReminders(context.Background(), runner, olderThan)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "schedule cart reminders %q", spec)
	}

	c.Start()
	log.Printf("[CART-REMINDER] Cart reminder scheduler started - runs on %q", spec)
	return c, nil
}

// RunCartReminders runs one reminder pass with a bounded deadline and logs the outcome.
func RunCartReminders(ctx context.Context, runner CartReminderRunner, olderThan time.Duration) int {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	sent, err := runner.SendCartReminders(ctx, olderThan)
	if err != nil {
		log.Printf("[CART-REMINDER] Error sending reminders after %d user(s): %v", sent, err)
		return sent
	}
	log.Printf("[CART-REMINDER] Sent reminders to %d user(s)", sent)
	return sent
}
