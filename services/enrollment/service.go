// Package enrollment is the enrollment lifecycle engine: the cart ledger, the
// checkout converter, the progress ledger with its completion calculator, and
// certificate issuance and verification.
package enrollment

import (
	"context"
	"log"
	"time"

	courseModels "learnhub/models/course"
	"learnhub/services/catalog"
	"learnhub/services/events"
	"learnhub/services/metrics"
)

const defaultFallbackWorkload = 20

type CartStore interface {
	Create(ctx context.Context, item *courseModels.CartItem) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]courseModels.CartItem, error)
	Delete(ctx context.Context, userID, courseID string) error
	DeleteByIDs(ctx context.Context, userID string, ids []string) error
	DeleteByUser(ctx context.Context, userID string) error
	ListStale(ctx context.Context, before time.Time) ([]courseModels.CartItem, error)
	MarkReminded(ctx context.Context, ids []string, at time.Time) error
}

type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *courseModels.Enrollment) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (courseModels.Enrollment, error)
	FindByCertificateHash(ctx context.Context, hash string) (courseModels.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]courseModels.Enrollment, error)
	// SetCertificateHash writes the hash only while the slot is empty and
	// reports whether this call won the write.
	SetCertificateHash(ctx context.Context, enrollmentID, hash string, issuedAt time.Time) (bool, error)
}

type ProgressStore interface {
	Find(ctx context.Context, userID, classID string) (courseModels.ClassProgress, error)
	Create(ctx context.Context, mark *courseModels.ClassProgress) error
	Delete(ctx context.Context, userID, classID string) error
	CountCompleted(ctx context.Context, userID string, classIDs []string) (int64, error)
	CompletedClassIDs(ctx context.Context, userID string, classIDs []string) ([]string, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *courseModels.Order) error
	ListByUser(ctx context.Context, userID string) ([]courseModels.Order, error)
}

// Notifier delivers user-facing messages. Failures are logged, never returned to callers.
type Notifier interface {
	EnrollmentConfirmed(ctx context.Context, userID string, courseTitles []string) error
	CertificateIssued(ctx context.Context, userID string, proof CertificateProof) error
	CartReminder(ctx context.Context, userID string, courseTitles []string) error
}

type Options struct {
	Events   events.Publisher
	Notifier Notifier
	Metrics  *metrics.Metrics
	// FallbackWorkload is reported as workload hours for a course with no classes.
	FallbackWorkload int
	// Token generates certificate hashes; defaults to a random BLAKE2b token.
	Token func(enrollmentID string) (string, error)
	Now   func() time.Time
}

type Service struct {
	carts       CartStore
	enrollments EnrollmentStore
	progress    ProgressStore
	orders      OrderStore
	catalog     catalog.Catalog
	identity    catalog.Identity

	events           events.Publisher
	notifier         Notifier
	metrics          *metrics.Metrics
	fallbackWorkload int
	token            func(enrollmentID string) (string, error)
	now              func() time.Time
}

func NewService(
	carts CartStore,
	enrollments EnrollmentStore,
	progress ProgressStore,
	orders OrderStore,
	cat catalog.Catalog,
	ident catalog.Identity,
	opts Options,
) *Service {
	s := &Service{
		carts:            carts,
		enrollments:      enrollments,
		progress:         progress,
		orders:           orders,
		catalog:          cat,
		identity:         ident,
		events:           opts.Events,
		notifier:         opts.Notifier,
		metrics:          opts.Metrics,
		fallbackWorkload: opts.FallbackWorkload,
		token:            opts.Token,
		now:              opts.Now,
	}
	if s.events == nil {
		s.events = events.Noop{}
	}
	if s.fallbackWorkload <= 0 {
		s.fallbackWorkload = defaultFallbackWorkload
	}
	if s.token == nil {
		s.token = NewCertificateToken
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s
}

func (s *Service) publish(ctx context.Context, evts ...events.Event) {
	if err := s.events.Publish(ctx, evts...); err != nil {
		log.Printf("[EVENTS] publish %d event(s) failed: %v", len(evts), err)
	}
}
