// Package notifications turns enrollment events into emails.
package notifications

import (
	"context"

	"learnhub/services/catalog"
	"learnhub/services/enrollment"
	"learnhub/utils"

	"github.com/pkg/errors"
)

// EmailNotifier resolves the recipient through Identity and sends through a Mailer.
type EmailNotifier struct {
	mailer   utils.Mailer
	identity catalog.Identity
}

var _ enrollment.Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(mailer utils.Mailer, identity catalog.Identity) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, identity: identity}
}

func (n *EmailNotifier) recipient(ctx context.Context, userID string) (string, string, error) {
	email, err := n.identity.UserEmail(ctx, userID)
	if err != nil {
		return "", "", errors.Wrapf(err, "email for user %s", userID)
	}
	name, err := n.identity.UserDisplayName(ctx, userID)
	if err != nil {
		return "", "", errors.Wrapf(err, "name for user %s", userID)
	}
	return email, name, nil
}

func (n *EmailNotifier) EnrollmentConfirmed(ctx context.Context, userID string, courseTitles []string) error {
	email, name, err := n.recipient(ctx, userID)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, utils.EnrollmentEmail(email, name, courseTitles))
}

func (n *EmailNotifier) CertificateIssued(ctx context.Context, userID string, proof enrollment.CertificateProof) error {
	email, name, err := n.recipient(ctx, userID)
	if err != nil {
		return err
	}
	if proof.StudentName != "" {
		name = proof.StudentName
	}
	return n.mailer.Send(ctx, utils.CertificateEmail(email, name, proof.CourseTitle, proof.Hash))
}

func (n *EmailNotifier) CartReminder(ctx context.Context, userID string, courseTitles []string) error {
	email, name, err := n.recipient(ctx, userID)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, utils.CartReminderEmail(email, name, courseTitles))
}
