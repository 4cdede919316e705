package enrollment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"regexp"
	"strings"
	"time"

	courseModels "learnhub/models/course"
	"learnhub/repositories"
	"learnhub/services/catalog"
	"learnhub/services/events"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

var certificateHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// CertificateProof is the public view of an issued certificate.
type CertificateProof struct {
	Hash           string    `json:"hash"`
	IssuedAt       time.Time `json:"issued_at"`
	CourseID       string    `json:"course_id"`
	CourseTitle    string    `json:"course_title"`
	StudentName    string    `json:"student_name"`
	InstructorName string    `json:"instructor_name"`
	WorkloadHours  int       `json:"workload_hours"`
}

// NewCertificateToken derives an unguessable 64 char hex token from 32 random bytes.
func NewCertificateToken(enrollmentID string) (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "read random nonce")
	}
	h, err := blake2b.New256(nonce)
	if err != nil {
		return "", errors.Wrap(err, "init blake2b")
	}
	h.Write([]byte(enrollmentID))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IssueCertificate assigns the one certificate an enrollment may carry.
// Checks run in order: enrolled, not yet issued, every class completed.
func (s *Service) IssueCertificate(ctx context.Context, userID, courseID, studentName string) (CertificateProof, error) {
	enrollment, err := s.enrollments.FindByUserAndCourse(ctx, userID, courseID)
	if errors.Is(err, repositories.ErrNotFound) {
		return CertificateProof{}, ErrNotEnrolled
	}
	if err != nil {
		return CertificateProof{}, err
	}
	if enrollment.HasCertificate() {
		return CertificateProof{}, ErrAlreadyIssued
	}

	progress, err := s.ComputeProgress(ctx, userID, courseID)
	if err != nil {
		return CertificateProof{}, err
	}
	if !progress.Complete() {
		return CertificateProof{}, ErrNotCompleted
	}

	hash, err := s.token(enrollment.ID)
	if err != nil {
		return CertificateProof{}, err
	}
	issuedAt := s.now()
	won, err := s.enrollments.SetCertificateHash(ctx, enrollment.ID, hash, issuedAt)
	if err != nil {
		return CertificateProof{}, err
	}
	if !won {
		return CertificateProof{}, ErrAlreadyIssued
	}
	issued := enrollment.WithCertificate(hash, issuedAt)

	studentName = strings.TrimSpace(studentName)
	if studentName == "" {
		if studentName, err = s.identity.UserDisplayName(ctx, userID); err != nil {
			log.Printf("[CERTIFICATE] display name for user %s: %v", userID, err)
		}
	}
	proof, err := s.proof(ctx, issued, studentName, progress.TotalClasses)
	if err != nil {
		return CertificateProof{}, err
	}

	s.metrics.CertificateIssued()
	log.Printf("[CERTIFICATE] issued for enrollment %s", enrollment.ID)
	s.publish(ctx, events.Event{
		Type:       events.TypeCertificateIssued,
		Key:        userID,
		OccurredAt: issuedAt,
		Payload:    events.CertificateIssued{EnrollmentID: enrollment.ID, UserID: userID, CourseID: courseID, Hash: hash},
	})
	if s.notifier != nil {
		if err := s.notifier.CertificateIssued(ctx, userID, proof); err != nil {
			log.Printf("[CERTIFICATE] notify user %s: %v", userID, err)
		}
	}
	return proof, nil
}

// ValidateCertificate rebuilds the proof for hash from current course and user data.
func (s *Service) ValidateCertificate(ctx context.Context, hash string) (CertificateProof, error) {
	if !certificateHashPattern.MatchString(hash) {
		s.metrics.CertificateVerified(false)
		return CertificateProof{}, ErrInvalidCertificate
	}
	enrollment, err := s.enrollments.FindByCertificateHash(ctx, hash)
	if errors.Is(err, repositories.ErrNotFound) {
		s.metrics.CertificateVerified(false)
		return CertificateProof{}, ErrInvalidCertificate
	}
	if err != nil {
		return CertificateProof{}, err
	}

	studentName, err := s.identity.UserDisplayName(ctx, enrollment.UserID)
	if err != nil && !errors.Is(err, catalog.ErrUserNotFound) {
		return CertificateProof{}, errors.Wrap(err, "load student name")
	}
	total, err := s.catalog.CountClassesInCourse(ctx, enrollment.CourseID)
	if err != nil && !errors.Is(err, catalog.ErrCourseNotFound) {
		return CertificateProof{}, errors.Wrap(err, "count classes")
	}

	proof, err := s.proof(ctx, enrollment, studentName, total)
	if err != nil {
		return CertificateProof{}, err
	}
	s.metrics.CertificateVerified(true)
	return proof, nil
}

func (s *Service) proof(ctx context.Context, e courseModels.Enrollment, studentName string, totalClasses int) (CertificateProof, error) {
	title, err := s.catalog.CourseTitle(ctx, e.CourseID)
	if err != nil && !errors.Is(err, catalog.ErrCourseNotFound) {
		return CertificateProof{}, errors.Wrap(err, "load course title")
	}
	instructor, err := s.catalog.InstructorName(ctx, e.CourseID)
	if err != nil && !errors.Is(err, catalog.ErrCourseNotFound) {
		return CertificateProof{}, errors.Wrap(err, "load instructor name")
	}

	proof := CertificateProof{
		CourseID:       e.CourseID,
		CourseTitle:    title,
		StudentName:    studentName,
		InstructorName: instructor,
		WorkloadHours:  s.workload(totalClasses),
	}
	if e.CertificateHash != nil {
		proof.Hash = *e.CertificateHash
	}
	if e.CertificateIssuedAt != nil {
		proof.IssuedAt = *e.CertificateIssuedAt
	}
	return proof, nil
}

func (s *Service) workload(totalClasses int) int {
	if totalClasses > 0 {
		return totalClasses
	}
	return s.fallbackWorkload
}
