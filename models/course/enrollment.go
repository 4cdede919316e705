package course

import (
	"time"

	"learnhub/models"
)

// Enrollment is the durable grant of course access for a (user, course) pair.
// CertificateHash is write-once.
type Enrollment struct {
	models.Base
	UserID              string     `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID            string     `json:"course_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course"`
	EnrolledAt          time.Time  `json:"enrolled_at"`
	CertificateHash     *string    `json:"certificate_hash,omitempty" gorm:"type:varchar(64);uniqueIndex"`
	CertificateIssuedAt *time.Time `json:"certificate_issued_at,omitempty"`
}

// HasCertificate reports whether a certificate was already issued.
func (e Enrollment) HasCertificate() bool {
	return e.CertificateHash != nil && *e.CertificateHash != ""
}

// WithCertificate returns a copy of e carrying the issued certificate.
func (e Enrollment) WithCertificate(hash string, issuedAt time.Time) Enrollment {
	e.CertificateHash = &hash
	e.CertificateIssuedAt = &issuedAt
	return e
}
