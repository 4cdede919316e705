package enrollment

import (
	"github.com/pkg/errors"
)

// Kind classifies an expected, recoverable failure of the enrollment engine.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindPreconditionFailed
	KindForbidden
	KindInvalidCertificate
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindPreconditionFailed:
		return "PreconditionFailed"
	case KindForbidden:
		return "Forbidden"
	case KindInvalidCertificate:
		return "InvalidCertificate"
	default:
		return "Internal"
	}
}

// Error is a typed failure with a stable machine code and a message fit for clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrCourseNotFound = &Error{Kind: KindNotFound, Code: "COURSE_NOT_FOUND", Message: "Course not found"}
	ErrClassNotFound  = &Error{Kind: KindNotFound, Code: "CLASS_NOT_FOUND", Message: "Class not found"}
	ErrNotEnrolled    = &Error{Kind: KindNotFound, Code: "NOT_ENROLLED", Message: "You are not enrolled in this course"}

	ErrAlreadyInCart   = &Error{Kind: KindConflict, Code: "ALREADY_IN_CART", Message: "Course is already in your cart"}
	ErrAlreadyEnrolled = &Error{Kind: KindConflict, Code: "ALREADY_ENROLLED", Message: "You are already enrolled in this course"}
	ErrAlreadyIssued   = &Error{Kind: KindConflict, Code: "CERTIFICATE_ALREADY_ISSUED", Message: "A certificate was already issued for this course"}

	ErrEmptyCart    = &Error{Kind: KindPreconditionFailed, Code: "EMPTY_CART", Message: "Your cart is empty"}
	ErrNotCompleted = &Error{Kind: KindPreconditionFailed, Code: "COURSE_NOT_COMPLETED", Message: "Complete every class before requesting a certificate"}

	ErrInvalidCertificate = &Error{Kind: KindInvalidCertificate, Code: "INVALID_CERTIFICATE", Message: "Certificate not found or invalid"}
)

// KindOf reports the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
