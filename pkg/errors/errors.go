package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common registrar scenarios.
var (
	ErrNotFound      = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrAlreadyExists = New("ALREADY_EXISTS", http.StatusConflict, "resource already exists")
	ErrConflict      = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation    = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal      = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var dup *DuplicateEnrollmentError
	if errors.As(err, &dup) {
		return dup.AsAPIError()
	}
	var credit *CreditLimitError
	if errors.As(err, &credit) {
		return credit.AsAPIError()
	}
	var capacity *CapacityError
	if errors.As(err, &capacity) {
		return capacity.AsAPIError()
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// DuplicateEnrollmentError signals that a student already holds the course.
type DuplicateEnrollmentError struct {
	StudentID  string `json:"student_id"`
	CourseCode string `json:"course_code"`
}

func (e *DuplicateEnrollmentError) Error() string {
	return fmt.Sprintf("duplicate enrollment for student %s in course %s", e.StudentID, e.CourseCode)
}

// AsAPIError converts to the transport error shape.
func (e *DuplicateEnrollmentError) AsAPIError() *Error {
	return Wrap(e, "DUPLICATE_ENROLLMENT", http.StatusConflict, e.Error())
}

// CreditLimitError signals that an enrollment would exceed the per-student
// credit ceiling. All figures are in credits.
type CreditLimitError struct {
	StudentID string `json:"student_id"`
	Current   int    `json:"current_credits"`
	Max       int    `json:"max_credits"`
	Attempted int    `json:"attempted_credits"`
}

func (e *CreditLimitError) Error() string {
	return fmt.Sprintf("credit limit exceeded for student %s: current=%d, max=%d, attempted=%d, total would be=%d",
		e.StudentID, e.Current, e.Max, e.Attempted, e.Current+e.Attempted)
}

// Excess returns how many credits over the ceiling the attempt lands.
func (e *CreditLimitError) Excess() int {
	return e.Current + e.Attempted - e.Max
}

// Available returns how many credits the student can still enroll in.
func (e *CreditLimitError) Available() int {
	if remaining := e.Max - e.Current; remaining > 0 {
		return remaining
	}
	return 0
}

// SuggestedAction returns a user-facing hint for resolving the violation.
func (e *CreditLimitError) SuggestedAction() string {
	if available := e.Available(); available > 0 {
		return fmt.Sprintf("you can enroll in up to %d more credits this semester", available)
	}
	return "you are already at your maximum credit limit; consider dropping a course before enrolling in new ones"
}

// AsAPIError converts to the transport error shape.
func (e *CreditLimitError) AsAPIError() *Error {
	return Wrap(e, "CREDIT_LIMIT_EXCEEDED", http.StatusUnprocessableEntity, e.Error())
}

// CapacityError signals that a course roster is at max capacity.
type CapacityError struct {
	CourseCode string `json:"course_code"`
	Capacity   int    `json:"capacity"`
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("course %s is at maximum capacity (%d)", e.CourseCode, e.Capacity)
}

// AsAPIError converts to the transport error shape.
func (e *CapacityError) AsAPIError() *Error {
	return Wrap(e, "CAPACITY_EXCEEDED", http.StatusConflict, e.Error())
}
