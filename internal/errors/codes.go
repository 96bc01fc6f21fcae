package errors

import (
	"fmt"
)

// ErrorCode represents a specific failure kind for calendar operations.
type ErrorCode string

const (
	// ErrCodeDuplicatePerson indicates the person identifier is already registered.
	ErrCodeDuplicatePerson ErrorCode = "DUPLICATE_PERSON"
	// ErrCodeUnknownPerson indicates the person identifier was never registered.
	ErrCodeUnknownPerson ErrorCode = "UNKNOWN_PERSON"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeEmptyRange indicates an availability range with end <= start.
	ErrCodeEmptyRange ErrorCode = "EMPTY_RANGE"
	// ErrCodeMissingInterviewer indicates an empty interviewer list.
	ErrCodeMissingInterviewer ErrorCode = "MISSING_INTERVIEWER"
	// ErrCodeInvalidInterviewee indicates the interviewee identifier is not usable.
	ErrCodeInvalidInterviewee ErrorCode = "INVALID_INTERVIEWEE"
	// ErrCodeInvalidInterviewerList indicates the interviewer list is not usable.
	ErrCodeInvalidInterviewerList ErrorCode = "INVALID_INTERVIEWER_LIST"
	// ErrCodeStorageIntegrity indicates a constraint violation not otherwise categorized.
	ErrCodeStorageIntegrity ErrorCode = "STORAGE_INTEGRITY"
)

// envelopeCodes maps each failure kind onto the numeric code space of the
// result envelope. Zero is reserved for success.
var envelopeCodes = map[ErrorCode]int{
	ErrCodeDuplicatePerson:        1,
	ErrCodeUnknownPerson:          2,
	ErrCodeInvalidArgument:        3,
	ErrCodeEmptyRange:             4,
	ErrCodeMissingInterviewer:     5,
	ErrCodeInvalidInterviewee:     6,
	ErrCodeInvalidInterviewerList: 7,
	ErrCodeStorageIntegrity:       8,
}

// Numeric returns the envelope code for an error code.
func (c ErrorCode) Numeric() int {
	if n, ok := envelopeCodes[c]; ok {
		return n
	}
	return envelopeCodes[ErrCodeStorageIntegrity]
}

// CalendarError represents a structured error for calendar operations.
type CalendarError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *CalendarError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CalendarError) Unwrap() error {
	return e.Cause
}

// Convenience constructors for common failure kinds.

// DuplicatePerson creates a duplicate person error.
func DuplicatePerson(username string) *CalendarError {
	return &CalendarError{
		Code:    ErrCodeDuplicatePerson,
		Message: fmt.Sprintf("cannot add user: user %q already exists", username),
	}
}

// UnknownPerson creates an unknown person error.
func UnknownPerson(username string) *CalendarError {
	return &CalendarError{
		Code:    ErrCodeUnknownPerson,
		Message: fmt.Sprintf("user %q does not exist", username),
	}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *CalendarError {
	return &CalendarError{Code: ErrCodeInvalidArgument, Message: msg}
}

// EmptyRange creates an empty range error.
func EmptyRange() *CalendarError {
	return &CalendarError{Code: ErrCodeEmptyRange, Message: "empty range: end must be after start"}
}

// MissingInterviewer creates a missing interviewer error.
func MissingInterviewer() *CalendarError {
	return &CalendarError{Code: ErrCodeMissingInterviewer, Message: "at least one interviewer is required"}
}

// InvalidInterviewee creates an invalid interviewee error.
func InvalidInterviewee(msg string) *CalendarError {
	return &CalendarError{Code: ErrCodeInvalidInterviewee, Message: msg}
}

// InvalidInterviewerList creates an invalid interviewer list error.
func InvalidInterviewerList(msg string) *CalendarError {
	return &CalendarError{Code: ErrCodeInvalidInterviewerList, Message: msg}
}

// StorageIntegrity wraps a storage-layer constraint violation.
func StorageIntegrity(msg string, cause error) *CalendarError {
	return &CalendarError{Code: ErrCodeStorageIntegrity, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if calErr, ok := err.(*CalendarError); ok {
		return calErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a CalendarError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if calErr, ok := err.(*CalendarError); ok {
		return calErr.Code
	}
	return defaultCode
}
