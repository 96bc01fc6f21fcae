package calendar

import (
	cerrors "github.com/hrygo/meetcal/internal/errors"
)

// Envelope is the uniform response shape for every calendar operation:
// a numeric status code (0 = success), a human-readable description, and an
// operation-specific payload.
type Envelope struct {
	Code int    `json:"code"`
	Desc string `json:"desc"`
	Data any    `json:"data"`
}

// OK builds a success envelope.
func OK(data any) Envelope {
	return Envelope{Code: 0, Desc: "Operation successful", Data: data}
}

// Failure builds a failure envelope from a calendar error.
func Failure(err *cerrors.CalendarError) Envelope {
	return Envelope{Code: err.Code.Numeric(), Desc: err.Message}
}

// IsOK reports whether the envelope carries a success code.
func (e Envelope) IsOK() bool {
	return e.Code == 0
}
