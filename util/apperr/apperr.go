// Package apperr holds the coded errors shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrValidation  ErrCode = "VALIDATION"
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrConflict    ErrCode = "CONFLICT"
	ErrForbidden   ErrCode = "FORBIDDEN"
	ErrState       ErrCode = "STATE"
	ErrUnavailable ErrCode = "UNAVAILABLE"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

// New returns an error carrying code c and a client-facing message.
func New(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return New(ErrValidation, format, args...) }
func NotFound(format string, args ...any) error   { return New(ErrNotFound, format, args...) }
func Conflict(format string, args ...any) error   { return New(ErrConflict, format, args...) }
func Forbidden(format string, args ...any) error  { return New(ErrForbidden, format, args...) }
func State(format string, args ...any) error      { return New(ErrState, format, args...) }
func Unavailable(format string, args ...any) error {
	return New(ErrUnavailable, format, args...)
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
