package apperr

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Kind classifies an error for the API boundary. Handlers return plain
// errors wrapped with one of the constructors below; controllers map the
// kind to an HTTP status and never inspect error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindExternal
)

type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

func newError(kind Kind, message string) error {
	return &Error{kind: kind, err: errors.New(message)}
}

func wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, err: errors.Wrap(err, message)}
}

func Validation(message string) error        { return newError(KindValidation, message) }
func Auth(message string) error              { return newError(KindAuth, message) }
func Forbidden(message string) error         { return newError(KindForbidden, message) }
func NotFound(message string) error          { return newError(KindNotFound, message) }
func Conflict(message string) error          { return newError(KindConflict, message) }
func External(message string) error          { return newError(KindExternal, message) }
func ExternalWrap(err error, msg string) error { return wrap(KindExternal, err, msg) }

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

func IsAuth(err error) bool      { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool  { return KindOf(err) == KindConflict }
func IsExternal(err error) bool  { return KindOf(err) == KindExternal }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// HTTPStatus maps the taxonomy to response codes; unknown errors are 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindExternal:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
