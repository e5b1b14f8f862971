package apperr

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
)

// Error - ошибка с сообщением, которое можно безопасно отдать клиенту.
// Kind - одна из sentinel-ошибок выше, по ней выбирается HTTP статус
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func Unauthenticated(msg string) error {
	return &Error{Kind: ErrUnauthenticated, Msg: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: ErrForbidden, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Msg: msg}
}

// Message достает клиентское сообщение из цепочки ошибок.
// Если его нет - возвращает fallback
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Msg != "" {
		return appErr.Msg
	}
	return fallback
}
