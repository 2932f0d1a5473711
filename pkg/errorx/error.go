package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is reports whether target is an errorx.Error with the same code, so callers
// can branch with errors.Is(err, errorx.Error{Code: errorx.QuestNotFound}).
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}

	return e.Code == t.Code
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e Error
	if !errors.As(err, &e) {
		return false
	}

	return e.Code == code
}
