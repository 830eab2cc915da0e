package errorx

import "fmt"

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}
