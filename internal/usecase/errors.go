package usecase

import (
	"errors"
	"fmt"
)

// Usecase層のエラーはHTTPステータスを持って上に返す。
// 400=入力不正 / 404=対象なし / 500=内部エラー（詳細は漏らさない）
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
