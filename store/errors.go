package store

import (
	"errors"
	"fmt"
)

// ErrNotFound は指定IDのエンティティが存在しない場合のエラーです。
var ErrNotFound = errors.New("not found")

// ValidationError は入力不正や在庫不足など、変更前に拒否されたエラーです。
// Message はそのまま利用者に表示できる文言です。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// PersistenceError は永続化アダプタの保存失敗です。
// このエラーが返った場合、メモリ上の状態は変更されていません。
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
