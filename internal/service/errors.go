package service

import (
	"errors"
	"fmt"
)

// ValidationError — некорректный вход create/update. Возвращается до любой
// мутации, чтобы граничный слой отличал 400 от 404 и 500.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation сообщает, является ли ошибка ошибкой валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
