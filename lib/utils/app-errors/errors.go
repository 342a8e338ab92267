package apperrors

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Kind - класс прикладной ошибки. Все классы терминальны для текущей
// операции: повторов и частичного применения нет.
type Kind int

const (
	KindConfiguration Kind = iota + 1 // не указана обязательная площадка
	KindPermission                    // нет прав на действие
	KindConflict                      // нарушение уникальности/инварианта
	KindValidation                    // некорректные или противоречивые данные
	KindNotAllowed                    // пользователь не участник перехода
	KindInvalidTransition             // сущность не в требуемом статусе
	KindNotFound                      // запись или площадка не найдена
)

type AppError struct {
	Kind    Kind
	Message string // человекочитаемое сообщение
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Configuration(message string) *AppError {
	if message == "" {
		message = "не указана рабочая площадка"
	}
	return newError(KindConfiguration, message)
}

func Permission(message string) *AppError {
	if message == "" {
		message = "операция недоступна"
	}
	return newError(KindPermission, message)
}

func Conflict(message string) *AppError {
	return newError(KindConflict, message)
}

func Validation(message string) *AppError {
	return newError(KindValidation, message)
}

func NotAllowed(message string) *AppError {
	if message == "" {
		message = "действие недоступно для пользователя"
	}
	return newError(KindNotAllowed, message)
}

// InvalidTransition намеренно без деталей: наружу уходит общий отказ
func InvalidTransition() *AppError {
	return newError(KindInvalidTransition, "недопустимый запрос")
}

func NotFound(message string) *AppError {
	if message == "" {
		message = "запись не найдена"
	}
	return newError(KindNotFound, message)
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// HTTPStatus - код ответа для класса ошибки; прочее считается внутренней ошибкой
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindPermission:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindConfiguration, KindValidation, KindNotAllowed, KindInvalidTransition:
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}
