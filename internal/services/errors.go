package services

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map them onto HTTP status codes.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
)

// Client-facing messages
const (
	MsgAuthRequired    = "Требуется авторизация"
	MsgUserNotFound    = "Пользователь не найден"
	MsgServiceNotFound = "Услуга не найдена"
	MsgOrderNotFound   = "Заказ не найден"
	MsgBookingNotFound = "Запись не найдена"
	MsgAccessDenied    = "Доступ запрещен"

	MsgBookingFieldsRequired = "user_id, service_id и booking_date обязательны"
	MsgBookingUpdateRequired = "id и status обязательны"
	MsgContactFieldsRequired = "Имя, телефон и сообщение обязательны"
	MsgServiceTypeRequired   = "Не указан тип услуги"
	MsgOrderIDRequired       = "Не указан ID заказа"
	MsgMessageFieldsRequired = "Не указан ID заказа или текст сообщения"
	MsgNothingToUpdate       = "Нет данных для обновления"

	MsgContactAccepted = "Спасибо! Ваша заявка принята. Мы свяжемся с вами в ближайшее время."
)

// ServiceError carries the operation, the error kind and a message that is
// safe to show to the client
type ServiceError struct {
	Op      string
	Kind    error
	Message string
	Err     error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error
func (e *ServiceError) Is(target error) bool {
	return target == e.Kind
}

// NewValidationError creates an error for a malformed or incomplete request
func NewValidationError(op, message string) *ServiceError {
	return &ServiceError{Op: op, Kind: ErrValidation, Message: message}
}

// NewAuthenticationError creates an error for a request without a usable identity
func NewAuthenticationError(op, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Kind: ErrUnauthenticated, Message: message, Err: err}
}

// NewAuthorizationError creates an error for a caller that may not touch the resource
func NewAuthorizationError(op, message string) *ServiceError {
	return &ServiceError{Op: op, Kind: ErrForbidden, Message: message}
}

// NewNotFoundError creates an error for a missing resource
func NewNotFoundError(op, message string, err error) *ServiceError {
	return &ServiceError{Op: op, Kind: ErrNotFound, Message: message, Err: err}
}

// ClientMessage returns the client-facing message of a service error
func ClientMessage(err error) (string, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message, true
	}
	return "", false
}
