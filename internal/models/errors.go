package models

import "errors"

// Ошибки бизнес-правил движка. Обработчики переводят их в HTTP-статусы,
// сами операции возвращают их как есть.
var (
	ErrNotFound            = errors.New("entity not found")
	ErrForbidden           = errors.New("principal has no rights over the target entity")
	ErrInvalidAmount       = errors.New("bid amount must be greater than zero")
	ErrLoadNotOpen         = errors.New("load is not open")
	ErrDuplicatePendingBid = errors.New("bidder already has a pending bid on this load")
	ErrIllegalTransition   = errors.New("illegal load status transition")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserRetained        = errors.New("user has delivered loads on record")
	ErrIntegrity           = errors.New("store constraint violated")
	ErrConflict            = errors.New("transaction could not be serialized")
)

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
