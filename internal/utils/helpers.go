package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/swiftload/loadboard-service/internal/metrics"
	"github.com/swiftload/loadboard-service/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// errorStatuses сопоставляет ошибки бизнес-правил движка HTTP-статусам.
var errorStatuses = []struct {
	err    error
	status int
	reason string
}{
	{models.ErrNotFound, http.StatusNotFound, "not_found"},
	{models.ErrForbidden, http.StatusForbidden, "forbidden"},
	{models.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{models.ErrLoadNotOpen, http.StatusConflict, "load_not_open"},
	{models.ErrDuplicatePendingBid, http.StatusConflict, "duplicate_pending_bid"},
	{models.ErrIllegalTransition, http.StatusConflict, "illegal_transition"},
	{models.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{models.ErrUserRetained, http.StatusConflict, "user_retained"},
	{models.ErrConflict, http.StatusConflict, "conflict"},
	{models.ErrIntegrity, http.StatusInternalServerError, "integrity"},
}

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendError переводит ошибку операции в HTTP-ответ. Ошибки бизнес-правил
// уходят с соответствующим статусом и текстом, всё прочее - как
// внутренняя ошибка без деталей.
func SendError(w http.ResponseWriter, err error) {
	for _, m := range errorStatuses {
		if errors.Is(err, m.err) {
			metrics.EngineErrorsTotal.WithLabelValues(m.reason).Inc()
			SendErrorResponse(w, m.status, m.err.Error())
			return
		}
	}

	var errorResponse *models.ErrorResponse
	if errors.As(err, &errorResponse) {
		SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	SendErrorResponse(w, http.StatusInternalServerError, "internal server error")
}

// WriteJSON отправляет успешный ответ в формате JSON.
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(payload)
}

// ValidateRequest проверяет структуру запроса по validate-тегам и
// возвращает читаемое сообщение об ошибке.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			msgs = append(msgs, fieldErrorMessage(fieldErr))
		}
		return models.NewErrorResponse(http.StatusBadRequest, strings.Join(msgs, "; "))
	}
	return models.NewErrorResponse(http.StatusBadRequest, err.Error())
}

func fieldErrorMessage(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid4":
		return field + " must be a valid id"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fieldErr.Tag())
	}
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 20
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// ParseFloatQuery обрабатывает необязательный числовой query-параметр.
func ParseFloatQuery(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid numeric parameter, must be a non-negative number")
	}
	return parsed, nil
}
