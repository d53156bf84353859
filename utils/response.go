package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FieldError points at the offending request field.
type FieldError struct {
	Field string `json:"field"`
}

// ApiError is the typed error every engine operation raises: an HTTP status,
// a message, and an optional field list. Handlers just return it and the
// global error handler serializes the envelope.
type ApiError struct {
	Status  int          `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

func (e *ApiError) Error() string { return e.Message }

func NewApiError(status int, message string, fields ...string) *ApiError {
	errs := make([]FieldError, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, FieldError{Field: f})
	}
	return &ApiError{Status: status, Message: message, Errors: errs}
}

// FromDB maps store failures onto API errors. Requires TranslateError on the
// gorm config so duplicate keys surface as gorm.ErrDuplicatedKey.
func FromDB(err error, notFoundMsg string) *ApiError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewApiError(fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return NewApiError(fiber.StatusConflict, "duplicate value for a unique field")
	default:
		return NewApiError(fiber.StatusInternalServerError, "unexpected database error")
	}
}

// Success writes the {ok, success, data, message} envelope.
func Success(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"ok":      true,
		"success": true,
		"data":    data,
		"message": message,
	})
}

// ErrorHandler is the app-wide fiber error handler. No partial success is
// ever reported as success: anything that bubbles up here becomes the
// uniform error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "something went wrong"
	fieldErrs := []FieldError{}

	var apiErr *ApiError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.Status
		message = apiErr.Message
		if apiErr.Errors != nil {
			fieldErrs = apiErr.Errors
		}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		log.Printf("❌ [%s %s] %v", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{
		"ok":      false,
		"success": false,
		"error": fiber.Map{
			"message": message,
			"errors":  fieldErrs,
		},
	})
}
