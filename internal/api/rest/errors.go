package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	svc "notes-api/internal/service"
)

// Коды ошибок в теле ответа
const (
	CodeNoteNotFound      = "NOTE_NOT_FOUND"
	CodeNoteAlreadyExists = "NOTE_ALREADY_EXISTS"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func newHTTPError(status int, code, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, ErrorResponse{Message: message, Code: code})
}

func validationError(err error) *echo.HTTPError {
	return newHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
}

// handleError конвертирует ошибки сервиса в HTTP ошибки
func handleError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, svc.ErrNoteNotFound):
		return newHTTPError(http.StatusNotFound, CodeNoteNotFound, err.Error())
	case errors.Is(err, svc.ErrNoteAlreadyExists):
		return newHTTPError(http.StatusConflict, CodeNoteAlreadyExists, err.Error())
	case errors.Is(err, svc.ErrInvalidNote):
		return newHTTPError(http.StatusBadRequest, CodeValidation, err.Error())
	}

	// Все остальные ошибки - Internal, детали только в логах
	return newHTTPError(http.StatusInternalServerError, CodeInternal, "internal error").SetInternal(err)
}

// codeForStatus код ошибки для ответов, сформированных самим echo (404 маршрута, 429, 413...)
func codeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return CodeValidation
	case status >= http.StatusInternalServerError:
		return CodeInternal
	default:
		return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

// ErrorHandler отдает ошибки в формате ErrorResponse
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = handleError(err).(*echo.HTTPError)
	}

	body, ok := he.Message.(ErrorResponse)
	if !ok {
		body = ErrorResponse{Message: fmt.Sprint(he.Message), Code: codeForStatus(he.Code)}
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(he.Code)
	} else {
		writeErr = c.JSON(he.Code, body)
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}
