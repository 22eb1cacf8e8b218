package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeMissingInput        Code = "MISSING_INPUT"
	CodeUnsupportedFormat   Code = "UNSUPPORTED_FORMAT"
	CodePayloadTooLarge     Code = "PAYLOAD_TOO_LARGE"
	CodePayloadTooSmall     Code = "PAYLOAD_TOO_SMALL"
	CodeInputTooShort       Code = "INPUT_TOO_SHORT"
	CodeNotFound            Code = "NOT_FOUND"
	CodeAuth                Code = "AUTH_ERROR"
	CodeServiceUnavailable  Code = "SERVICE_UNAVAILABLE"
	CodeTranscriptionFailed Code = "TRANSCRIPTION_FAILED"
	CodeEnhancementFailed   Code = "ENHANCEMENT_FAILED"
	CodePersistenceFailed   Code = "PERSISTENCE_FAILED"
)

type Error struct {
	Code       Code
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, message string, status int) *Error {
	return &Error{Code: code, Message: message, HTTPStatus: status}
}

func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

func MissingInput(message string) *Error {
	return New(CodeMissingInput, message, http.StatusBadRequest)
}

func UnsupportedFormat(message string) *Error {
	return New(CodeUnsupportedFormat, message, http.StatusBadRequest)
}

func PayloadTooLarge(message string) *Error {
	return New(CodePayloadTooLarge, message, http.StatusBadRequest)
}

func PayloadTooSmall(message string) *Error {
	return New(CodePayloadTooSmall, message, http.StatusBadRequest)
}

func InputTooShort(message string) *Error {
	return New(CodeInputTooShort, message, http.StatusBadRequest)
}

func NotFound(resource string) *Error {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

func Auth(message string) *Error {
	return New(CodeAuth, message, http.StatusUnauthorized)
}

func ServiceUnavailable(message string) *Error {
	return New(CodeServiceUnavailable, message, http.StatusServiceUnavailable)
}

func TranscriptionFailed(message string) *Error {
	return New(CodeTranscriptionFailed, message, http.StatusInternalServerError)
}

func EnhancementFailed(message string) *Error {
	return New(CodeEnhancementFailed, message, http.StatusInternalServerError)
}

func PersistenceFailed(message string) *Error {
	return New(CodePersistenceFailed, message, http.StatusInternalServerError)
}

// Status возвращает HTTP-статус для любой ошибки: *Error → её статус,
// остальное → 500.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Message — текст для JSON-конверта {success:false, error:...}.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
