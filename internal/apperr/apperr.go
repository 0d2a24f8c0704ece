// Package apperr defines the status + body failure shape shared by every
// component. Handlers write Status and Body to the client unchanged.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Error struct {
	Status int
	Body   []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, strings.TrimSpace(string(e.Body)))
}

// New builds an error whose body is {"error": message}.
func New(status int, message string) *Error {
	body, _ := json.Marshal(map[string]string{"error": message})
	return &Error{Status: status, Body: body}
}

// FromResponse passes an upstream status and body through verbatim.
func FromResponse(status int, body []byte) *Error {
	return &Error{Status: status, Body: body}
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal Server Error: "+err.Error())
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "Unauthorized")
}

// From converts any error into an *Error; foreign errors become Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// StatusOf reports the HTTP status carried by err, or 0 when err is nil.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	return From(err).Status
}
