package oidc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

type errorType string

const (
	InvalidRequest          errorType = "invalid_request"
	InvalidRequestURI       errorType = "invalid_request_uri"
	InvalidClient           errorType = "invalid_client"
	InvalidScope            errorType = "invalid_scope"
	UnauthorizedClient      errorType = "unauthorized_client"
	AccessDenied            errorType = "access_denied"
	ServerError             errorType = "server_error"
	TemporarilyUnavailable  errorType = "temporarily_unavailable"
	UnsupportedResponseType errorType = "unsupported_response_type"
)

var (
	ErrInvalidRequest = func() *Error {
		return &Error{
			ErrorType: InvalidRequest,
		}
	}
	ErrInvalidClient = func() *Error {
		return &Error{
			ErrorType: InvalidClient,
		}
	}
	ErrUnauthorizedClient = func() *Error {
		return &Error{
			ErrorType: UnauthorizedClient,
		}
	}
	ErrAccessDenied = func() *Error {
		return &Error{
			ErrorType: AccessDenied,
		}
	}
	ErrServerError = func() *Error {
		return &Error{
			ErrorType: ServerError,
		}
	}
	ErrTemporarilyUnavailable = func() *Error {
		return &Error{
			ErrorType: TemporarilyUnavailable,
		}
	}
)

// Error is the error response of an OAuth2 endpoint,
// as described in RFC 6749, section 5.2.
type Error struct {
	Parent      error     `json:"-" schema:"-"`
	ErrorType   errorType `json:"error" schema:"error"`
	Description string    `json:"error_description,omitempty" schema:"error_description,omitempty"`
}

func (e *Error) Error() string {
	message := "ErrorType=" + string(e.ErrorType)
	if e.Description != "" {
		message += " Description=" + e.Description
	}
	if e.Parent != nil {
		message += " Parent=" + e.Parent.Error()
	}
	return message
}

func (e *Error) Unwrap() error {
	return e.Parent
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.ErrorType == t.ErrorType &&
		(e.Description == t.Description || t.Description == "")
}

func (e *Error) WithParent(err error) *Error {
	e.Parent = err
	return e
}

func (e *Error) WithDescription(desc string, args ...any) *Error {
	e.Description = fmt.Sprintf(desc, args...)
	return e
}

// LogLevel returns the suggested level to log this error with.
// Server side failures are errors, everything else was caused by the request.
func (e *Error) LogLevel() slog.Level {
	switch e.ErrorType {
	case ServerError, TemporarilyUnavailable:
		return slog.LevelError
	}
	return slog.LevelWarn
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)
	if e.Parent != nil {
		attrs = append(attrs, slog.Any("parent", e.Parent))
	}
	if e.Description != "" {
		attrs = append(attrs, slog.String("description", e.Description))
	}
	if e.ErrorType != "" {
		attrs = append(attrs, slog.String("type", string(e.ErrorType)))
	}
	return slog.GroupValue(attrs...)
}

// ErrorDetails holds the error members of an endpoint error body,
// keeping track of which of them were present at all.
type ErrorDetails struct {
	Error          string
	HasError       bool
	Description    string
	HasDescription bool
}

// ParseErrorDetails reads the error and error_description members
// of a JSON error body. Non-string members are rendered with fmt.
func ParseErrorDetails(data []byte) (*ErrorDetails, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("oidc: error body is null")
	}
	d := new(ErrorDetails)
	if v, ok := raw["error"]; ok {
		d.Error, d.HasError = stringValue(v), true
	}
	if v, ok := raw["error_description"]; ok {
		d.Description, d.HasDescription = stringValue(v), true
	}
	return d, nil
}

// AsError converts the details into an [Error].
// It returns nil if the body did not carry an error member.
func (d *ErrorDetails) AsError() *Error {
	if d == nil || !d.HasError {
		return nil
	}
	return &Error{
		ErrorType:   errorType(d.Error),
		Description: d.Description,
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return "null"
	case float64, bool:
		return fmt.Sprint(s)
	default:
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Sprint(s)
		}
		return string(b)
	}
}
