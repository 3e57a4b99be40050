package client

import (
	"log/slog"
	"strconv"

	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

type parErrorKind int

const (
	parErrorUnknown parErrorKind = iota
	parErrorInvalidEndpoint
	parErrorNetwork
	parErrorStatus
	parErrorInvalidJSON
	parErrorMissingRequestURI
	parErrorClientAssertion
)

var parErrorKinds = map[parErrorKind]string{
	parErrorUnknown:           "unknown",
	parErrorInvalidEndpoint:   "invalid_endpoint",
	parErrorNetwork:           "network",
	parErrorStatus:            "http_status",
	parErrorInvalidJSON:       "invalid_json",
	parErrorMissingRequestURI: "missing_request_uri",
	parErrorClientAssertion:   "client_assertion",
}

const parErrorPrefix = "PAR_FAILED: "

var (
	ErrPARInvalidEndpoint   = &PARError{kind: parErrorInvalidEndpoint}
	ErrPARNetwork           = &PARError{kind: parErrorNetwork}
	ErrPARStatus            = &PARError{kind: parErrorStatus}
	ErrPARInvalidJSON       = &PARError{kind: parErrorInvalidJSON}
	ErrPARMissingRequestURI = &PARError{kind: parErrorMissingRequestURI}
	ErrPARClientAssertion   = &PARError{kind: parErrorClientAssertion}
)

// PARError is returned by [CallPushedAuthorizationEndpoint].
// Its message is stable and safe to hand to the caller of a flow;
// the underlying cause is only reachable through Unwrap.
type PARError struct {
	kind parErrorKind

	// StatusCode of a non-2xx response.
	StatusCode int
	// Details of the upstream error body, if any could be parsed.
	Details *oidc.ErrorDetails
	Parent  error
}

func (e *PARError) Error() string {
	switch e.kind {
	case parErrorInvalidEndpoint:
		return parErrorPrefix + "invalid PAR endpoint url"
	case parErrorNetwork:
		return parErrorPrefix + "network error"
	case parErrorInvalidJSON:
		return parErrorPrefix + "invalid JSON response"
	case parErrorMissingRequestURI:
		return parErrorPrefix + "missing request_uri in response"
	case parErrorClientAssertion:
		return parErrorPrefix + "unable to sign client assertion"
	case parErrorStatus:
		message := parErrorPrefix + "HTTP " + strconv.Itoa(e.StatusCode)
		if e.Details != nil && e.Details.HasError {
			message += " " + e.Details.Error
			if e.Details.HasDescription {
				message += " - " + e.Details.Description
			}
		}
		return message
	}
	return parErrorPrefix + "unknown error"
}

// Kind returns a short label of the failure class, like "network".
func (e *PARError) Kind() string {
	return parErrorKinds[e.kind]
}

func (e *PARError) Unwrap() error {
	return e.Parent
}

// Is matches PARErrors of the same kind, so the exported
// sentinels can be used with errors.Is.
func (e *PARError) Is(target error) bool {
	t, ok := target.(*PARError)
	if !ok {
		return false
	}
	return e.kind == t.kind
}

// Upstream returns the OAuth2 error of a non-2xx response, or nil.
func (e *PARError) Upstream() *oidc.Error {
	return e.Details.AsError()
}

func (e *PARError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("message", e.Error())}
	if e.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status", e.StatusCode))
	}
	if e.Parent != nil {
		attrs = append(attrs, slog.Any("parent", e.Parent))
	}
	return slog.GroupValue(attrs...)
}

// NewClientAssertionError wraps a failure to create the client assertion
// sent along with a pushed authorization request.
func NewClientAssertionError(parent error) *PARError {
	return newPARError(parErrorClientAssertion, parent)
}

func newPARError(kind parErrorKind, parent error) *PARError {
	return &PARError{kind: kind, Parent: parent}
}
