package oidc

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		target error
		want   bool
	}{
		{
			name:   "same type",
			err:    ErrInvalidRequest().WithDescription("bad param"),
			target: ErrInvalidRequest(),
			want:   true,
		},
		{
			name:   "same type and description",
			err:    ErrInvalidRequest().WithDescription("bad param"),
			target: ErrInvalidRequest().WithDescription("bad param"),
			want:   true,
		},
		{
			name:   "other description",
			err:    ErrInvalidRequest().WithDescription("bad param"),
			target: ErrInvalidRequest().WithDescription("other"),
			want:   false,
		},
		{
			name:   "other type",
			err:    ErrInvalidRequest(),
			target: ErrInvalidClient(),
			want:   false,
		},
		{
			name:   "parent",
			err:    ErrServerError().WithParent(io.EOF),
			target: io.EOF,
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestError_LogLevel(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want slog.Level
	}{
		{
			name: "server error",
			err:  ErrServerError(),
			want: slog.LevelError,
		},
		{
			name: "temporarily unavailable",
			err:  ErrTemporarilyUnavailable(),
			want: slog.LevelError,
		},
		{
			name: "some other error",
			err:  ErrAccessDenied(),
			want: slog.LevelWarn,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.LogLevel()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestError_LogValue(t *testing.T) {
	type fields struct {
		Parent      error
		ErrorType   errorType
		Description string
	}
	tests := []struct {
		name   string
		fields fields
		want   slog.Value
	}{
		{
			name: "parent",
			fields: fields{
				Parent: io.EOF,
			},
			want: slog.GroupValue(slog.Any("parent", io.EOF)),
		},
		{
			name: "description",
			fields: fields{
				Description: "oops",
			},
			want: slog.GroupValue(slog.String("description", "oops")),
		},
		{
			name: "errorType",
			fields: fields{
				ErrorType: InvalidRequestURI,
			},
			want: slog.GroupValue(slog.String("type", string(InvalidRequestURI))),
		},
		{
			name: "all fields",
			fields: fields{
				Parent:      io.EOF,
				Description: "oops",
				ErrorType:   InvalidRequestURI,
			},
			want: slog.GroupValue(
				slog.Any("parent", io.EOF),
				slog.String("description", "oops"),
				slog.String("type", string(InvalidRequestURI)),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Error{
				Parent:      tt.fields.Parent,
				ErrorType:   tt.fields.ErrorType,
				Description: tt.fields.Description,
			}
			got := e.LogValue()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrorDetails(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    *ErrorDetails
		wantErr bool
	}{
		{
			name: "error and description",
			body: `{"error":"invalid_request","error_description":"bad param"}`,
			want: &ErrorDetails{
				Error:          "invalid_request",
				HasError:       true,
				Description:    "bad param",
				HasDescription: true,
			},
		},
		{
			name: "error only",
			body: `{"error":"invalid_client"}`,
			want: &ErrorDetails{Error: "invalid_client", HasError: true},
		},
		{
			name: "description only",
			body: `{"error_description":"bad param"}`,
			want: &ErrorDetails{Description: "bad param", HasDescription: true},
		},
		{
			name: "empty error",
			body: `{"error":""}`,
			want: &ErrorDetails{HasError: true},
		},
		{
			name: "numeric error",
			body: `{"error":42}`,
			want: &ErrorDetails{Error: "42", HasError: true},
		},
		{
			name: "empty object",
			body: `{}`,
			want: &ErrorDetails{},
		},
		{
			name:    "not json",
			body:    `<html>bad gateway</html>`,
			wantErr: true,
		},
		{
			name:    "null",
			body:    `null`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseErrorDetails([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorDetails_AsError(t *testing.T) {
	var nilDetails *ErrorDetails
	assert.Nil(t, nilDetails.AsError())
	assert.Nil(t, (&ErrorDetails{Description: "x", HasDescription: true}).AsError())

	got := (&ErrorDetails{
		Error:       "invalid_request",
		HasError:    true,
		Description: "bad param",
	}).AsError()
	assert.ErrorIs(t, got, ErrInvalidRequest().WithDescription("bad param"))
}
