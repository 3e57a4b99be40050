package mock

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/svenschultze/generic-oauth2/pkg/client/rp"
)

// ExpectStartAuthorization expects exactly one call and sends
// the request_uri the options carried at that time to started.
func ExpectStartAuthorization(t *testing.T, started chan<- string) *MockAuthorizer {
	m := NewMockAuthorizer(gomock.NewController(t))
	m.EXPECT().StartAuthorization(gomock.Any(), gomock.Any()).Times(1).Do(
		func(_ context.Context, opts *rp.OAuth2Options) {
			started <- opts.ParRequestURI
		})
	return m
}

// ExpectReject expects exactly one rejection with code and message.
func ExpectReject(t *testing.T, code, message string) *MockCall {
	m := NewMockCall(gomock.NewController(t))
	m.EXPECT().Reject(code, message).Times(1)
	return m
}

// NoAuthorization fails the test if authorization is started.
func NoAuthorization(t *testing.T) *MockAuthorizer {
	m := NewMockAuthorizer(gomock.NewController(t))
	m.EXPECT().StartAuthorization(gomock.Any(), gomock.Any()).Times(0)
	return m
}

// NoReject fails the test if the call is rejected.
func NoReject(t *testing.T) *MockCall {
	m := NewMockCall(gomock.NewController(t))
	m.EXPECT().Reject(gomock.Any(), gomock.Any()).Times(0)
	return m
}
