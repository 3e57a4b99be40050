package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// ContentTypeFormUTF8 is sent with every form request.
	ContentTypeFormUTF8 = "application/x-www-form-urlencoded;charset=UTF-8"

	// MaxResponseSize bounds the response bodies read from endpoints.
	MaxResponseSize = 1 << 20
)

var DefaultHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

var ErrInvalidEndpoint = errors.New("invalid endpoint url")

// FormAuthorization adds client credentials to the form,
// after all other parameters.
type FormAuthorization func(*Form)

// RequestAuthorization adds client credentials to the request itself.
type RequestAuthorization func(*http.Request)

func AuthorizeBasic(user, password string) RequestAuthorization {
	return func(req *http.Request) {
		req.SetBasicAuth(url.QueryEscape(user), url.QueryEscape(password))
	}
}

// ParseEndpoint parses an absolute http or https endpoint URL.
func ParseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}
	return u, nil
}

// FormRequest builds a POST request to endpoint with the encoded form as body.
// authFn may be a [FormAuthorization] or a [RequestAuthorization], or nil.
func FormRequest(ctx context.Context, endpoint string, form *Form, authFn any) (*http.Request, error) {
	u, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	if fn, ok := authFn.(FormAuthorization); ok {
		fn(form)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if fn, ok := authFn.(RequestAuthorization); ok {
		fn(req)
	}
	req.Header.Set("Content-Type", ContentTypeFormUTF8)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// ReadBody reads the whole response body, up to [MaxResponseSize] bytes,
// regardless of the status code.
func ReadBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}
	return body, nil
}

// IsSuccess reports a 2xx status code.
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

func StartServer(ctx context.Context, addr string, handler http.Handler) {
	server := &http.Server{Addr: addr, Handler: handler}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		err := server.Shutdown(ctxShutdown)
		if err != nil {
			log.Fatalf("Shutdown(): %v", err)
		}
	}()
}
