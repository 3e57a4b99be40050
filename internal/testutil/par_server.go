// Package testutil provides a fake authorization server and
// keys for testing the pushed authorization request client.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/zitadel/schema"

	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

const (
	PARPath           = "/oauth/v2/par"
	AuthorizationPath = "/oauth/v2/authorize"

	ValidRequestURI = oidc.RequestURIPrefix + "abc123"
)

// PushedRequest is a request received by the PAR endpoint.
type PushedRequest struct {
	Header  http.Header
	Body    string
	Form    url.Values
	Request oidc.PARRequest
}

// VerifyCodeVerifier reports whether verifier matches the pushed code_challenge.
func (p PushedRequest) VerifyCodeVerifier(verifier string) bool {
	return oidc.VerifyCodeChallenge(&oidc.CodeChallenge{
		Challenge: p.Request.CodeChallenge,
		Method:    p.Request.CodeChallengeMethod,
	}, verifier)
}

// Responder answers a pushed request with a status code and a raw body.
type Responder func(req *PushedRequest) (status int, body string)

// Respond always answers with status and body.
func Respond(status int, body string) Responder {
	return func(*PushedRequest) (int, string) {
		return status, body
	}
}

// RespondRequestURI answers like a compliant server, with 201 Created.
func RespondRequestURI(requestURI string) Responder {
	return Respond(http.StatusCreated, `{"request_uri":"`+requestURI+`","expires_in":60}`)
}

// PARServer is a fake authorization server with a PAR endpoint,
// recording every pushed request.
type PARServer struct {
	*httptest.Server

	mu        sync.Mutex
	respond   Responder
	requests  []PushedRequest
	decodeErr error
}

func NewPARServer(t testing.TB, respond Responder) *PARServer {
	t.Helper()
	s := &PARServer{respond: respond}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	router := chi.NewRouter()
	router.Post(PARPath, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		form, err := url.ParseQuery(string(raw))
		if err != nil {
			httphelper.MarshalJSONWithStatus(w, oidc.ErrInvalidRequest().WithDescription("%v", err), http.StatusBadRequest)
			return
		}
		pushed := PushedRequest{
			Header: r.Header.Clone(),
			Body:   string(raw),
			Form:   form,
		}
		if err := decoder.Decode(&pushed.Request, form); err != nil {
			s.mu.Lock()
			s.decodeErr = err
			s.mu.Unlock()
		}

		s.mu.Lock()
		s.requests = append(s.requests, pushed)
		respond := s.respond
		s.mu.Unlock()

		status, body := respond(&pushed)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	})
	router.Get(AuthorizationPath, func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("client_id") == "" {
			httphelper.MarshalJSONWithStatus(w, oidc.ErrInvalidRequest().WithDescription("client_id missing"), http.StatusBadRequest)
			return
		}
		httphelper.MarshalJSON(w, query)
	})

	s.Server = httptest.NewServer(router)
	t.Cleanup(s.Close)
	return s
}

func (s *PARServer) PAREndpoint() string {
	return s.URL + PARPath
}

func (s *PARServer) AuthorizationEndpoint() string {
	return s.URL + AuthorizationPath
}

// SetResponder replaces the responder for subsequent requests.
func (s *PARServer) SetResponder(respond Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respond = respond
}

func (s *PARServer) Requests() []PushedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PushedRequest(nil), s.requests...)
}

// LastRequest fails the test if no request was pushed yet.
func (s *PARServer) LastRequest(t testing.TB) PushedRequest {
	t.Helper()
	requests := s.Requests()
	if len(requests) == 0 {
		t.Fatal("no pushed authorization request received")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.decodeErr != nil {
		t.Fatalf("decode pushed authorization request: %v", s.decodeErr)
	}
	return requests[len(requests)-1]
}

// UnreachableEndpoint returns the URL of a server that was already closed,
// so connecting to it fails.
func UnreachableEndpoint(t testing.TB) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + PARPath
	server.Close()
	return endpoint
}
