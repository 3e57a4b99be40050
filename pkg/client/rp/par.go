package rp

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/svenschultze/generic-oauth2/pkg/client"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

// ParRequestResult is the outcome of a pushed authorization request.
// Either RequestURI is set, or Error is true with an ErrorMessage.
// A result with neither means no PAR endpoint was configured.
type ParRequestResult struct {
	Error        bool
	ErrorMessage string
	RequestURI   string
	// ExpiresIn is the lifetime of RequestURI in seconds, if the server sent one.
	ExpiresIn int

	// Err is the [*client.PARError] behind ErrorMessage.
	Err error
}

// Skipped reports the result of an attempt without PAR endpoint.
func (r *ParRequestResult) Skipped() bool {
	return !r.Error && r.RequestURI == ""
}

// BuildPARForm assembles the parameters pushed for opts, in this order:
// client_id, response_type, redirect_uri, scope, state,
// code_challenge and code_challenge_method,
// then the additional parameters sorted by key.
// Optional parameters are only added when not empty.
// Additional parameters with a blank key or value are skipped,
// and can not replace any parameter added before.
func BuildPARForm(opts *OAuth2Options) *httphelper.Form {
	form := httphelper.NewForm()
	form.Add("client_id", opts.AppID)
	form.Add("response_type", opts.ResponseType)
	form.AddNonEmpty("redirect_uri", opts.RedirectURL)
	form.AddNonEmpty("scope", opts.Scope)
	form.AddNonEmpty("state", opts.State)
	if opts.PKCEEnabled && opts.PKCECodeVerifier != "" {
		form.Add("code_challenge", oidc.NewSHACodeChallenge(opts.PKCECodeVerifier))
		form.Add("code_challenge_method", string(oidc.CodeChallengeMethodS256))
	}
	for _, key := range slices.Sorted(maps.Keys(opts.AdditionalParameters)) {
		value := opts.AdditionalParameters[key]
		if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
			continue
		}
		form.Add(key, value)
	}
	return form
}

type parCaller struct {
	*Requester
	endpoint string
}

func (c parCaller) GetPushedAuthorizationRequestEndpoint() string {
	return c.endpoint
}

// PerformParRequest pushes the authorization parameters of opts
// to opts.PAREndpoint, as defined in RFC 9126.
// Without PAR endpoint it returns a skipped result
// and makes no request.
//
// It never panics on server responses and never returns nil.
// opts is only read.
func (r *Requester) PerformParRequest(ctx context.Context, opts *OAuth2Options) *ParRequestResult {
	if !opts.PAREnabled() {
		r.metrics.skipped()
		return new(ParRequestResult)
	}
	ctx, span := client.Tracer.Start(ctx, "PerformParRequest")
	defer span.End()

	endpoint := strings.TrimSpace(opts.PAREndpoint)
	ctx = logCtxWithRPData(ctx, r, "function", "PerformParRequest", "client_id", opts.AppID)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := r.pushAuthorizationRequest(ctx, endpoint, opts)
	r.metrics.observe(start, err)
	if err != nil {
		if logger, ok := r.Logger(ctx); ok {
			logger.ErrorContext(ctx, "pushed authorization request failed", "endpoint", endpoint, "error", err)
		}
		return &ParRequestResult{
			Error:        true,
			ErrorMessage: err.Error(),
			Err:          err,
		}
	}
	return &ParRequestResult{
		RequestURI: resp.RequestURI,
		ExpiresIn:  resp.ExpiresIn,
	}
}

func (r *Requester) pushAuthorizationRequest(ctx context.Context, endpoint string, opts *OAuth2Options) (*oidc.PARResponse, error) {
	authFn, err := r.formAuthorization(opts.AppID, endpoint)
	if err != nil {
		return nil, err
	}
	if opts.LogsEnabled {
		if logger, ok := r.Logger(ctx); ok {
			logger.InfoContext(ctx, "PAR request", "method", http.MethodPost, "endpoint", endpoint)
		}
	}
	return client.CallPushedAuthorizationEndpoint(ctx, BuildPARForm(opts), authFn, parCaller{Requester: r, endpoint: endpoint})
}

// performRecovered runs PerformParRequest, returning nil if it panics.
func (r *Requester) performRecovered(ctx context.Context, opts *OAuth2Options) (result *ParRequestResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			if logger, ok := r.Logger(ctx); ok {
				logger.ErrorContext(ctx, "pushed authorization request panicked", slog.Any("panic", rec))
			}
		}
	}()
	return r.PerformParRequest(ctx, opts)
}

// Async runs PerformParRequest on a snapshot of opts in a new goroutine.
// The returned channel receives exactly one result and is closed;
// the result is nil if the attempt panicked.
func (r *Requester) Async(ctx context.Context, opts *OAuth2Options) <-chan *ParRequestResult {
	snapshot := opts.snapshot()
	results := make(chan *ParRequestResult, 1)
	go func() {
		defer close(results)
		results <- r.performRecovered(ctx, snapshot)
	}()
	return results
}
