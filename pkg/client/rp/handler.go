package rp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/svenschultze/generic-oauth2/pkg/client"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

const (
	stateParam = "state"
	pkceCode   = "pkce"
)

var (
	ErrMissingAuthorizationURL = errors.New("rp: authorization base url missing")
	ErrMissingOptions          = errors.New("rp: no options for login request")
)

type ErrorHandler func(w http.ResponseWriter, r *http.Request, errorType string, errorDesc string, state string)

var DefaultErrorHandler ErrorHandler = func(w http.ResponseWriter, r *http.Request, errorType string, errorDesc string, state string) {
	http.Error(w, errorType+": "+errorDesc, http.StatusInternalServerError)
}

// OptionsProvider returns fresh options for every login request.
type OptionsProvider func(r *http.Request) *OAuth2Options

// PARAuthURLHandler is a login handler running the pushed authorization request
// and redirecting the user agent to the authorization endpoint.
//
// A missing state is generated, and a missing code verifier too if PKCE is enabled.
// Both are stored in secure cookies when cookieHandler is set, to be checked
// on the callback with [ReadCallbackState].
// A failed attempt, or nil options from provider, is passed to errorHandler with [ErrCodePARFailed],
// or [DefaultErrorHandler] if nil.
func PARAuthURLHandler(provider OptionsProvider, requester *Requester, cookieHandler *httphelper.CookieHandler, errorHandler ErrorHandler, urlParam ...URLParamOpt) http.HandlerFunc {
	if errorHandler == nil {
		errorHandler = DefaultErrorHandler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := client.Tracer.Start(r.Context(), "PARAuthURLHandler")
		defer span.End()

		opts := provider(r)
		if opts == nil {
			errorHandler(w, r, ErrCodePARFailed, ErrMissingOptions.Error(), "")
			return
		}
		if opts.State == "" {
			opts.State = uuid.NewString()
		}
		if opts.PKCEEnabled && opts.PKCECodeVerifier == "" {
			opts.PKCECodeVerifier = oidc.NewCodeVerifier()
		}
		if opts.AuthorizationBaseURL == "" {
			errorHandler(w, r, ErrCodePARFailed, ErrMissingAuthorizationURL.Error(), opts.State)
			return
		}
		if err := trySetCookies(w, cookieHandler, opts); err != nil {
			errorHandler(w, r, ErrCodePARFailed, "failed to create state cookie: "+err.Error(), opts.State)
			return
		}

		redirect := AuthorizerFunc(func(_ context.Context, opts *OAuth2Options) {
			http.Redirect(w, r, AuthURL(opts, urlParam...), http.StatusFound)
		})
		reject := CallFunc(func(code, message string) {
			errorHandler(w, r, code, message, opts.State)
		})
		Complete(ctx, redirect, reject, opts, requester.performRecovered(ctx, opts))
	}
}

func trySetCookies(w http.ResponseWriter, cookieHandler *httphelper.CookieHandler, opts *OAuth2Options) error {
	if cookieHandler == nil {
		return nil
	}
	if err := cookieHandler.SetCookie(w, stateParam, opts.State); err != nil {
		return err
	}
	if opts.PKCEEnabled {
		return cookieHandler.SetCookie(w, pkceCode, opts.PKCECodeVerifier)
	}
	return nil
}

// ReadCallbackState checks the state parameter of the authorization response
// against the state cookie and returns it, together with the code verifier
// if one was stored. Both cookies are deleted.
// Without cookieHandler the state parameter is returned unchecked.
func ReadCallbackState(w http.ResponseWriter, r *http.Request, cookieHandler *httphelper.CookieHandler) (state, codeVerifier string, err error) {
	if cookieHandler == nil {
		return r.FormValue(stateParam), "", nil
	}
	state, err = cookieHandler.CheckQueryCookie(r, stateParam)
	if err != nil {
		return "", "", err
	}
	cookieHandler.DeleteCookie(w, stateParam)
	codeVerifier, err = cookieHandler.PopCookie(w, r, pkceCode)
	if errors.Is(err, http.ErrNoCookie) {
		return state, "", nil
	}
	if err != nil {
		return "", "", err
	}
	return state, codeVerifier, nil
}
