package rp

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svenschultze/generic-oauth2/internal/testutil"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

var testCookieKey = []byte("test1234test1234")

func loginOptions(server *testutil.PARServer) OptionsProvider {
	return func(*http.Request) *OAuth2Options {
		return &OAuth2Options{
			AppID:                "app",
			ResponseType:         "code",
			RedirectURL:          "http://localhost/callback",
			Scope:                "openid",
			PAREndpoint:          server.PAREndpoint(),
			PKCEEnabled:          true,
			AuthorizationBaseURL: server.AuthorizationEndpoint(),
		}
	}
}

func TestPARAuthURLHandler(t *testing.T) {
	server := testutil.NewPARServer(t, testutil.RespondRequestURI(testutil.ValidRequestURI))
	cookieHandler := httphelper.NewCookieHandler(testCookieKey, testCookieKey, httphelper.WithUnsecure())
	handler := PARAuthURLHandler(loginOptions(server), newTestRequester(t), cookieHandler, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, testutil.AuthorizationPath, location.Path)
	assert.Equal(t, url.Values{
		"client_id":     {"app"},
		"response_type": {"code"},
		"request_uri":   {testutil.ValidRequestURI},
	}, location.Query())

	pushed := server.LastRequest(t)
	require.NotEmpty(t, pushed.Request.State)
	require.NotEmpty(t, pushed.Request.CodeChallenge)
	assert.Equal(t, oidc.CodeChallengeMethodS256, pushed.Request.CodeChallengeMethod)

	// the authorization server redirects back with the pushed state
	callback := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state="+url.QueryEscape(pushed.Request.State), nil)
	for _, cookie := range rec.Result().Cookies() {
		callback.AddCookie(cookie)
	}
	callbackRec := httptest.NewRecorder()
	state, verifier, err := ReadCallbackState(callbackRec, callback, cookieHandler)
	require.NoError(t, err)
	assert.Equal(t, pushed.Request.State, state)
	assert.True(t, pushed.VerifyCodeVerifier(verifier))
	assert.Len(t, callbackRec.Result().Cookies(), 2, "state and pkce cookies deleted")
}

func TestPARAuthURLHandler_failure(t *testing.T) {
	server := testutil.NewPARServer(t, testutil.Respond(http.StatusBadRequest, `{"error":"invalid_request","error_description":"bad param"}`))

	var got []string
	errorHandler := func(w http.ResponseWriter, r *http.Request, errorType, errorDesc, state string) {
		got = []string{errorType, errorDesc, state}
		w.WriteHeader(http.StatusBadGateway)
	}
	provider := func(r *http.Request) *OAuth2Options {
		opts := loginOptions(server)(r)
		opts.State = "xyz"
		return opts
	}
	handler := PARAuthURLHandler(provider, newTestRequester(t), nil, errorHandler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, []string{ErrCodePARFailed, "PAR_FAILED: HTTP 400 invalid_request - bad param", "xyz"}, got)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestPARAuthURLHandler_defaultErrorHandler(t *testing.T) {
	provider := func(*http.Request) *OAuth2Options {
		return &OAuth2Options{AppID: "app", ResponseType: "code", PAREndpoint: "https://op.example.com/par"}
	}
	handler := PARAuthURLHandler(provider, newTestRequester(t), nil, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrCodePARFailed+": "+ErrMissingAuthorizationURL.Error()+"\n", rec.Body.String())
}

func TestPARAuthURLHandler_nilOptions(t *testing.T) {
	provider := func(*http.Request) *OAuth2Options { return nil }
	handler := PARAuthURLHandler(provider, newTestRequester(t), httphelper.NewCookieHandler(testCookieKey, testCookieKey), nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, ErrCodePARFailed+": "+ErrMissingOptions.Error()+"\n", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestPARAuthURLHandler_withoutPAR(t *testing.T) {
	server := testutil.NewPARServer(t, testutil.RespondRequestURI(testutil.ValidRequestURI))
	provider := func(r *http.Request) *OAuth2Options {
		opts := loginOptions(server)(r)
		opts.PAREndpoint = ""
		opts.PKCEEnabled = false
		opts.State = "xyz"
		return opts
	}
	handler := PARAuthURLHandler(provider, newTestRequester(t), nil, nil, WithURLParam("ui_locales", "de"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"client_id":     {"app"},
		"response_type": {"code"},
		"redirect_uri":  {"http://localhost/callback"},
		"scope":         {"openid"},
		"state":         {"xyz"},
		"ui_locales":    {"de"},
	}, location.Query())
	assert.Empty(t, server.Requests())
}

func TestReadCallbackState(t *testing.T) {
	cookieHandler := httphelper.NewCookieHandler(testCookieKey, testCookieKey, httphelper.WithUnsecure())

	t.Run("no cookie handler", func(t *testing.T) {
		state, verifier, err := ReadCallbackState(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?state=xyz", nil), nil)
		require.NoError(t, err)
		assert.Equal(t, "xyz", state)
		assert.Empty(t, verifier)
	})
	t.Run("state mismatch", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, cookieHandler.SetCookie(rec, stateParam, "xyz"))
		req := httptest.NewRequest(http.MethodGet, "/callback?state=other", nil)
		req.AddCookie(rec.Result().Cookies()[0])

		_, _, err := ReadCallbackState(httptest.NewRecorder(), req, cookieHandler)
		assert.ErrorIs(t, err, httphelper.ErrCookieMismatch)
	})
	t.Run("without pkce", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, cookieHandler.SetCookie(rec, stateParam, "xyz"))
		req := httptest.NewRequest(http.MethodGet, "/callback?state=xyz", nil)
		req.AddCookie(rec.Result().Cookies()[0])

		state, verifier, err := ReadCallbackState(httptest.NewRecorder(), req, cookieHandler)
		require.NoError(t, err)
		assert.Equal(t, "xyz", state)
		assert.Empty(t, verifier)
	})
}
