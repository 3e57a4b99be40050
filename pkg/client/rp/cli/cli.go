package cli

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/svenschultze/generic-oauth2/pkg/client/rp"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

const (
	loginPath = "/login"
)

// AuthorizationResponse is what the authorization server sent to the callback,
// together with the PKCE code verifier of the attempt.
type AuthorizationResponse struct {
	Code         string
	State        string
	CodeVerifier string
}

// PARFlow serves a login and a callback handler on localhost:port,
// opens the login page in the browser and waits for the authorization response.
// The login handler runs the pushed authorization request for the options of provider.
func PARFlow(ctx context.Context, requester *rp.Requester, provider rp.OptionsProvider, cookieHandler *httphelper.CookieHandler, callbackPath, port string) (*AuthorizationResponse, error) {
	flowCtx, flowCancel := context.WithCancel(ctx)
	defer flowCancel()

	type result struct {
		resp *AuthorizationResponse
		err  error
	}
	results := make(chan result, 1)
	deliver := func(w http.ResponseWriter, res result) {
		select {
		case results <- res:
		default:
		}
		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
			return
		}
		msg := "<p><strong>Success!</strong></p>"
		msg = msg + "<p>You are authorized and can now return to the CLI.</p>"
		w.Write([]byte(msg))
	}
	errorHandler := func(w http.ResponseWriter, r *http.Request, errorType, errorDesc, state string) {
		deliver(w, result{err: &FlowError{Code: errorType, Message: errorDesc}})
	}

	router := chi.NewRouter()
	router.Get(loginPath, rp.PARAuthURLHandler(provider, requester, cookieHandler, errorHandler))
	router.Get(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		if errorType := r.FormValue("error"); errorType != "" {
			details := &oidc.ErrorDetails{
				Error:       errorType,
				HasError:    true,
				Description: r.FormValue("error_description"),
			}
			deliver(w, result{err: details.AsError()})
			return
		}
		state, codeVerifier, err := rp.ReadCallbackState(w, r, cookieHandler)
		if err != nil {
			deliver(w, result{err: err})
			return
		}
		deliver(w, result{resp: &AuthorizationResponse{
			Code:         r.FormValue("code"),
			State:        state,
			CodeVerifier: codeVerifier,
		}})
	})

	httphelper.StartServer(flowCtx, ":"+port, router)

	if err := OpenBrowser("http://localhost:" + port + loginPath); err != nil {
		return nil, err
	}

	select {
	case res := <-results:
		return res.resp, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// FlowError is returned by [PARFlow] if the login handler rejected the attempt.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}
