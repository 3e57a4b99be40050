package rp

import (
	"golang.org/x/oauth2"

	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

// AuthURL returns the authorization request url of opts
// (wrapping the oauth2 `AuthCodeURL`).
// After a successful pushed authorization request only client_id, response_type
// and request_uri are sent, as defined in RFC 9126, section 4.
// Otherwise all parameters of [BuildPARForm] are sent in the url.
func AuthURL(opts *OAuth2Options, urlParam ...URLParamOpt) string {
	config := &oauth2.Config{
		ClientID: opts.AppID,
		Endpoint: oauth2.Endpoint{
			AuthURL: opts.AuthorizationBaseURL,
		},
	}
	authOpts := make([]oauth2.AuthCodeOption, 0)
	if opts.ParRequestURI != "" {
		if opts.ResponseType != "" {
			authOpts = append(authOpts, oauth2.SetAuthURLParam("response_type", opts.ResponseType))
		}
		authOpts = append(authOpts, oauth2.SetAuthURLParam("request_uri", opts.ParRequestURI))
		for _, opt := range urlParam {
			authOpts = append(authOpts, opt()...)
		}
		return config.AuthCodeURL("", authOpts...)
	}

	form := BuildPARForm(opts)
	for _, key := range form.Keys() {
		value, _ := form.Get(key)
		authOpts = append(authOpts, oauth2.SetAuthURLParam(key, value))
	}
	for _, opt := range urlParam {
		authOpts = append(authOpts, opt()...)
	}
	return config.AuthCodeURL(opts.State, authOpts...)
}

type URLParamOpt func() []oauth2.AuthCodeOption

// WithURLParam allows setting custom key-vale pairs
// to an OAuth2 URL.
func WithURLParam(key, value string) URLParamOpt {
	return func() []oauth2.AuthCodeOption {
		return []oauth2.AuthCodeOption{
			oauth2.SetAuthURLParam(key, value),
		}
	}
}

// WithPromptURLParam sets the `prompt` parameter in a URL.
func WithPromptURLParam(prompt ...string) URLParamOpt {
	return WithURLParam("prompt", oidc.SpaceDelimitedArray(prompt).String())
}
