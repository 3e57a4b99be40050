package rp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthURL(t *testing.T) {
	tests := []struct {
		name      string
		opts      *OAuth2Options
		urlParam  []URLParamOpt
		wantBase  string
		wantQuery url.Values
	}{
		{
			name: "pushed",
			opts: &OAuth2Options{
				AppID:                "app",
				ResponseType:         "code",
				RedirectURL:          "com.example.app://callback",
				Scope:                "openid",
				State:                "xyz",
				PKCEEnabled:          true,
				PKCECodeVerifier:     testVerifier,
				AuthorizationBaseURL: "https://op.example.com/authorize",
				ParRequestURI:        "urn:ietf:params:oauth:request_uri:abc123",
			},
			wantBase: "https://op.example.com/authorize",
			wantQuery: url.Values{
				"client_id":     {"app"},
				"response_type": {"code"},
				"request_uri":   {"urn:ietf:params:oauth:request_uri:abc123"},
			},
		},
		{
			name: "not pushed",
			opts: &OAuth2Options{
				AppID:                "app",
				ResponseType:         "code",
				RedirectURL:          "com.example.app://callback",
				Scope:                "openid",
				State:                "xyz",
				PKCEEnabled:          true,
				PKCECodeVerifier:     testVerifier,
				AdditionalParameters: map[string]string{"client_id": "evil", "ui_locales": "de"},
				AuthorizationBaseURL: "https://op.example.com/authorize",
			},
			wantBase: "https://op.example.com/authorize",
			wantQuery: url.Values{
				"client_id":             {"app"},
				"response_type":         {"code"},
				"redirect_uri":          {"com.example.app://callback"},
				"scope":                 {"openid"},
				"state":                 {"xyz"},
				"code_challenge":        {testChallenge},
				"code_challenge_method": {"S256"},
				"ui_locales":            {"de"},
			},
		},
		{
			name: "base url with query and prompt",
			opts: &OAuth2Options{
				AppID:                "app",
				ResponseType:         "code",
				AuthorizationBaseURL: "https://op.example.com/authorize?tenant=a",
				ParRequestURI:        "urn:x",
			},
			urlParam: []URLParamOpt{WithPromptURLParam("login", "consent")},
			wantBase: "https://op.example.com/authorize",
			wantQuery: url.Values{
				"tenant":        {"a"},
				"client_id":     {"app"},
				"response_type": {"code"},
				"request_uri":   {"urn:x"},
				"prompt":        {"login consent"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := url.Parse(AuthURL(tt.opts, tt.urlParam...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, got.Scheme+"://"+got.Host+got.Path)
			assert.Equal(t, tt.wantQuery, got.Query())
		})
	}
}
