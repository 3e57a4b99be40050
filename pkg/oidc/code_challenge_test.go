package oidc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSHACodeChallenge(t *testing.T) {
	tests := []struct {
		name     string
		verifier string
		want     string
	}{
		{
			// RFC 7636, Appendix B
			name:     "rfc example",
			verifier: "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk",
			want:     "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
		},
		{
			name:     "empty verifier",
			verifier: "",
			want:     "47DEQpj8HBSa-_TImW-5JCeuQeRkm5NMpJWZG3hSuFU",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSHACodeChallenge(tt.verifier)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NewSHACodeChallenge(tt.verifier), "deterministic")
			assert.NotContains(t, got, "=")
		})
	}
}

func TestNewCodeVerifier(t *testing.T) {
	a, b := NewCodeVerifier(), NewCodeVerifier()
	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 43)
	assert.LessOrEqual(t, len(a), 128)
	assert.False(t, strings.ContainsAny(a, "+/="), "base64url without padding")
}

func TestVerifyCodeChallenge(t *testing.T) {
	verifier := NewCodeVerifier()
	tests := []struct {
		name      string
		challenge *CodeChallenge
		want      bool
	}{
		{"nil", nil, false},
		{"s256", &CodeChallenge{Challenge: NewSHACodeChallenge(verifier), Method: CodeChallengeMethodS256}, true},
		{"s256 mismatch", &CodeChallenge{Challenge: verifier, Method: CodeChallengeMethodS256}, false},
		{"plain", &CodeChallenge{Challenge: verifier, Method: CodeChallengeMethodPlain}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyCodeChallenge(tt.challenge, verifier))
		})
	}
}
