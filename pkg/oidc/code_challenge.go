package oidc

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/google/uuid"

	"github.com/svenschultze/generic-oauth2/pkg/crypto"
)

const (
	CodeChallengeMethodPlain CodeChallengeMethod = "plain"
	CodeChallengeMethodS256  CodeChallengeMethod = "S256"
)

type CodeChallengeMethod string

type CodeChallenge struct {
	Challenge string
	Method    CodeChallengeMethod
}

// NewSHACodeChallenge derives the S256 code_challenge of RFC 7636, section 4.2:
// BASE64URL-ENCODE(SHA256(ASCII(code_verifier))), without padding.
func NewSHACodeChallenge(code string) string {
	return crypto.HashString(sha256.New(), code, false)
}

// NewCodeVerifier returns a random code_verifier of 48 characters,
// inside the 43 to 128 characters RFC 7636 allows.
func NewCodeVerifier() string {
	return base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
}

func VerifyCodeChallenge(c *CodeChallenge, codeVerifier string) bool {
	if c == nil {
		return false
	}
	if c.Method == CodeChallengeMethodS256 {
		codeVerifier = NewSHACodeChallenge(codeVerifier)
	}
	return codeVerifier == c.Challenge
}
