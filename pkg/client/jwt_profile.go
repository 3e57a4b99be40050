package client

import (
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"

	"github.com/svenschultze/generic-oauth2/pkg/crypto"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

// ClientAssertionFormAuthorization sets a private_key_jwt client assertion
// (RFC 7523, section 2.2) on the form, replacing values already present.
func ClientAssertionFormAuthorization(assertion string) httphelper.FormAuthorization {
	return func(form *httphelper.Form) {
		form.Set("client_assertion", assertion)
		form.Set("client_assertion_type", oidc.ClientAssertionTypeJWTAssertion)
	}
}

// SignedJWTProfileAssertion creates a client assertion for clientID,
// valid for the given audience for expiration.
func SignedJWTProfileAssertion(clientID string, audience []string, expiration time.Duration, signer jose.Signer) (string, error) {
	iat := time.Now()
	exp := iat.Add(expiration)
	return crypto.Sign(&oidc.JWTTokenRequest{
		Issuer:    clientID,
		Subject:   clientID,
		Audience:  audience,
		ExpiresAt: oidc.FromTime(exp),
		IssuedAt:  oidc.FromTime(iat),
		JWTID:     uuid.NewString(),
	}, signer)
}
