package oidc

const (
	// ClientAssertionTypeJWTAssertion defines the client_assertion_type for
	// private_key_jwt client authentication, RFC 7523, section 2.2.
	ClientAssertionTypeJWTAssertion = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
)

// JWTTokenRequest holds the claims of a client assertion.
type JWTTokenRequest struct {
	Issuer    string   `json:"iss"`
	Subject   string   `json:"sub"`
	Audience  Audience `json:"aud"`
	IssuedAt  Time     `json:"iat"`
	ExpiresAt Time     `json:"exp"`
	JWTID     string   `json:"jti,omitempty"`
}
