package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"

	"github.com/go-jose/go-jose/v4"

	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

const SignatureAlgorithm = jose.RS256

// NewRSAKey generates a key and returns it together with its PKCS#1 PEM encoding.
func NewRSAKey(t testing.TB) (*rsa.PrivateKey, []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return key, pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

// VerifyClientAssertion checks the signature of a client assertion
// and returns its claims.
func VerifyClientAssertion(t testing.TB, assertion string, key *rsa.PrivateKey) *oidc.JWTTokenRequest {
	t.Helper()
	jws, err := jose.ParseSigned(assertion, []jose.SignatureAlgorithm{SignatureAlgorithm})
	if err != nil {
		t.Fatalf("parse client assertion: %v", err)
	}
	payload, err := jws.Verify(&key.PublicKey)
	if err != nil {
		t.Fatalf("verify client assertion: %v", err)
	}
	claims := new(oidc.JWTTokenRequest)
	if err := json.Unmarshal(payload, claims); err != nil {
		t.Fatalf("client assertion claims: %v", err)
	}
	return claims
}
