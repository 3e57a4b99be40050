package crypto

import (
	"crypto"
	"encoding/json"
	"errors"

	"github.com/go-jose/go-jose/v4"
)

// NewSigner creates a JWT signer for key, announcing keyID in the kid header.
func NewSigner(key crypto.Signer, algorithm jose.SignatureAlgorithm, keyID string) (jose.Signer, error) {
	signingKey := jose.SigningKey{
		Algorithm: algorithm,
		Key:       &jose.JSONWebKey{Key: key, KeyID: keyID},
	}
	return jose.NewSigner(signingKey, (&jose.SignerOptions{}).WithType("JWT"))
}

func Sign(object any, signer jose.Signer) (string, error) {
	payload, err := json.Marshal(object)
	if err != nil {
		return "", err
	}
	return SignPayload(payload, signer)
}

func SignPayload(payload []byte, signer jose.Signer) (string, error) {
	if signer == nil {
		return "", errors.New("missing signer")
	}
	result, err := signer.Sign(payload)
	if err != nil {
		return "", err
	}
	return result.CompactSerialize()
}
