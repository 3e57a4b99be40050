package crypto

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v4"
)

var (
	ErrPEMDecode          = errors.New("PEM decode failed")
	ErrUnsupportedKeyType = errors.New("unsupported key type")
)

// BytesToPrivateKey parses a PEM encoded private key in PKCS#1, SEC 1 or PKCS#8 form.
// It returns the key together with the signature algorithm a client assertion
// signed by it should announce.
func BytesToPrivateKey(b []byte) (crypto.Signer, jose.SignatureAlgorithm, error) {
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, "", ErrPEMDecode
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, "", err
		}
		return key, jose.RS256, nil
	case "EC PRIVATE KEY":
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, "", err
		}
		return ecdsaAlgorithm(key)
	}

	privateKey, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, "", err
	}
	switch key := privateKey.(type) {
	case *rsa.PrivateKey:
		return key, jose.RS256, nil
	case *ecdsa.PrivateKey:
		return ecdsaAlgorithm(key)
	case ed25519.PrivateKey:
		return key, jose.EdDSA, nil
	default:
		return nil, "", fmt.Errorf("%w: %T", ErrUnsupportedKeyType, privateKey)
	}
}

func ecdsaAlgorithm(key *ecdsa.PrivateKey) (crypto.Signer, jose.SignatureAlgorithm, error) {
	switch key.Curve {
	case elliptic.P256():
		return key, jose.ES256, nil
	case elliptic.P384():
		return key, jose.ES384, nil
	case elliptic.P521():
		return key, jose.ES512, nil
	default:
		return nil, "", fmt.Errorf("%w: curve %s", ErrUnsupportedKeyType, key.Curve.Params().Name)
	}
}
