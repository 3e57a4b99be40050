package rp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/zitadel/logging"

	"github.com/svenschultze/generic-oauth2/pkg/client"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
)

// DefaultAssertionExpiration is the lifetime of client assertions
// created with [WithJWTProfile].
const DefaultAssertionExpiration = time.Minute

var ErrMissingSigner = errors.New("rp: signer from key returned no signer")

// Requester performs pushed authorization requests.
// It is safe for concurrent use once created.
type Requester struct {
	httpClient *http.Client
	timeout    time.Duration

	basicAuth           httphelper.RequestAuthorization
	signer              jose.Signer
	assertionAudience   []string
	assertionExpiration time.Duration

	logger  *slog.Logger
	metrics *metrics
}

// NewRequester creates a Requester using [httphelper.DefaultHTTPClient],
// unless configured otherwise by options.
func NewRequester(options ...Option) (*Requester, error) {
	r := &Requester{
		httpClient:          httphelper.DefaultHTTPClient,
		assertionExpiration: DefaultAssertionExpiration,
	}
	for _, optFunc := range options {
		if err := optFunc(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Requester) HttpClient() *http.Client {
	return r.httpClient
}

// Logger from the context, or a fallback if set.
func (r *Requester) Logger(ctx context.Context) (logger *slog.Logger, ok bool) {
	logger, ok = logging.FromContext(ctx)
	if ok {
		return logger, ok
	}
	return r.logger, r.logger != nil
}

// formAuthorization returns the client authentication for a request
// of clientID to endpoint, or nil for public clients.
func (r *Requester) formAuthorization(clientID, endpoint string) (any, error) {
	if r.signer != nil {
		audience := r.assertionAudience
		if len(audience) == 0 {
			audience = []string{endpoint}
		}
		assertion, err := client.SignedJWTProfileAssertion(clientID, audience, r.assertionExpiration, r.signer)
		if err != nil {
			return nil, client.NewClientAssertionError(err)
		}
		return client.ClientAssertionFormAuthorization(assertion), nil
	}
	if r.basicAuth != nil {
		return r.basicAuth, nil
	}
	return nil, nil
}

// Option is the type for providing dynamic options to the Requester
type Option func(*Requester) error

// WithHTTPClient sets the http client used to call the PAR endpoint.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Requester) error {
		r.httpClient = client
		return nil
	}
}

// WithTimeout bounds every attempt, on top of the timeout of the http client.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Requester) error {
		r.timeout = timeout
		return nil
	}
}

// WithLogger sets a logger that is used
// in case the request context does not contain a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Requester) error {
		r.logger = logger
		return nil
	}
}

// WithClientSecretBasic authenticates confidential clients
// with HTTP Basic authentication (client_secret_basic).
func WithClientSecretBasic(clientID, clientSecret string) Option {
	return func(r *Requester) error {
		r.basicAuth = httphelper.AuthorizeBasic(clientID, clientSecret)
		return nil
	}
}

// WithJWTProfile authenticates the client with a signed client assertion
// (private_key_jwt). The audience defaults to the PAR endpoint.
// When creating the signer, be sure to include the KeyID in the SigningKey.
// See client.NewSignerFromPrivateKeyByte for an example.
func WithJWTProfile(signerFromKey SignerFromKey, audience ...string) Option {
	return func(r *Requester) error {
		signer, err := signerFromKey()
		if err != nil {
			return err
		}
		if signer == nil {
			return ErrMissingSigner
		}
		r.signer = signer
		r.assertionAudience = audience
		return nil
	}
}

// WithAssertionExpiration overrides [DefaultAssertionExpiration].
func WithAssertionExpiration(expiration time.Duration) Option {
	return func(r *Requester) error {
		r.assertionExpiration = expiration
		return nil
	}
}

// WithMetrics registers the PAR metrics at registerer
// and records every attempt.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(r *Requester) error {
		m, err := newMetrics(registerer)
		if err != nil {
			return err
		}
		r.metrics = m
		return nil
	}
}

type SignerFromKey func() (jose.Signer, error)

func SignerFromKeyPath(path string) SignerFromKey {
	return func() (jose.Signer, error) {
		config, err := client.ConfigFromKeyFile(path)
		if err != nil {
			return nil, err
		}
		return client.NewSignerFromPrivateKeyByte([]byte(config.Key), config.KeyID)
	}
}

func SignerFromKeyFile(fileData []byte) SignerFromKey {
	return func() (jose.Signer, error) {
		config, err := client.ConfigFromKeyFileData(fileData)
		if err != nil {
			return nil, err
		}
		return client.NewSignerFromPrivateKeyByte([]byte(config.Key), config.KeyID)
	}
}

func SignerFromKeyAndKeyID(key []byte, keyID string) SignerFromKey {
	return func() (jose.Signer, error) {
		return client.NewSignerFromPrivateKeyByte(key, keyID)
	}
}
