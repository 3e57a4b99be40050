package rp

import (
	"strings"

	"github.com/muhlemmer/gu"
)

// OAuth2Options configures a single authorization attempt.
// It is owned by the caller. [Requester] only reads a snapshot of it;
// ParRequestURI is written by [Flow] on the consuming goroutine.
type OAuth2Options struct {
	// AppID is sent as client_id.
	AppID        string
	ResponseType string
	RedirectURL  string
	Scope        string
	State        string

	// PAREndpoint enables the pushed authorization request when set.
	PAREndpoint string

	PKCEEnabled      bool
	PKCECodeVerifier string

	// AdditionalParameters are pushed after the standard parameters.
	// They never replace a standard parameter.
	AdditionalParameters map[string]string

	// LogsEnabled logs the outgoing request at info level.
	LogsEnabled bool

	// AuthorizationBaseURL is the authorization endpoint
	// the user agent is sent to afterwards.
	AuthorizationBaseURL string

	// ParRequestURI holds the request_uri after a successful
	// pushed authorization request.
	ParRequestURI string
}

// PAREnabled reports whether a PAR endpoint is configured.
func (o *OAuth2Options) PAREnabled() bool {
	return o != nil && strings.TrimSpace(o.PAREndpoint) != ""
}

func (o *OAuth2Options) snapshot() *OAuth2Options {
	if o == nil {
		return nil
	}
	c := *o
	c.AdditionalParameters = gu.MapCopy(o.AdditionalParameters)
	return &c
}
