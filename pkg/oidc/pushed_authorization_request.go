package oidc

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	// RequestURIPrefix is the URN prefix RFC 9126 recommends for
	// request_uri values issued by the authorization server.
	RequestURIPrefix = "urn:ietf:params:oauth:request_uri:"
)

// RequestURIKeys lists the JSON members accepted as the request_uri
// of a pushed authorization response, in lookup order.
// Only request_uri is defined by RFC 9126, the others are
// spellings still returned by some legacy servers.
var RequestURIKeys = []string{"request_uri", "requestUri", "request-uri"}

// PARRequest implements
// https://datatracker.ietf.org/doc/html/rfc9126#name-request,
// 2.1 Request.
// Only the parameters of an authorization code request are modelled.
type PARRequest struct {
	ClientID            string              `schema:"client_id"`
	ResponseType        ResponseType        `schema:"response_type"`
	RedirectURI         string              `schema:"redirect_uri"`
	Scopes              SpaceDelimitedArray `schema:"scope"`
	State               string              `schema:"state"`
	CodeChallenge       string              `schema:"code_challenge"`
	CodeChallengeMethod CodeChallengeMethod `schema:"code_challenge_method"`
	ClientAssertion     string              `schema:"client_assertion"`
	ClientAssertionType string              `schema:"client_assertion_type"`
}

// PARResponse implements
// https://datatracker.ietf.org/doc/html/rfc9126#name-successful-response,
// 2.2 Successful Response.
type PARResponse struct {
	RequestURI string `json:"request_uri"`
	ExpiresIn  int    `json:"expires_in,omitempty"`
}

// ParsePARResponse reads a successful pushed authorization response.
// The request_uri is looked up through [RequestURIKeys]; the first key
// present with a non-null value decides, so a blank request_uri is not
// replaced by a later spelling.
//
// The returned bool reports if a non-blank request_uri was found.
// An error is only returned if data is not a JSON object.
func ParsePARResponse(data []byte) (*PARResponse, bool, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, err
	}
	if raw == nil {
		return nil, false, errors.New("oidc: pushed authorization response is null")
	}
	resp := &PARResponse{
		RequestURI: lookupString(raw, RequestURIKeys...),
	}
	if exp, ok := raw["expires_in"].(float64); ok {
		resp.ExpiresIn = int(exp)
	}
	return resp, strings.TrimSpace(resp.RequestURI) != "", nil
}

// lookupString returns the first string value of keys in raw.
// Keys holding other types are skipped.
func lookupString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok {
			return s
		}
	}
	return ""
}
