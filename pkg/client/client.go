package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/svenschultze/generic-oauth2/internal/otel"
	httphelper "github.com/svenschultze/generic-oauth2/pkg/http"
	"github.com/svenschultze/generic-oauth2/pkg/oidc"
)

var Tracer = otel.Tracer("github.com/svenschultze/generic-oauth2/pkg/client")

type PARCaller interface {
	GetPushedAuthorizationRequestEndpoint() string
	HttpClient() *http.Client
}

// CallPushedAuthorizationEndpoint pushes the form to the PAR endpoint of the caller,
// as defined in RFC 9126, section 2.
// A single attempt is made. All errors are of type [*PARError].
func CallPushedAuthorizationEndpoint(ctx context.Context, form *httphelper.Form, authFn any, caller PARCaller) (_ *oidc.PARResponse, err error) {
	ctx, span := Tracer.Start(ctx, "CallPushedAuthorizationEndpoint")
	defer func() { otel.EndSpan(span, err) }()

	req, err := httphelper.FormRequest(ctx, caller.GetPushedAuthorizationRequestEndpoint(), form, authFn)
	if err != nil {
		return nil, newPARError(parErrorInvalidEndpoint, err)
	}
	resp, err := caller.HttpClient().Do(req)
	if err != nil {
		return nil, newPARError(parErrorNetwork, err)
	}
	defer resp.Body.Close()

	body, err := httphelper.ReadBody(resp)
	if err != nil {
		return nil, newPARError(parErrorNetwork, err)
	}

	if !httphelper.IsSuccess(resp.StatusCode) {
		parErr := &PARError{kind: parErrorStatus, StatusCode: resp.StatusCode}
		// a body that is not JSON leaves the bare status message
		if details, err := oidc.ParseErrorDetails(body); err == nil {
			parErr.Details = details
			if upstream := details.AsError(); upstream != nil {
				parErr.Parent = upstream
			}
		}
		return nil, parErr
	}

	parResp, ok, err := oidc.ParsePARResponse(body)
	if err != nil {
		return nil, newPARError(parErrorInvalidJSON, err)
	}
	if !ok {
		return nil, newPARError(parErrorMissingRequestURI, errors.New("no request_uri in response body"))
	}
	return parResp, nil
}
