package mock

//go:generate go install github.com/golang/mock/mockgen@v1.6.0
//go:generate mockgen -package mock -destination ./authorizer.mock.go github.com/svenschultze/generic-oauth2/pkg/client/rp Authorizer
//go:generate mockgen -package mock -destination ./call.mock.go github.com/svenschultze/generic-oauth2/pkg/client/rp Call
