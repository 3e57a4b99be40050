package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
)

var ErrCookieMismatch = errors.New("cookie does not match request value")

// CookieHandler stores short lived flow values, such as the state and
// the PKCE code verifier, in signed and optionally encrypted cookies.
type CookieHandler struct {
	securecookie *securecookie.SecureCookie
	secureOnly   bool
	sameSite     http.SameSite
	maxAge       int
	domain       string
	path         string
	prefix       string
}

func NewCookieHandler(hashKey, encryptKey []byte, opts ...CookieHandlerOpt) *CookieHandler {
	c := &CookieHandler{
		securecookie: securecookie.New(hashKey, encryptKey),
		secureOnly:   true,
		sameSite:     http.SameSiteLaxMode,
		path:         "/",
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CookieHandlerOpt func(*CookieHandler)

func WithUnsecure() CookieHandlerOpt {
	return func(c *CookieHandler) {
		c.secureOnly = false
	}
}

func WithSameSite(sameSite http.SameSite) CookieHandlerOpt {
	return func(c *CookieHandler) {
		c.sameSite = sameSite
	}
}

func WithMaxAge(maxAge int) CookieHandlerOpt {
	return func(c *CookieHandler) {
		c.maxAge = maxAge
		c.securecookie.MaxAge(maxAge)
	}
}

func WithDomain(domain string) CookieHandlerOpt {
	return func(c *CookieHandler) {
		c.domain = domain
	}
}

func WithPath(path string) CookieHandlerOpt {
	return func(c *CookieHandler) {
		c.path = path
	}
}

// WithCookiePrefix prepends prefix to every cookie name,
// to run several flows on the same domain.
func WithCookiePrefix(prefix string) CookieHandlerOpt {
	return func(c *CookieHandler) {
		c.prefix = prefix
	}
}

func (c *CookieHandler) cookieName(name string) string {
	return c.prefix + name
}

func (c *CookieHandler) CheckCookie(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(c.cookieName(name))
	if err != nil {
		return "", err
	}
	var value string
	if err := c.securecookie.Decode(c.cookieName(name), cookie.Value, &value); err != nil {
		return "", err
	}
	return value, nil
}

// CheckQueryCookie checks the cookie value against the request parameter of the same name.
func (c *CookieHandler) CheckQueryCookie(r *http.Request, name string) (string, error) {
	value, err := c.CheckCookie(r, name)
	if err != nil {
		return "", err
	}
	if value != r.FormValue(name) {
		return "", ErrCookieMismatch
	}
	return value, nil
}

// PopCookie reads the cookie and deletes it in the same response.
func (c *CookieHandler) PopCookie(w http.ResponseWriter, r *http.Request, name string) (string, error) {
	value, err := c.CheckCookie(r, name)
	if err != nil {
		return "", err
	}
	c.DeleteCookie(w, name)
	return value, nil
}

func (c *CookieHandler) SetCookie(w http.ResponseWriter, name, value string) error {
	encoded, err := c.securecookie.Encode(c.cookieName(name), value)
	if err != nil {
		return err
	}
	http.SetCookie(w, c.cookie(name, encoded, c.maxAge))
	return nil
}

func (c *CookieHandler) DeleteCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, c.cookie(name, "", -1))
}

func (c *CookieHandler) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.cookieName(name),
		Value:    value,
		Domain:   c.domain,
		Path:     c.path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secureOnly,
		SameSite: c.sameSite,
	}
}
