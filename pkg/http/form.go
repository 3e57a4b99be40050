package http

import (
	"net/url"
	"strings"
)

// Form is an ordered set of form parameters.
// Keys are unique and keep the position of their first insertion,
// so the encoded body is deterministic.
type Form struct {
	keys   []string
	values map[string]string
}

func NewForm() *Form {
	return &Form{
		values: make(map[string]string),
	}
}

// Add appends key with value, unless key is already present.
// It reports whether the parameter was added.
func (f *Form) Add(key, value string) bool {
	if _, ok := f.values[key]; ok {
		return false
	}
	f.keys = append(f.keys, key)
	f.values[key] = value
	return true
}

// Set stores value for key. An existing key keeps its position.
func (f *Form) Set(key, value string) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// AddNonEmpty calls Add only if value is not empty.
func (f *Form) AddNonEmpty(key, value string) bool {
	if value == "" {
		return false
	}
	return f.Add(key, value)
}

func (f *Form) Get(key string) (string, bool) {
	value, ok := f.values[key]
	return value, ok
}

func (f *Form) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (f *Form) Keys() []string {
	return append([]string(nil), f.keys...)
}

func (f *Form) Len() int {
	return len(f.keys)
}

// Values converts the form into url.Values, losing the order.
func (f *Form) Values() url.Values {
	values := make(url.Values, len(f.keys))
	for _, key := range f.keys {
		values.Set(key, f.values[key])
	}
	return values
}

// Encode returns the application/x-www-form-urlencoded body,
// with pairs in insertion order.
func (f *Form) Encode() string {
	var buf strings.Builder
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(url.QueryEscape(key))
		buf.WriteByte('=')
		buf.WriteString(url.QueryEscape(f.values[key]))
	}
	return buf.String()
}
