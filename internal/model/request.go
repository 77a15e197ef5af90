package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMissingField = errors.New("missing form field")
	ErrNoProduct    = errors.New("product name is empty")
)

// FieldReader exposes the current value of named form fields.
type FieldReader interface {
	Field(name string) (string, bool)
}

// Fields is a FieldReader over a plain map.
type Fields map[string]string

func (f Fields) Field(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

// FormValues is a FieldReader over submitted form values. A field that was
// posted empty is present.
type FormValues url.Values

func (v FormValues) Field(name string) (string, bool) {
	vals, ok := v[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Request is one simulator call. Params hold the raw field text.
type Request struct {
	Product string
	Type    SimType
	Params  map[string]string
}

// NewRequest reads the parameters of t from fields. Values are passed through
// untouched; only their presence is checked.
func NewRequest(product string, t SimType, fields FieldReader) (Request, error) {
	if !t.Valid() {
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownSimType, string(t))
	}
	if product == "" {
		return Request{}, ErrNoProduct
	}
	params := make(map[string]string, len(t.Params()))
	for _, name := range t.Params() {
		v, ok := fields.Field(name)
		if !ok {
			return Request{}, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
		params[name] = v
	}
	return Request{Product: product, Type: t, Params: params}, nil
}

// Query encodes Params as a URL query string.
func (r Request) Query() string {
	q := url.Values{}
	for k, v := range r.Params {
		q.Set(k, v)
	}
	return q.Encode()
}

// Path is the simulator endpoint path for the request, with the product
// name escaped as a single path segment.
func (r Request) Path() string {
	return "/api/v1/simulator/" + url.PathEscape(r.Product) + "/" + string(r.Type)
}

// ProductFromHeading strips the heading marker prefix and surrounding space.
func ProductFromHeading(heading, prefix string) string {
	name := strings.TrimSpace(heading)
	if p := strings.TrimSpace(prefix); p != "" {
		name = strings.TrimSpace(strings.TrimPrefix(name, p))
	}
	return name
}
