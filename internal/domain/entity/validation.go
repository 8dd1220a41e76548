package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// parseAbsoluteURL parses raw as an absolute URL for the named field.
// Relative references and URLs without a host are rejected.
func parseAbsoluteURL(field, raw string) (url.URL, error) {
	if raw == "" {
		return url.URL{}, fieldError(field, "URL is required")
	}

	if len(raw) > maxURLLength {
		return url.URL{}, fieldError(field, fmt.Sprintf("url must not exceed %d characters", maxURLLength))
	}

	u, err := url.Parse(raw)
	if err != nil {
		return url.URL{}, fieldError(field, fmt.Sprintf("parse URL: %v", err))
	}

	if !u.IsAbs() || u.Host == "" {
		return url.URL{}, fieldError(field, "URL must be absolute")
	}

	return *u, nil
}

var jsonNull = []byte("null")

// wireObject holds a JSON object's members by their exact key.
type wireObject map[string]json.RawMessage

// decodeObject splits data into its members. Anything but a JSON object fails.
func decodeObject(data []byte) (wireObject, error) {
	var obj wireObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return obj, nil
}

// required decodes the member named key into dst. The key must be present
// with exactly that spelling and must not be null.
func (o wireObject) required(key string, dst any) error {
	raw, ok := o[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return fieldError(key, "required field is missing")
	}
	return decodeMember(key, raw, dst)
}

// optional decodes the member named key into dst when it is present and
// non-null, leaving dst untouched otherwise.
func (o wireObject) optional(key string, dst **string) error {
	raw, ok := o[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil
	}
	var v string
	if err := decodeMember(key, raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}

func decodeMember(key string, raw json.RawMessage, dst any) error {
	err := json.Unmarshal(raw, dst)
	if err == nil {
		return nil
	}
	// Nested entities already report their own field.
	var ve *ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return fieldError(key, fmt.Sprintf("unexpected type: %v", err))
}

// equalOptional reports whether two optional strings are both absent or hold the same value.
func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
