/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/base64"
	"fmt"

	"github.com/suparena/customerstore/document"
	"github.com/suparena/customerstore/errors"
)

// EncodePageToken turns a last evaluated key into an opaque continuation token.
// A nil or empty key yields the empty token, which marks the last page.
func EncodePageToken(key document.Document) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	b, err := document.MarshalTyped(key)
	if err != nil {
		return "", fmt.Errorf("encoding page token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodePageToken parses a token produced by EncodePageToken. The empty token
// decodes to a nil key.
func DecodePageToken(token string) (document.Document, error) {
	if token == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, errors.NewValidationError("token", "is not a valid page token")
	}
	key, err := document.UnmarshalTyped(b)
	if err != nil || len(key) == 0 {
		return nil, errors.NewValidationError("token", "is not a valid page token")
	}
	return key, nil
}
