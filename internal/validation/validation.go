// Package validation provides functionality for validating callback signatures to verify request authenticity.
package validation

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/google/go-github/v84/github"
)

// DefaultSignatureHeader is the header carrying the `sha256=<hex>` HMAC of the body.
var DefaultSignatureHeader = github.SHA256SignatureHeader

// WebhookSecret represents a secret used to validate callback signatures.
type WebhookSecret string

// NewWebhookSecret returns nil when secret is empty, which disables validation.
func NewWebhookSecret(secret string) *WebhookSecret {
	if secret == "" {
		return nil
	}
	s := WebhookSecret(secret)
	return &s
}

// ValidateSignature validates the HMAC-SHA256 signature found in header against body.
// Headers are expected with lower-case keys.
func (s *WebhookSecret) ValidateSignature(body []byte, headers map[string]string, header string) error {
	if s == nil {
		return errors.New("missing webhook secret")
	}
	if header == "" {
		header = DefaultSignatureHeader
	}
	signature, found := headers[strings.ToLower(header)]
	if !found {
		return errors.New("missing HMAC-SHA256 signature")
	}

	mediaType, _, err := mime.ParseMediaType(headers["content-type"])
	if err != nil || mediaType != "application/json" {
		return fmt.Errorf("unsupported content type: %s", headers["content-type"])
	}

	return github.ValidateSignature(signature, body, []byte(*s))
}
