package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"posflow/internal/platform/config"
)

// ErrMalformedSignature marks an undecodable signature header. It is distinct
// from a clean mismatch, which is reported as (false, nil).
var ErrMalformedSignature = errors.New("malformed signature header")

// SignaturePolicy is the per-provider canonicalization of webhook signatures.
// Every supported provider signs with HMAC-SHA256 and sends base64, but they
// disagree on whether the notification URL is prepended to the signed bytes.
type SignaturePolicy struct {
	SignatureKey    string
	NotificationURL string
	PrependURL      bool
}

// Verify recomputes the signature over the raw body and compares it to the
// header in constant time.
func (p SignaturePolicy) Verify(rawBody []byte, signatureHeader string) (bool, error) {
	if p.SignatureKey == "" {
		return false, errors.New("signature key not configured")
	}

	provided, err := base64.StdEncoding.DecodeString(signatureHeader)
	if err != nil {
		return false, ErrMalformedSignature
	}

	mac := hmac.New(sha256.New, []byte(p.SignatureKey))
	if p.PrependURL {
		mac.Write([]byte(p.NotificationURL))
	}
	mac.Write(rawBody)

	return hmac.Equal(mac.Sum(nil), provided), nil
}

// Policies builds the signature policy table from config. Providers without a
// configured key are absent, and their deliveries are rejected outright.
func Policies(cfg config.ProvidersConfig) map[string]SignaturePolicy {
	policies := make(map[string]SignaturePolicy)
	if cfg.Square.SignatureKey != "" {
		policies["square"] = SignaturePolicy{
			SignatureKey:    cfg.Square.SignatureKey,
			NotificationURL: cfg.Square.NotificationURL,
			PrependURL:      true,
		}
	}
	if cfg.Clover.SignatureKey != "" {
		policies["clover"] = SignaturePolicy{
			SignatureKey: cfg.Clover.SignatureKey,
		}
	}
	return policies
}
