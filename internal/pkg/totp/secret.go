package totp

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"net/url"
	"strconv"
)

// secretLength follows the RFC 4226 recommendation of a 160-bit seed.
const secretLength = 20

// GenerateSecret returns a new random seed as unpadded base32.
func GenerateSecret() (string, error) {
	seed := make([]byte, secretLength)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("totp: generate secret: %w", err)
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(seed), nil
}

// BuildURI renders Params back into an otpauth://totp provisioning URI that
// ParseURI accepts, suitable for QR enrollment.
func BuildURI(p Params) string {
	q := url.Values{}
	q.Set("secret", base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(p.Secret))
	q.Set("algorithm", p.Algorithm.String())
	q.Set("digits", strconv.Itoa(p.Digits))
	q.Set("period", strconv.FormatInt(p.Period, 10))
	if p.Issuer != "" {
		q.Set("issuer", p.Issuer)
	}

	label := p.Label
	if p.Issuer != "" && label != "" {
		label = p.Issuer + ":" + label
	}

	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + label,
		RawQuery: q.Encode(),
	}

	return u.String()
}
