package totp

import (
	"encoding/base32"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Parse errors. Each one is deterministic for a given URI: retrying without
// changing the input yields the same outcome.
var (
	// ErrInvalidURI means the input is not an otpauth:// URI at all.
	ErrInvalidURI = errors.New("totp: not an otpauth uri")
	// ErrUnsupportedType means the URI type segment is not "totp" (e.g. hotp).
	ErrUnsupportedType = errors.New("totp: unsupported otp type")
	// ErrMissingSecret means no secret query parameter is present.
	ErrMissingSecret = errors.New("totp: missing secret parameter")
	// ErrInvalidBase32 means the secret is not valid RFC 4648 base32.
	ErrInvalidBase32 = errors.New("totp: secret is not valid base32")
	// ErrUnsupportedAlgorithm means algorithm is not SHA1, SHA256 or SHA512.
	ErrUnsupportedAlgorithm = errors.New("totp: unsupported algorithm")
	// ErrInvalidDigits means digits is non-numeric or outside 6..10.
	ErrInvalidDigits = errors.New("totp: digits out of range")
	// ErrInvalidPeriod means period is non-numeric or not positive.
	ErrInvalidPeriod = errors.New("totp: period must be positive")
)

// IsURI reports whether a stored field value looks like an otpauth URI.
// It is a cheap pre-check; ParseURI still decides whether the URI is usable.
func IsURI(value string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(value)), "otpauth://")
}

// ParseURI parses an otpauth://totp/... provisioning URI into Params.
//
// Defaults follow the Google Authenticator key-uri convention: SHA1, 6
// digits, 30-second period. secret is required; the base32 value is
// case-insensitive and "=" padding is optional. algorithm is matched
// case-insensitively. Label and issuer are extracted for display only, and
// unknown query parameters are ignored for forward compatibility. Parsing
// touches neither the network nor the clock.
func ParseURI(uri string) (Params, error) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return Params{}, fmt.Errorf("%w: %s", ErrInvalidURI, err)
	}
	if !strings.EqualFold(u.Scheme, "otpauth") {
		return Params{}, fmt.Errorf("%w: scheme %q", ErrInvalidURI, u.Scheme)
	}
	if !strings.EqualFold(u.Host, "totp") {
		return Params{}, fmt.Errorf("%w: %q", ErrUnsupportedType, u.Host)
	}

	q := u.Query()

	alg, err := parseAlgorithm(q.Get("algorithm"))
	if err != nil {
		return Params{}, err
	}

	digits, err := parseDigits(q.Get("digits"))
	if err != nil {
		return Params{}, err
	}

	period, err := parsePeriod(q.Get("period"))
	if err != nil {
		return Params{}, err
	}

	secret, err := decodeSecret(q.Get("secret"))
	if err != nil {
		return Params{}, err
	}

	issuer, label := displayParts(u, q.Get("issuer"))

	return Params{
		Secret:    secret,
		Algorithm: alg,
		Digits:    digits,
		Period:    period,
		Issuer:    issuer,
		Label:     label,
	}, nil
}

func decodeSecret(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingSecret
	}

	normalized := strings.ToUpper(strings.TrimRight(raw, "="))
	secret, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBase32, err)
	}

	return secret, nil
}

func parseAlgorithm(raw string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "SHA1":
		return AlgorithmSHA1, nil
	case "SHA256":
		return AlgorithmSHA256, nil
	case "SHA512":
		return AlgorithmSHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, raw)
	}
}

func parseDigits(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultDigits, nil
	}

	digits, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidDigits, raw)
	}
	if digits < MinDigits || digits > MaxDigits {
		return 0, fmt.Errorf("%w: %d not in %d..%d", ErrInvalidDigits, digits, MinDigits, MaxDigits)
	}

	return digits, nil
}

func parsePeriod(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultPeriod, nil
	}

	period, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPeriod, raw)
	}
	if period <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}

	return period, nil
}

// displayParts extracts issuer and label from the path, e.g.
// otpauth://totp/ACME:alice@example.com?issuer=ACME. The path form wins for
// the label; the issuer query parameter wins over the path prefix. Absence of
// either is not an error.
func displayParts(u *url.URL, issuerParam string) (issuer, label string) {
	label = strings.TrimPrefix(u.Path, "/")
	if unescaped, err := url.PathUnescape(label); err == nil {
		label = unescaped
	}

	if prefix, rest, found := strings.Cut(label, ":"); found {
		issuer = strings.TrimSpace(prefix)
		label = strings.TrimSpace(rest)
	}

	if v := strings.TrimSpace(issuerParam); v != "" {
		issuer = v
	}

	return issuer, strings.TrimSpace(label)
}
