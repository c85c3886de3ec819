package totp

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseURIDefaults(t *testing.T) {
	p, err := ParseURI("otpauth://totp/ACME:alice@example.com?secret=" + rfcSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if p.Algorithm != AlgorithmSHA1 {
		t.Errorf("algorithm = %s, want SHA1", p.Algorithm)
	}
	if p.Digits != 6 {
		t.Errorf("digits = %d, want 6", p.Digits)
	}
	if p.Period != 30 {
		t.Errorf("period = %d, want 30", p.Period)
	}
	if string(p.Secret) != "12345678901234567890" {
		t.Errorf("secret decoded to %q", p.Secret)
	}
	if p.Issuer != "ACME" || p.Label != "alice@example.com" {
		t.Errorf("issuer/label = %q/%q", p.Issuer, p.Label)
	}
}

func TestParseURIExplicitParameters(t *testing.T) {
	p, err := ParseURI("otpauth://totp/x?secret=" + rfcSecret + "&algorithm=sha512&digits=10&period=60&issuer=Deck")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if p.Algorithm != AlgorithmSHA512 {
		t.Errorf("algorithm = %s, want SHA512", p.Algorithm)
	}
	if p.Digits != 10 {
		t.Errorf("digits = %d, want 10", p.Digits)
	}
	if p.Period != 60 {
		t.Errorf("period = %d, want 60", p.Period)
	}
	if p.Issuer != "Deck" {
		t.Errorf("issuer = %q, want Deck", p.Issuer)
	}
}

func TestParseURISecretNormalization(t *testing.T) {
	canonical, err := ParseURI("otpauth://totp/x?secret=GEZDGNBVGY3TQOJQ")
	if err != nil {
		t.Fatalf("parse canonical: %v", err)
	}

	variants := []string{
		"gezdgnbvgy3tqojq",         // lower case
		"GEZDGNBVGY3TQOJQ======",   // extra padding
		"gezdgnbvgy3tqojq========", // both
	}
	for _, v := range variants {
		p, err := ParseURI("otpauth://totp/x?secret=" + v)
		if err != nil {
			t.Fatalf("parse variant %q: %v", v, err)
		}
		if string(p.Secret) != string(canonical.Secret) {
			t.Errorf("variant %q decoded to %q", v, p.Secret)
		}
	}
}

func TestParseURIErrors(t *testing.T) {
	cases := []struct {
		name string
		uri  string
		want error
	}{
		{"wrong scheme", "https://totp/x?secret=" + rfcSecret, ErrInvalidURI},
		{"hotp type", "otpauth://hotp/x?secret=ABC", ErrUnsupportedType},
		{"no secret", "otpauth://totp/x?period=30", ErrMissingSecret},
		{"empty secret", "otpauth://totp/x?secret=", ErrMissingSecret},
		{"bad base32", "otpauth://totp/x?secret=1nope!", ErrInvalidBase32},
		{"md5 algorithm", "otpauth://totp/x?algorithm=MD5&secret=ABC", ErrUnsupportedAlgorithm},
		{"digits too small", "otpauth://totp/x?secret=" + rfcSecret + "&digits=5", ErrInvalidDigits},
		{"digits too large", "otpauth://totp/x?secret=" + rfcSecret + "&digits=11", ErrInvalidDigits},
		{"digits not numeric", "otpauth://totp/x?secret=" + rfcSecret + "&digits=six", ErrInvalidDigits},
		{"zero period", "otpauth://totp/x?secret=" + rfcSecret + "&period=0", ErrInvalidPeriod},
		{"negative period", "otpauth://totp/x?secret=" + rfcSecret + "&period=-30", ErrInvalidPeriod},
		{"period not numeric", "otpauth://totp/x?secret=" + rfcSecret + "&period=soon", ErrInvalidPeriod},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseURI(tc.uri)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ParseURI(%q) error = %v, want %v", tc.uri, err, tc.want)
			}
		})
	}
}

func TestParseURIDigitBoundaries(t *testing.T) {
	for _, digits := range []int{6, 10} {
		uri := "otpauth://totp/x?secret=" + rfcSecret + "&digits=" + strconv.Itoa(digits)
		p, err := ParseURI(uri)
		if err != nil {
			t.Fatalf("digits=%d rejected: %v", digits, err)
		}
		if code := Generate(p, 59); len(code.Value) != digits {
			t.Errorf("digits=%d produced %q (len %d)", digits, code.Value, len(code.Value))
		}
	}
}

func TestParseURIIgnoresUnknownParameters(t *testing.T) {
	_, err := ParseURI("otpauth://totp/x?secret=" + rfcSecret + "&counter=3&image=logo.png")
	if err != nil {
		t.Fatalf("unknown parameters must be ignored: %v", err)
	}
}

func TestParseURIMissingLabelIsFine(t *testing.T) {
	p, err := ParseURI("otpauth://totp/?secret=" + rfcSecret)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Label != "" || p.Issuer != "" {
		t.Errorf("expected empty display parts, got %q/%q", p.Issuer, p.Label)
	}
}

func TestIsURI(t *testing.T) {
	if !IsURI("otpauth://totp/x?secret=ABC") {
		t.Error("otpauth uri not detected")
	}
	if !IsURI("  OTPAUTH://totp/x?secret=ABC") {
		t.Error("detection must be case-insensitive and trim spaces")
	}
	if IsURI("hunter2") {
		t.Error("plain value detected as uri")
	}
}
