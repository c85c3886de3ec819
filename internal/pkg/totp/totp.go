package totp

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // SHA1 is the RFC 6238 default algorithm
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"
)

const (
	// DefaultDigits is used when the URI carries no digits parameter.
	DefaultDigits = 6
	// DefaultPeriod is used when the URI carries no period parameter.
	DefaultPeriod = 30

	// MinDigits and MaxDigits bound the digits parameter.
	MinDigits = 6
	MaxDigits = 10
)

// Algorithm selects the HMAC digest used to derive codes.
type Algorithm int

const (
	// AlgorithmSHA1 is the RFC 6238 default.
	AlgorithmSHA1 Algorithm = iota
	AlgorithmSHA256
	AlgorithmSHA512
)

// String returns the canonical (upper-case) algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmSHA256:
		return "SHA256"
	case AlgorithmSHA512:
		return "SHA512"
	default:
		return "SHA1"
	}
}

func (a Algorithm) newHash() func() hash.Hash {
	switch a {
	case AlgorithmSHA256:
		return sha256.New
	case AlgorithmSHA512:
		return sha512.New
	default:
		return sha1.New
	}
}

// Params holds the decoded parameters of one TOTP seed.
//
// A Params value is immutable once built and carries no state, so it can be
// cached per secret entry and shared by read-only reference across concurrent
// refresh calls.
type Params struct {
	// Secret is the raw key, already decoded from base32.
	Secret []byte
	// Algorithm is the HMAC digest; SHA1 unless the URI says otherwise.
	Algorithm Algorithm
	// Digits is the rendered code length, between 6 and 10.
	Digits int
	// Period is the rotation interval in seconds, always positive.
	Period int64
	// Issuer and Label are display-only and never validated.
	Issuer string
	Label  string
}

// Code is one computed one-time code together with its validity window.
//
// Codes are ephemeral: they are recomputed on demand and never stored.
type Code struct {
	// Value is the zero-padded decimal code, exactly Digits characters long.
	Value string `json:"code"`
	// ValidFrom is the period-aligned unix second the window opened.
	ValidFrom int64 `json:"valid_from"`
	// ValidUntil is the exclusive unix second the window closes.
	ValidUntil int64 `json:"valid_until"`
}

// Remaining returns the seconds left before the code rotates.
func (c Code) Remaining(now int64) int64 {
	return c.ValidUntil - now
}

// Generate computes the code valid at the unix timestamp now.
//
// It is a total function for any Params produced by ParseURI: the HMAC key
// may be any length, and now may be any non-negative value including zero
// (counter zero is a valid first window). The result depends only on
// floor(now/Period) and the secret, so two calls inside the same window
// return identical codes.
func Generate(p Params, now int64) Code {
	counter := now / p.Period

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(p.Algorithm.newHash(), p.Secret)
	mac.Write(msg[:])
	digest := mac.Sum(nil)

	// RFC 4226 dynamic truncation: the trailing nibble picks a 4-byte
	// window, and the top bit is masked to keep the value in 31 bits.
	offset := digest[len(digest)-1] & 0x0f
	binCode := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff

	mod := uint64(1)
	for range p.Digits {
		mod *= 10
	}

	return Code{
		Value:      fmt.Sprintf("%0*d", p.Digits, uint64(binCode)%mod),
		ValidFrom:  counter * p.Period,
		ValidUntil: (counter + 1) * p.Period,
	}
}
