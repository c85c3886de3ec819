// Package totp implements time-based one-time passwords (RFC 6238) on top of
// the HOTP construction (RFC 4226).
//
// The package has two halves: ParseURI turns an otpauth:// provisioning URI
// into an immutable Params value, and Generate computes the code that is valid
// at a given unix timestamp. Both are pure functions with no clock, network,
// or shared state, so they are safe to call concurrently and on every display
// refresh tick.
package totp
