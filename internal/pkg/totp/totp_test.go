package totp

import (
	"errors"
	"strconv"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	libtotp "github.com/pquerna/otp/totp"
)

// rfcSecret is "12345678901234567890" in base32, the RFC 6238 appendix seed.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func rfcParams(t *testing.T, digits int) Params {
	t.Helper()

	p, err := ParseURI("otpauth://totp/rfc?secret=" + rfcSecret + "&digits=" + strconv.Itoa(digits))
	if err != nil {
		t.Fatalf("parse rfc uri: %v", err)
	}
	return p
}

func TestGenerateRFC6238Vectors(t *testing.T) {
	vectors := []struct {
		now  int64
		want string
	}{
		{59, "94287082"},
		{1111111109, "07081804"},
		{1111111111, "14050471"},
		{1234567890, "89005924"},
		{2000000000, "69279037"},
	}

	p := rfcParams(t, 8)
	for _, v := range vectors {
		got := Generate(p, v.now)
		if got.Value != v.want {
			t.Errorf("Generate at %d = %q, want %q", v.now, got.Value, v.want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := rfcParams(t, 6)

	first := Generate(p, 1111111109)
	second := Generate(p, 1111111109)
	if first != second {
		t.Errorf("same inputs produced %+v and %+v", first, second)
	}
}

func TestGeneratePeriodAlignment(t *testing.T) {
	p := rfcParams(t, 6)

	// 60..89 all share counter 2 for a 30-second period.
	base := Generate(p, 60)
	for now := int64(60); now < 90; now++ {
		got := Generate(p, now)
		if got != base {
			t.Fatalf("code changed inside one window: at %d got %+v, want %+v", now, got, base)
		}
	}

	next := Generate(p, 90)
	if next.Value == base.Value && next.ValidFrom == base.ValidFrom {
		t.Fatalf("window did not advance at 90: %+v", next)
	}
}

func TestGenerateWindowBounds(t *testing.T) {
	p := rfcParams(t, 6)

	cur := Generate(p, 65)
	if cur.ValidFrom != 60 || cur.ValidUntil != 90 {
		t.Fatalf("window at 65 = [%d, %d), want [60, 90)", cur.ValidFrom, cur.ValidUntil)
	}
	if got := cur.Remaining(65); got != 25 {
		t.Errorf("Remaining(65) = %d, want 25", got)
	}

	// Adjacent windows must tile the timeline.
	next := Generate(p, cur.ValidUntil)
	if next.ValidFrom != cur.ValidUntil {
		t.Errorf("next window starts at %d, want %d", next.ValidFrom, cur.ValidUntil)
	}
}

func TestGenerateZeroTimestamp(t *testing.T) {
	p := rfcParams(t, 6)

	got := Generate(p, 0)
	if got.ValidFrom != 0 || got.ValidUntil != 30 {
		t.Fatalf("window at 0 = [%d, %d), want [0, 30)", got.ValidFrom, got.ValidUntil)
	}
	if len(got.Value) != 6 {
		t.Errorf("code length = %d, want 6", len(got.Value))
	}
}

func TestGeneratePadsLeadingZeros(t *testing.T) {
	p := rfcParams(t, 8)

	// now=1111111109 yields 07081804, which exercises the left pad.
	got := Generate(p, 1111111109)
	if len(got.Value) != 8 {
		t.Fatalf("code %q length = %d, want 8", got.Value, len(got.Value))
	}
	if got.Value[0] != '0' {
		t.Errorf("expected leading zero, got %q", got.Value)
	}

	for _, c := range got.Value {
		if c < '0' || c > '9' {
			t.Fatalf("non-numeric code %q", got.Value)
		}
	}
}

// TestGenerateMatchesReferenceLibrary cross-checks the engine against
// pquerna/otp for every supported algorithm and both common digit lengths.
func TestGenerateMatchesReferenceLibrary(t *testing.T) {
	algorithms := map[string]libotp.Algorithm{
		"SHA1":   libotp.AlgorithmSHA1,
		"SHA256": libotp.AlgorithmSHA256,
		"SHA512": libotp.AlgorithmSHA512,
	}
	digitSet := map[int]libotp.Digits{
		6: libotp.DigitsSix,
		8: libotp.DigitsEight,
	}
	timestamps := []int64{59, 1111111109, 1234567890, 2000000000}

	for algName, libAlg := range algorithms {
		for digits, libDigits := range digitSet {
			uri := "otpauth://totp/x?secret=" + rfcSecret +
				"&algorithm=" + algName + "&digits=" + strconv.Itoa(digits)
			p, err := ParseURI(uri)
			if err != nil {
				t.Fatalf("parse %s/%d uri: %v", algName, digits, err)
			}

			for _, now := range timestamps {
				want, err := libtotp.GenerateCodeCustom(rfcSecret, time.Unix(now, 0), libtotp.ValidateOpts{
					Period:    30,
					Digits:    libDigits,
					Algorithm: libAlg,
				})
				if err != nil {
					t.Fatalf("reference %s/%d at %d: %v", algName, digits, now, err)
				}

				if got := Generate(p, now); got.Value != want {
					t.Errorf("%s/%d at %d = %q, reference says %q", algName, digits, now, got.Value, want)
				}
			}
		}
	}
}

func TestGenerateSecretRoundTrip(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("generate secret: %v", err)
	}

	p, err := ParseURI("otpauth://totp/deck?secret=" + secret)
	if err != nil {
		t.Fatalf("generated secret did not parse: %v", err)
	}

	again, err := ParseURI(BuildURI(p))
	if err != nil {
		t.Fatalf("built uri did not parse: %v", err)
	}

	if Generate(p, 1234567890) != Generate(again, 1234567890) {
		t.Error("round-tripped params generate different codes")
	}
}

func TestBuildURIKeepsDisplayParts(t *testing.T) {
	p, err := ParseURI("otpauth://totp/ACME:alice@example.com?secret=" + rfcSecret + "&issuer=ACME")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	again, err := ParseURI(BuildURI(p))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if again.Issuer != "ACME" || again.Label != "alice@example.com" {
		t.Errorf("got issuer %q label %q", again.Issuer, again.Label)
	}
}

func TestGenerateCodeErrorFree(t *testing.T) {
	// The generator must be total for any parsed params: odd key lengths
	// included, since HMAC pads or hashes the key itself.
	p, err := ParseURI("otpauth://totp/x?secret=GE") // one decoded byte
	if err != nil {
		t.Fatalf("parse short secret: %v", err)
	}

	got := Generate(p, 59)
	if len(got.Value) != 6 {
		t.Fatalf("code %q length = %d, want 6", got.Value, len(got.Value))
	}

	if errors.Is(err, ErrInvalidBase32) {
		t.Fatal("short but valid base32 must not be rejected")
	}
}
