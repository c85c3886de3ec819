package entity

// FieldKind tells the display layer how to render a secret field.
type FieldKind string

const (
	// FieldKindPlain is a static value rendered as-is.
	FieldKindPlain FieldKind = "plain"
	// FieldKindTOTP is an otpauth:// value rendered as a live code.
	FieldKindTOTP FieldKind = "totp"
	// FieldKindInvalid is an otpauth:// value that failed to parse.
	FieldKindInvalid FieldKind = "invalid"
)

// Field is one key of a secret, classified for display. A TOTP field carries
// the current code and its validity window; an invalid field carries the
// parse failure instead, without affecting its siblings.
type Field struct {
	Name       string
	Kind       FieldKind
	Value      string
	Issuer     string
	Label      string
	Code       string
	ValidFrom  int64
	ValidUntil int64
	Remaining  int64
	Error      string
}

// Secret is one monitored secret with its classified fields. Error is set
// when the secret itself could not be fetched; Fields is empty in that case.
type Secret struct {
	Name   string
	Fields []Field
	Error  string
}
