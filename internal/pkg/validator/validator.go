package validator

// Validator validates a struct and reports field errors.
type Validator interface {
	Validate(data any) error
}
