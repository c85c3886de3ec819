// Package validator validates request and domain structs behind a small
// interface, so usecases stay decoupled from the concrete engine. The
// production implementation wraps go-playground/validator v10 with English
// translations and the custom rules this service needs.
package validator
