package model

import (
	"errors"
	"strings"
)

// Error kinds. Every concrete error in the service wraps exactly one of these,
// so transport layers can classify failures with errors.Is.
var (
	// ErrValidation marks malformed or missing input, detected before any store access.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced resource that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a resource that exists but is not owned by the caller.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks a request that contradicts the current state (e.g. self-subscription).
	ErrConflict = errors.New("conflict")

	// ErrUpstream marks a failure of the metadata store or object storage.
	ErrUpstream = errors.New("upstream failure")

	// ErrInternal marks a violated invariant.
	ErrInternal = errors.New("internal error")
)

func validationError(msg string) error {
	return &kindError{kind: ErrValidation, msg: msg}
}

// kindError is a leaf sentinel that reports its own message but matches its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

var kinds = []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict, ErrUpstream, ErrInternal}

// KindOf returns the kind err wraps, or nil if it wraps none.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// PublicMessage returns the message of the error that carries err's kind,
// without the operation context wrapped around it or the kind's own prefix.
// It returns "" when err wraps no kind.
func PublicMessage(err error) string {
	kind := KindOf(err)
	if kind == nil {
		return ""
	}
	if carrier := kindCarrier(err, kind); carrier != nil {
		if msg := strings.TrimPrefix(carrier.Error(), kind.Error()+": "); msg != "" {
			return msg
		}
	}
	return kind.Error()
}

// kindCarrier finds the error in err's tree that wraps kind directly.
func kindCarrier(err, kind error) error {
	switch u := err.(type) {
	case interface{ Unwrap() error }:
		next := u.Unwrap()
		if next == kind {
			return err
		}
		if next != nil {
			return kindCarrier(next, kind)
		}
	case interface{ Unwrap() []error }:
		children := u.Unwrap()
		for _, next := range children {
			if next == kind {
				return err
			}
		}
		for _, next := range children {
			if c := kindCarrier(next, kind); c != nil {
				return c
			}
		}
	}
	return nil
}
