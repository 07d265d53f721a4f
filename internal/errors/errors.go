// Package errors defines the user-facing error codes of the storefront.
package errors

import stderrors "errors"

// DomainError is an error with a stable code that clients can branch on.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on the code so wrapped copies compare equal to the sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Wrap returns a copy of the sentinel carrying the cause and, if given, a more specific message.
func Wrap(sentinel *DomainError, cause error, message string) *DomainError {
	out := *sentinel
	out.Err = cause
	if message != "" {
		out.Message = message
	}
	return &out
}

// As reports whether err carries a DomainError and returns it.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}
