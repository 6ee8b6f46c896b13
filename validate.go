package mdwrap

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports a document that is not valid UTF-8. Nothing is
	// written for such a document.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports a document containing NUL bytes.
	ErrBinaryInput = errors.New("binary input detected")
)

// ValidateInput checks that src is text the formatter may rewrite. Control
// characters other than NUL are ordinary content and pass.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	if bytes.IndexByte(src, 0) >= 0 {
		return ErrBinaryInput
	}
	return nil
}
