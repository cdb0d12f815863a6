// SPDX-License-Identifier: MPL-2.0

package menufile

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the sentinel wrapped by every *ParseError.
	ErrParse = errors.New("menu parse error")
	// ErrMalformedXML is returned when a document is not well-formed XML.
	ErrMalformedXML = errors.New("malformed XML")
	// ErrUnexpectedRoot is returned when the document element is not <Menu>.
	ErrUnexpectedRoot = errors.New("root element is not <Menu>")
	// ErrMissingRequiredChild is the sentinel wrapped by MissingRequiredChildError.
	ErrMissingRequiredChild = errors.New("missing required child")
	// ErrInvalidAttribute is returned for unknown type attribute values.
	ErrInvalidAttribute = errors.New("invalid attribute value")
	// ErrIO is the sentinel wrapped by every *IOError.
	ErrIO = errors.New("menu file unreadable")
)

type (
	// ParseError reports a document that cannot be turned into a syntax tree.
	// It wraps ErrParse and the specific cause.
	ParseError struct {
		File string
		Line int
		Err  error
	}

	// MissingRequiredChildError is returned when an element lacks content the
	// grammar requires, such as a <Move> without <Old>, or a <Category> with
	// empty text (reported with Child "#text").
	MissingRequiredChildError struct {
		Element string
		Child   string
	}

	// IOError reports a menu document that could not be read.
	IOError struct {
		Path string
		Err  error
	}
)

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns ErrParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

func (e *MissingRequiredChildError) Error() string {
	if e.Child == "#text" {
		return fmt.Sprintf("<%s> requires text content", e.Element)
	}
	return fmt.Sprintf("<%s> requires a <%s> child", e.Element, e.Child)
}

// Unwrap returns ErrMissingRequiredChild for errors.Is() compatibility.
func (e *MissingRequiredChildError) Unwrap() error {
	return ErrMissingRequiredChild
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrIO and the underlying filesystem error.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
