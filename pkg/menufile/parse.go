// SPDX-License-Identifier: MPL-2.0

package menufile

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxFileSize bounds a single .menu document. Real menus are a few KB.
const maxFileSize = 4 << 20

// ParseFile reads and parses the document at path. Read failures are
// returned as *IOError so callers can treat absent optional files as such.
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	if len(data) > maxFileSize {
		return nil, &ParseError{File: path, Err: fmt.Errorf("file exceeds %d bytes", maxFileSize)}
	}
	return Parse(bytes.NewReader(data), path)
}

// Parse parses one document. filename is recorded as the Source of every
// node and used in error messages.
func Parse(r io.Reader, filename string) (*Node, error) {
	p := &parser{dec: xml.NewDecoder(r), file: filename}
	p.dec.Strict = true

	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil, p.errorf(ErrMalformedXML, "no root element")
		}
		if err != nil {
			return nil, p.malformed(err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "Menu" {
			return nil, p.errorf(ErrUnexpectedRoot, "found <%s>", start.Name.Local)
		}
		root, err := p.element(start, NodeMenu, false)
		if err != nil {
			return nil, err
		}
		if err := p.trailing(); err != nil {
			return nil, err
		}
		return root, nil
	}
}

type parser struct {
	dec  *xml.Decoder
	file string
}

func (p *parser) line() int {
	line, _ := p.dec.InputPos()
	return line
}

func (p *parser) errorf(sentinel error, format string, args ...any) error {
	return &ParseError{
		File: p.file,
		Line: p.line(),
		Err:  fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

func (p *parser) malformed(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{File: p.file, Line: syn.Line, Err: fmt.Errorf("%w: %s", ErrMalformedXML, syn.Msg)}
	}
	return &ParseError{File: p.file, Line: p.line(), Err: fmt.Errorf("%w: %w", ErrMalformedXML, err)}
}

func (p *parser) missing(line int, element, child string) error {
	return &ParseError{File: p.file, Line: line, Err: &MissingRequiredChildError{Element: element, Child: child}}
}

// trailing consumes everything after the root element; only comments,
// processing instructions and whitespace may follow.
func (p *parser) trailing() error {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return p.errorf(ErrMalformedXML, "unexpected <%s> after root element", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.errorf(ErrMalformedXML, "text after root element")
			}
		}
	}
}

// element parses the content of start, whose end tag has not been consumed.
func (p *parser) element(start xml.StartElement, typ NodeType, text bool) (*Node, error) {
	n := &Node{Type: typ, Source: p.file, Line: p.line()}
	if err := p.attributes(n, start); err != nil {
		return nil, err
	}

	// MergeFile is a container for the attribute but still carries its path
	// as character data.
	collect := text || typ == NodeMergeFile

	var chars strings.Builder
	for {
		tok, err := p.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, p.errorf(ErrMalformedXML, "unexpected end of document inside <%s>", start.Name.Local)
			}
			return nil, p.malformed(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			def, known := elementNames[t.Name.Local]
			if !known || collect {
				// Forward compatibility: unknown elements (LegacyDir,
				// KDELegacyDirs, vendor extensions) are dropped wholesale.
				if err := p.dec.Skip(); err != nil {
					return nil, p.malformed(err)
				}
				continue
			}
			child, err := p.element(t, def.typ, def.text)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			if collect {
				chars.Write(t)
			}
		case xml.EndElement:
			if collect {
				n.Text = strings.TrimSpace(chars.String())
			}
			return n, p.validate(n, start.Name.Local, text)
		}
	}
}

func (p *parser) attributes(n *Node, start xml.StartElement) error {
	for _, attr := range start.Attr {
		if attr.Name.Local != "type" {
			continue
		}
		switch n.Type {
		case NodeMerge:
			switch attr.Value {
			case "menus":
				n.LayoutMerge = MergeMenus
			case "files":
				n.LayoutMerge = MergeFiles
			case "all":
				n.LayoutMerge = MergeAll
			default:
				return p.errorf(ErrInvalidAttribute, "<Merge type=%q>", attr.Value)
			}
		case NodeMergeFile:
			switch attr.Value {
			case "path":
				n.MergeFile = MergeFilePath
			case "parent":
				n.MergeFile = MergeFileParent
			default:
				return p.errorf(ErrInvalidAttribute, "<MergeFile type=%q>", attr.Value)
			}
		}
	}
	return nil
}

func (p *parser) validate(n *Node, name string, text bool) error {
	if text && n.Text == "" {
		return p.missing(n.Line, name, "#text")
	}
	switch n.Type {
	case NodeMergeFile:
		if n.MergeFile == MergeFilePath && n.Text == "" {
			return p.missing(n.Line, name, "#text")
		}
	case NodeMove:
		if n.Child(NodeOld) == nil {
			return p.missing(n.Line, name, "Old")
		}
		if n.Child(NodeNew) == nil {
			return p.missing(n.Line, name, "New")
		}
	}
	return nil
}
