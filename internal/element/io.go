// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package element

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/utils/v4"
)

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Annotate(err, "parsing document")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := New(t.Name.Local)
			for _, a := range t.Attr {
				node.SetAttrib(a.Name.Local, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.NotValidf("second root element %q", t.Name.Local)
				}
				root = node
			} else {
				stack[len(stack)-1].AppendChild(node)
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})
		case xml.EndElement:
			last := len(stack) - 1
			stack[last].SetValue(strings.TrimSpace(text[last].String()))
			stack = stack[:last]
			text = text[:last]
		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}
		}
	}
	if root == nil {
		return nil, errors.NotFoundf("root element")
	}
	return root, nil
}

// ParseFile reads the named XML file.
func ParseFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	root, err := Parse(f)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %q", path)
	}
	return root, nil
}

// Write writes the subtree rooted at n as an indented XML document.
func (n *Node) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Trace(err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := n.encode(enc); err != nil {
		return errors.Trace(err)
	}
	if err := enc.Flush(); err != nil {
		return errors.Trace(err)
	}
	_, err := io.WriteString(w, "\n")
	return errors.Trace(err)
}

func (n *Node) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: n.name}}
	for _, a := range n.attribs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.name}, Value: a.value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.value != "" {
		if err := enc.EncodeToken(xml.CharData(n.value)); err != nil {
			return err
		}
	}
	for _, child := range n.children {
		if err := child.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// SaveFile writes the document to path, replacing any existing file
// atomically.
func (n *Node) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := n.Write(&buf); err != nil {
		return errors.Trace(err)
	}
	if err := utils.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Annotatef(err, "writing %q", path)
	}
	return nil
}
