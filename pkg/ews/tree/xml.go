package tree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

var Namespaces = map[string]string{
	Soap:     "http://schemas.xmlsoap.org/soap/envelope/",
	Types:    "http://schemas.microsoft.com/exchange/services/2006/types",
	Messages: "http://schemas.microsoft.com/exchange/services/2006/messages",
}

func prefixFor(namespaceURL string) string {
	// undeclared prefixes are reported as is by the decoder
	if _, ok := Namespaces[namespaceURL]; ok {
		return namespaceURL
	}

	for prefix, url := range Namespaces {
		if url == namespaceURL {
			return prefix
		}
	}
	return ""
}

func (n Node) qualifiedName() string {
	if n.Space == "" {
		return n.Name
	}
	return n.Space + ":" + n.Name
}

// MarshalXML implements xml.Marshaler. Prefixes are written as is, so the
// root of a document is expected to carry the matching xmlns declarations.
func (n Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if n.Name == "" {
		return fmt.Errorf("tree: node without a name")
	}

	start := xml.StartElement{Name: xml.Name{Local: n.qualifiedName()}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if content := n.Content(); content != "" {
		if err := e.EncodeToken(xml.CharData(content)); err != nil {
			return err
		}
	}

	for _, child := range n.Children {
		if err := child.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}

// UnmarshalXML implements xml.Unmarshaler
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Space = prefixFor(start.Name.Space)
	n.Name = start.Name.Local
	n.Attrs = nil
	n.Children = nil
	n.Value = nil

	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		n.Attrs = append(n.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}

	var text strings.Builder

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			child := Node{}
			if err := child.UnmarshalXML(d, tok); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(tok)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return nil
		}
	}
}

var _ xml.Marshaler = Node{}
var _ xml.Unmarshaler = (*Node)(nil)

// Encode writes the XML header followed by the encoded node
func Encode(w io.Writer, n Node) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	if err := enc.Encode(n); err != nil {
		return err
	}

	return enc.Flush()
}

// Decode reads the first element of a document
func Decode(r io.Reader) (Node, error) {
	d := xml.NewDecoder(r)

	for {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return Node{}, fmt.Errorf("tree: no root element found")
			}
			return Node{}, err
		}

		if start, ok := tok.(xml.StartElement); ok {
			var n Node
			if err := n.UnmarshalXML(d, start); err != nil {
				return Node{}, err
			}
			return n, nil
		}
	}
}
