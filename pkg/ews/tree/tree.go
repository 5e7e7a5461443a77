// Package tree holds the nested element tree that requests are built as and
// responses are parsed into. It knows nothing about item schemas.
package tree

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	Soap     string = "soap"
	Types    string = "t"
	Messages string = "m"
)

type Attr struct {
	Name  string
	Value string
}

type Node struct {
	Space string
	Name  string
	Attrs []Attr

	// Text is the character data of the node. Value is used instead when a
	// scalar should be formatted by the encoder rather than by the builder.
	Text  string
	Value any

	Children []Node
}

func New(space, name string, children ...Node) Node {
	return Node{Space: space, Name: name, Children: children}
}

// T creates a node in the types namespace
func T(name string, children ...Node) Node {
	return New(Types, name, children...)
}

// M creates a node in the messages namespace
func M(name string, children ...Node) Node {
	return New(Messages, name, children...)
}

func Text(space, name, text string) Node {
	return Node{Space: space, Name: name, Text: text}
}

func (n Node) WithAttr(name, value string) Node {
	attrs := make([]Attr, 0, len(n.Attrs)+1)
	attrs = append(attrs, n.Attrs...)
	n.Attrs = append(attrs, Attr{Name: name, Value: value})
	return n
}

func (n Node) WithText(text string) Node {
	n.Text = text
	return n
}

func (n Node) Append(children ...Node) Node {
	c := make([]Node, 0, len(n.Children)+len(children))
	c = append(c, n.Children...)
	n.Children = append(c, children...)
	return n
}

func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n Node) Child(name string) (Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Node{}, false
}

func (n Node) ChildrenNamed(name string) []Node {
	var found []Node
	for _, c := range n.Children {
		if c.Name == name {
			found = append(found, c)
		}
	}
	return found
}

// Find walks the tree following element names
func (n Node) Find(path ...string) (Node, bool) {
	current := n
	for _, name := range path {
		next, ok := current.Child(name)
		if !ok {
			return Node{}, false
		}
		current = next
	}
	return current, true
}

// Lookup resolves a key path to a string. Path segments are element names,
// except a final segment starting with '@' which selects an attribute of the
// node reached so far.
func (n Node) Lookup(path []string) (string, bool) {
	if len(path) == 0 {
		return "", false
	}

	last := path[len(path)-1]
	if strings.HasPrefix(last, "@") {
		node, ok := n.Find(path[:len(path)-1]...)
		if !ok {
			return "", false
		}
		return node.Attr(last[1:])
	}

	node, ok := n.Find(path...)
	if !ok {
		return "", false
	}

	return node.Content(), true
}

// Content returns the text of the node, formatting Value if no text is set
func (n Node) Content() string {
	if n.Text == "" && n.Value != nil {
		return Format(n.Value)
	}
	return n.Text
}

// Format renders a scalar the way the wire format expects it
func Format(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case time.Time:
		return value.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if value == nil {
			return ""
		}
		return value.UTC().Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
