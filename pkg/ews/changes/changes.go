// Package changes turns local attribute updates into the field level change
// directives that make up an item change.
package changes

import (
	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/schema"
	"github.com/diwise/ews-client/pkg/ews/template"
	"github.com/diwise/ews-client/pkg/ews/tree"
)

// Value is either a new value for an attribute or a request to clear it
type Value struct {
	v       any
	cleared bool
}

func Set(v any) Value {
	return Value{v: v}
}

func Clear() Value {
	return Value{cleared: true}
}

// IsClear reports whether the attribute should be removed. A nil value
// clears as well.
func (v Value) IsClear() bool {
	return v.cleared || v.v == nil
}

func (v Value) Get() any {
	return v.v
}

type Update struct {
	Attribute fields.Attribute
	Value     Value
}

// Updates is an ordered list of attribute changes. The order is kept in the
// resulting directives.
type Updates []Update

func (u Updates) Set(attr fields.Attribute, v any) Updates {
	return append(u, Update{Attribute: attr, Value: Set(v)})
}

func (u Updates) Clear(attr fields.Attribute) Updates {
	return append(u, Update{Attribute: attr, Value: Clear()})
}

type Kind int

const (
	SetItemField Kind = iota
	DeleteItemField
)

func (k Kind) String() string {
	if k == DeleteItemField {
		return "DeleteItemField"
	}
	return "SetItemField"
}

type Directive struct {
	Kind     Kind
	FieldURI fields.FieldURI
	Element  string
	Payload  []tree.Node
}

// Node renders the directive as it appears inside an ItemChange's Updates
func (d Directive) Node() tree.Node {
	uri := tree.T("FieldURI").WithAttr("FieldURI", d.FieldURI.String())

	if d.Kind == DeleteItemField {
		return tree.T(d.Kind.String(), uri)
	}

	return tree.T(d.Kind.String(), uri, tree.T(d.Element, d.Payload...))
}

// Build emits one directive per attribute that resolves to a known field, in
// the order the attributes were first given. An attribute given more than
// once, directly or through an alias, takes its last value. Companion
// attributes never produce their own directive but are folded into their
// primary's payload when both are set.
func Build(s schema.Schema, updates Updates) []Directive {
	order, latest := collapse(s, updates)
	directives := []Directive{}

	for _, attr := range order {
		if s.IsCompanion(attr) {
			continue
		}

		uri, ok := s.FieldURI(attr)
		if !ok {
			continue
		}

		value := latest[attr]

		if value.IsClear() {
			directives = append(directives, Directive{Kind: DeleteItemField, FieldURI: uri})
			continue
		}

		attrs := template.Attributes{}.With(attr, value.Get())

		if companion, ok := s.Companion(attr); ok {
			if v, found := latest[companion]; found && !v.IsClear() {
				attrs = attrs.With(companion, v.Get())
			}
		}

		directives = append(directives, Directive{
			Kind:     SetItemField,
			FieldURI: uri,
			Element:  s.ElementName(),
			Payload:  template.Build(s, attrs),
		})
	}

	return directives
}

// collapse resolves aliases and keeps each attribute once, at the position
// of its first occurrence with the value of its last
func collapse(s schema.Schema, updates Updates) ([]fields.Attribute, map[fields.Attribute]Value) {
	order := make([]fields.Attribute, 0, len(updates))
	latest := make(map[fields.Attribute]Value, len(updates))

	for _, u := range updates {
		attr := s.Resolve(u.Attribute)
		if _, seen := latest[attr]; !seen {
			order = append(order, attr)
		}
		latest[attr] = u.Value
	}

	return order, latest
}
