// Package template projects flat local attributes into the nested elements
// used both when creating an item and when setting one of its fields.
package template

import (
	"sort"

	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/schema"
	"github.com/diwise/ews-client/pkg/ews/tree"
)

// TextKey is passed through as the node text instead of becoming an attribute
const TextKey string = "text"

type Attribute struct {
	Name  fields.Attribute
	Value any
}

// Attributes is an ordered list of local attribute values
type Attributes []Attribute

func (a Attributes) With(name fields.Attribute, value any) Attributes {
	return append(a, Attribute{Name: name, Value: value})
}

func (a Attributes) Get(name fields.Attribute) (any, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

var companionDefaults = map[fields.Attribute]any{
	fields.BodyType: "Text",
}

type listRule func(value string) tree.Node

func attendee(address string) tree.Node {
	return tree.T("Attendee",
		tree.T("Mailbox",
			tree.Text(tree.Types, "EmailAddress", address),
		),
	)
}

func str(value string) tree.Node {
	return tree.Text(tree.Types, "String", value)
}

var listRules = map[fields.Attribute]listRule{
	fields.Categories:        str,
	fields.RequiredAttendees: attendee,
	fields.OptionalAttendees: attendee,
	fields.Resources:         attendee,
}

// Build converts attributes into the sub elements of an item. Companion
// attributes are folded into their primary attribute and never projected on
// their own.
func Build(s schema.Schema, attrs Attributes) []tree.Node {
	resolved := make(Attributes, 0, len(attrs))
	for _, a := range attrs {
		resolved = append(resolved, Attribute{Name: s.Resolve(a.Name), Value: a.Value})
	}

	nodes := make([]tree.Node, 0, len(resolved))
	names := make([]fields.Attribute, 0, len(resolved))

	for _, a := range resolved {
		if s.IsCompanion(a.Name) {
			continue
		}

		value := a.Value

		if companion, ok := s.Companion(a.Name); ok {
			value = composite(companion, value, resolved)
		}

		nodes = append(nodes, project(a.Name, value))
		names = append(names, a.Name)
	}

	sortBySchemaOrder(nodes, names)

	return nodes
}

func composite(companion fields.Attribute, value any, attrs Attributes) any {
	text, ok := value.(string)
	if !ok {
		return value
	}

	companionValue, found := attrs.Get(companion)
	if !found || companionValue == nil {
		companionValue, found = companionDefaults[companion]
	}

	if !found {
		return text
	}

	return map[string]any{
		string(companion): companionValue,
		TextKey:           text,
	}
}

func project(name fields.Attribute, value any) tree.Node {
	elementName := fields.CamelCase(name)

	if rule, ok := listRules[name]; ok {
		if values, ok := value.([]string); ok {
			n := tree.T(elementName)
			for _, v := range values {
				n.Children = append(n.Children, rule(v))
			}
			return n
		}
	}

	switch v := value.(type) {
	case string:
		return tree.Text(tree.Types, elementName, v)
	case map[string]any:
		return projectMap(elementName, v)
	default:
		return tree.Node{Space: tree.Types, Name: elementName, Value: v}
	}
}

func projectMap(elementName string, values map[string]any) tree.Node {
	n := tree.T(elementName)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == TextKey {
			n.Text = tree.Format(values[k])
			continue
		}

		name := fields.CamelCase(fields.Attribute(k))

		if nested, ok := values[k].(map[string]any); ok {
			n.Children = append(n.Children, projectMap(name, nested))
			continue
		}

		n.Attrs = append(n.Attrs, tree.Attr{Name: name, Value: tree.Format(values[k])})
	}

	return n
}
