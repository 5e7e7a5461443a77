// Package schema describes, per entity type, how attributes are located in a
// response tree, how their raw text is coerced into typed values, and which
// local aliases and composite pairs exist.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/ews-client/pkg/ews/fields"
)

// Coercer converts the raw wire text of an attribute into a typed value
type Coercer func(raw string) (any, error)

type Schema interface {
	Name() string
	ElementName() string

	Resolve(attr fields.Attribute) fields.Attribute
	FieldURI(attr fields.Attribute) (fields.FieldURI, bool)
	KeyPath(attr fields.Attribute) ([]string, bool)
	Coerce(attr fields.Attribute, raw string) (any, error)

	Companion(attr fields.Attribute) (fields.Attribute, bool)
	IsCompanion(attr fields.Attribute) bool
}

// Tables hold the per entity type lookups. Composites maps the primary half
// of a composite field to its companion attribute.
type Tables struct {
	KeyPaths   map[fields.Attribute][]string
	KeyTypes   map[fields.Attribute]Coercer
	KeyAliases map[fields.Attribute]fields.Attribute
	Composites map[fields.Attribute]fields.Attribute
}

// Merge returns a new set of tables where entries in overlay take precedence
// over the receiver's entries. Neither input is modified.
func (t Tables) Merge(overlay Tables) Tables {
	return Tables{
		KeyPaths:   mergeMaps(t.KeyPaths, overlay.KeyPaths),
		KeyTypes:   mergeMaps(t.KeyTypes, overlay.KeyTypes),
		KeyAliases: mergeMaps(t.KeyAliases, overlay.KeyAliases),
		Composites: mergeMaps(t.Composites, overlay.Composites),
	}
}

func mergeMaps[V any](base, overlay map[fields.Attribute]V) map[fields.Attribute]V {
	merged := make(map[fields.Attribute]V, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

type schemaImpl struct {
	name        string
	elementName string
	tables      Tables
	companions  map[fields.Attribute]bool
}

func New(name, elementName string, tables Tables) Schema {
	s := &schemaImpl{
		name:        name,
		elementName: elementName,
		tables:      tables.Merge(Tables{}),
		companions:  map[fields.Attribute]bool{},
	}

	for _, companion := range s.tables.Composites {
		s.companions[companion] = true
	}

	return s
}

func (s *schemaImpl) Name() string {
	return s.name
}

func (s *schemaImpl) ElementName() string {
	return s.elementName
}

func (s *schemaImpl) Resolve(attr fields.Attribute) fields.Attribute {
	if alias, ok := s.tables.KeyAliases[attr]; ok {
		return alias
	}
	return attr
}

func (s *schemaImpl) FieldURI(attr fields.Attribute) (fields.FieldURI, bool) {
	return fields.Lookup(s.Resolve(attr))
}

func (s *schemaImpl) KeyPath(attr fields.Attribute) ([]string, bool) {
	path, ok := s.tables.KeyPaths[s.Resolve(attr)]
	if !ok {
		return nil, false
	}

	p := make([]string, len(path))
	copy(p, path)
	return p, true
}

func (s *schemaImpl) Coerce(attr fields.Attribute, raw string) (any, error) {
	coerce, ok := s.tables.KeyTypes[s.Resolve(attr)]
	if !ok {
		return raw, nil
	}

	v, err := coerce(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to coerce %s: %w", s.name, attr, err)
	}

	return v, nil
}

func (s *schemaImpl) Companion(attr fields.Attribute) (fields.Attribute, bool) {
	companion, ok := s.tables.Composites[s.Resolve(attr)]
	return companion, ok
}

func (s *schemaImpl) IsCompanion(attr fields.Attribute) bool {
	return s.companions[s.Resolve(attr)]
}

func Bool(raw string) (any, error) {
	return strings.EqualFold(strings.TrimSpace(raw), "true"), nil
}

func Int(raw string) (any, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

func Time(raw string) (any, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(raw))
}
