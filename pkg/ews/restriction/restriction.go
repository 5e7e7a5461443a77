// Package restriction builds the search predicates and calendar views used
// when finding items.
package restriction

import (
	"time"

	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/tree"
)

// Predicate is a node in a restriction tree
type Predicate interface {
	Node() tree.Node
	predicate()
}

type And []Predicate
type Or []Predicate

type Not struct {
	Predicate Predicate
}

type Exists struct {
	FieldURI fields.FieldURI
}

// Comparison pairs a field with a constant value
type Comparison struct {
	Operator string
	FieldURI fields.FieldURI
	Value    any
}

func compare(op string, uri fields.FieldURI, v any) Comparison {
	return Comparison{Operator: op, FieldURI: uri, Value: v}
}

func IsEqualTo(uri fields.FieldURI, v any) Comparison {
	return compare("IsEqualTo", uri, v)
}

func IsNotEqualTo(uri fields.FieldURI, v any) Comparison {
	return compare("IsNotEqualTo", uri, v)
}

func IsGreaterThan(uri fields.FieldURI, v any) Comparison {
	return compare("IsGreaterThan", uri, v)
}

func IsGreaterThanOrEqualTo(uri fields.FieldURI, v any) Comparison {
	return compare("IsGreaterThanOrEqualTo", uri, v)
}

func IsLessThan(uri fields.FieldURI, v any) Comparison {
	return compare("IsLessThan", uri, v)
}

func IsLessThanOrEqualTo(uri fields.FieldURI, v any) Comparison {
	return compare("IsLessThanOrEqualTo", uri, v)
}

func (And) predicate()        {}
func (Or) predicate()         {}
func (Not) predicate()        {}
func (Exists) predicate()     {}
func (Comparison) predicate() {}

func fieldURI(uri fields.FieldURI) tree.Node {
	return tree.T("FieldURI").WithAttr("FieldURI", uri.String())
}

func group(name string, predicates []Predicate) tree.Node {
	n := tree.T(name)
	for _, p := range predicates {
		n.Children = append(n.Children, p.Node())
	}
	return n
}

func (a And) Node() tree.Node {
	return group("And", a)
}

func (o Or) Node() tree.Node {
	return group("Or", o)
}

func (n Not) Node() tree.Node {
	return tree.T("Not", n.Predicate.Node())
}

func (e Exists) Node() tree.Node {
	return tree.T("Exists", fieldURI(e.FieldURI))
}

func (c Comparison) Node() tree.Node {
	return tree.T(c.Operator,
		fieldURI(c.FieldURI),
		tree.T("FieldURIOrConstant",
			tree.T("Constant").WithAttr("Value", tree.Format(c.Value)),
		),
	)
}

// CalendarView asks the server to expand recurring items into their
// occurrences within the given range
type CalendarView struct {
	StartDate  time.Time
	EndDate    time.Time
	MaxEntries int
}

func (v CalendarView) Node() tree.Node {
	n := tree.M("CalendarView").
		WithAttr("StartDate", tree.Format(v.StartDate)).
		WithAttr("EndDate", tree.Format(v.EndDate))

	if v.MaxEntries > 0 {
		n = n.WithAttr("MaxEntriesReturned", tree.Format(v.MaxEntries))
	}

	return n
}

// Query holds either a calendar view or a restriction, never both
type Query struct {
	View        *CalendarView
	Restriction Predicate
}

// Nodes renders the query as the elements that go into a FindItem request
func (q Query) Nodes() []tree.Node {
	if q.View != nil {
		return []tree.Node{q.View.Node()}
	}

	if q.Restriction == nil {
		return []tree.Node{}
	}

	return []tree.Node{tree.M("Restriction", q.Restriction.Node())}
}

// DateRange builds a query for items within [start, end]. A calendar view
// expands recurrences into occurrences, while the restriction only matches
// single and master items whose start and end lie within the range.
func DateRange(start, end time.Time, useView bool) Query {
	if useView {
		return Query{View: &CalendarView{StartDate: start, EndDate: end}}
	}

	startURI, _ := fields.Lookup(fields.Start)
	endURI, _ := fields.Lookup(fields.End)

	return Query{
		Restriction: And{
			IsGreaterThanOrEqualTo(startURI, start),
			IsLessThanOrEqualTo(endURI, end),
		},
	}
}
