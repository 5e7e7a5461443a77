package restriction

import (
	"testing"
	"time"

	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/matryer/is"
)

var (
	jan1  = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan31 = time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
)

func TestDateRangeAsRestriction(t *testing.T) {
	is := is.New(t)

	q := DateRange(jan1, jan31, false)

	is.True(q.View == nil)

	and, ok := q.Restriction.(And)
	is.True(ok)
	is.Equal(len(and), 2)

	is.Equal(and[0], IsGreaterThanOrEqualTo("calendar:Start", jan1))
	is.Equal(and[1], IsLessThanOrEqualTo("calendar:End", jan31))
}

func TestDateRangeAsCalendarView(t *testing.T) {
	is := is.New(t)

	q := DateRange(jan1, jan31, true)

	is.True(q.Restriction == nil)
	is.True(q.View != nil)
	is.Equal(q.View.StartDate, jan1)
	is.Equal(q.View.EndDate, jan31)
}

func TestDateRangeDoesNotValidateOrder(t *testing.T) {
	is := is.New(t)

	q := DateRange(jan31, jan1, false)

	and := q.Restriction.(And)
	is.Equal(and[0].(Comparison).Value, jan31)
}

func TestRestrictionNodes(t *testing.T) {
	is := is.New(t)

	nodes := DateRange(jan1, jan31, false).Nodes()
	is.Equal(len(nodes), 1)

	r := nodes[0]
	is.Equal(r.Name, "Restriction")

	uri, ok := r.Lookup([]string{"And", "IsGreaterThanOrEqualTo", "FieldURI", "@FieldURI"})
	is.True(ok)
	is.Equal(uri, "calendar:Start")

	value, ok := r.Lookup([]string{"And", "IsGreaterThanOrEqualTo", "FieldURIOrConstant", "Constant", "@Value"})
	is.True(ok)
	is.Equal(value, "2024-01-01T00:00:00Z")

	value, ok = r.Lookup([]string{"And", "IsLessThanOrEqualTo", "FieldURIOrConstant", "Constant", "@Value"})
	is.True(ok)
	is.Equal(value, "2024-01-31T23:59:59Z")
}

func TestCalendarViewNode(t *testing.T) {
	is := is.New(t)

	n := CalendarView{StartDate: jan1, EndDate: jan31, MaxEntries: 10}.Node()

	is.Equal(n.Name, "CalendarView")

	start, _ := n.Attr("StartDate")
	is.Equal(start, "2024-01-01T00:00:00Z")

	maxEntries, _ := n.Attr("MaxEntriesReturned")
	is.Equal(maxEntries, "10")
}

func TestComposedPredicates(t *testing.T) {
	is := is.New(t)

	p := Or{
		Not{Predicate: Exists{FieldURI: "task:CompleteDate"}},
		IsEqualTo(fields.FieldURI("task:Status"), "NotStarted"),
	}

	n := p.Node()
	is.Equal(n.Name, "Or")

	uri, ok := n.Lookup([]string{"Not", "Exists", "FieldURI", "@FieldURI"})
	is.True(ok)
	is.Equal(uri, "task:CompleteDate")

	status, ok := n.Lookup([]string{"IsEqualTo", "FieldURIOrConstant", "Constant", "@Value"})
	is.True(ok)
	is.Equal(status, "NotStarted")
}

func TestCalendarViewKeepsFractionalSeconds(t *testing.T) {
	is := is.New(t)

	start := time.Date(2024, 1, 10, 9, 0, 0, 500_000_000, time.FixedZone("CET", 3600))

	n := DateRange(start, jan31, true).View.Node()

	value, _ := n.Attr("StartDate")
	is.Equal(value, "2024-01-10T08:00:00.5Z")
}
