package tree

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestEncodeWritesPrefixedElementsAndFormattedValues(t *testing.T) {
	is := is.New(t)

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	n := T("CalendarItem",
		Text(Types, "Subject", "Standup & coffee"),
		Node{Space: Types, Name: "Start", Value: start},
		Node{Space: Types, Name: "IsAllDayEvent", Value: false},
	).WithAttr("xmlns:t", Namespaces[Types])

	var buf bytes.Buffer
	is.NoErr(Encode(&buf, n))

	is.Equal(buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
		`<t:CalendarItem xmlns:t="http://schemas.microsoft.com/exchange/services/2006/types">`+
		`<t:Subject>Standup &amp; coffee</t:Subject>`+
		`<t:Start>2024-01-01T08:00:00Z</t:Start>`+
		`<t:IsAllDayEvent>false</t:IsAllDayEvent>`+
		`</t:CalendarItem>`)
}

func TestEncodeFailsOnUnnamedNode(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	err := Encode(&buf, T("Items", Node{}))
	is.True(err != nil) // a node without a name cannot be encoded
}

func TestDecodeResolvesNamespacePrefixes(t *testing.T) {
	is := is.New(t)

	n, err := Decode(strings.NewReader(calendarItemXML))
	is.NoErr(err)

	is.Equal(n.Space, Types)
	is.Equal(n.Name, "CalendarItem")
	is.Equal(len(n.Children), 3)

	id, ok := n.Lookup([]string{"ItemId", "@Id"})
	is.True(ok)
	is.Equal(id, "AAMkAD=")

	ck, ok := n.Lookup([]string{"ItemId", "@ChangeKey"})
	is.True(ok)
	is.Equal(ck, "DwAAAB")

	subject, ok := n.Lookup([]string{"Subject"})
	is.True(ok)
	is.Equal(subject, "Planning")

	email, ok := n.Lookup([]string{"Organizer", "Mailbox", "EmailAddress"})
	is.True(ok)
	is.Equal(email, "anna@example.com")
}

func TestLookupOfMissingPath(t *testing.T) {
	is := is.New(t)

	n, err := Decode(strings.NewReader(calendarItemXML))
	is.NoErr(err)

	_, ok := n.Lookup([]string{"Location"})
	is.True(!ok) // no Location element

	_, ok = n.Lookup([]string{"ItemId", "@Missing"})
	is.True(!ok) // no such attribute

	_, ok = n.Lookup(nil)
	is.True(!ok) // empty path
}

func TestDecodeOfEmptyDocument(t *testing.T) {
	is := is.New(t)

	_, err := Decode(strings.NewReader(""))
	is.True(err != nil) // should fail without a root element
}

func TestFormat(t *testing.T) {
	is := is.New(t)

	cet := time.FixedZone("CET", 3600)

	is.Equal(Format(time.Date(2024, 1, 31, 12, 0, 0, 0, cet)), "2024-01-31T11:00:00Z")
	is.Equal(Format(time.Date(2024, 1, 31, 9, 0, 0, 500_000_000, cet)), "2024-01-31T08:00:00.5Z")
	is.Equal(Format(true), "true")
	is.Equal(Format(42), "42")
	is.Equal(Format(int64(7)), "7")
	is.Equal(Format(1.5), "1.5")
	is.Equal(Format(nil), "")
}

const calendarItemXML string = `<?xml version="1.0" encoding="utf-8"?>
<t:CalendarItem xmlns:t="http://schemas.microsoft.com/exchange/services/2006/types">
  <t:ItemId Id="AAMkAD=" ChangeKey="DwAAAB" />
  <t:Subject>Planning</t:Subject>
  <t:Organizer>
    <t:Mailbox>
      <t:EmailAddress>anna@example.com</t:EmailAddress>
    </t:Mailbox>
  </t:Organizer>
</t:CalendarItem>`
