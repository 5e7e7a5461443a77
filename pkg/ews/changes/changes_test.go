package changes

import (
	"testing"

	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/schema"
	"github.com/matryer/is"
)

func TestSetSubjectAndClearBody(t *testing.T) {
	is := is.New(t)

	updates := Updates{}.
		Set(fields.Subject, "New subject").
		Clear(fields.Body)

	directives := Build(schema.Task, updates)

	is.Equal(len(directives), 2)

	is.Equal(directives[0].Kind, SetItemField)
	is.Equal(directives[0].FieldURI, fields.FieldURI("item:Subject"))
	is.Equal(directives[0].Element, "Task")
	is.Equal(len(directives[0].Payload), 1)
	is.Equal(directives[0].Payload[0].Name, "Subject")
	is.Equal(directives[0].Payload[0].Text, "New subject")

	is.Equal(directives[1].Kind, DeleteItemField)
	is.Equal(directives[1].FieldURI, fields.FieldURI("item:Body"))
	is.Equal(len(directives[1].Payload), 0) // deletes carry no payload
}

func TestEmptyUpdatesGiveNoDirectives(t *testing.T) {
	is := is.New(t)

	directives := Build(schema.CalendarItem, Updates{})

	is.True(directives != nil)
	is.Equal(len(directives), 0)
}

func TestUnknownAttributesAreSkipped(t *testing.T) {
	is := is.New(t)

	updates := Updates{}.
		Set("no_such_attribute", "x").
		Set(fields.Location, "Room 2")

	directives := Build(schema.CalendarItem, updates)

	is.Equal(len(directives), 1)
	is.Equal(directives[0].FieldURI, fields.FieldURI("calendar:Location"))
}

func TestDirectivesKeepCallerOrder(t *testing.T) {
	is := is.New(t)

	updates := Updates{}.
		Set(fields.PercentComplete, 50).
		Clear(fields.DueDate).
		Set(fields.Subject, "s").
		Set("complete", false)

	directives := Build(schema.Task, updates)

	uris := []fields.FieldURI{}
	for _, d := range directives {
		uris = append(uris, d.FieldURI)
	}

	is.Equal(uris, []fields.FieldURI{
		"task:PercentComplete",
		"task:DueDate",
		"item:Subject",
		"task:IsComplete",
	})
}

func TestBodyTypeIsFoldedIntoTheBodyDirective(t *testing.T) {
	is := is.New(t)

	updates := Updates{}.
		Set(fields.BodyType, "HTML").
		Set(fields.Body, "<b>hello</b>")

	directives := Build(schema.CalendarItem, updates)

	is.Equal(len(directives), 1) // body_type must not get a directive of its own

	body := directives[0].Payload[0]
	is.Equal(body.Name, "Body")
	is.Equal(body.Text, "<b>hello</b>")

	bodyType, ok := body.Attr("BodyType")
	is.True(ok)
	is.Equal(bodyType, "HTML")
}

func TestBodyTypeOnItsOwnIsDropped(t *testing.T) {
	is := is.New(t)

	directives := Build(schema.Task, Updates{}.Set(fields.BodyType, "HTML"))

	is.Equal(len(directives), 0)
}

func TestClearedBodyTypeFallsBackToDefault(t *testing.T) {
	is := is.New(t)

	updates := Updates{}.
		Clear(fields.BodyType).
		Set(fields.Body, "plain")

	directives := Build(schema.Task, updates)

	is.Equal(len(directives), 1)

	bodyType, _ := directives[0].Payload[0].Attr("BodyType")
	is.Equal(bodyType, "Text")
}

func TestDirectiveNodes(t *testing.T) {
	is := is.New(t)

	directives := Build(schema.Task, Updates{}.Set(fields.Subject, "s").Clear(fields.Body))

	set := directives[0].Node()
	is.Equal(set.Name, "SetItemField")

	uri, ok := set.Lookup([]string{"FieldURI", "@FieldURI"})
	is.True(ok)
	is.Equal(uri, "item:Subject")

	subject, ok := set.Lookup([]string{"Task", "Subject"})
	is.True(ok)
	is.Equal(subject, "s")

	del := directives[1].Node()
	is.Equal(del.Name, "DeleteItemField")
	is.Equal(len(del.Children), 1)
}

func TestAliasAndCanonicalNameGiveOneDirective(t *testing.T) {
	is := is.New(t)

	updates := Updates{}.
		Set("complete", true).
		Set(fields.Subject, "s").
		Set(fields.IsComplete, false)

	directives := Build(schema.Task, updates)

	is.Equal(len(directives), 2)
	is.Equal(directives[0].FieldURI, fields.FieldURI("task:IsComplete")) // position of the first occurrence
	is.Equal(directives[0].Payload[0].Value, false)                      // value of the last occurrence
	is.Equal(directives[1].FieldURI, fields.FieldURI("item:Subject"))
}

func TestRepeatedAttributeTakesItsLastValue(t *testing.T) {
	is := is.New(t)

	updates := Updates{}.
		Set(fields.Location, "Room 1").
		Set(fields.Location, "Room 2").
		Set(fields.Subject, "Sync").
		Clear(fields.Subject)

	directives := Build(schema.CalendarItem, updates)

	is.Equal(len(directives), 2)
	is.Equal(directives[0].Kind, SetItemField)
	is.Equal(directives[0].Payload[0].Text, "Room 2")
	is.Equal(directives[1].Kind, DeleteItemField)
	is.Equal(directives[1].FieldURI, fields.FieldURI("item:Subject"))
}

func TestNilValueClearsTheField(t *testing.T) {
	is := is.New(t)

	directives := Build(schema.Task, Updates{}.Set(fields.Subject, nil))

	is.Equal(len(directives), 1)
	is.Equal(directives[0].Kind, DeleteItemField)
	is.Equal(directives[0].FieldURI, fields.FieldURI("item:Subject"))
	is.True(Set(nil).IsClear())
}
