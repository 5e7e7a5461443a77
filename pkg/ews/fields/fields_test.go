package fields

import (
	"testing"

	"github.com/matryer/is"
)

func TestLookupOfKnownAttributes(t *testing.T) {
	is := is.New(t)

	for attr, expected := range map[Attribute]FieldURI{
		Subject:         "item:Subject",
		Body:            "item:Body",
		Start:           "calendar:Start",
		End:             "calendar:End",
		PercentComplete: "task:PercentComplete",
		IsComplete:      "task:IsComplete",
	} {
		uri, ok := Lookup(attr)
		is.True(ok) // attribute should be registered
		is.Equal(uri, expected)
	}
}

func TestLookupOfModifierAndUnknownAttributes(t *testing.T) {
	is := is.New(t)

	_, ok := Lookup(BodyType)
	is.True(!ok) // body_type is a modifier without a field of its own

	_, ok = Lookup("no_such_attribute")
	is.True(!ok) // unknown attributes do not resolve
}

func TestCamelCase(t *testing.T) {
	is := is.New(t)

	is.Equal(CamelCase(Subject), "Subject")
	is.Equal(CamelCase(BodyType), "BodyType")
	is.Equal(CamelCase(ReminderMinutesBeforeStart), "ReminderMinutesBeforeStart")
	is.Equal(CamelCase("email_address"), "EmailAddress")
	is.Equal(CamelCase(""), "")
}
