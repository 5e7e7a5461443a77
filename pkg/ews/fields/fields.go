// Package fields holds the registry that maps local attribute symbols to the
// field URIs defined by the remote schema.
package fields

import (
	"strings"
	"unicode"
)

// Attribute is a local attribute symbol in snake case, e.g. "percent_complete"
type Attribute string

// FieldURI is the remote schema's stable name for an attribute, e.g. "item:Subject"
type FieldURI string

func (f FieldURI) String() string {
	return string(f)
}

const (
	ItemID    Attribute = "item_id"
	ChangeKey Attribute = "change_key"

	Subject                    Attribute = "subject"
	Body                       Attribute = "body"
	BodyType                   Attribute = "body_type"
	Categories                 Attribute = "categories"
	Importance                 Attribute = "importance"
	Sensitivity                Attribute = "sensitivity"
	ItemClass                  Attribute = "item_class"
	Culture                    Attribute = "culture"
	Size                       Attribute = "size"
	DateTimeReceived           Attribute = "date_time_received"
	DateTimeCreated            Attribute = "date_time_created"
	DateTimeSent               Attribute = "date_time_sent"
	HasAttachments             Attribute = "has_attachments"
	IsDraft                    Attribute = "is_draft"
	ReminderIsSet              Attribute = "reminder_is_set"
	ReminderDueBy              Attribute = "reminder_due_by"
	ReminderMinutesBeforeStart Attribute = "reminder_minutes_before_start"

	Start                Attribute = "start"
	End                  Attribute = "end"
	Location             Attribute = "location"
	IsAllDayEvent        Attribute = "is_all_day_event"
	IsCancelled          Attribute = "is_cancelled"
	IsMeeting            Attribute = "is_meeting"
	LegacyFreeBusyStatus Attribute = "legacy_free_busy_status"
	MyResponseType       Attribute = "my_response_type"
	Organizer            Attribute = "organizer"
	RequiredAttendees    Attribute = "required_attendees"
	OptionalAttendees    Attribute = "optional_attendees"
	Resources            Attribute = "resources"
	AppointmentState     Attribute = "appointment_state"

	ActualWork         Attribute = "actual_work"
	BillingInformation Attribute = "billing_information"
	CompleteDate       Attribute = "complete_date"
	DueDate            Attribute = "due_date"
	IsComplete         Attribute = "is_complete"
	IsRecurring        Attribute = "is_recurring"
	PercentComplete    Attribute = "percent_complete"
	StartDate          Attribute = "start_date"
	Status             Attribute = "status"
	TotalWork          Attribute = "total_work"
	Mileage            Attribute = "mileage"
)

var registry = map[Attribute]FieldURI{
	Subject:                    "item:Subject",
	Body:                       "item:Body",
	Categories:                 "item:Categories",
	Importance:                 "item:Importance",
	Sensitivity:                "item:Sensitivity",
	ItemClass:                  "item:ItemClass",
	Culture:                    "item:Culture",
	Size:                       "item:Size",
	DateTimeReceived:           "item:DateTimeReceived",
	DateTimeCreated:            "item:DateTimeCreated",
	DateTimeSent:               "item:DateTimeSent",
	HasAttachments:             "item:HasAttachments",
	IsDraft:                    "item:IsDraft",
	ReminderIsSet:              "item:ReminderIsSet",
	ReminderDueBy:              "item:ReminderDueBy",
	ReminderMinutesBeforeStart: "item:ReminderMinutesBeforeStart",

	Start:                "calendar:Start",
	End:                  "calendar:End",
	Location:             "calendar:Location",
	IsAllDayEvent:        "calendar:IsAllDayEvent",
	IsCancelled:          "calendar:IsCancelled",
	IsMeeting:            "calendar:IsMeeting",
	LegacyFreeBusyStatus: "calendar:LegacyFreeBusyStatus",
	MyResponseType:       "calendar:MyResponseType",
	Organizer:            "calendar:Organizer",
	RequiredAttendees:    "calendar:RequiredAttendees",
	OptionalAttendees:    "calendar:OptionalAttendees",
	Resources:            "calendar:Resources",
	AppointmentState:     "calendar:AppointmentState",

	// task:IsRecurring wins over calendar:IsRecurring, the latter is read only
	ActualWork:         "task:ActualWork",
	BillingInformation: "task:BillingInformation",
	CompleteDate:       "task:CompleteDate",
	DueDate:            "task:DueDate",
	IsComplete:         "task:IsComplete",
	IsRecurring:        "task:IsRecurring",
	PercentComplete:    "task:PercentComplete",
	StartDate:          "task:StartDate",
	Status:             "task:Status",
	TotalWork:          "task:TotalWork",
	Mileage:            "task:Mileage",
}

// Lookup returns the field URI registered for an attribute
func Lookup(attr Attribute) (FieldURI, bool) {
	uri, ok := registry[attr]
	return uri, ok
}

// CamelCase converts an attribute symbol into the wire format's element casing
func CamelCase(attr Attribute) string {
	var sb strings.Builder
	upper := true

	for _, r := range string(attr) {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
