package schema

import (
	"github.com/diwise/ews-client/pkg/ews/fields"
)

var itemTables = Tables{
	KeyPaths: map[fields.Attribute][]string{
		fields.ItemID:                     {"ItemId", "@Id"},
		fields.ChangeKey:                  {"ItemId", "@ChangeKey"},
		fields.Subject:                    {"Subject"},
		fields.Body:                       {"Body"},
		fields.BodyType:                   {"Body", "@BodyType"},
		fields.Importance:                 {"Importance"},
		fields.Sensitivity:                {"Sensitivity"},
		fields.ItemClass:                  {"ItemClass"},
		fields.Culture:                    {"Culture"},
		fields.Size:                       {"Size"},
		fields.DateTimeReceived:           {"DateTimeReceived"},
		fields.DateTimeCreated:            {"DateTimeCreated"},
		fields.DateTimeSent:               {"DateTimeSent"},
		fields.HasAttachments:             {"HasAttachments"},
		fields.IsDraft:                    {"IsDraft"},
		fields.ReminderIsSet:              {"ReminderIsSet"},
		fields.ReminderDueBy:              {"ReminderDueBy"},
		fields.ReminderMinutesBeforeStart: {"ReminderMinutesBeforeStart"},
	},
	KeyTypes: map[fields.Attribute]Coercer{
		fields.Size:                       Int,
		fields.DateTimeReceived:           Time,
		fields.DateTimeCreated:            Time,
		fields.DateTimeSent:               Time,
		fields.HasAttachments:             Bool,
		fields.IsDraft:                    Bool,
		fields.ReminderIsSet:              Bool,
		fields.ReminderDueBy:              Time,
		fields.ReminderMinutesBeforeStart: Int,
	},
	KeyAliases: map[fields.Attribute]fields.Attribute{
		"id": fields.ItemID,
	},
	Composites: map[fields.Attribute]fields.Attribute{
		fields.Body: fields.BodyType,
	},
}

var taskTables = Tables{
	KeyPaths: map[fields.Attribute][]string{
		fields.IsComplete:         {"IsComplete"},
		fields.IsRecurring:        {"IsRecurring"},
		fields.StartDate:          {"StartDate"},
		fields.DueDate:            {"DueDate"},
		fields.CompleteDate:       {"CompleteDate"},
		fields.ReminderDueBy:      {"ReminderDueBy"},
		fields.ReminderIsSet:      {"ReminderIsSet"},
		fields.PercentComplete:    {"PercentComplete"},
		fields.Status:             {"Status"},
		fields.ActualWork:         {"ActualWork"},
		fields.TotalWork:          {"TotalWork"},
		fields.BillingInformation: {"BillingInformation"},
		fields.Mileage:            {"Mileage"},
	},
	KeyTypes: map[fields.Attribute]Coercer{
		fields.IsRecurring:     Bool,
		fields.IsComplete:      Bool,
		fields.ReminderIsSet:   Bool,
		fields.PercentComplete: Int,
		fields.StartDate:       Time,
		fields.DueDate:         Time,
		fields.CompleteDate:    Time,
		fields.ActualWork:      Int,
		fields.TotalWork:       Int,
	},
	KeyAliases: map[fields.Attribute]fields.Attribute{
		"complete":  fields.IsComplete,
		"recurring": fields.IsRecurring,
		"reminder":  fields.ReminderIsSet,
	},
}

var calendarItemTables = Tables{
	KeyPaths: map[fields.Attribute][]string{
		fields.Start:                {"Start"},
		fields.End:                  {"End"},
		fields.Location:             {"Location"},
		fields.IsAllDayEvent:        {"IsAllDayEvent"},
		fields.IsCancelled:          {"IsCancelled"},
		fields.IsMeeting:            {"IsMeeting"},
		fields.IsRecurring:          {"IsRecurring"},
		fields.LegacyFreeBusyStatus: {"LegacyFreeBusyStatus"},
		fields.MyResponseType:       {"MyResponseType"},
		fields.Organizer:            {"Organizer", "Mailbox", "EmailAddress"},
		fields.AppointmentState:     {"AppointmentState"},
	},
	KeyTypes: map[fields.Attribute]Coercer{
		fields.Start:            Time,
		fields.End:              Time,
		fields.IsAllDayEvent:    Bool,
		fields.IsCancelled:      Bool,
		fields.IsMeeting:        Bool,
		fields.IsRecurring:      Bool,
		fields.AppointmentState: Int,
	},
	KeyAliases: map[fields.Attribute]fields.Attribute{
		"all_day": fields.IsAllDayEvent,
	},
}

var (
	Item         = New("Item", "Item", itemTables)
	Task         = New("Task", "Task", itemTables.Merge(taskTables))
	CalendarItem = New("CalendarItem", "CalendarItem", itemTables.Merge(calendarItemTables))
)

var byElement = map[string]Schema{
	"Item":         Item,
	"Message":      Item,
	"Task":         Task,
	"CalendarItem": CalendarItem,
}

// ForElement returns the schema used for items of the named response element
func ForElement(name string) (Schema, bool) {
	s, ok := byElement[name]
	return s, ok
}
