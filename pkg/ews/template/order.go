package template

import (
	"sort"

	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/tree"
)

// The remote schema is a sequence, so item elements have to be sent in the
// order it declares them. Attributes not listed here keep their given order
// after the listed ones.
var schemaOrder = []fields.Attribute{
	fields.ItemClass,
	fields.Subject,
	fields.Sensitivity,
	fields.Body,
	fields.DateTimeReceived,
	fields.Size,
	fields.Categories,
	fields.Importance,
	fields.IsDraft,
	fields.DateTimeSent,
	fields.DateTimeCreated,
	fields.ReminderDueBy,
	fields.ReminderIsSet,
	fields.ReminderMinutesBeforeStart,
	fields.HasAttachments,
	fields.Culture,

	fields.Start,
	fields.End,
	fields.IsAllDayEvent,
	fields.LegacyFreeBusyStatus,
	fields.Location,
	fields.IsMeeting,
	fields.IsCancelled,
	fields.IsRecurring,
	fields.MyResponseType,
	fields.Organizer,
	fields.RequiredAttendees,
	fields.OptionalAttendees,
	fields.Resources,
	fields.AppointmentState,

	fields.ActualWork,
	fields.BillingInformation,
	fields.CompleteDate,
	fields.DueDate,
	fields.IsComplete,
	fields.Mileage,
	fields.PercentComplete,
	fields.StartDate,
	fields.Status,
	fields.TotalWork,
}

var orderIndex = func() map[fields.Attribute]int {
	idx := make(map[fields.Attribute]int, len(schemaOrder))
	for i, attr := range schemaOrder {
		idx[attr] = i
	}
	return idx
}()

func rank(attr fields.Attribute) int {
	if i, ok := orderIndex[attr]; ok {
		return i
	}
	return len(schemaOrder)
}

type byRank struct {
	nodes []tree.Node
	names []fields.Attribute
}

func (b byRank) Len() int           { return len(b.nodes) }
func (b byRank) Less(i, j int) bool { return rank(b.names[i]) < rank(b.names[j]) }
func (b byRank) Swap(i, j int) {
	b.nodes[i], b.nodes[j] = b.nodes[j], b.nodes[i]
	b.names[i], b.names[j] = b.names[j], b.names[i]
}

func sortBySchemaOrder(nodes []tree.Node, names []fields.Attribute) {
	sort.Stable(byRank{nodes: nodes, names: names})
}
