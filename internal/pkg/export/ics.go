// Package export writes found calendar items in formats other tools can read
package export

import (
	"io"
	"iter"
	"time"

	"github.com/diwise/ews-client/pkg/ews/client"
	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/emersion/go-ical"
)

const productID string = "-//diwise//ews-items//EN"

// WriteCalendar encodes items as VEVENTs of a single calendar. Items without
// an id are skipped.
func WriteCalendar(w io.Writer, items iter.Seq[*client.Item], stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for item := range items {
		if item.ID() == "" {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, item.ID())
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetText(ical.PropSummary, item.Subject())

		if start, ok := item.Start(); ok {
			event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
		}

		if end, ok := item.End(); ok {
			event.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
		}

		if location := item.String(fields.Location); location != "" {
			event.Props.SetText(ical.PropLocation, location)
		}

		cal.Children = append(cal.Children, event.Component)
	}

	return ical.NewEncoder(w).Encode(cal)
}
