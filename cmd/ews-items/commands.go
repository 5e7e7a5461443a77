package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/diwise/ews-client/internal/pkg/export"
	"github.com/diwise/ews-client/pkg/ews"
	"github.com/diwise/ews-client/pkg/ews/changes"
	"github.com/diwise/ews-client/pkg/ews/client"
	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/template"
	"github.com/urfave/cli/v3"
)

func betweenCommand() *cli.Command {
	return &cli.Command{
		Name:  "between",
		Usage: "List the calendar items between two instants",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "Start of the range (RFC3339)", Required: true},
			&cli.StringFlag{Name: "end", Usage: "End of the range (RFC3339)", Required: true},
			&cli.BoolFlag{Name: "view", Usage: "Use a calendar view and expand recurring items"},
			&cli.IntFlag{Name: "max", Usage: "Maximum number of occurrences when using a calendar view"},
			&cli.StringFlag{Name: "format", Usage: "Output format, text or ics", Value: "text"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			start, err := parseTime(cmd.String("start"))
			if err != nil {
				return err
			}

			end, err := parseTime(cmd.String("end"))
			if err != nil {
				return err
			}

			folder := a.client.CalendarFolder(a.cfg.Folders.Calendar.FolderID(a.cfg.Mailbox))

			result, err := folder.ItemsBetween(ctx, start, end, cmd.Bool("view"),
				client.MaxEntries(int(cmd.Int("max"))),
				client.AdditionalProperties(fields.Location),
			)
			if err != nil {
				return err
			}

			if cmd.String("format") == "ics" {
				return export.WriteCalendar(os.Stdout, result.All(), time.Now())
			}

			for item := range result.All() {
				printItem(os.Stdout, item)
			}

			return nil
		},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a calendar item",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Required: true},
			&cli.StringFlag{Name: "start", Usage: "RFC3339", Required: true},
			&cli.StringFlag{Name: "end", Usage: "RFC3339", Required: true},
			&cli.StringFlag{Name: "body"},
			&cli.StringFlag{Name: "body-type", Usage: "Text or HTML"},
			&cli.StringFlag{Name: "location"},
			&cli.StringSliceFlag{Name: "attendee", Usage: "Email address of a required attendee"},
			&cli.StringFlag{Name: "invitations", Usage: "SendToNone, SendOnlyToAll or SendToAllAndSaveCopy"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			start, err := parseTime(cmd.String("start"))
			if err != nil {
				return err
			}

			end, err := parseTime(cmd.String("end"))
			if err != nil {
				return err
			}

			attrs := template.Attributes{}.
				With(fields.Subject, cmd.String("subject")).
				With(fields.Start, start).
				With(fields.End, end)

			optional := map[fields.Attribute]string{
				fields.Body:     cmd.String("body"),
				fields.BodyType: cmd.String("body-type"),
				fields.Location: cmd.String("location"),
			}
			for _, attr := range []fields.Attribute{fields.Body, fields.BodyType, fields.Location} {
				if optional[attr] != "" {
					attrs = attrs.With(attr, optional[attr])
				}
			}

			if attendees := cmd.StringSlice("attendee"); len(attendees) > 0 {
				attrs = attrs.With(fields.RequiredAttendees, attendees)
			}

			options := []client.CreateOption{}
			if invitations := cmd.String("invitations"); invitations != "" {
				options = append(options, client.SendMeetingInvitations(ews.NotificationMode(invitations)))
			}

			folder := a.client.CalendarFolder(a.cfg.Folders.Calendar.FolderID(a.cfg.Mailbox))

			item, err := folder.CreateItem(ctx, attrs, options...)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%s\t%s\n", item.ID(), item.ChangeKey())

			return nil
		},
	}
}

func createTaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-task",
		Usage: "Create a task in the tasks folder",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Required: true},
			&cli.StringFlag{Name: "body"},
			&cli.StringFlag{Name: "due", Usage: "Due date (RFC3339)"},
			&cli.StringSliceFlag{Name: "category"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			attrs := template.Attributes{}.With(fields.Subject, cmd.String("subject"))

			if body := cmd.String("body"); body != "" {
				attrs = attrs.With(fields.Body, body)
			}

			if due := cmd.String("due"); due != "" {
				t, err := parseTime(due)
				if err != nil {
					return err
				}
				attrs = attrs.With(fields.DueDate, t)
			}

			if categories := cmd.StringSlice("category"); len(categories) > 0 {
				attrs = attrs.With(fields.Categories, categories)
			}

			folder := a.client.TaskFolder(a.cfg.Folders.Tasks.FolderID(a.cfg.Mailbox))

			item, err := folder.CreateItem(ctx, attrs)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "%s\t%s\n", item.ID(), item.ChangeKey())

			return nil
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Set or clear attributes of an existing item",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true},
			&cli.StringFlag{Name: "change-key", Usage: "Update the version with this change key, the server rejects it if the item has changed since"},
			&cli.StringSliceFlag{Name: "set", Usage: "attribute=value, e.g. subject=Retro"},
			&cli.StringSliceFlag{Name: "clear", Usage: "attribute to clear, e.g. location"},
			&cli.StringFlag{Name: "conflict-resolution", Usage: "NeverOverwrite, AutoResolve or AlwaysOverwrite"},
			&cli.StringFlag{Name: "notify", Usage: "How attendees are notified of the change"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := setup(ctx, cmd)
			if err != nil {
				return err
			}

			updates, err := parseUpdates(cmd.StringSlice("set"), cmd.StringSlice("clear"))
			if err != nil {
				return err
			}

			item, err := a.client.GetItem(ctx, ews.ItemID{ID: cmd.String("id")}, ews.IDOnly)
			if err != nil {
				return err
			}

			options := []client.UpdateOption{}

			if changeKey := cmd.String("change-key"); changeKey != "" {
				item = a.client.Item(ews.ItemID{ID: item.ID(), ChangeKey: changeKey}, item.Schema())
				if cmd.String("conflict-resolution") == "" {
					options = append(options, client.WithConflictResolution(ews.NeverOverwrite))
				}
			}

			if cr := cmd.String("conflict-resolution"); cr != "" {
				options = append(options, client.WithConflictResolution(ews.ConflictResolution(cr)))
			}
			if nm := cmd.String("notify"); nm != "" {
				options = append(options, client.WithNotificationMode(ews.NotificationMode(nm)))
			}

			result, err := item.Update(ctx, updates, options...)
			if err != nil {
				return err
			}

			if result.NoOp {
				fmt.Fprintln(os.Stdout, "nothing to update")
				return nil
			}

			printItem(os.Stdout, result.Item)

			return nil
		},
	}
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected RFC3339: %w", value, err)
	}
	return t, nil
}

// parseUpdates turns attribute=value pairs and attribute names into an update
// list, sets first and clears second
func parseUpdates(set, cleared []string) (changes.Updates, error) {
	updates := changes.Updates{}

	for _, pair := range set {
		attr, value, found := strings.Cut(pair, "=")
		if !found || attr == "" {
			return nil, fmt.Errorf("invalid update %q, expected attribute=value", pair)
		}
		updates = updates.Set(fields.Attribute(strings.TrimSpace(attr)), value)
	}

	for _, attr := range cleared {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			return nil, fmt.Errorf("attribute to clear must not be empty")
		}
		updates = updates.Clear(fields.Attribute(attr))
	}

	return updates, nil
}

func printItem(w io.Writer, item *client.Item) {
	start, _ := item.Start()
	end, _ := item.End()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		item.ID(),
		start.Format(time.RFC3339),
		end.Format(time.RFC3339),
		item.Subject(),
	)
}
