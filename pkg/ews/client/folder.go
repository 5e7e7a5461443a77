package client

import (
	"context"
	"time"

	"github.com/diwise/ews-client/pkg/ews"
	"github.com/diwise/ews-client/pkg/ews/errors"
	"github.com/diwise/ews-client/pkg/ews/restriction"
	"github.com/diwise/ews-client/pkg/ews/schema"
	"github.com/diwise/ews-client/pkg/ews/template"
	"github.com/diwise/ews-client/pkg/ews/tree"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Folder struct {
	client *Client
	id     ews.FolderID
	schema schema.Schema
}

func (f *Folder) ID() ews.FolderID {
	return f.id
}

func (f *Folder) folderAttribute() attribute.KeyValue {
	if f.id.IsDistinguished() {
		return attribute.String(TraceAttributeFolderID, f.id.Distinguished)
	}
	return attribute.String(TraceAttributeFolderID, f.id.ID)
}

// ItemsBetween finds the items within [start, end]. With calendarView set,
// recurring items are expanded into their occurrences. Otherwise a
// restriction on start and end is used, which only matches single and
// recurring master items.
func (f *Folder) ItemsBetween(ctx context.Context, start, end time.Time, calendarView bool, options ...QueryOption) (*ews.FindItemsResult[*Item], error) {
	var err error

	ctx, span := tracer.Start(ctx, "items-between",
		trace.WithAttributes(f.folderAttribute()),
		trace.WithAttributes(attribute.Bool("calendar-view", calendarView)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	opts, err := newQueryOptions(options)
	if err != nil {
		return nil, err
	}

	query := restriction.DateRange(start, end, calendarView)
	if query.View != nil {
		query.View.MaxEntries = opts.maxEntries
	}

	request := tree.M("FindItem", itemShape(opts.shape, opts.properties)).
		WithAttr("Traversal", string(opts.traversal)).
		Append(query.Nodes()...).
		Append(tree.M("ParentFolderIds", f.id.Node()))

	msg, err := f.client.submit(ctx, request)
	if err != nil {
		return nil, err
	}

	found := msg.Items()
	items := make([]*Item, 0, len(found))
	for _, node := range found {
		items = append(items, f.client.newItem(node, f.schema))
	}

	result := ews.NewFindItemsResult(items)
	if total, ok := msg.TotalItemsInView(); ok {
		result.TotalCount = total
	}
	result.IncludesLastItem = msg.IncludesLastItemInRange()

	logging.GetFromContext(ctx).Debug("found items", "count", len(items), "total", result.TotalCount)

	return result, nil
}

// CreateItem saves a new item in the folder. The attributes are projected
// the same way as when a single field is set during an update.
func (f *Folder) CreateItem(ctx context.Context, attrs template.Attributes, options ...CreateOption) (*Item, error) {
	var err error

	ctx, span := tracer.Start(ctx, "create-item",
		trace.WithAttributes(f.folderAttribute()),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	opts, err := newCreateOptions(f.client, options)
	if err != nil {
		return nil, err
	}

	request := tree.M("CreateItem",
		tree.M("SavedItemFolderId", f.id.Node()),
		tree.M("Items", tree.T(f.schema.ElementName(), template.Build(f.schema, attrs)...)),
	).WithAttr("MessageDisposition", "SaveOnly")

	if f.schema == schema.CalendarItem {
		request = request.WithAttr("SendMeetingInvitations", opts.invitations.Invitations())
	}

	msg, err := f.client.submit(ctx, request)
	if err != nil {
		return nil, err
	}

	items := msg.Items()
	if len(items) != 1 {
		err = errors.NewBadResponseError("CreateItem: expected a single item in the response")
		return nil, err
	}

	item := f.client.newItem(items[0], f.schema)
	span.SetAttributes(attribute.String(TraceAttributeItemID, item.ID()))

	return item, nil
}
