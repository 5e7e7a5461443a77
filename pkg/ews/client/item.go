package client

import (
	"context"
	"time"

	"github.com/diwise/ews-client/pkg/ews"
	"github.com/diwise/ews-client/pkg/ews/changes"
	"github.com/diwise/ews-client/pkg/ews/errors"
	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/schema"
	"github.com/diwise/ews-client/pkg/ews/tree"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Item is a local handle to a remote item. Values are read lazily from the
// element tree last returned by the server and cached. An Item must not be
// used concurrently.
type Item struct {
	client *Client
	schema schema.Schema
	node   tree.Node
	cache  map[string]any
}

func (i *Item) Schema() schema.Schema {
	return i.schema
}

// Node returns the element tree last returned by the server
func (i *Item) Node() tree.Node {
	return i.node
}

func (i *Item) ItemID() ews.ItemID {
	id, _ := ews.ItemIDFrom(i.node)
	return id
}

func (i *Item) ID() string {
	return i.ItemID().ID
}

func (i *Item) ChangeKey() string {
	return i.ItemID().ChangeKey
}

// Get returns the typed value of an attribute, or nil if the item does not
// carry it
func (i *Item) Get(attr fields.Attribute) (any, error) {
	attr = i.schema.Resolve(attr)

	if v, ok := i.cache[string(attr)]; ok {
		return v, nil
	}

	path, ok := i.schema.KeyPath(attr)
	if !ok {
		return nil, nil
	}

	raw, ok := i.node.Lookup(path)
	if !ok {
		return nil, nil
	}

	v, err := i.schema.Coerce(attr, raw)
	if err != nil {
		return nil, err
	}

	i.cache[string(attr)] = v
	return v, nil
}

func (i *Item) String(attr fields.Attribute) string {
	v, err := i.Get(attr)
	if err != nil || v == nil {
		return ""
	}
	return tree.Format(v)
}

func (i *Item) Time(attr fields.Attribute) (time.Time, bool) {
	v, err := i.Get(attr)
	if err != nil {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}

func (i *Item) Subject() string {
	return i.String(fields.Subject)
}

func (i *Item) Start() (time.Time, bool) {
	return i.Time(fields.Start)
}

func (i *Item) End() (time.Time, bool) {
	return i.Time(fields.End)
}

// Update sends the changes as a single item change. An update without any
// resulting directive is a no-op that never reaches the server. On success
// the item is refreshed with all its properties, on failure it is left as
// it was. An update that was applied but could not be read back fails with
// an error matching errors.ErrNotRefreshed.
func (i *Item) Update(ctx context.Context, updates changes.Updates, options ...UpdateOption) (*ews.UpdateItemResult[*Item], error) {
	var err error

	id := i.ItemID()

	ctx, span := tracer.Start(ctx, "update-item",
		trace.WithAttributes(attribute.String(TraceAttributeItemID, id.ID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	opts, err := newUpdateOptions(i.client, options)
	if err != nil {
		return nil, err
	}

	directives := changes.Build(i.schema, updates)
	if len(directives) == 0 {
		log.Debug("nothing to update", "item_id", id.ID)
		return ews.NewNoOpUpdateItemResult(i), nil
	}

	updateNodes := make([]tree.Node, 0, len(directives))
	for _, d := range directives {
		updateNodes = append(updateNodes, d.Node())
	}

	request := tree.M("UpdateItem",
		tree.M("ItemChanges",
			tree.T("ItemChange", id.Node(), tree.T("Updates", updateNodes...)),
		),
	).
		WithAttr("MessageDisposition", "SaveOnly").
		WithAttr("ConflictResolution", string(opts.conflictResolution))

	if i.schema == schema.CalendarItem {
		request = request.WithAttr("SendMeetingInvitationsOrCancellations", string(opts.notificationMode))
	}

	msg, err := i.client.submit(ctx, request)
	if err != nil {
		return nil, err
	}

	if items := msg.Items(); len(items) > 0 {
		if updated, ok := ews.ItemIDFrom(items[0]); ok {
			id = updated
		}
	}

	refreshed, err := i.client.GetItem(ctx, id, ews.AllProperties)
	if err != nil {
		err = errors.NewRefreshError(id.ID, id.ChangeKey, err)
		return nil, err
	}

	i.node = refreshed.node
	i.cache = map[string]any{}

	log.Debug("item updated", "item_id", id.ID, "directives", len(directives))

	return ews.NewUpdateItemResult(i), nil
}
