// Package client maps local item changes and queries onto item operations
// and submits them through a Transport.
package client

import (
	"context"
	"fmt"

	"github.com/diwise/ews-client/pkg/ews"
	"github.com/diwise/ews-client/pkg/ews/errors"
	"github.com/diwise/ews-client/pkg/ews/schema"
	"github.com/diwise/ews-client/pkg/ews/tree"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceAttributeItemID   string = "item-id"
	TraceAttributeFolderID string = "folder-id"
)

var tracer = otel.Tracer("ews-client")

type Client struct {
	transport          Transport
	conflictResolution ews.ConflictResolution
	notificationMode   ews.NotificationMode
}

func DefaultConflictResolution(cr ews.ConflictResolution) func(*Client) {
	return func(c *Client) {
		c.conflictResolution = cr
	}
}

func DefaultNotificationMode(nm ews.NotificationMode) func(*Client) {
	return func(c *Client) {
		c.notificationMode = nm
	}
}

func New(transport Transport, options ...func(*Client)) *Client {
	c := &Client{
		transport:          transport,
		conflictResolution: ews.DefaultConflictResolution,
		notificationMode:   ews.DefaultNotificationMode,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Folder returns a handle to a folder whose items follow the given schema
func (c *Client) Folder(id ews.FolderID, s schema.Schema) *Folder {
	return &Folder{client: c, id: id, schema: s}
}

func (c *Client) CalendarFolder(id ews.FolderID) *Folder {
	return c.Folder(id, schema.CalendarItem)
}

func (c *Client) TaskFolder(id ews.FolderID) *Folder {
	return c.Folder(id, schema.Task)
}

// GetItem fetches a single item with the requested shape
func (c *Client) GetItem(ctx context.Context, id ews.ItemID, shape ews.BaseShape) (*Item, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-item",
		trace.WithAttributes(attribute.String(TraceAttributeItemID, id.ID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if err = shape.Validate(); err != nil {
		err = errors.NewInvalidOptionError(fmt.Sprintf("base shape: %s", err.Error()))
		return nil, err
	}

	request := tree.M("GetItem",
		itemShape(shape, nil),
		tree.M("ItemIds", id.Node()),
	)

	msg, err := c.submit(ctx, request)
	if err != nil {
		return nil, err
	}

	items := msg.Items()
	if len(items) == 0 {
		err = errors.NewBadResponseError("GetItem: response did not contain an item")
		return nil, err
	}

	return c.newItem(items[0], nil), nil
}

// submit sends an operation and returns its first response message, failing
// when there is none or when the server rejected the operation
func (c *Client) submit(ctx context.Context, operation tree.Node) (ews.ResponseMessage, error) {
	log := logging.GetFromContext(ctx)

	resp, err := c.transport.Submit(ctx, operation)
	if err != nil {
		return ews.ResponseMessage{}, err
	}

	msg, ok := resp.First()
	if !ok {
		return ews.ResponseMessage{}, errors.NewNoResponseMessageError(operation.Name)
	}

	if !msg.Success() {
		log.Debug("operation rejected", "operation", operation.Name, "code", msg.Code, "class", msg.Class)
		return msg, errors.NewResponseError(operation.Name, msg.Code, msg.MessageText)
	}

	return msg, nil
}

// Item returns a handle to a known item without fetching it. Updates through
// the handle carry the given change key, so the server decides whether the
// item has changed since that version.
func (c *Client) Item(id ews.ItemID, s schema.Schema) *Item {
	return c.newItem(tree.T(s.ElementName(), id.Node()), s)
}

// ItemFromNode wraps an item element, e.g. one read from a stored response,
// in an Item bound to this client
func (c *Client) ItemFromNode(node tree.Node) *Item {
	return c.newItem(node, nil)
}

func (c *Client) newItem(node tree.Node, fallback schema.Schema) *Item {
	s, ok := schema.ForElement(node.Name)
	if !ok {
		s = fallback
	}
	if s == nil {
		s = schema.Item
	}

	return &Item{
		client: c,
		schema: s,
		node:   node,
		cache:  map[string]any{},
	}
}
