package client

import (
	"fmt"

	"github.com/diwise/ews-client/pkg/ews"
	"github.com/diwise/ews-client/pkg/ews/errors"
	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/tree"
)

type queryOptions struct {
	traversal  ews.Traversal
	shape      ews.BaseShape
	properties []fields.FieldURI
	maxEntries int
}

type QueryOption func(*queryOptions)

func Traversal(t ews.Traversal) QueryOption {
	return func(o *queryOptions) {
		o.traversal = t
	}
}

func Shape(s ews.BaseShape) QueryOption {
	return func(o *queryOptions) {
		o.shape = s
	}
}

// AdditionalProperties requests attributes that are not part of the base
// shape. Attributes without a registered field are ignored.
func AdditionalProperties(attrs ...fields.Attribute) QueryOption {
	return func(o *queryOptions) {
		for _, attr := range attrs {
			if uri, ok := fields.Lookup(attr); ok {
				o.properties = append(o.properties, uri)
			}
		}
	}
}

// MaxEntries limits the number of occurrences returned by a calendar view
func MaxEntries(count int) QueryOption {
	return func(o *queryOptions) {
		o.maxEntries = count
	}
}

func newQueryOptions(options []QueryOption) (queryOptions, error) {
	o := queryOptions{
		traversal: ews.Shallow,
		shape:     ews.Default,
	}

	for _, option := range options {
		option(&o)
	}

	if err := o.traversal.Validate(); err != nil {
		return o, errors.NewInvalidOptionError(fmt.Sprintf("traversal: %s", err.Error()))
	}

	if err := o.shape.Validate(); err != nil {
		return o, errors.NewInvalidOptionError(fmt.Sprintf("base shape: %s", err.Error()))
	}

	return o, nil
}

func itemShape(shape ews.BaseShape, properties []fields.FieldURI) tree.Node {
	n := tree.M("ItemShape", tree.Text(tree.Types, "BaseShape", string(shape)))

	if len(properties) > 0 {
		additional := tree.T("AdditionalProperties")
		for _, uri := range properties {
			additional.Children = append(additional.Children, tree.T("FieldURI").WithAttr("FieldURI", uri.String()))
		}
		n = n.Append(additional)
	}

	return n
}

type updateOptions struct {
	conflictResolution ews.ConflictResolution
	notificationMode   ews.NotificationMode
}

type UpdateOption func(*updateOptions)

func WithConflictResolution(cr ews.ConflictResolution) UpdateOption {
	return func(o *updateOptions) {
		o.conflictResolution = cr
	}
}

func WithNotificationMode(nm ews.NotificationMode) UpdateOption {
	return func(o *updateOptions) {
		o.notificationMode = nm
	}
}

func newUpdateOptions(c *Client, options []UpdateOption) (updateOptions, error) {
	o := updateOptions{
		conflictResolution: c.conflictResolution,
		notificationMode:   c.notificationMode,
	}

	for _, option := range options {
		option(&o)
	}

	if err := o.conflictResolution.Validate(); err != nil {
		return o, errors.NewInvalidOptionError(fmt.Sprintf("conflict resolution: %s", err.Error()))
	}

	if err := o.notificationMode.Validate(); err != nil {
		return o, errors.NewInvalidOptionError(fmt.Sprintf("notification mode: %s", err.Error()))
	}

	return o, nil
}

type createOptions struct {
	invitations ews.NotificationMode
}

type CreateOption func(*createOptions)

func SendMeetingInvitations(nm ews.NotificationMode) CreateOption {
	return func(o *createOptions) {
		o.invitations = nm
	}
}

func newCreateOptions(c *Client, options []CreateOption) (createOptions, error) {
	o := createOptions{
		invitations: c.notificationMode,
	}

	for _, option := range options {
		option(&o)
	}

	if err := o.invitations.Validate(); err != nil {
		return o, errors.NewInvalidOptionError(fmt.Sprintf("meeting invitations: %s", err.Error()))
	}

	return o, nil
}
