package ews

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ConflictResolution string

const (
	NeverOverwrite  ConflictResolution = "NeverOverwrite"
	AutoResolve     ConflictResolution = "AutoResolve"
	AlwaysOverwrite ConflictResolution = "AlwaysOverwrite"
)

const DefaultConflictResolution = AutoResolve

func (c ConflictResolution) Validate() error {
	return validation.Validate(string(c),
		validation.Required,
		validation.In(string(NeverOverwrite), string(AutoResolve), string(AlwaysOverwrite)),
	)
}

// NotificationMode controls whether attendees are notified when a calendar
// item is created or changed
type NotificationMode string

const (
	SendToNone               NotificationMode = "SendToNone"
	SendOnlyToAll            NotificationMode = "SendOnlyToAll"
	SendOnlyToChanged        NotificationMode = "SendOnlyToChanged"
	SendToAllAndSaveCopy     NotificationMode = "SendToAllAndSaveCopy"
	SendToChangedAndSaveCopy NotificationMode = "SendToChangedAndSaveCopy"
)

const DefaultNotificationMode = SendToNone

func (n NotificationMode) Validate() error {
	return validation.Validate(string(n),
		validation.Required,
		validation.In(
			string(SendToNone), string(SendOnlyToAll), string(SendOnlyToChanged),
			string(SendToAllAndSaveCopy), string(SendToChangedAndSaveCopy),
		),
	)
}

// Invitations returns the mode to use when creating an item. Only modes
// that make sense for a new item are accepted by the server.
func (n NotificationMode) Invitations() string {
	switch n {
	case SendOnlyToAll, SendOnlyToChanged:
		return string(SendOnlyToAll)
	case SendToAllAndSaveCopy, SendToChangedAndSaveCopy:
		return string(SendToAllAndSaveCopy)
	default:
		return string(SendToNone)
	}
}

type BaseShape string

const (
	IDOnly        BaseShape = "IdOnly"
	Default       BaseShape = "Default"
	AllProperties BaseShape = "AllProperties"
)

type Traversal string

const (
	Shallow     Traversal = "Shallow"
	SoftDeleted Traversal = "SoftDeleted"
	Associated  Traversal = "Associated"
)

func (t Traversal) Validate() error {
	return validation.Validate(string(t),
		validation.Required,
		validation.In(string(Shallow), string(SoftDeleted), string(Associated)),
	)
}

func (b BaseShape) Validate() error {
	return validation.Validate(string(b),
		validation.Required,
		validation.In(string(IDOnly), string(Default), string(AllProperties)),
	)
}
