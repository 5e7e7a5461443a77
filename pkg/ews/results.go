package ews

import (
	"iter"
	"slices"
)

type FindItemsResult[T any] struct {
	Items            []T
	TotalCount       int
	IncludesLastItem bool
}

func NewFindItemsResult[T any](items []T) *FindItemsResult[T] {
	return &FindItemsResult[T]{
		Items:      items,
		TotalCount: -1,
	}
}

func (r FindItemsResult[T]) All() iter.Seq[T] {
	return slices.Values(r.Items)
}

// UpdateItemResult is returned by a successful update. NoOp is set when the
// update did not contain any change and nothing was sent to the server.
type UpdateItemResult[T any] struct {
	Item T
	NoOp bool
}

func NewUpdateItemResult[T any](item T) *UpdateItemResult[T] {
	return &UpdateItemResult[T]{
		Item: item,
	}
}

func NewNoOpUpdateItemResult[T any](item T) *UpdateItemResult[T] {
	return &UpdateItemResult[T]{
		Item: item,
		NoOp: true,
	}
}
