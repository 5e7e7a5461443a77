package main

import (
	"testing"
	"time"

	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/matryer/is"
)

func TestParseUpdates(t *testing.T) {
	is := is.New(t)

	updates, err := parseUpdates([]string{"subject=Retro", "body=a=b"}, []string{"location"})
	is.NoErr(err)
	is.Equal(len(updates), 3)

	is.Equal(updates[0].Attribute, fields.Subject)
	is.Equal(updates[0].Value.Get(), "Retro")

	is.Equal(updates[1].Value.Get(), "a=b") // only the first = separates attribute and value

	is.Equal(updates[2].Attribute, fields.Location)
	is.True(updates[2].Value.IsClear())
}

func TestParseUpdatesRejectsMalformedPairs(t *testing.T) {
	is := is.New(t)

	_, err := parseUpdates([]string{"subject"}, nil)
	is.True(err != nil)

	_, err = parseUpdates([]string{"=value"}, nil)
	is.True(err != nil)

	_, err = parseUpdates(nil, []string{" "})
	is.True(err != nil)
}

func TestParseTime(t *testing.T) {
	is := is.New(t)

	ts, err := parseTime("2024-01-01T00:00:00Z")
	is.NoErr(err)
	is.Equal(ts, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err = parseTime("2024-01-01")
	is.True(err != nil)
}
