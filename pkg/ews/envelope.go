package ews

import (
	"fmt"
	"strconv"

	"github.com/diwise/ews-client/pkg/ews/errors"
	"github.com/diwise/ews-client/pkg/ews/tree"
)

const DefaultServerVersion string = "Exchange2013_SP1"

// NewRequest wraps an operation element in a SOAP envelope
func NewRequest(serverVersion string, operation tree.Node) tree.Node {
	if serverVersion == "" {
		serverVersion = DefaultServerVersion
	}

	return tree.New(tree.Soap, "Envelope",
		tree.New(tree.Soap, "Header",
			tree.T("RequestServerVersion").WithAttr("Version", serverVersion),
		),
		tree.New(tree.Soap, "Body", operation),
	).
		WithAttr("xmlns:"+tree.Soap, tree.Namespaces[tree.Soap]).
		WithAttr("xmlns:"+tree.Types, tree.Namespaces[tree.Types]).
		WithAttr("xmlns:"+tree.Messages, tree.Namespaces[tree.Messages])
}

const (
	ResponseClassSuccess = "Success"
	ResponseClassWarning = "Warning"
	ResponseClassError   = "Error"
)

type ResponseMessage struct {
	Class       string
	Code        string
	MessageText string
	Node        tree.Node
}

func (r ResponseMessage) Success() bool {
	return r.Class == ResponseClassSuccess
}

// Items returns the item elements carried by the message, looking in the
// root folder for find responses
func (r ResponseMessage) Items() []tree.Node {
	items, ok := r.Node.Find("Items")
	if !ok {
		items, ok = r.Node.Find("RootFolder", "Items")
	}

	if !ok {
		return []tree.Node{}
	}

	return items.Children
}

// TotalItemsInView returns the size of the view for find responses
func (r ResponseMessage) TotalItemsInView() (int, bool) {
	total, ok := r.Node.Lookup([]string{"RootFolder", "@TotalItemsInView"})
	if !ok {
		return -1, false
	}

	count, err := strconv.Atoi(total)
	if err != nil {
		return -1, false
	}

	return count, true
}

func (r ResponseMessage) IncludesLastItemInRange() bool {
	last, _ := r.Node.Lookup([]string{"RootFolder", "@IncludesLastItemInRange"})
	return last == "true"
}

type ResponseEnvelope struct {
	Operation string
	Messages  []ResponseMessage
}

// First returns the first response message, if any
func (e *ResponseEnvelope) First() (ResponseMessage, bool) {
	if e == nil || len(e.Messages) == 0 {
		return ResponseMessage{}, false
	}
	return e.Messages[0], true
}

// Fault returns the fault string of a SOAP fault response
func Fault(envelope tree.Node) (string, bool) {
	fault, ok := envelope.Find("Body", "Fault")
	if !ok {
		return "", false
	}

	faultString, _ := fault.Lookup([]string{"faultstring"})
	return faultString, true
}

// ParseResponse extracts the response messages of a decoded SOAP envelope
func ParseResponse(envelope tree.Node) (*ResponseEnvelope, error) {
	if envelope.Name != "Envelope" {
		return nil, errors.NewBadResponseError(fmt.Sprintf("expected a soap envelope, got %q", envelope.Name))
	}

	if faultString, ok := Fault(envelope); ok {
		return nil, errors.NewBadResponseError(fmt.Sprintf("soap fault: %s", faultString))
	}

	body, ok := envelope.Find("Body")
	if !ok || len(body.Children) == 0 {
		return nil, errors.NewBadResponseError("soap envelope without a body")
	}

	operation := body.Children[0]
	result := &ResponseEnvelope{
		Operation: operation.Name,
		Messages:  []ResponseMessage{},
	}

	messages, ok := operation.Find("ResponseMessages")
	if !ok {
		return result, nil
	}

	for _, m := range messages.Children {
		class, _ := m.Attr("ResponseClass")
		code, _ := m.Lookup([]string{"ResponseCode"})
		text, _ := m.Lookup([]string{"MessageText"})

		result.Messages = append(result.Messages, ResponseMessage{
			Class:       class,
			Code:        code,
			MessageText: text,
			Node:        m,
		})
	}

	return result, nil
}
