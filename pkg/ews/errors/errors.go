package errors

import (
	"fmt"
	"net/http"
)

var ErrBadResponse = fmt.Errorf("bad response")
var ErrInternal = fmt.Errorf("internal error")
var ErrInvalidOption = fmt.Errorf("invalid option")
var ErrNoResponseMessage = fmt.Errorf("no response message")
var ErrNotRefreshed = fmt.Errorf("updated but not refreshed")
var ErrRemoteRejected = fmt.Errorf("remote rejected")
var ErrRequest = fmt.Errorf("request error")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewBadResponseError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrBadResponse,
	}
}

func NewInvalidOptionError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidOption,
	}
}

func NewNoResponseMessageError(operation string) error {
	return &myError{
		msg:    fmt.Sprintf("%s: response did not contain any response message", operation),
		target: ErrNoResponseMessage,
	}
}

// ResponseError is returned when the server answers with a response message
// that is not a success. Code is the server's response code, for instance
// ErrorInvalidChangeKey.
type ResponseError struct {
	Operation   string
	Code        string
	MessageText string
}

func (r ResponseError) Error() string {
	if r.MessageText == "" {
		return fmt.Sprintf("%s failed with %s", r.Operation, r.Code)
	}
	return fmt.Sprintf("%s failed with %s: %s", r.Operation, r.Code, r.MessageText)
}

func (r ResponseError) Is(target error) bool { return target == ErrRemoteRejected }

func NewResponseError(operation, code, messageText string) error {
	return &ResponseError{
		Operation:   operation,
		Code:        code,
		MessageText: messageText,
	}
}

// RefreshError is returned when an update was applied by the server but the
// item could not be read back afterwards. ItemID and ChangeKey identify the
// updated version of the item.
type RefreshError struct {
	ItemID    string
	ChangeKey string
	Err       error
}

func (r RefreshError) Error() string {
	return fmt.Sprintf("item %s was updated but refresh failed: %s", r.ItemID, r.Err.Error())
}

func (r RefreshError) Is(target error) bool { return target == ErrNotRefreshed }
func (r RefreshError) Unwrap() error        { return r.Err }

func NewRefreshError(itemID, changeKey string, err error) error {
	return &RefreshError{
		ItemID:    itemID,
		ChangeKey: changeKey,
		Err:       err,
	}
}

// NewErrorFromFault maps a response that never reached the response message
// level, such as a SOAP fault or a non successful HTTP status, to an error
func NewErrorFromFault(code int, faultString string) error {
	if faultString == "" {
		faultString = http.StatusText(code)
	}

	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return fmt.Errorf("%w: [code: %d] %s", ErrRequest, code, faultString)
	}

	return NewBadResponseError(fmt.Sprintf("[code: %d] %s", code, faultString))
}
