package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/diwise/ews-client/pkg/ews"
	"github.com/diwise/ews-client/pkg/ews/changes"
	ewserrors "github.com/diwise/ews-client/pkg/ews/errors"
	"github.com/diwise/ews-client/pkg/ews/fields"
	"github.com/diwise/ews-client/pkg/ews/tree"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"

	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var bodyContaining = expects.RequestBodyContaining

const endpointPath string = "/EWS/Exchange.asmx"

func TestSubmitPostsSoapEnvelope(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			path(endpointPath),
			bodyContaining(`<t:RequestServerVersion Version="Exchange2016"></t:RequestServerVersion>`),
		),
		Returns(
			response.ContentType("text/xml; charset=utf-8"),
			response.Code(http.StatusOK),
			response.Body([]byte(successResponse("GetItem", calendarItemXML("AAA", "CK1", "Planning")))),
		),
	)
	defer s.Close()

	transport := NewHTTPTransport(s.URL()+endpointPath, ServerVersion("Exchange2016"))

	resp, err := transport.Submit(context.Background(), tree.M("GetItem",
		itemShape(ews.AllProperties, nil),
		tree.M("ItemIds", ews.ItemID{ID: "AAA"}.Node()),
	))

	is.NoErr(err)
	is.Equal(s.RequestCount(), 1)
	is.Equal(resp.Operation, "GetItemResponse")

	msg, ok := resp.First()
	is.True(ok)
	is.True(msg.Success())
	is.Equal(len(msg.Items()), 1)
}

func TestSubmitMapsFaultsToErrors(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("text/xml; charset=utf-8"),
			response.Code(http.StatusInternalServerError),
			response.Body([]byte(envelope(`<s:Fault><faultcode>a:ErrorSchemaValidation</faultcode><faultstring>The request failed schema validation</faultstring></s:Fault>`))),
		),
	)
	defer s.Close()

	transport := NewHTTPTransport(s.URL()+endpointPath, Debug("true"))

	_, err := transport.Submit(context.Background(), tree.M("GetItem"))

	is.True(errors.Is(err, ewserrors.ErrBadResponse))
}

func TestSubmitMapsClientErrorsToRequestErrors(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.Code(http.StatusUnauthorized),
		),
	)
	defer s.Close()

	transport := NewHTTPTransport(s.URL() + endpointPath)

	_, err := transport.Submit(context.Background(), tree.M("GetItem"))

	is.True(errors.Is(err, ewserrors.ErrRequest))
}

func TestUpdateOverHTTP(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPost),
			bodyContaining(`<m:UpdateItem`),
		),
		Returns(
			response.ContentType("text/xml; charset=utf-8"),
			response.Code(http.StatusOK),
			response.Body([]byte(errorResponse("UpdateItem", "ErrorInvalidChangeKey", "stale"))),
		),
	)
	defer s.Close()

	c := New(NewHTTPTransport(s.URL() + endpointPath))
	item := testItem(c, calendarItem("AAA", "CK1", "Planning"))

	_, err := item.Update(context.Background(), changes.Updates{}.Set(fields.Subject, "Retro"))

	is.True(errors.Is(err, ewserrors.ErrRemoteRejected))
	is.Equal(s.RequestCount(), 1)
	is.Equal(item.Subject(), "Planning")
}
