package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/diwise/ews-client/pkg/ews"
	"github.com/diwise/ews-client/pkg/ews/errors"
	"github.com/diwise/ews-client/pkg/ews/tree"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Transport submits a single operation and returns the parsed response
type Transport interface {
	Submit(ctx context.Context, operation tree.Node) (*ews.ResponseEnvelope, error)
}

// HTTPClient is implemented by *http.Client. Callers that need credentials
// pass a client that adds them to each request.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	TraceAttributeOperation       string = "ews-operation"
	TraceAttributeClientRequestID string = "client-request-id"
)

const contentTypeXML string = "text/xml; charset=utf-8"

type httpTransport struct {
	endpoint      string
	serverVersion string
	httpClient    HTTPClient
	headers       map[string]string
	debug         bool
}

func Debug(enabled string) func(*httpTransport) {
	return func(t *httpTransport) {
		t.debug = (enabled == "true")
	}
}

func ServerVersion(version string) func(*httpTransport) {
	return func(t *httpTransport) {
		t.serverVersion = version
	}
}

// Headers are added to every request, e.g. X-AnchorMailbox or a token
// obtained by the caller
func Headers(headers map[string]string) func(*httpTransport) {
	return func(t *httpTransport) {
		for k, v := range headers {
			t.headers[k] = v
		}
	}
}

func WithHTTPClient(httpClient HTTPClient) func(*httpTransport) {
	return func(t *httpTransport) {
		t.httpClient = httpClient
	}
}

func NewHTTPTransport(endpoint string, options ...func(*httpTransport)) Transport {
	t := &httpTransport{
		endpoint:      endpoint,
		serverVersion: ews.DefaultServerVersion,
		headers:       map[string]string{},
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, option := range options {
		option(t)
	}

	return t
}

func (t httpTransport) Submit(ctx context.Context, operation tree.Node) (*ews.ResponseEnvelope, error) {
	var err error

	requestID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "submit",
		trace.WithAttributes(attribute.String(TraceAttributeOperation, operation.Name)),
		trace.WithAttributes(attribute.String(TraceAttributeClientRequestID, requestID)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	body := &bytes.Buffer{}
	err = tree.Encode(body, ews.NewRequest(t.serverVersion, operation))
	if err != nil {
		err = fmt.Errorf("failed to encode %s request: %s (%w)", operation.Name, err.Error(), errors.ErrInternal)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, body)
	if err != nil {
		err = fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
		return nil, err
	}

	for header, value := range t.headers {
		req.Header.Set(header, value)
	}

	req.Header.Set("Content-Type", contentTypeXML)
	req.Header.Set("Accept", "text/xml")
	req.Header.Set("client-request-id", requestID)
	req.Header.Set("return-client-request-id", "true")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
		return nil, err
	}

	if t.debug && resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("request failed", "request", string(reqbytes), "response", string(respbytes), "body", string(respBody))
	}

	envelope, decodeErr := tree.Decode(bytes.NewReader(respBody))

	if resp.StatusCode >= http.StatusBadRequest {
		faultString := ""
		if decodeErr == nil {
			faultString, _ = ews.Fault(envelope)
		}
		err = errors.NewErrorFromFault(resp.StatusCode, faultString)
		return nil, err
	}

	if decodeErr != nil {
		err = fmt.Errorf("failed to decode response: %s (%w)", decodeErr.Error(), errors.ErrBadResponse)
		return nil, err
	}

	result, err := ews.ParseResponse(envelope)
	if err != nil {
		return nil, err
	}

	return result, nil
}
