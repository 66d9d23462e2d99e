// Package runtime exposes the quarantine handler over HTTP and as an AWS Lambda.
package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/lw-quarantine-app/internal/handler"
	"github.com/isometry/lw-quarantine-app/internal/helpers"
	"github.com/isometry/lw-quarantine-app/internal/models"
)

// Supported Lambda payload types.
const (
	PayloadAPIGatewayV1 = "api-gateway-v1"
	PayloadAPIGatewayV2 = "api-gateway-v2"
	PayloadLambdaURL    = "lambda-url"
)

const maxBodyBytes = 1 << 20

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithLambdaPayloadType sets the response shape returned in Lambda HTTP mode.
func WithLambdaPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.payloadType = payloadType
	}
}

type Runtime struct {
	*handler.Handler
	logger      *slog.Logger
	payloadType string
}

// EventResponse is returned to direct (EventBridge) Lambda invocations.
type EventResponse struct {
	StatusCode int             `json:"statusCode"`
	Body       json.RawMessage `json:"body"`
}

// NewRuntime creates a new runtime instance
func NewRuntime(handler *handler.Handler, opts ...Option) *Runtime {
	_inst := &Runtime{Handler: handler, payloadType: PayloadAPIGatewayV2}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// Lambda is the Lambda handler for API Gateway and function URL invocations.
// The request fields consumed (body, isBase64Encoded) share the same shape across all supported payload types.
func (r *Runtime) Lambda(ctx context.Context, req events.APIGatewayV2HTTPRequest) (any, error) {
	r.logger.Info("received lambda HTTP request", slog.String("payloadType", r.payloadType))

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			r.logger.Warn("failed to decode base64 body", slog.Any("error", err))
		} else {
			body = decoded
		}
	}

	result, err := r.Process(ctx, body)
	r.logResult(result, err)

	switch r.payloadType {
	case PayloadAPIGatewayV1:
		return events.APIGatewayProxyResponse{
			Body:       result.Body,
			Headers:    result.Headers,
			StatusCode: result.StatusCode,
		}, nil
	case PayloadAPIGatewayV2:
		return events.APIGatewayV2HTTPResponse{
			Body:       result.Body,
			Headers:    result.Headers,
			StatusCode: result.StatusCode,
		}, nil
	case PayloadLambdaURL:
		return events.LambdaFunctionURLResponse{
			Body:       result.Body,
			Headers:    result.Headers,
			StatusCode: result.StatusCode,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported lambda payload type: %s", r.payloadType)
	}
}

// LambdaForEvent is the Lambda handler for EventBridge invocations. The event detail is the inbound payload.
func (r *Runtime) LambdaForEvent(ctx context.Context, event models.Event) (EventResponse, error) {
	r.logger.Info("received EventBridge event",
		slog.String("id", event.ID),
		slog.String("source", event.Source),
		slog.String("detailType", event.DetailType))

	result, err := r.Process(ctx, event.Detail)
	r.logResult(result, err)
	return EventResponse{StatusCode: result.StatusCode, Body: json.RawMessage(result.Body)}, nil
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		resp.Header().Set("Allow", http.MethodPost)
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, resp)
		return
	}

	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))
	body, err := io.ReadAll(http.MaxBytesReader(resp, req.Body, maxBodyBytes))
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(handler.ErrorResponse(r.logger, err), resp)
		return
	}

	result, err := r.Process(req.Context(), body)
	r.logResult(result, err)
	helpers.RespondHTTP(result, resp)
}

func (r *Runtime) logResult(result models.Response, err error) {
	if err != nil {
		r.logger.Warn("request failed", slog.Int("status", result.StatusCode), slog.Any("error", err))
		return
	}
	r.logger.Info("request completed", slog.Int("status", result.StatusCode))
}
