// Package api is the HTTP client for the SkillForge server.
//
// Every call goes through Client.do, which opens a tracing span, maps
// network failures to *TransportError and non-2xx answers to *StatusError,
// and decodes JSON bodies.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/skillforge/internal/log"
)

const tracerName = "github.com/zjrosen/skillforge/internal/api"

// Client talks to the SkillForge HTTP API.
type Client struct {
	http   *resty.Client
	tracer trace.Tracer
}

// New creates a client for the server at baseURL. Each request is bounded
// by timeout.
func New(baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{
		http:   client,
		tracer: otel.Tracer(tracerName),
	}
}

// BaseURL returns the server address the client was built with.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// call describes one request.
type call struct {
	op         string
	method     string
	route      string
	pathParams map[string]string
	body       any
}

// do executes the call and returns the raw response body of a 2xx answer.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "api."+cl.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", cl.method),
			attribute.String("http.route", cl.route),
		),
	)
	defer span.End()

	req := c.http.R().SetContext(ctx)
	if len(cl.pathParams) > 0 {
		req.SetPathParams(cl.pathParams)
	}
	if cl.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(cl.body)
	}

	start := time.Now()
	resp, err := req.Execute(cl.method, cl.route)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatAPI, "Request failed", err, "op", cl.op, "route", cl.route)
		return nil, &TransportError{Op: cl.op, Err: err}
	}

	code := resp.StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", code))
	log.Debug(log.CatAPI, "Request completed",
		"op", cl.op,
		"status", code,
		"duration", time.Since(start))

	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		statusErr := &StatusError{StatusCode: code, Detail: errorDetail(resp.Body())}
		span.SetStatus(codes.Error, statusErr.Error())
		log.Warn(log.CatAPI, "Request rejected", "op", cl.op, "status", code, "detail", statusErr.Detail)
		return nil, statusErr
	}
	return resp.Body(), nil
}

// doJSON executes the call and decodes a 2xx body into out.
func (c *Client) doJSON(ctx context.Context, cl call, out any) error {
	body, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", cl.op, err)
	}
	return nil
}
