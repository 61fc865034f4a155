// internal/pkg/httpclient/client.go

package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Client 是一个可追踪的、可注入的HTTP客户端。
type Client struct {
	Tracer     trace.Tracer
	HTTPClient *http.Client
}

// NewClient 创建一个新的客户端实例。
// 不设置全局 Timeout，让超时完全受控于每次请求传入的 context。
func NewClient(tracer trace.Tracer) *Client {
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
	}
	return &Client{
		Tracer:     tracer,
		HTTPClient: httpClient,
	}
}

// GetJSON 对远端服务发起 GET 请求并返回响应体，
// 同时注入链路上下文，状态码非 2xx 视为错误。
func (c *Client) GetJSON(ctx context.Context, serviceURL string, params url.Values) ([]byte, error) {
	body, _, err := c.do(ctx, http.MethodGet, serviceURL, params)
	return body, err
}

// Post 对远端服务发起 POST 请求，参数通过查询串传递。
func (c *Client) Post(ctx context.Context, serviceURL string, params url.Values) error {
	_, _, err := c.do(ctx, http.MethodPost, serviceURL, params)
	return err
}

func (c *Client) do(ctx context.Context, method, serviceURL string, params url.Values) ([]byte, int, error) {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return nil, 0, err
	}
	// 从 URL 中解析出服务名用于 Span
	spanName := fmt.Sprintf("call-%s", strings.Split(parsedURL.Host, ":")[0])

	ctx, span := c.Tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	downstreamURL := *parsedURL
	q := downstreamURL.Query()
	for key, values := range params {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	downstreamURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, method, downstreamURL.String(), nil)
	if err != nil {
		span.RecordError(err)
		return nil, 0, err
	}

	span.SetAttributes(
		attribute.String("http.url", downstreamURL.String()),
		attribute.String("http.method", method),
	)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, resp.StatusCode, err
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("service %s returned status %s", serviceURL, resp.Status)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return body, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}
