package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"subsmanager-miniapp/internal/dto"
	"subsmanager-miniapp/internal/models"
)

type GatewayErrorKind string

const (
	GatewayErrorTransport GatewayErrorKind = "transport"
	GatewayErrorStatus    GatewayErrorKind = "status"
	GatewayErrorDecode    GatewayErrorKind = "decode"
)

const (
	OpFetchSubscriptions = "fetch_subscriptions"
	OpFetchAnalytics     = "fetch_analytics"
	OpFetchDuplicates    = "fetch_duplicates"
	OpCreateSubscription = "create_subscription"
	OpDeleteSubscription = "delete_subscription"
)

// maxResponseBody caps how much of a backend response is read
const maxResponseBody = 4 << 20

// GatewayError classifies a failed backend call
type GatewayError struct {
	Kind       GatewayErrorKind
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	switch e.Kind {
	case GatewayErrorStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// IsGatewayError reports whether err is a *GatewayError of the given kind
func IsGatewayError(err error, kind GatewayErrorKind) bool {
	var gwErr *GatewayError
	return errors.As(err, &gwErr) && gwErr.Kind == kind
}

// SubscriptionGateway calls the subscription REST backend. It never retries;
// a tripped circuit breaker fails calls immediately.
type SubscriptionGateway struct {
	baseURL string
	client  *http.Client
	breaker CircuitBreakerInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

func NewSubscriptionGateway(baseURL string, client *http.Client, breaker CircuitBreakerInterface, metrics MetricsRecorderInterface, logger *slog.Logger) GatewayInterface {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SubscriptionGateway{
		baseURL: baseURL,
		client:  client,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

func (g *SubscriptionGateway) FetchSubscriptions(ctx context.Context, userID int64) ([]models.Subscription, error) {
	var body dto.SubscriptionsResponse
	if err := g.do(ctx, OpFetchSubscriptions, http.MethodGet, g.userPath(userID, "subscriptions"), nil, &body); err != nil {
		return nil, err
	}
	return body.Subscriptions, nil
}

func (g *SubscriptionGateway) FetchAnalytics(ctx context.Context, userID int64) (*models.Analytics, error) {
	var body models.Analytics
	if err := g.do(ctx, OpFetchAnalytics, http.MethodGet, g.userPath(userID, "analytics"), nil, &body); err != nil {
		return nil, err
	}
	if body.ByCategory == nil {
		body.ByCategory = []models.CategorySpend{}
	}
	if body.Tips == nil {
		body.Tips = []models.Tip{}
	}
	return &body, nil
}

func (g *SubscriptionGateway) FetchDuplicates(ctx context.Context, userID int64) ([]models.Duplicate, error) {
	var body dto.DuplicatesResponse
	if err := g.do(ctx, OpFetchDuplicates, http.MethodGet, g.userPath(userID, "duplicates"), nil, &body); err != nil {
		return nil, err
	}
	if body.Duplicates == nil {
		return []models.Duplicate{}, nil
	}
	return body.Duplicates, nil
}

func (g *SubscriptionGateway) CreateSubscription(ctx context.Context, userID int64, req dto.CreateSubscriptionRequest) (*dto.CreateSubscriptionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode create request: %w", err)
	}

	var body dto.CreateSubscriptionResponse
	if err := g.do(ctx, OpCreateSubscription, http.MethodPost, g.userPath(userID, "subscriptions"), payload, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// DeleteSubscription treats any non-2xx answer, 404 included, as a failure
func (g *SubscriptionGateway) DeleteSubscription(ctx context.Context, subscriptionID int64) error {
	path := "/subscriptions/" + strconv.FormatInt(subscriptionID, 10)
	return g.do(ctx, OpDeleteSubscription, http.MethodDelete, path, nil, nil)
}

func (g *SubscriptionGateway) userPath(userID int64, resource string) string {
	return "/user/" + strconv.FormatInt(userID, 10) + "/" + resource
}

// bodyChecker is implemented by response bodies that need more than a JSON decode
type bodyChecker interface {
	Check() error
}

// do performs one request and decodes a 2xx body into out when out is non-nil
func (g *SubscriptionGateway) do(ctx context.Context, op, method, path string, payload []byte, out interface{}) error {
	if g.breaker != nil && g.breaker.IsOpen() {
		return g.fail(ctx, &GatewayError{Kind: GatewayErrorTransport, Op: op, Err: ErrCircuitBreakerOpen}, time.Time{})
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		// a cancelled caller says nothing about backend health
		if ctx.Err() == nil {
			g.recordBreaker(false)
		}
		return g.fail(ctx, &GatewayError{Kind: GatewayErrorTransport, Op: op, Err: err}, start)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		g.recordBreaker(false)
		return g.fail(ctx, &GatewayError{Kind: GatewayErrorTransport, Op: op, StatusCode: resp.StatusCode, Err: err}, start)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// 4xx means the backend is up and answering
		g.recordBreaker(resp.StatusCode < 500)
		return g.fail(ctx, &GatewayError{Kind: GatewayErrorStatus, Op: op, StatusCode: resp.StatusCode}, start)
	}
	g.recordBreaker(true)

	if out != nil {
		if len(bytes.TrimSpace(raw)) == 0 {
			return g.fail(ctx, &GatewayError{Kind: GatewayErrorDecode, Op: op, StatusCode: resp.StatusCode, Err: errors.New("empty body")}, start)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return g.fail(ctx, &GatewayError{Kind: GatewayErrorDecode, Op: op, StatusCode: resp.StatusCode, Err: err}, start)
		}
		if c, ok := out.(bodyChecker); ok {
			if err := c.Check(); err != nil {
				return g.fail(ctx, &GatewayError{Kind: GatewayErrorDecode, Op: op, StatusCode: resp.StatusCode, Err: err}, start)
			}
		}
	}

	g.observe(op, "success", start)
	return nil
}

func (g *SubscriptionGateway) fail(ctx context.Context, gwErr *GatewayError, start time.Time) error {
	g.observe(gwErr.Op, string(gwErr.Kind), start)
	if g.logger != nil && !errors.Is(gwErr.Err, context.Canceled) {
		g.logger.WarnContext(ctx, "backend request failed",
			slog.String("op", gwErr.Op),
			slog.String("kind", string(gwErr.Kind)),
			slog.Int("status", gwErr.StatusCode),
			slog.String("error", gwErr.Error()),
			slog.String("trace_id", TraceIDFromContext(ctx)),
		)
	}
	return gwErr
}

func (g *SubscriptionGateway) observe(op, outcome string, start time.Time) {
	if g.metrics == nil {
		return
	}
	g.metrics.IncrementCounter(MetricGatewayRequest, map[string]string{"operation": op, "outcome": outcome})
	if !start.IsZero() {
		g.metrics.RecordDuration(MetricGatewayRequest, time.Since(start), map[string]string{"operation": op})
	}
}

func (g *SubscriptionGateway) recordBreaker(success bool) {
	if g.breaker == nil {
		return
	}
	if success {
		g.breaker.RecordSuccess()
	} else {
		g.breaker.RecordFailure()
	}
}
