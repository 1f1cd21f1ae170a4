// Package analyticsclient talks to a remote analytics backend that serves
// the /v1 analysis endpoints. It implements dashboard.Source.
package analyticsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
)

// ErrUnavailable wraps every transport failure and non-2xx response.
var ErrUnavailable = errors.New("analytics backend unavailable")

const (
	DefaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a client for the backend at cfg.BaseURL.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: analytics base url %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("analytics"),
	}, nil
}

func (c *Client) WeightTrend(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error) {
	var out domain.WeightTrend
	err := c.get(ctx, userPath(userID, "trends/weight"), daysQuery("days", days), &out)
	return out, err
}

func (c *Client) BloodPressureTrend(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error) {
	var out domain.BloodPressureTrend
	err := c.get(ctx, userPath(userID, "trends/blood-pressure"), daysQuery("days", days), &out)
	return out, err
}

func (c *Client) GoalProgress(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error) {
	var out domain.GoalProgress
	q := url.Values{"target": {strconv.FormatFloat(target, 'f', -1, 64)}}
	err := c.get(ctx, userPath(userID, "goals/"+url.PathEscape(goalType)), q, &out)
	return out, err
}

func (c *Client) HealthReport(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error) {
	var out domain.HealthReport
	err := c.get(ctx, userPath(userID, "health-report"), nil, &out)
	return out, err
}

func (c *Client) Correlations(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error) {
	var raw json.RawMessage
	if err := c.get(ctx, userPath(userID, "correlations"), nil, &raw); err != nil {
		return domain.CorrelationReport{}, err
	}
	return decodeBare[domain.CorrelationReportData](raw)
}

func (c *Client) Predictions(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error) {
	var raw json.RawMessage
	if err := c.get(ctx, userPath(userID, "predictions"), daysQuery("days_ahead", daysAhead), &raw); err != nil {
		return domain.PredictionReport{}, err
	}
	return decodeBare[domain.PredictionReportData](raw)
}

func (c *Client) SymptomAnalysis(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error) {
	var out domain.SymptomAnalysis
	err := c.get(ctx, userPath(userID, "symptoms/analysis"), daysQuery("days", days), &out)
	return out, err
}

// decodeBare accepts payloads with or without a status field. Correlations
// and predictions may arrive as a bare object, which is a success.
func decodeBare[T any](raw json.RawMessage) (domain.Analysis[T], error) {
	var envelope struct {
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return domain.Analysis[T]{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	if envelope.Status != nil {
		var a domain.Analysis[T]
		if err := json.Unmarshal(raw, &a); err != nil {
			return domain.Analysis[T]{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
		}
		return a, nil
	}
	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.Failure[T](domain.StatusError, domain.MsgIncompletePayload), nil
	}
	a := domain.Success(data)
	if err := a.Validate(); err != nil {
		return domain.Failure[T](domain.StatusError, domain.MsgIncompletePayload), nil
	}
	return a, nil
}

func userPath(userID uuid.UUID, rest string) string {
	return "/v1/users/" + userID.String() + "/" + rest
}

func daysQuery(key string, days int) url.Values {
	if days <= 0 {
		return nil
	}
	return url.Values{key: {strconv.Itoa(days)}}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	ctx, span := otel.Tracer("healthsync/analyticsclient").Start(ctx, "analytics GET "+path)
	defer span.End()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	span.SetAttributes(attribute.String("http.url", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Warn("analytics request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("analytics response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, resp.Status)
		c.logger.Warn("analytics backend returned an error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
	}
	return nil
}
