// Package langfuse records consultation traces and feedback scores through
// the Langfuse ingestion API. An unconfigured client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultBatchSize     = 20
	DefaultFlushInterval = 2 * time.Second

	queueSize   = 256
	sendTimeout = 5 * time.Second
)

// ErrClosed is returned for events submitted after Close.
var ErrClosed = errors.New("langfuse client closed")

type Client interface {
	IsEnabled() bool
	// CreateTrace records a trace and returns its ID. The ID is generated
	// locally, so it is returned even when delivery fails.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	CreateScore(ctx context.Context, in ScoreInput) error
	// Close flushes queued events and stops background delivery.
	Close(ctx context.Context) error
}

type TraceInput struct {
	ID       string // generated when empty
	UserID   string
	Name     string // e.g. "health-consultation"
	Input    any
	Output   any
	Tags     []string
	Metadata map[string]any
}

type ScoreInput struct {
	TraceID string
	Name    string // e.g. "user_feedback"
	Value   float64
	Comment string
}

type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string

	// Async queues events and delivers them in batches from a background
	// worker. Delivery failures are only logged.
	Async         bool
	BatchSize     int
	FlushInterval time.Duration
}

func (c Config) enabled() bool {
	return c.BaseURL != "" && c.PublicKey != "" && c.SecretKey != ""
}

type client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time

	queue     chan ingestionEvent
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewClient creates a Langfuse client. Missing credentials give a disabled
// client whose methods do nothing.
func NewClient(cfg Config, logger *zap.Logger) Client {
	logger = logger.Named("langfuse")
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}

	c := &client{
		cfg:        cfg,
		endpoint:   strings.TrimSuffix(cfg.BaseURL, "/") + "/api/public/ingestion",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		now:        time.Now,
	}

	if !cfg.enabled() {
		logger.Info("tracing disabled",
			zap.Bool("base_url_set", cfg.BaseURL != ""),
			zap.Bool("public_key_set", cfg.PublicKey != ""),
			zap.Bool("secret_key_set", cfg.SecretKey != ""),
		)
		return c
	}

	logger.Info("tracing enabled",
		zap.String("base_url", cfg.BaseURL),
		zap.String("env", cfg.Environment),
		zap.Bool("async", cfg.Async),
	)
	if cfg.Async {
		c.queue = make(chan ingestionEvent, queueSize)
		c.done = make(chan struct{})
		go c.run()
	}
	return c
}

func (c *client) IsEnabled() bool {
	return c.cfg.enabled()
}

func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if !c.IsEnabled() {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	if c.cfg.Environment != "" {
		metadata["environment"] = c.cfg.Environment
	}

	return traceID, c.submit(ctx, c.event("trace-create", traceBody{
		ID:       traceID,
		Name:     in.Name,
		UserID:   in.UserID,
		Input:    in.Input,
		Output:   in.Output,
		Tags:     in.Tags,
		Metadata: metadata,
	}))
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if !c.IsEnabled() {
		return nil
	}
	return c.submit(ctx, c.event("score-create", scoreBody{
		ID:      uuid.NewString(),
		TraceID: in.TraceID,
		Name:    in.Name,
		Value:   in.Value,
		Comment: in.Comment,
	}))
}

func (c *client) Close(ctx context.Context) error {
	if c.queue == nil {
		return nil
	}
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.queue)
		c.mu.Unlock()
	})
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *client) event(kind string, body any) ingestionEvent {
	return ingestionEvent{
		ID:        uuid.NewString(),
		Type:      kind,
		Timestamp: c.now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}
}

// submit sends the event inline, or queues it in async mode. A full queue
// drops the event rather than blocking the request.
func (c *client) submit(ctx context.Context, ev ingestionEvent) error {
	if c.queue == nil {
		return c.send(ctx, []ingestionEvent{ev})
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.queue <- ev:
	default:
		c.logger.Warn("queue full, dropping event", zap.String("type", ev.Type))
	}
	return nil
}

// run batches queued events until the queue is closed, then flushes the rest.
func (c *client) run() {
	defer close(c.done)

	ticker := time.NewTicker(c.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]ingestionEvent, 0, c.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := c.send(ctx, batch); err != nil {
			c.logger.Warn("batch delivery failed", zap.Int("events", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case ev, ok := <-c.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, ev)
			if len(batch) >= c.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (c *client) send(ctx context.Context, events []ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: events})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}

	// Per-event failures come back with a 207.
	var result ingestionResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return nil
	}
	if len(result.Errors) > 0 {
		first := result.Errors[0]
		return fmt.Errorf("ingestion rejected %d of %d events: %d %s",
			len(result.Errors), len(events), first.Status, first.Message)
	}
	return nil
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type ingestionResult struct {
	Errors []struct {
		ID      string `json:"id"`
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"errors"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
