package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/wheelscan/internal/scan"
)

// Notifier publishes the outcome of a scan run.
type Notifier interface {
	SendSuccess(ctx context.Context, result *scan.BatchResult, duration time.Duration) error
	SendFailure(ctx context.Context, result *scan.BatchResult, duration time.Duration, err error) error
}

// message is one ntfy publish request.
type message struct {
	title    string
	body     string
	priority string
	tags     []string
}

// Client publishes scan results to an ntfy topic.
type Client struct {
	httpClient *http.Client
	config     *Config
	logger     *zap.Logger
}

func NewClient(cfg *Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     cfg,
		logger:     logger,
	}
}

func (c *Client) SendSuccess(ctx context.Context, result *scan.BatchResult, duration time.Duration) error {
	if !c.config.Enabled {
		return nil
	}
	return c.publish(ctx, successMessage(c.config, result, duration))
}

func (c *Client) SendFailure(ctx context.Context, result *scan.BatchResult, duration time.Duration, err error) error {
	if !c.config.Enabled {
		return nil
	}
	return c.publish(ctx, failureMessage(c.config, result, duration, err))
}

// successMessage maps a finished run onto ntfy fields. A run with no matches
// is still published, but quietly.
func successMessage(cfg *Config, result *scan.BatchResult, duration time.Duration) message {
	msg := message{
		body:     FormatSuccessMessage(result, duration),
		priority: cfg.Priority,
		tags:     runTags(cfg, result),
	}

	if result.Matched == 0 {
		msg.title = fmt.Sprintf("Wheel Scan: no matches in %d symbols", result.Total)
		msg.priority = "low"
		msg.tags = append(msg.tags, "zzz")
	} else {
		msg.title = fmt.Sprintf("Wheel Scan: %d matches", result.Matched)
		msg.tags = append(msg.tags, "white_check_mark")
	}

	if result.OffCalendar > 0 {
		msg.tags = append(msg.tags, "warning")
	}
	return msg
}

func failureMessage(cfg *Config, result *scan.BatchResult, duration time.Duration, err error) message {
	msg := message{
		title:    "Wheel Scan Failed",
		body:     FormatFailureMessage(result, duration, err),
		priority: "high",
		tags:     append(runTags(cfg, result), "x"),
	}
	if result.Failed > 0 {
		msg.title = fmt.Sprintf("Wheel Scan Failed: %d of %d symbols", result.Failed, result.Total)
	}
	return msg
}

// runTags starts from the configured tags and adds a short run id so a
// notification can be matched to its log lines.
func runTags(cfg *Config, result *scan.BatchResult) []string {
	var tags []string
	for _, t := range strings.Split(cfg.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	if result.RunID != "" {
		id := result.RunID
		if len(id) > 8 {
			id = id[:8]
		}
		tags = append(tags, "run-"+id)
	}
	return tags
}

func (c *Client) publish(ctx context.Context, msg message) error {
	url := strings.TrimSuffix(c.config.Server, "/") + "/" + c.config.Topic

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Title", msg.title)
	req.Header.Set("Priority", msg.priority)
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("failed to send notification", zap.Error(err))
		return fmt.Errorf("sending notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("notification rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("topic", c.config.Topic),
		)
		return fmt.Errorf("notification failed with status: %d", resp.StatusCode)
	}

	c.logger.Debug("notification sent",
		zap.String("title", msg.title),
		zap.String("priority", msg.priority),
	)
	return nil
}

// NoopNotifier discards everything.
type NoopNotifier struct{}

func (NoopNotifier) SendSuccess(context.Context, *scan.BatchResult, time.Duration) error {
	return nil
}

func (NoopNotifier) SendFailure(context.Context, *scan.BatchResult, time.Duration, error) error {
	return nil
}

// New returns a Client when notifications are enabled, otherwise a NoopNotifier.
func New(cfg *Config, logger *zap.Logger) Notifier {
	if !cfg.Enabled {
		return NoopNotifier{}
	}
	return NewClient(cfg, logger)
}
