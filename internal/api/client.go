package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxPageSize caps how much of a chain page is read.
const maxPageSize = 16 << 20

// Client interface for testability
type Client interface {
	FetchChain(ctx context.Context, req ChainRequest) ([]byte, error)
}

type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(baseURL, userAgent string, ratePerSec float64, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:       10,
		MaxConnsPerHost:    2,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: true, // gzip is requested and decoded explicitly
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:    logger,
	}
}

// FetchChain posts the chain form for one symbol and returns the page HTML.
// Failures are returned as-is; the caller decides what to do with them.
func (c *HTTPClient) FetchChain(ctx context.Context, req ChainRequest) ([]byte, error) {
	if strings.TrimSpace(req.Symbol) == "" {
		return nil, ErrEmptySymbol
	}

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToUpper(req.Symbol))
	form := formValues(req)
	c.logger.Debug("requesting chain",
		zap.String("url", url),
		zap.String("side", req.Side.String()),
		zap.Int("strike_min", req.Window.Min),
		zap.Int("strike_max", req.Window.Max),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "text/html")
	httpReq.Header.Set("Accept-Encoding", "gzip")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := c.readBody(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("received chain", zap.String("url", url), zap.Int("bytes", len(body)))
	return body, nil
}

func (c *HTTPClient) readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip body: %w", err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	body, err := io.ReadAll(io.LimitReader(r, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
