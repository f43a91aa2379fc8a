// Package stats fetches per-user solve statistics from the public stats API.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/coach/internal/config"
	"github.com/alexanderramin/coach/internal/domain"
)

// Fetcher retrieves statistics for one user.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (*domain.StatsRecord, error)
}

// Client implements Fetcher over HTTP.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
	logger   *zap.Logger
}

// NewClient creates a client for cfg.Endpoint. A nil logger discards output.
func NewClient(cfg config.StatsConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		timeout:  cfg.Timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		logger: logger.Named("stats"),
	}
}

// apiResponse mirrors the JSON body of GET /{username}.
type apiResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	EasySolved   int    `json:"easySolved"`
	TotalEasy    int    `json:"totalEasy"`
	MediumSolved int    `json:"mediumSolved"`
	TotalMedium  int    `json:"totalMedium"`
	HardSolved   int    `json:"hardSolved"`
	TotalHard    int    `json:"totalHard"`
	Ranking      int    `json:"ranking"`
	Streak       int    `json:"streak"`
}

func (c *Client) Fetch(ctx context.Context, username string) (*domain.StatsRecord, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, username)
	c.logger.Debug("stats request",
		zap.String("username", username),
		zap.Duration("latency", time.Since(start)),
		zap.Bool("ok", err == nil))
	if err != nil {
		return nil, err
	}

	return &domain.StatsRecord{
		Username:     username,
		EasySolved:   resp.EasySolved,
		TotalEasy:    resp.TotalEasy,
		MediumSolved: resp.MediumSolved,
		TotalMedium:  resp.TotalMedium,
		HardSolved:   resp.HardSolved,
		TotalHard:    resp.TotalHard,
		Ranking:      resp.Ranking,
		Streak:       resp.Streak,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, username string) (*apiResponse, error) {
	target := c.endpoint + "/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetching stats for %s: %w", username, ctx.Err())
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("fetching stats for %s: %w", username, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &StatusError{Status: httpResp.StatusCode, Message: errorMessage(body)}
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Status == "error" {
		return nil, &StatusError{Message: domain.CoalesceStr(resp.Message, "user not found")}
	}
	return &resp, nil
}

// errorMessage extracts "message" from an error body, if it is JSON.
func errorMessage(body []byte) string {
	var resp apiResponse
	if json.Unmarshal(body, &resp) != nil {
		return ""
	}
	return resp.Message
}
