package weibo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "wbharvest/pkg/errors"
	"wbharvest/pkg/logger"
)

// Client fetches pages from the Weibo container feed. It performs one
// network call per page and applies no retry of its own; retry policy
// belongs to the caller.
type Client struct {
	httpClient  *http.Client
	headers     map[string]string
	baseURL     string
	containerID string
	logger      logger.Logger
}

// NewClient creates a new feed client
func NewClient(baseURL, containerID, userAgent string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent":      userAgent,
			"Accept":          "application/json, text/plain, */*",
			"Accept-Language": "zh-CN,zh;q=0.9,en;q=0.8",
			"Referer":         "https://m.weibo.cn/",
		},
		baseURL:     baseURL,
		containerID: containerID,
		logger:      log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// FetchPage fetches one page of the feed and returns its raw cards
func (c *Client) FetchPage(ctx context.Context, page int) ([]Card, error) {
	url := FeedURL(c.baseURL, c.containerID, page)

	c.logger.DebugWithFields("fetching feed page", map[string]interface{}{
		"page": page,
		"url":  url,
	})

	var response FeedResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		c.logger.ErrorWithFields("failed to fetch feed page", map[string]interface{}{
			"page":  page,
			"error": err.Error(),
		})
		return nil, err
	}

	c.logger.DebugWithFields("feed page fetched", map[string]interface{}{
		"page":       page,
		"card_count": len(response.Data.Cards),
	})

	return response.Data.Cards, nil
}

// getJSON performs a GET request and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeTransport, fmt.Sprintf("failed to create request: %v", err), err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return errs.Wrap(errs.ErrorTypeTransport, fmt.Sprintf("network error: %v", err), err)
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode != http.StatusOK {
		return &errs.Error{
			Type:    errs.ErrorTypeTransport,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeTransport, fmt.Sprintf("failed to read response body: %v", err), err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return errs.Wrap(errs.ErrorTypeDecode, fmt.Sprintf("failed to parse JSON: %v", err), err)
	}

	return nil
}
