package highlights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// QueryPath is appended to the configured base URL.
const QueryPath = "/chat/query"

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds a single request. Zero leaves it unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logrus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint is the URL every question is posted to.
func (c *Client) Endpoint() string {
	return c.baseURL + QueryPath
}

// Ask posts the question once and returns the backend's answer.
func (c *Client) Ask(ctx context.Context, question string) (*AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	var result AnswerResult
	if err := c.makeRequest(ctx, http.MethodPost, QueryPath, QueryRequest{Question: question}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}, result interface{}) error {
	url := c.baseURL + endpoint

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"method":       method,
		"url":          url,
		"payload_size": len(jsonData),
	}).Debug("Sending highlights query")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Warn("Highlights backend unreachable")
		return &NetworkError{Op: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method, URL: url, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"url":           url,
		"response_size": len(responseBody),
		"duration_ms":   time.Since(start).Milliseconds(),
	}).Debug("Highlights response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status_code":   resp.StatusCode,
			"response_body": string(responseBody),
		}).Warn("Highlights query failed")
		return &RequestError{StatusCode: resp.StatusCode, Body: string(responseBody)}
	}

	if err := json.Unmarshal(responseBody, result); err != nil {
		return &DecodeError{Body: string(responseBody), Err: err}
	}

	return nil
}
