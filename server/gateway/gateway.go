// Package gateway is the one place that talks to the upstream TalentHub REST
// API. Every call takes the caller's bearer token (empty for the two public
// endpoints), targets the configured base URL plus a fixed path segment, and
// returns either a decoded payload or an *Error carrying the upstream status.
package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// Error is a non-2xx response from the upstream API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %v: %v", e.StatusCode, e.Message)
}

// IsUpstreamError returns the *Error inside err, or nil.
func IsUpstreamError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return nil
}

// upstreamMessage digs the "message" field out of an upstream error body,
// falling back to the raw body. The upstream wraps most failures as
// {"message": "..."}.
func upstreamMessage(body []byte, status string) string {
	var wrapped struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Message != "" {
		return wrapped.Message
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = status
	}
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

func (c *Client) do(method, path, bearer string, query map[string]string, body any) ([]byte, error) {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		q := url.Values{}
		for k, v := range query {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}
	var reader io.Reader
	if body != nil {
		bodyB, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(bodyB)
	}
	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respB, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(respB, resp.Status),
		}
	}
	return respB, nil
}

// requestJSON performs the request and decodes the response into T.
// An empty response body yields the zero value of T.
func requestJSON[T any](c *Client, method, path, bearer string, query map[string]string, body any) (T, error) {
	var out T
	respB, err := c.do(method, path, bearer, query, body)
	if err != nil {
		return out, err
	}
	if len(respB) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(respB, &out); err != nil {
		return out, fmt.Errorf("decoding %v %v response: %w", method, path, err)
	}
	return out, nil
}
