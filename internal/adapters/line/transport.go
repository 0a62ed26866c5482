package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBase = "https://api.line.me"

// Client talks to the LINE Messaging API with a channel access token.
type Client struct {
	token   string
	http    *http.Client
	baseURL string
}

func New(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBase,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// doJSON builds the URL, adds Authorization, encodes an optional JSON body,
// maps 404 to ErrNotFound and honors one Retry-After backoff on 429.
func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, in, out any) error {
	retried := false
	for {
		u := c.baseURL + path
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
		var body io.Reader
		if in != nil {
			b, err := json.Marshal(in)
			if err != nil {
				return err
			}
			body = bytes.NewReader(b)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		res, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("line http: %w", err)
		}

		if res.StatusCode == http.StatusTooManyRequests && !retried {
			if sec, _ := strconv.Atoi(res.Header.Get("Retry-After")); sec > 0 {
				_ = res.Body.Close()
				select {
				case <-time.After(time.Duration(sec) * time.Second):
				case <-ctx.Done():
					return ctx.Err()
				}
				retried = true
				continue
			}
		}

		defer res.Body.Close()
		if res.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		if res.StatusCode < 200 || res.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
			return &APIError{Status: res.StatusCode, Body: strings.TrimSpace(string(b))}
		}
		if out == nil {
			return nil
		}
		return json.NewDecoder(res.Body).Decode(out)
	}
}
