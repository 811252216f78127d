package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxErrorBody = 4 << 10

// TokenSource yields the raw token for the Authorization header.
type TokenSource interface {
	Token() (string, error)
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

func NewClient(base string, tokens TokenSource) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: 15 * time.Second},
		tokens: tokens,
	}
}

func (c *Client) Base() string { return c.base }

func (c *Client) newRequest(ctx context.Context, method, path string, body any, auth bool) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if c.tokens == nil {
			return nil, ErrUnauthorized
		}
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
		}
		// the server expects the bare token, no scheme
		req.Header.Set("Authorization", tok)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

// getJSON performs a GET request and decodes the JSON response
func getJSON[T any](ctx context.Context, c *Client, path string, auth bool) (T, error) {
	var result T
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, auth)
	if err != nil {
		return result, err
	}
	resp, err := c.do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("decode %s: %w", path, err)
	}
	return result, nil
}

// postJSON performs a POST request with JSON body and decodes the JSON response
func postJSON[Req any, Res any](ctx context.Context, c *Client, path string, body Req, auth bool) (Res, error) {
	var result Res
	req, err := c.newRequest(ctx, http.MethodPost, path, body, auth)
	if err != nil {
		return result, err
	}
	resp, err := c.do(req)
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("decode %s: %w", path, err)
	}
	return result, nil
}

// getRaw returns the body of a GET request as bytes.
func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// postText posts a JSON body and returns the plain-text reply.
func (c *Client) postText(ctx context.Context, path string, body any, auth bool) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body, auth)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
