package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/sellerhub/go-seller-console/pkg/logger"
)

// maxErrorBody bounds how much of an error response is read for its message.
const maxErrorBody = 1 << 20

// RequestError is returned by every resource endpoint whose call did not
// succeed: the request never completed (Status 0) or the backend answered a
// non-success status. Message carries the server-supplied detail when the
// body had one. No endpoint retries; the error propagates to the caller
// unchanged.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsStatus reports whether err is a RequestError carrying the given HTTP status.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}

// Client issues requests against the marketplace REST backend. It attaches the
// base URL and credentials and (de)serializes JSON bodies; callers only ever
// see typed payloads and RequestError values. Session cookies set by the
// backend are kept in an internal jar, and a bearer token is attached when one
// is known.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client from cfg. The base URL is required; the token is
// optional and may also be learned later from an authentication response.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client: base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AccessToken,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// SetAccessToken replaces the bearer token attached to subsequent requests.
func (c *Client) SetAccessToken(token string) {
	c.token = token
}

// do issues one JSON request and decodes the response into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// upload posts files as multipart form data under the "files" field and
// decodes the response into out.
func (c *Client) upload(ctx context.Context, path string, files []File, out any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	for _, file := range files {
		part, err := form.CreateFormFile("files", file.Name)
		if err != nil {
			return fmt.Errorf("client: multipart part for %q: %w", file.Name, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("client: read file %q: %w", file.Name, err)
		}
	}

	if err := form.Close(); err != nil {
		return fmt.Errorf("client: finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("%s %s -> %d", req.Method, req.URL.Path, resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// Some success responses carry no body at all; that is not a failure.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &RequestError{Status: resp.StatusCode, Message: "malformed response body", Err: err}
	}

	return nil
}

// serverMessage extracts the optional {"message": ...} payload from an error
// response body. A body that is absent or not JSON yields an empty message.
func serverMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
