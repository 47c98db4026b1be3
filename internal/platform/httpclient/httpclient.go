package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	userAgent = "pet-adoption"

	// Odin, plans-features y los webhooks responden JSON chico; lo demás se corta.
	maxResponseBytes = 1 << 20
)

// Client habla JSON con los servicios externos del proceso de adopción.
type Client struct {
	http  *http.Client
	base  string
	fixed http.Header
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}, fixed: http.Header{}}
}

// NewWithBaseURL permite pasar paths relativos a DoJSON. Un baseURL vacío equivale a New.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	c.base = strings.TrimRight(u.String(), "/")
	return c, nil
}

// WithHeader fija un header para todas las llamadas (la API key de cada servicio).
func (c *Client) WithHeader(key, value string) *Client {
	if key = strings.TrimSpace(key); key != "" {
		c.fixed.Set(key, value)
	}
	return c
}

// HTTPError es una respuesta fuera de 2xx. Body viene recortado.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("unexpected status %d", e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// DoJSON manda in como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func (c *Client) DoJSON(ctx context.Context, method, target string, headers map[string]string, in, out any) error {
	if c == nil || c.http == nil {
		return errors.New("http client not initialized")
	}

	req, err := c.newRequest(ctx, method, target, in)
	if err != nil {
		return err
	}
	for k, v := range headers {
		if k = strings.TrimSpace(k); k != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL.Redacted(), err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode/100 != 2 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Redacted(), err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, target string, in any) (*http.Request, error) {
	full, err := c.resolve(target)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return nil, err
	}
	req.Header = c.fixed.Clone()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// resolve acepta una URL absoluta o un path relativo al base.
func (c *Client) resolve(target string) (string, error) {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return "", errors.New("empty request url")
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
		return target, nil
	case c.base == "":
		return "", fmt.Errorf("relative path %q needs a base url", target)
	}
	return c.base + "/" + strings.TrimLeft(target, "/"), nil
}
