package fgpt

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/fgpt/date"
	"github.com/etnz/fgpt/logger"
)

// contains http utils to deal with remote services

// ErrUnavailable is returned when a remote service cannot be reached, or does
// not answer, after a retry.
var ErrUnavailable = errors.New("data unavailable")

// DefaultTimeout bounds each attempt of a remote call.
const DefaultTimeout = 10 * time.Second

// diskCache implements a simple disk cache for HTTP responses. Keys include
// the current day, so entries expire every day.
type diskCache struct {
	base http.RoundTripper
	dir  string
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", date.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("fgpt-%x", sha1.Sum([]byte(key)))

	log := logger.FromContext(req.Context())
	if resp, err := c.get(key, req); err == nil {
		log.Debug().Str("host", req.URL.Host).Str("path", req.URL.Path).Msg("cache hit")
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write (ignored)")
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	// DumpResponse reads the body and replaces it with an in-memory copy.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0644)
}

// DailyClient returns an http.Client caching successful responses in dir
// until the end of the day. An empty dir means the system temp directory.
// base is the underlying transport, nil means http.DefaultTransport.
func DailyClient(dir string, base http.RoundTripper) *http.Client {
	if dir == "" {
		dir = os.TempDir()
	}
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{Transport: &diskCache{base: base, dir: dir}}
}

// Fetcher gets JSON documents from a remote service. Each attempt is bounded
// by Timeout, and a failed attempt is retried once.
type Fetcher struct {
	Client  *http.Client  // nil means http.DefaultClient
	Timeout time.Duration // zero means DefaultTimeout
}

// GetJSON fetches addr and decodes its JSON body into data. When both
// attempts fail the error wraps ErrUnavailable.
func (f Fetcher) GetJSON(ctx context.Context, addr string, data any) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if err = f.jwget(ctx, addr, data); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		logger.FromContext(ctx).Debug().Err(err).Int("attempt", attempt+1).Msg("remote call failed")
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// jwget performs a single HTTP GET and unmarshals the JSON response into data.
func (f Fetcher) jwget(ctx context.Context, addr string, data any) error {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
