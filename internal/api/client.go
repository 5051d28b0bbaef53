// Package api implements a client for the moderation endpoints of the game server REST API.
package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ogsmod/modtool/internal/httphelper"
	"github.com/ogsmod/modtool/pkg/json"
	"github.com/ogsmod/modtool/pkg/log"
	"go.uber.org/ratelimit"
)

var ErrInvalidBaseURL = errors.New("invalid api base url")

const defaultUserAgent = "modtool"

type Opts struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
	// RateLimit is the maximum number of requests per second, 0 disables limiting.
	RateLimit int
}

// Client talks to the REST API. It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	token     string
	userAgent string
	http      *http.Client
	limiter   ratelimit.Limiter
}

func New(opts Opts) (*Client, error) {
	baseURL, errURL := url.Parse(opts.BaseURL)
	if errURL != nil {
		return nil, errors.Join(errURL, ErrInvalidBaseURL)
	}

	if baseURL.Scheme != "http" && baseURL.Scheme != "https" || baseURL.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	limiter := ratelimit.NewUnlimited()
	if opts.RateLimit > 0 {
		limiter = ratelimit.New(opts.RateLimit)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   baseURL,
		token:     opts.Token,
		userAgent: userAgent,
		http:      httphelper.NewClient(opts.Timeout),
		limiter:   limiter,
	}, nil
}

// request performs a JSON request against path, relative to the base url, and decodes the response into T.
// Non 2xx responses are returned as a httphelper.APIError joined with httphelper.ErrRequestInvalidCode.
func request[T any](ctx context.Context, client *Client, method string, path string, query url.Values, body any) (T, error) {
	var value T

	endpoint := client.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyJSON, errEncode := json.Encode(body)
		if errEncode != nil {
			return value, errors.Join(errEncode, httphelper.ErrRequestCreate)
		}

		bodyReader = bytes.NewReader(bodyJSON)
	}

	req, errReq := http.NewRequestWithContext(ctx, method, endpoint.String(), bodyReader)
	if errReq != nil {
		return value, errors.Join(errReq, httphelper.ErrRequestCreate)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", client.userAgent)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if client.token != "" {
		req.Header.Set("Authorization", "Bearer "+client.token)
	}

	client.limiter.Take()

	resp, errResp := client.http.Do(req)
	if errResp != nil {
		return value, errors.Join(errResp, httphelper.ErrRequestPerform)
	}

	defer log.Closer(resp.Body)

	slog.Debug("API request",
		slog.String("method", method),
		slog.String("path", endpoint.Path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return value, errors.Join(httphelper.DecodeAPIError(resp), httphelper.ErrRequestInvalidCode)
	}

	decoded, errDecode := json.Decode[T](resp.Body)
	if errDecode != nil {
		return value, errors.Join(errDecode, httphelper.ErrRequestDecode)
	}

	return decoded, nil
}
