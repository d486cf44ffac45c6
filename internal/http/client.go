package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/prosperworks/internal/constants"
	"github.com/fivetwenty-io/prosperworks/pkg/prosperworks"
)

// Client is the ProsperWorks transport. It carries the identity headers,
// dispatches requests and turns responses into decoded JSON or errors.
type Client struct {
	baseURL     string
	accessToken string
	email       string
	userAgent   string
	headers     http.Header
	httpClient  *retryablehttp.Client
	logger      prosperworks.Logger
	debug       bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger prosperworks.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout bounds a single request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// Request represents an HTTP request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response. Data holds the decoded body of a
// successful response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	Data       any
}

// NewClient creates a transport for baseURL. Identity headers are computed
// once here; missing credentials are only reported when a request is made.
func NewClient(baseURL, accessToken, email string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = noRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		email:       email,
		userAgent:   "prosperworks-go/" + constants.Version,
		httpClient:  retryClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.headers = http.Header{}
	c.headers.Set(constants.HeaderContentType, constants.ContentType)
	c.headers.Set(constants.HeaderAccessToken, accessToken)
	c.headers.Set(constants.HeaderApplication, constants.Application)
	c.headers.Set(constants.HeaderUserEmail, email)
	c.headers.Set(constants.HeaderUserAgent, c.userAgent)

	return c
}

// Headers returns a copy of the identity headers sent with every request.
func (c *Client) Headers() http.Header {
	return c.headers.Clone()
}

// BaseURL returns the URL every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs an HTTP request. Any status other than 200 is returned as a
// *prosperworks.ServerError together with the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.accessToken == "" || c.email == "" {
		return nil, prosperworks.ErrNotConfigured
	}

	reqURL := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		reqURL += "?" + req.Query.Encode()
	}

	var body []byte

	if req.Body != nil {
		var err error

		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range c.headers {
		httpReq.Header[key] = values
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	requestID := uuid.NewString()
	start := time.Now()

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"request_id": requestID,
			"method":     req.Method,
			"url":        reqURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", req.Method, req.Path, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"request_id": requestID,
			"status":     httpResp.StatusCode,
			"duration":   time.Since(start).String(),
			"bytes":      len(respBody),
		})
	}

	if httpResp.StatusCode != http.StatusOK {
		return resp, prosperworks.NewServerError(httpResp.StatusCode, errorMessage(respBody))
	}

	resp.Data, err = decodeBody(respBody)
	if err != nil {
		return resp, err
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Query: query})
}

// Request dispatches one engine call. GET and DELETE payloads become query
// parameters, POST and PUT payloads the JSON body. It returns the decoded body.
func (c *Client) Request(ctx context.Context, method, path string, payload map[string]any) (any, error) {
	var (
		resp *Response
		err  error
	)

	switch method {
	case http.MethodGet:
		resp, err = c.Get(ctx, path, QueryValues(payload))
	case http.MethodDelete:
		resp, err = c.Delete(ctx, path, QueryValues(payload))
	case http.MethodPost, http.MethodPut:
		if payload == nil {
			payload = map[string]any{}
		}

		resp, err = c.Do(ctx, &Request{Method: method, Path: path, Body: payload})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	if err != nil {
		return nil, err
	}

	return resp.Data, nil
}

// ErrUnsupportedMethod is returned for methods the API does not use.
var ErrUnsupportedMethod = errors.New("unsupported HTTP method")

// QueryValues flattens a payload into query parameters. Slice values repeat
// the key.
func QueryValues(payload map[string]any) url.Values {
	if len(payload) == 0 {
		return nil
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	values := url.Values{}

	for _, key := range keys {
		switch v := payload[key].(type) {
		case nil:
		case []any:
			for _, item := range v {
				values.Add(key, fmt.Sprint(item))
			}
		case []string:
			for _, item := range v {
				values.Add(key, item)
			}
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}

	return values
}

func noRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

func decodeBody(body []byte) (any, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response body is not a single JSON value", prosperworks.ErrBadJSON)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data any

	err := dec.Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", prosperworks.ErrBadJSON, err)
	}

	return data, nil
}

// errorMessage extracts the "message" field of an error body, if any.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}

	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}

	return payload.Message
}
