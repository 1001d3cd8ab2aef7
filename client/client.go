package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/recruitos/api-contract-tests/framework"
	"github.com/recruitos/api-contract-tests/servicedef"
)

// RequestTimeout bounds every request, including reading the response body.
const RequestTimeout = time.Second * 60

// AuthProfile selects which credential, if any, is attached to a request.
type AuthProfile int

const (
	// BrightData attaches the X-BrightData-Key header.
	BrightData AuthProfile = iota
	// GitHub attaches the X-GitHub-Token header.
	GitHub
)

func (p AuthProfile) String() string {
	switch p {
	case BrightData:
		return "brightdata"
	case GitHub:
		return "github"
	default:
		return fmt.Sprintf("AuthProfile(%d)", int(p))
	}
}

// Credentials are the optional secrets sent to the API. An empty value means the
// corresponding header is omitted; it is up to the server to decide whether that is allowed.
type Credentials struct {
	BrightDataKey string
	GitHubToken   string
}

// Client makes requests to the API under test. It is safe to share between test cases;
// the underlying connection pool is reused.
type Client struct {
	baseURL     string
	credentials Credentials
	httpClient  *http.Client
	logger      framework.Logger
}

func New(baseURL string, credentials Credentials, logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		httpClient:  &http.Client{Timeout: RequestTimeout},
		logger:      logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithLogger returns a Client that shares this one's connection pool and credentials but
// logs to a different logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	c1 := *c
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1.logger = logger
	return &c1
}

// WithoutCredentials returns a Client for the same base URL that sends no credentials.
func (c *Client) WithoutCredentials() *Client {
	c1 := *c
	c1.credentials = Credentials{}
	return &c1
}

// Get sends a GET request to the base URL plus path, with an optional query string.
func (c *Client) Get(path string, query url.Values, profile AuthProfile) (*Response, error) {
	return c.do("GET", path, query, nil, profile)
}

// Post sends a POST request. If body is non-nil it is sent as JSON; otherwise the request
// has no body.
func (c *Client) Post(path string, query url.Values, body interface{}, profile AuthProfile) (*Response, error) {
	return c.do("POST", path, query, body, profile)
}

func (c *Client) do(method, path string, query url.Values, body interface{}, profile AuthProfile) (*Response, error) {
	target := c.requestURL(path, query)

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		c.logger.Printf("%s %s (%s) body: %s", method, target, profile, string(data))
	} else {
		c.logger.Printf("%s %s (%s)", method, target, profile)
	}

	req, err := http.NewRequest(method, target, bodyReader)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers(profile) {
		req.Header[k] = v
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("request failed after %s: %s", time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("reading response body failed after %s: %s", time.Since(start), err)
		return nil, fmt.Errorf("read response body: %w", err)
	}
	c.logger.Printf("received status %d (%d bytes) after %s", resp.StatusCode, len(data), time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (c *Client) requestURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) headers(profile AuthProfile) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	switch profile {
	case BrightData:
		if c.credentials.BrightDataKey != "" {
			h.Set(servicedef.HeaderBrightDataKey, c.credentials.BrightDataKey)
		}
	case GitHub:
		if c.credentials.GitHubToken != "" {
			h.Set(servicedef.HeaderGitHubToken, c.credentials.GitHubToken)
		}
	}
	return h
}
