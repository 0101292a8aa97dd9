package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// Client talks to the upstream quote service. It makes exactly one attempt
// per call.
type Client struct {
	baseURL    string
	loginPath  string
	dataPath   string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the http.Client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPaths overrides the login and data path suffixes.
func WithPaths(loginPath, dataPath string) ClientOption {
	return func(c *Client) {
		c.loginPath = loginPath
		c.dataPath = dataPath
	}
}

// NewClient creates a client for the service rooted at baseURL. Paths are
// appended to baseURL verbatim, so baseURL normally ends with a slash.
func NewClient(baseURL string, logger *zerolog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		loginPath:  "get_authcode_url",
		dataPath:   "get_data",
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoginURL is the address AuthURL requests.
func (c *Client) LoginURL() string {
	return c.baseURL + c.loginPath
}

// QuoteURL is the address Quote requests for symbol.
func (c *Client) QuoteURL(symbol string) string {
	q := url.Values{}
	q.Set("stock", symbol)
	return c.baseURL + c.dataPath + "?" + q.Encode()
}

// AuthURL fetches the login link. The body of a 200 response is returned
// verbatim.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	body, err := c.get(ctx, c.LoginURL())
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", &Error{Kind: KindEmpty, StatusCode: http.StatusOK}
	}
	return string(body), nil
}

// Quote looks up symbol and returns the first record of the response.
// Later records are ignored.
func (c *Client) Quote(ctx context.Context, symbol string) (Quote, error) {
	body, err := c.get(ctx, c.QuoteURL(symbol))
	if err != nil {
		return Quote{}, err
	}

	var resp QuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Quote{}, &Error{Kind: KindDecode, StatusCode: http.StatusOK, Err: err}
	}

	if len(resp.Data) == 0 {
		return Quote{}, &Error{Kind: KindEmpty, StatusCode: http.StatusOK}
	}

	quote, missing := resp.Data[0].Quote()
	if missing != "" {
		return Quote{}, &Error{Kind: KindMissingField, StatusCode: http.StatusOK, Field: missing}
	}

	return quote, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	c.logger.Debug().Str("url", rawURL).Msg("upstream request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)

	c.logger.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Int("body_length", len(body)).
		Msg("upstream response")

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindStatus, StatusCode: resp.StatusCode}
	}
	if err != nil {
		return nil, &Error{Kind: KindTransport, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	return body, nil
}
