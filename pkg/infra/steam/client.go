package steam

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/workshopsize/pkg/domain/interfaces"
	"github.com/m-mizutani/workshopsize/pkg/domain/types"
)

const (
	DefaultAPIBaseURL       = "https://api.steampowered.com"
	DefaultCommunityBaseURL = "https://steamcommunity.com"
	DefaultTimeout          = 10 * time.Second

	DefaultMaxBodySize = 16 << 20
)

// Source selects how collection and item data is obtained
type Source string

const (
	// SourceAPI uses the unauthenticated ISteamRemoteStorage JSON endpoints
	SourceAPI Source = "api"
	// SourceHTML scrapes the public steamcommunity.com pages
	SourceHTML Source = "html"
)

var (
	ErrUnknownSource      = goerr.New("unknown steam source")
	ErrCollectionNotFound = goerr.New("collection not found")
	ErrUnexpectedStatus   = goerr.New("unexpected HTTP status")
	ErrUnexpectedResponse = goerr.New("unexpected response shape")
	ErrItemUnavailable    = goerr.New("workshop item unavailable")
	ErrSizeNotFound       = goerr.New("file size not found")
)

// config holds internal client configuration
type config struct {
	apiBaseURL       string
	communityBaseURL string
	timeout          time.Duration
	httpClient       *http.Client
	userAgent        string
	maxBodySize      int64
}

// Option is a functional option for the Steam client
type Option func(*config)

// WithAPIBaseURL overrides the Steam Web API endpoint
func WithAPIBaseURL(u string) Option {
	return func(c *config) {
		c.apiBaseURL = strings.TrimRight(u, "/")
	}
}

// WithCommunityBaseURL overrides the Steam Community endpoint
func WithCommunityBaseURL(u string) Option {
	return func(c *config) {
		c.communityBaseURL = strings.TrimRight(u, "/")
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. The timeout option is
// ignored when a client is given.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a response body are accepted.
// Larger responses fail instead of being parsed partially.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		c.maxBodySize = n
	}
}

// New creates a SteamClient backed by the given source
func New(source Source, opts ...Option) (interfaces.SteamClient, error) {
	cfg := &config{
		apiBaseURL:       DefaultAPIBaseURL,
		communityBaseURL: DefaultCommunityBaseURL,
		timeout:          DefaultTimeout,
		userAgent:        "workshopsize/" + types.Version,
		maxBodySize:      DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: cfg.timeout}
	}

	t := &transport{cfg: cfg}

	switch source {
	case SourceAPI:
		return &apiClient{transport: t}, nil
	case SourceHTML:
		return &scrapeClient{transport: t}, nil
	default:
		return nil, goerr.Wrap(ErrUnknownSource, "failed to create steam client", goerr.V("source", source))
	}
}

// transport performs the raw HTTP exchanges shared by both sources
type transport struct {
	cfg *config
}

// itemURL returns the community page of a workshop item or collection
func (t *transport) itemURL(id string) string {
	return t.cfg.communityBaseURL + "/sharedfiles/filedetails/?id=" + url.QueryEscape(id)
}

func (t *transport) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", target))
	}
	return t.do(req)
}

func (t *transport) postForm(ctx context.Context, target string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", target))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.do(req)
}

func (t *transport) do(req *http.Request) ([]byte, error) {
	if t.cfg.userAgent != "" {
		req.Header.Set("User-Agent", t.cfg.userAgent)
	}

	resp, err := t.cfg.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send request", goerr.V("url", req.URL.String()))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.Wrap(ErrUnexpectedStatus, "steam returned non-success status",
			goerr.V("url", req.URL.String()),
			goerr.V("status", resp.StatusCode),
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.cfg.maxBodySize+1))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("url", req.URL.String()))
	}
	if int64(len(body)) > t.cfg.maxBodySize {
		return nil, goerr.Wrap(ErrUnexpectedResponse, "response body too large",
			goerr.V("url", req.URL.String()),
			goerr.V("limit", t.cfg.maxBodySize),
		)
	}

	return body, nil
}
