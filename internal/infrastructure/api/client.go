package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/shared"
)

const (
	// defaultBasePath is the versioned API root
	defaultBasePath = "/api/v1"

	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryBase  = time.Second

	// maxResponseSize is the maximum allowed response size (10MB)
	maxResponseSize = 10 * 1024 * 1024
)

// CredentialSource supplies the stored bearer token and wipes it when the
// backend reports the session dead
type CredentialSource interface {
	Token() string
	Clear() error
}

// Client is the typed API client for the storefront backend. Every outbound
// request funnels through a single choke point (doRequest) which injects the
// bearer credential, retries rate-limited responses with exponential backoff
// and expires the local session on an authorization failure.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	creds      CredentialSource
	onExpired  func()
	validate   *validator.Validate
	logger     *zap.Logger

	maxRetries int
	retryBase  time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-attempt HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithCredentialSource sets where bearer tokens are read from and cleared
func WithCredentialSource(src CredentialSource) Option {
	return func(c *Client) { c.creds = src }
}

// WithSessionExpiredHook registers a callback invoked after an unauthorized
// response wiped the stored credentials. Called at most once per response.
func WithSessionExpiredHook(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRetryPolicy overrides the rate-limit retry policy
func WithRetryPolicy(maxRetries int, base time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryBase = base
	}
}

// New creates a Client for the given base URL. A URL without a path gets the
// versioned default appended.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base URL %q must be absolute", baseURL)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = defaultBasePath
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		validate:   validator.New(),
		logger:     zap.NewNop(),
		maxRetries: defaultMaxRetries,
		retryBase:  defaultRetryBase,
	}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Response envelope
// ---------------------------------------------------------------------------

// Pagination mirrors the list-endpoint pagination block
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	Limit         int  `json:"limit"`
	NumberOfPages int  `json:"numberOfPages"`
	NextPage      *int `json:"nextPage,omitempty"`
	PrevPage      *int `json:"prevPage,omitempty"`
}

// Page is one page of a list endpoint
type Page[T any] struct {
	Items      []T
	Results    int
	Pagination *Pagination
}

// envelope is the backend's common response wrapper
type envelope struct {
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	Results        int             `json:"results"`
	Pagination     *Pagination     `json:"paginationResult"`
	PaginationAlt  *Pagination     `json:"pagination"`
	NumOfCartItems int             `json:"numOfCartItems"`
	Token          string          `json:"token"`
	Session        json.RawMessage `json:"session"`
	Data           json.RawMessage `json:"data"`
}

// pagination returns whichever pagination key the endpoint used
func (e *envelope) pagination() *Pagination {
	if e.Pagination != nil {
		return e.Pagination
	}
	return e.PaginationAlt
}

// decodeData unmarshals the data field into out when both are present
func (e *envelope) decodeData(out any) error {
	if out == nil || len(e.Data) == 0 {
		return nil
	}
	return decodeRaw(e.Data, out)
}

// decodeRaw unmarshals a raw envelope fragment
func decodeRaw(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: unexpected response shape: %v", shared.ErrUnknown, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// ListQuery is the common paging/search query for list endpoints
type ListQuery struct {
	Page    int
	Limit   int
	Keyword string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	return v
}

// File is binary content submitted as a multipart form part
type File struct {
	Name    string
	Content io.Reader
}

// formPayload accumulates multipart fields and files
type formPayload struct {
	fields url.Values
	files  []filePart
}

type filePart struct {
	field string
	file  File
}

func newFormPayload() *formPayload {
	return &formPayload{fields: url.Values{}}
}

func (p *formPayload) set(key, value string) {
	if value != "" {
		p.fields.Set(key, value)
	}
}

func (p *formPayload) add(key, value string) {
	p.fields.Add(key, value)
}

func (p *formPayload) addFile(field string, f File) {
	p.files = append(p.files, filePart{field: field, file: f})
}

func (p *formPayload) hasFiles() bool {
	return len(p.files) > 0
}

// encode renders the payload as a multipart/form-data body
func (p *formPayload) encode() (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range p.fields {
		for _, value := range values {
			if err := w.WriteField(key, value); err != nil {
				return "", nil, fmt.Errorf("api: encode form field %s: %w", key, err)
			}
		}
	}
	for _, part := range p.files {
		fw, err := w.CreateFormFile(part.field, part.file.Name)
		if err != nil {
			return "", nil, fmt.Errorf("api: encode form file %s: %w", part.field, err)
		}
		if _, err := io.Copy(fw, part.file.Content); err != nil {
			return "", nil, fmt.Errorf("api: read form file %s: %w", part.field, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("api: finalize form: %w", err)
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

// call performs a JSON request and decodes the response envelope
func (c *Client) call(ctx context.Context, method, path string, query url.Values, in any) (*envelope, error) {
	var body []byte
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		body = b
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, contentType, body)
}

// callForm performs a multipart/form-data request and decodes the envelope
func (c *Client) callForm(ctx context.Context, method, path string, form *formPayload) (*envelope, error) {
	contentType, body, err := form.encode()
	if err != nil {
		return nil, err
	}
	return c.send(ctx, method, path, nil, contentType, body)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, body []byte) (*envelope, error) {
	respBody, err := c.doRequest(ctx, method, path, query, contentType, body)
	if err != nil {
		return nil, err
	}
	env := &envelope{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, env); err != nil {
			return nil, fmt.Errorf("%w: unexpected response shape: %v", shared.ErrUnknown, err)
		}
	}
	return env, nil
}

// checkInput validates a request payload before it goes on the wire
func (c *Client) checkInput(in any) error {
	if err := c.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		de := &shared.DomainError{
			Code:    shared.ErrValidation.Code,
			Message: "Some fields are invalid",
		}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				de.Fields = append(de.Fields, shared.FieldError{
					Field:   fe.Field(),
					Message: fe.Tag(),
				})
			}
		}
		return de
	}
	return nil
}
