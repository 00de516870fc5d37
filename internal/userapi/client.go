package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsreader/internal/article"
)

var (
	// ErrMalformedResponse is returned when a 2xx body is missing required fields.
	ErrMalformedResponse = errors.New("malformed user service response")
	// ErrUnauthenticated is returned by calls that need a bearer token when none is held.
	ErrUnauthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx response. Message carries the server-supplied
// {"error": "..."} text when there was one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("user service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("user service returned %d: %s", e.StatusCode, e.Message)
}

type RegisterRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Interests []string `json:"interests"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is what a successful register or login hands back.
type Credentials struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Recommendations is a decoded, validated recommendation feed.
type Recommendations struct {
	Articles []article.Article
	BasedOn  []string
}

// Client talks to the user service (auth and recommendations).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the configured user service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register creates an account and returns its credentials.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (*Credentials, error) {
	if in.Interests == nil {
		in.Interests = []string{}
	}
	return c.authenticate(ctx, "/auth/register", in)
}

// Login exchanges email and password for credentials.
func (c *Client) Login(ctx context.Context, in LoginRequest) (*Credentials, error) {
	return c.authenticate(ctx, "/auth/login", in)
}

func (c *Client) authenticate(ctx context.Context, path string, payload any) (*Credentials, error) {
	var creds Credentials
	if err := c.doJSONRequest(ctx, http.MethodPost, path, "", payload, &creds); err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, fmt.Errorf("%w: no token in response", ErrMalformedResponse)
	}
	return &creds, nil
}

// Recommendations fetches the personalised feed for the holder of token.
func (c *Client) Recommendations(ctx context.Context, token string) (*Recommendations, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var out article.Recommendations
	if err := c.doJSONRequest(ctx, http.MethodGet, "/users/me/recommendations", token, nil, &out); err != nil {
		return nil, err
	}
	if out.Articles == nil {
		return nil, fmt.Errorf("%w: no articles array", ErrMalformedResponse)
	}

	return &Recommendations{
		Articles: *out.Articles,
		BasedOn:  out.BasedOn,
	}, nil
}

// doJSONRequest performs a JSON request against the user service. A non-empty
// token is sent as a bearer credential. If result is nil, the response body is
// not decoded.
func (c *Client) doJSONRequest(ctx context.Context, method, path, token string, payload, result any) error {
	url := c.baseURL + path

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&errBody)
		return &APIError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}

	return nil
}
