package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"blushhush.app/internal/auth"
)

var _ Gateway = (*Client)(nil)

// Client implements Gateway against a GoTrue-compatible auth endpoint
// (Supabase hosts one under /auth/v1).
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	now     func() time.Time
}

// ClientOption configures the gateway client.
type ClientOption func(*Client)

// WithHTTPClient overrides the transport (tests, custom timeouts).
func WithHTTPClient(c *http.Client) ClientOption {
	return func(g *Client) {
		if c != nil {
			g.httpc = c
		}
	}
}

// WithClock overrides the time source.
func WithClock(fn func() time.Time) ClientOption {
	return func(g *Client) {
		if fn != nil {
			g.now = fn
		}
	}
}

func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	g := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Message     string `json:"msg"`
}

func (g *Client) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	body := map[string]string{"email": email, "password": password}
	return g.token(ctx, "password", body)
}

func (g *Client) Refresh(ctx context.Context, refreshToken string) (*auth.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return g.token(ctx, "refresh_token", body)
}

func (g *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// The remote invalidates the refresh token; local state is cleared
	// regardless, so only transport errors matter here.
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: logout status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

func (g *Client) token(ctx context.Context, grant string, body map[string]string) (*auth.Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := g.baseURL + "/auth/v1/token?grant_type=" + grant
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnauthorized:
		var er errorResponse
		_ = json.Unmarshal(raw, &er)
		msg := er.Description
		if msg == "" {
			msg = er.Message
		}
		if msg == "" {
			msg = er.Error
		}
		return nil, fmt.Errorf("%w: %s", ErrBadCredentials, msg)
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", ErrUnavailable)
	}

	now := g.now().UTC()
	s := &auth.Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		IdentityID:   tr.User.ID,
		Email:        tr.User.Email,
		IssuedAt:     now,
		ExpiresAt:    now.Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	// Some deployments omit the user object; the token itself carries
	// the identity.
	if s.IdentityID == "" {
		if claims, err := DecodeClaims(tr.AccessToken); err == nil {
			s.IdentityID = claims.Subject
			if s.Email == "" {
				s.Email = claims.Email
			}
		}
	}
	return s, nil
}
