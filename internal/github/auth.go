package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource supplies the bearer token for GitHub API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, typically the Actions-provided GITHUB_TOKEN.
type StaticToken string

func (t StaticToken) Token(ctx context.Context) (string, error) {
	if t == "" {
		return "", fmt.Errorf("github token is empty")
	}
	return string(t), nil
}

// AppAuth authenticates as a GitHub App installation: it signs a short-lived
// JWT with the App's private key, resolves the installation for Repo, and
// exchanges the JWT for an installation access token. Tokens are cached
// until shortly before expiry.
type AppAuth struct {
	AppID      string
	PrivateKey string
	Repo       string // owner/repo the installation is resolved against
	BaseURL    string // defaults to https://api.github.com

	httpClient *http.Client

	mu     sync.Mutex
	cached *installationToken
}

type installationToken struct {
	Token     string
	ExpiresAt time.Time
}

func (a *AppAuth) client() *http.Client {
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return a.httpClient
}

func (a *AppAuth) baseURL() string {
	if a.BaseURL == "" {
		return "https://api.github.com"
	}
	return strings.TrimSuffix(a.BaseURL, "/")
}

// Token returns a valid installation access token, reusing the cached one
// while it has at least a minute of life left.
func (a *AppAuth) Token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && time.Until(a.cached.ExpiresAt) > time.Minute {
		return a.cached.Token, nil
	}

	jwtToken, err := a.generateJWT()
	if err != nil {
		return "", err
	}

	installationID, err := a.installationID(ctx, jwtToken)
	if err != nil {
		return "", err
	}

	token, err := a.accessToken(ctx, jwtToken, installationID)
	if err != nil {
		return "", err
	}

	a.cached = token
	return token.Token, nil
}

// generateJWT creates the App-level JWT used against the installations
// endpoints.
func (a *AppAuth) generateJWT() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(a.PrivateKey))
	if err != nil {
		return "", fmt.Errorf("failed to parse private key: %w", err)
	}

	appID, err := strconv.ParseInt(a.AppID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid app ID: %w", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
		Issuer:    strconv.FormatInt(appID, 10),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return signed, nil
}

// installationID resolves the App installation that covers Repo.
func (a *AppAuth) installationID(ctx context.Context, jwtToken string) (int64, error) {
	parts := strings.Split(a.Repo, "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid repo format: %s (expected owner/repo)", a.Repo)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/installation", a.baseURL(), parts[0], parts[1])
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	setAppHeaders(req, jwtToken)

	resp, err := a.client().Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get installation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("GitHub API error: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.ID, nil
}

// accessToken exchanges the JWT for an installation access token.
func (a *AppAuth) accessToken(ctx context.Context, jwtToken string, installationID int64) (*installationToken, error) {
	url := fmt.Sprintf("%s/app/installations/%d/access_tokens", a.baseURL(), installationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setAppHeaders(req, jwtToken)

	resp, err := a.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("GitHub API error: %d - %s", resp.StatusCode, string(body))
	}

	var result struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &installationToken{Token: result.Token, ExpiresAt: result.ExpiresAt}, nil
}

func setAppHeaders(req *http.Request, jwtToken string) {
	req.Header.Set("Authorization", "Bearer "+jwtToken)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}
