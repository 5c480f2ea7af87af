// internal/infra/auth/session_provider.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const secureTokenEndpoint = "https://securetoken.googleapis.com/v1/token"

// expiryMargin: a token this close to expiry counts as expired so a poll
// cycle never starts with a credential about to lapse mid-fetch.
const expiryMargin = time.Minute

var (
	ErrNotConfigured = errors.New("auth: api key or refresh token missing")
	ErrRefreshFailed = errors.New("auth: token refresh failed")
)

// SessionProvider は Firebase Auth のリフレッシュトークンを保持し、
// securetoken エンドポイントで ID トークンへ透過的に交換します。
// Refresh はポーリング毎サイクルに呼ばれますが、有効期限内のキャッシュが
// あればネットワークを発生させません。
type SessionProvider struct {
	apiKey string
	client *http.Client

	mu           sync.Mutex
	refreshToken string
	idToken      string
	expiresAt    time.Time
}

func NewSessionProvider(apiKey, refreshToken string) *SessionProvider {
	return &SessionProvider{
		apiKey:       strings.TrimSpace(apiKey),
		refreshToken: strings.TrimSpace(refreshToken),
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentToken returns the cached bearer credential when still valid.
func (p *SessionProvider) CurrentToken() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.idToken == "" || time.Now().After(p.expiresAt.Add(-expiryMargin)) {
		return "", false
	}
	return p.idToken, true
}

// Refresh returns a valid bearer credential, exchanging the refresh token
// only when the cached one expired. A failure leaves the previous state
// untouched so the next cycle can retry.
func (p *SessionProvider) Refresh(ctx context.Context) (string, error) {
	if tok, ok := p.CurrentToken(); ok {
		return tok, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.apiKey == "" || p.refreshToken == "" {
		return "", ErrNotConfigured
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", p.refreshToken)

	endpoint := secureTokenEndpoint + "?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status=%d", ErrRefreshFailed, resp.StatusCode)
	}

	var body struct {
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if body.IDToken == "" {
		return "", fmt.Errorf("%w: empty id_token", ErrRefreshFailed)
	}

	p.idToken = body.IDToken
	if body.RefreshToken != "" {
		// the endpoint may rotate the refresh token
		p.refreshToken = body.RefreshToken
	}
	p.expiresAt = tokenExpiry(body.IDToken)

	log.Printf("[auth] id token refreshed, valid until %s", p.expiresAt.Format(time.RFC3339))
	return p.idToken, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// backend verifies tokens, the client only needs the refresh point.
func tokenExpiry(idToken string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	// fall back to the documented one-hour lifetime
	return time.Now().Add(time.Hour)
}
