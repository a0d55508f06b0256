package clio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// tokenResponse is the body of a successful grant exchange.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthURL returns the authorization URL the user's browser is sent to.
func (c *httpClient) AuthURL() string {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {c.app.ClientID},
		"redirect_uri":  {c.app.RedirectURI},
	}
	return c.baseURL + "/oauth/authorize?" + params.Encode()
}

// ExchangeCode trades an authorization code for a token pair. The new
// credentials replace the shared pair and are persisted to the token store.
func (c *httpClient) ExchangeCode(ctx context.Context, code string) error {
	tok, err := c.tokenGrant(ctx, url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {c.app.ClientID},
		"client_secret": {c.app.ClientSecret},
		"redirect_uri":  {c.app.RedirectURI},
	})
	if err != nil {
		return eris.Wrap(err, "clio: exchange authorization code")
	}

	c.credMu.Lock()
	c.setCredentialsLocked(Credentials{AccessToken: tok.AccessToken, RefreshToken: tok.RefreshToken})
	c.credMu.Unlock()

	zap.L().Info("clio: authorization complete",
		zap.String("access_token", maskToken(tok.AccessToken)),
		zap.Int64("expires_in", tok.ExpiresIn),
	)
	return nil
}

// refresh exchanges the refresh token for a new pair. staleToken is the
// access token the caller's failed request used: when the shared pair has
// already moved past it, another caller refreshed while we waited for the
// lock and no second refresh is issued.
func (c *httpClient) refresh(ctx context.Context, staleToken string) error {
	c.credMu.Lock()
	defer c.credMu.Unlock()

	if c.cred.AccessToken != "" && c.cred.AccessToken != staleToken {
		return nil
	}
	if c.cred.RefreshToken == "" {
		return eris.New("clio: no refresh token available")
	}

	tok, err := c.tokenGrant(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.cred.RefreshToken},
		"client_id":     {c.app.ClientID},
		"client_secret": {c.app.ClientSecret},
	})
	if err != nil {
		return eris.Wrap(err, "clio: refresh token")
	}

	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = c.cred.RefreshToken
	}
	c.setCredentialsLocked(Credentials{AccessToken: tok.AccessToken, RefreshToken: refresh})

	zap.L().Info("clio: access token refreshed",
		zap.String("access_token", maskToken(tok.AccessToken)),
	)
	return nil
}

// tokenGrant posts a form-encoded grant to the token endpoint. No bearer
// header is attached.
func (c *httpClient) tokenGrant(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(data)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, eris.Wrap(err, "decode token response")
	}
	if tok.AccessToken == "" {
		return nil, eris.New("token response missing access_token")
	}
	return &tok, nil
}

// TokenStatus reports the credential state without exposing token values.
func (c *httpClient) TokenStatus() TokenStatus {
	c.credMu.Lock()
	defer c.credMu.Unlock()

	return TokenStatus{
		HasAccessToken:     c.cred.AccessToken != "",
		HasRefreshToken:    c.cred.RefreshToken != "",
		AccessTokenPreview: maskToken(c.cred.AccessToken),
	}
}

func maskToken(token string) string {
	if len(token) < 12 {
		return ""
	}
	return token[:8] + "…" + token[len(token)-4:]
}
