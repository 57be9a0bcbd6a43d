package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/medbook/internal/client/models"
)

// refresh exchanges a refresh token for a new access token and stores it.
// Callers presenting the same refresh token at the same time share one call,
// and a failed refresh expires the session once for all of them.
func (c *Client) refresh(ctx context.Context, refreshToken string) (string, error) {
	v, err, shared := c.flight.Do(refreshToken, func() (any, error) {
		// Detached from the first caller's cancellation; send still applies
		// the request timeout.
		fctx := context.WithoutCancel(ctx)
		access, err := c.doRefresh(fctx, refreshToken)
		if err != nil {
			c.log.Warn(fctx, "token refresh failed, ending session", "error", err)
			c.expire(fctx)
			return nil, err
		}
		return access, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.log.Debug(ctx, "joined in-flight token refresh")
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context, refreshToken string) (string, error) {
	payload, err := json.Marshal(models.TokenRefreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", err
	}

	// Skips attach-auth and handle-401-refresh.
	r := &outgoing{method: http.MethodPost, path: refreshPath, body: payload, attempt: retried}
	status, data, err := c.send(ctx, r, []stage{{name: "request-id", apply: c.setRequestID}})
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", newAPIError(r.method, r.path, status, data)
	}

	var resp models.TokenRefreshResponse
	if err := decode(data, &resp); err != nil {
		return "", err
	}
	if resp.Access == "" {
		return "", fmt.Errorf("%w: refresh response without access token", ErrMalformedResponse)
	}

	// The replay carries the new token even if persisting it fails.
	if err := c.tokens.SetAccessToken(ctx, resp.Access); err != nil {
		c.log.Warn(ctx, "failed to persist refreshed access token", "error", err)
	}
	if resp.Refresh != "" {
		if err := c.tokens.SetRefreshToken(ctx, resp.Refresh); err != nil {
			c.log.Warn(ctx, "failed to persist rotated refresh token", "error", err)
		}
	}

	return resp.Access, nil
}

// expire clears the session and runs the session-expired handler.
func (c *Client) expire(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}

	c.mu.RLock()
	fn := c.onExpired
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}
