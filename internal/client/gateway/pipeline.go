package gateway

import (
	"context"
	"net/http"
	"net/url"
)

const (
	headerRequestID     = "X-Request-ID"
	headerAuthorization = "Authorization"
)

// attempt is where a logical request is in its refresh lifecycle.
type attempt int

const (
	firstAttempt attempt = iota
	retried
)

func (a attempt) String() string {
	if a == retried {
		return "retried"
	}
	return "first"
}

// outgoing is one logical request. It survives across the initial send and
// the single replay after a refresh.
type outgoing struct {
	method  string
	path    string
	query   url.Values
	body    []byte
	attempt attempt
	// token overrides the stored access token on replay.
	token string
}

// stage mutates an outgoing HTTP request before it is sent.
type stage struct {
	name  string
	apply func(ctx context.Context, req *http.Request, r *outgoing) error
}

func (c *Client) requestStages() []stage {
	return []stage{
		{name: "request-id", apply: c.setRequestID},
		{name: "attach-auth", apply: c.attachAuth},
	}
}

func (c *Client) setRequestID(_ context.Context, req *http.Request, _ *outgoing) error {
	req.Header.Set(headerRequestID, c.newID())
	return nil
}

func (c *Client) attachAuth(ctx context.Context, req *http.Request, r *outgoing) error {
	token := r.token
	if token == "" {
		var err error
		if token, err = c.tokens.AccessToken(ctx); err != nil {
			return err
		}
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	return nil
}

// handleResponse is the handle-401-refresh stage. It reports whether r must
// be sent again; when it does not, err is what the caller sees.
func (c *Client) handleResponse(ctx context.Context, r *outgoing, apiErr *APIError) (again bool, err error) {
	if apiErr.StatusCode != http.StatusUnauthorized || r.attempt == retried {
		return false, apiErr
	}
	r.attempt = retried

	refresh, err := c.tokens.RefreshToken(ctx)
	if err != nil || refresh == "" {
		c.metrics.refresh(refreshSkipped)
		return false, apiErr
	}

	access, err := c.refresh(ctx, refresh)
	if err != nil {
		c.metrics.refresh(refreshFailure)
		return false, apiErr
	}

	c.metrics.refresh(refreshSuccess)
	r.token = access
	return true, nil
}
