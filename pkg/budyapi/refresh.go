package budyapi

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"
)

// refreshDedupPrefixLen is the number of leading refresh-token bytes
// used as the single-flight key. Issuer tokens are opaque random
// strings, so a shared 32-byte prefix between two distinct live tokens
// does not occur in practice.
const refreshDedupPrefixLen = 32

// RefreshResult is the outcome of a refresh-token exchange.
type RefreshResult struct {
	AccessToken string

	// RefreshToken equals the input token when the issuer did not
	// rotate it; callers must persist it when it differs.
	RefreshToken string

	// ExpiresAt is the access token expiry as a Unix timestamp.
	ExpiresAt int64
}

// RefreshToken exchanges a refresh token for a new access token.
//
// Concurrent calls presenting the same refresh token are collapsed into
// a single network exchange and all callers observe the identical
// result, success or failure. The in-flight entry is dropped as soon as
// the exchange settles, so a failed refresh can be retried by a later
// request.
//
// The exchange itself runs detached from the first caller's context
// deadline (bounded by the client timeout instead): cancelling one
// waiter must not fail the exchange for everyone sharing it.
func (c *Client) RefreshToken(ctx context.Context, refreshToken, tenantID string) (*RefreshResult, error) {
	key := refreshToken
	if len(key) > refreshDedupPrefixLen {
		key = key[:refreshDedupPrefixLen]
	}

	v, err, shared := c.refresh.Do(key, func() (any, error) {
		return c.doRefresh(context.WithoutCancel(ctx), refreshToken)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.DebugContext(ctx, "refresh deduplicated", slog.String("tenant_id", tenantID))
	}
	return v.(*RefreshResult), nil
}

func (c *Client) doRefresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {c.cfg.ClientID},
		"scope":         {c.cfg.Scope},
	}

	resp, err := c.exchange(ctx, form, "")
	if err != nil {
		c.logger.WarnContext(ctx, "token refresh failed", slog.Any("error", err))
		return nil, errors.Join(ErrRefreshFailed, err)
	}

	rotated := resp.RefreshToken
	if rotated == "" {
		rotated = refreshToken
	}

	expiresIn := resp.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}

	return &RefreshResult{
		AccessToken:  resp.AccessToken,
		RefreshToken: rotated,
		ExpiresAt:    time.Now().Unix() + expiresIn,
	}, nil
}
