// Package royale provides a minimal client for the Clash Royale REST
// API (api.clashroyale.com/v1).
package royale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

const baseURL = "https://api.clashroyale.com/v1"

// APIError is returned for any non-2xx response from the API. It is
// propagated as-is: retry policy belongs to the caller.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("royale: HTTP %d: %s", e.StatusCode, e.Body)
}

// Client is a Clash Royale API client. All requests issued through one
// client pass a serializing gate that enforces a minimum delay between
// consecutive calls, as a blanket safety margin against upstream
// throttling. Concurrent clan syncs that must not share that budget
// need separate clients.
type Client struct {
	token string
	http  *fasthttp.Client

	mu    sync.Mutex
	delay time.Duration
	last  time.Time
}

// NewClient returns a client authenticated with the given developer
// token, spacing consecutive requests at least delay apart.
func NewClient(token string, delay time.Duration) *Client {
	return &Client{
		token: token,
		delay: delay,
		http: &fasthttp.Client{
			ReadTimeout:         15 * time.Second,
			WriteTimeout:        15 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// wait blocks until the minimum inter-request interval since the
// previous call has elapsed, or the context is cancelled. The gate
// mutex is held across the whole request so calls stay sequential.
func (c *Client) wait(ctx context.Context) error {
	rest := c.delay - time.Since(c.last)
	if rest <= 0 {
		return nil
	}
	t := time.NewTimer(rest)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.wait(ctx); err != nil {
		return err
	}
	defer func() { c.last = time.Now() }()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.http.DoDeadline(req, resp, deadline)
	} else {
		err = c.http.Do(req, resp)
	}
	if err != nil {
		return fmt.Errorf("royale: GET %s: %w", path, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		snippet := string(resp.Body())
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return &APIError{StatusCode: resp.StatusCode(), Body: snippet}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("royale: decode %s: %w", path, err)
	}
	return nil
}

// ClanMembers lists the members of a clan, in the order the API
// returns them.
func (c *Client) ClanMembers(ctx context.Context, clanTag string) ([]ClanMember, error) {
	var resp struct {
		Items []ClanMember `json:"items"`
	}
	path := "/clans/" + url.PathEscape(clanTag) + "/members"
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Player fetches a player profile by tag.
func (c *Client) Player(ctx context.Context, playerTag string) (*PlayerProfile, error) {
	var p PlayerProfile
	if err := c.get(ctx, "/players/"+url.PathEscape(playerTag), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// BattleLog fetches a player's recent battles, newest first. The API
// bounds the list itself; callers cap it further.
func (c *Client) BattleLog(ctx context.Context, playerTag string) ([]Battle, error) {
	var battles []Battle
	path := "/players/" + url.PathEscape(playerTag) + "/battlelog"
	if err := c.get(ctx, path, &battles); err != nil {
		return nil, err
	}
	return battles, nil
}

// Cards fetches the full card catalog.
func (c *Client) Cards(ctx context.Context) ([]Card, error) {
	var resp struct {
		Items []Card `json:"items"`
	}
	if err := c.get(ctx, "/cards", &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
