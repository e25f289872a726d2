package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okunev/chatlite/internal/common"
)

// Client is an HTTP client for the chat server API. It keeps the session
// token obtained from OpenSession and attaches it to every subsequent request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the current session token. It is empty until OpenSession succeeds.
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusToError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

func statusToError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	var base error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		base = common.ErrValidation
	case http.StatusUnauthorized:
		base = common.ErrUnauthorized
	case http.StatusForbidden:
		base = common.ErrForbidden
	case http.StatusNotFound:
		base = common.ErrNotFound
	default:
		base = common.ErrInternal
	}
	if payload.Error != "" {
		return fmt.Errorf("%w: %s", base, payload.Error)
	}
	return fmt.Errorf("%w: http status %d", base, resp.StatusCode)
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

// OpenSession obtains a session token for the device/username pair
// and stores it on the client for later calls.
func (c *Client) OpenSession(ctx context.Context, deviceID, username string) error {
	in := map[string]string{"device_id": deviceID, "username": username}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/session", in, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// UpsertAccount saves or refreshes an account in the device registry.
func (c *Client) UpsertAccount(ctx context.Context, acc Account) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/api/accounts", acc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAccounts returns the saved accounts for a device, most recently used first.
func (c *Client) ListAccounts(ctx context.Context, deviceID string, limit int) ([]Account, error) {
	q := url.Values{"device_id": {deviceID}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Account
	if err := c.do(ctx, http.MethodGet, "/api/accounts?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountAccounts reports how many accounts a device has saved and the cap.
func (c *Client) CountAccounts(ctx context.Context, deviceID string) (*AccountCount, error) {
	q := url.Values{"device_id": {deviceID}}
	var out AccountCount
	if err := c.do(ctx, http.MethodGet, "/api/accounts/count?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage publishes a message to a channel.
func (c *Client) SendMessage(ctx context.Context, channel, color, body string) (*Message, error) {
	in := map[string]string{"channel": channel, "color": color, "body": body}
	var out Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMessages returns recent messages in a channel, newest first.
func (c *Client) ListMessages(ctx context.Context, channel string, limit int) ([]Message, error) {
	q := url.Values{"channel": {channel}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []Message
	if err := c.do(ctx, http.MethodGet, "/api/messages?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EditMessage replaces the body of one of the caller's messages.
func (c *Client) EditMessage(ctx context.Context, id, body string) (*Message, error) {
	in := map[string]string{"body": body}
	var out Message
	if err := c.do(ctx, http.MethodPatch, "/api/messages/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMessage removes one of the caller's messages, leaving a tombstone.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/messages/"+id, nil, nil)
}

// ToggleReaction adds the emoji reaction if absent, removes it if present.
// It reports whether the reaction is now present.
func (c *Client) ToggleReaction(ctx context.Context, messageID, emoji string) (bool, error) {
	var out struct {
		Added bool `json:"added"`
	}
	path := "/api/messages/" + messageID + "/reactions/" + url.PathEscape(emoji)
	if err := c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return false, err
	}
	return out.Added, nil
}

// Heartbeat refreshes the caller's presence in a channel.
func (c *Client) Heartbeat(ctx context.Context, channel string) error {
	in := map[string]string{"channel": channel}
	return c.do(ctx, http.MethodPost, "/api/presence", in, nil)
}

// Online returns usernames seen in the channel within the presence window.
func (c *Client) Online(ctx context.Context, channel string) ([]PresenceEntry, error) {
	q := url.Values{"channel": {channel}}
	var out []PresenceEntry
	if err := c.do(ctx, http.MethodGet, "/api/presence?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Typing refreshes the caller's typing indicator in a channel.
func (c *Client) Typing(ctx context.Context, channel string) error {
	in := map[string]string{"channel": channel}
	return c.do(ctx, http.MethodPost, "/api/typing", in, nil)
}

// Typers returns usernames currently typing in the channel.
func (c *Client) Typers(ctx context.Context, channel string) ([]string, error) {
	q := url.Values{"channel": {channel}}
	var out []struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/typing?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(out))
	for _, t := range out {
		names = append(names, t.Username)
	}
	return names, nil
}

// AvatarUploadURL requests a presigned URL for uploading an avatar image.
func (c *Client) AvatarUploadURL(ctx context.Context) (key string, uploadURL string, err error) {
	var out struct {
		Key string `json:"key"`
		URL string `json:"put_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/avatars", nil, &out); err != nil {
		return "", "", err
	}
	return out.Key, out.URL, nil
}

// AvatarDownloadURL requests a presigned URL for downloading an avatar image.
func (c *Client) AvatarDownloadURL(ctx context.Context, key string) (string, error) {
	var out struct {
		URL string `json:"get_url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/avatars/"+key, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
