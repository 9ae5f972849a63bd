package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPClient talks JSON over HTTP to the account service.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type resultResponse struct {
	OK bool `json:"ok"`
}

func (c *HTTPClient) CreateAccount(ctx context.Context, payload NewAccount) (*Account, error) {
	var acc Account
	if err := c.do(ctx, http.MethodPost, "/accounts", payload, &acc); err != nil {
		return nil, err
	}
	if acc.ID == 0 {
		return nil, fmt.Errorf("account service returned no account id")
	}
	return &acc, nil
}

func (c *HTTPClient) AccountExists(ctx context.Context, id int64) (bool, error) {
	var resp existsResponse
	path := "/accounts/" + strconv.FormatInt(id, 10) + "/exists"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) UsernameExists(ctx context.Context, username string) (bool, error) {
	var resp existsResponse
	path := "/accounts/exists/username?username=" + url.QueryEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) EmailExists(ctx context.Context, email string) (bool, error) {
	var resp existsResponse
	path := "/accounts/exists/email?email=" + url.QueryEscape(email)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) GetAccountByID(ctx context.Context, id int64) (*Account, error) {
	var acc Account
	path := "/accounts/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &acc); err != nil {
		return nil, err
	}
	if acc.ID == 0 {
		return nil, fmt.Errorf("account %d not found", id)
	}
	return &acc, nil
}

func (c *HTTPClient) UpdateAccount(ctx context.Context, acc Account) (bool, error) {
	var resp resultResponse
	path := "/accounts/" + strconv.FormatInt(acc.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, acc, &resp); err != nil {
		return false, err
	}
	return resp.OK, nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	var resp resultResponse
	path := "/accounts/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return false, err
	}
	return resp.OK, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call account service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("account service returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
