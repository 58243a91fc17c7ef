package lcu

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/palemoky/autodraft/internal/apperrors"
	"github.com/palemoky/autodraft/internal/champion"
)

const requestTimeout = 10 * time.Second

// Client is the authenticated REST side of the local client API. The
// client serves a self-signed certificate, so verification is off.
type Client struct {
	baseURL string
	auth    string
	httpc   *http.Client
}

// NewClient builds a REST client for the given credentials.
func NewClient(creds Credentials) *Client {
	return &Client{
		baseURL: creds.BaseURL(),
		auth:    creds.BasicAuth(),
		httpc: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// do runs one authenticated JSON request. Any non-2xx status is an error
// carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(payload))
	}
	return payload, nil
}

// SubmitAction patches a champ-select action with the chosen champion.
// completed false leaves the action tentative (a pre-pick). All failure
// modes surface uniformly as apperrors.ErrSubmissionFailed.
func (c *Client) SubmitAction(ctx context.Context, actionID int64, championID champion.ID, completed bool) error {
	path := fmt.Sprintf("/lol-champ-select/v1/session/actions/%d", actionID)
	body := map[string]any{
		"championId": int(championID),
		"completed":  completed,
	}
	if _, err := c.do(ctx, http.MethodPatch, path, body); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSubmissionFailed, err)
	}
	return nil
}

// AcceptReadyCheck accepts a pending ready check.
func (c *Client) AcceptReadyCheck(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/lol-matchmaking/v1/ready-check/accept", nil)
	return err
}

// GameflowPhase reports the client's current lifecycle phase, for example
// "Lobby" or "ChampSelect". The endpoint returns a bare JSON string.
func (c *Client) GameflowPhase(ctx context.Context) (string, error) {
	payload, err := c.do(ctx, http.MethodGet, "/lol-gameflow/v1/gameflow-phase", nil)
	if err != nil {
		return "", err
	}

	var phase string
	if err := json.Unmarshal(payload, &phase); err != nil {
		return "", fmt.Errorf("decode gameflow phase: %w", err)
	}
	return phase, nil
}
