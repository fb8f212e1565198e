package mailserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// principalName is the fixed basic-auth user for every remote admin API;
// the per-server API key is the password.
const principalName = "admin"

// Client talks to a remote mail server's admin API. It performs a single
// request/response cycle per call: no retries, no caching. The configured
// timeout is the only bound on a call; a timeout surfaces as a transport
// error and is handled like any other remote failure.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// do issues one authenticated request and returns the raw response body
// together with whether the server declared it as JSON.
func (c *Client) do(ctx context.Context, creds Credentials, method, path string, body any) ([]byte, bool, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, false, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, creds.BaseURL()+path, reader)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(principalName, creds.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("admin API request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false, &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(raw),
		}
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return raw, mediaType == "application/json", nil
}

func (c *Client) getJSON(ctx context.Context, creds Credentials, path string, out any) error {
	raw, isJSON, err := c.do(ctx, creds, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if !isJSON {
		return fmt.Errorf("admin API %s: expected JSON response, got %q", path, truncate(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response %s: %w", path, err)
	}
	return nil
}

func (c *Client) getText(ctx context.Context, creds Credentials, path string) (string, error) {
	raw, _, err := c.do(ctx, creds, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(raw)), nil
}

func (c *Client) postJSON(ctx context.Context, creds Credentials, path string, body, out any) error {
	raw, isJSON, err := c.do(ctx, creds, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if out != nil && isJSON {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response %s: %w", path, err)
		}
	}
	return nil
}

func truncate(raw []byte) string {
	const max = 128
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}

// --- System ---

func (c *Client) Status(ctx context.Context, creds Credentials) (*SystemStatus, error) {
	var s SystemStatus
	if err := c.getJSON(ctx, creds, "/system/status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Version returns the server software version. The endpoint answers in
// plain text.
func (c *Client) Version(ctx context.Context, creds Credentials) (string, error) {
	return c.getText(ctx, creds, "/system/version")
}

func (c *Client) MemoryUsage(ctx context.Context, creds Credentials) (*UsageInfo, error) {
	var u UsageInfo
	if err := c.getJSON(ctx, creds, "/system/memory", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DiskUsage(ctx context.Context, creds Credentials) (*UsageInfo, error) {
	var u UsageInfo
	if err := c.getJSON(ctx, creds, "/system/disk", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) MailQueue(ctx context.Context, creds Credentials) (*QueueInfo, error) {
	var q QueueInfo
	if err := c.getJSON(ctx, creds, "/system/queue", &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// --- DNS ---

func (c *Client) DNSZones(ctx context.Context, creds Credentials) ([]Zone, error) {
	var zones []Zone
	if err := c.getJSON(ctx, creds, "/dns/zones", &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

func (c *Client) AddDNSRecord(ctx context.Context, creds Credentials, zone string, entry ZoneEntry) error {
	return c.postJSON(ctx, creds, "/dns/records/add", map[string]any{
		"zone":     zone,
		"type":     entry.Type,
		"name":     entry.Name,
		"value":    entry.Value,
		"priority": entry.Priority,
		"ttl":      entry.TTL,
	}, nil)
}

func (c *Client) RemoveDNSRecord(ctx context.Context, creds Credentials, recordType, name, value string) error {
	return c.postJSON(ctx, creds, "/dns/records/remove", map[string]any{
		"type":  recordType,
		"name":  name,
		"value": value,
	}, nil)
}

// --- Mail users ---

func (c *Client) MailUsers(ctx context.Context, creds Credentials) (MailboxDump, error) {
	var dump MailboxDump
	if err := c.getJSON(ctx, creds, "/mail/users", &dump); err != nil {
		return nil, err
	}
	return dump, nil
}

func (c *Client) AddMailUser(ctx context.Context, creds Credentials, email, password, name string) error {
	return c.postJSON(ctx, creds, "/mail/users/add", map[string]any{
		"email":    email,
		"password": password,
		"name":     name,
	}, nil)
}

func (c *Client) RemoveMailUser(ctx context.Context, creds Credentials, email string) error {
	return c.postJSON(ctx, creds, "/mail/users/remove", map[string]any{"email": email}, nil)
}

func (c *Client) SetMailUserPassword(ctx context.Context, creds Credentials, email, password string) error {
	return c.postJSON(ctx, creds, "/mail/users/password", map[string]any{
		"email":    email,
		"password": password,
	}, nil)
}

// --- Aliases ---

func (c *Client) MailAliases(ctx context.Context, creds Credentials) (AliasDump, error) {
	var dump AliasDump
	if err := c.getJSON(ctx, creds, "/mail/aliases", &dump); err != nil {
		return nil, err
	}
	return dump, nil
}

func (c *Client) AddMailAlias(ctx context.Context, creds Credentials, source, destination string) error {
	return c.postJSON(ctx, creds, "/mail/aliases/add", map[string]any{
		"source":      source,
		"destination": destination,
	}, nil)
}

func (c *Client) RemoveMailAlias(ctx context.Context, creds Credentials, source, destination string) error {
	return c.postJSON(ctx, creds, "/mail/aliases/remove", map[string]any{
		"source":      source,
		"destination": destination,
	}, nil)
}

// --- Spam filtering ---

func (c *Client) SpamSettings(ctx context.Context, creds Credentials) (*SpamSettings, error) {
	var s SpamSettings
	if err := c.getJSON(ctx, creds, "/spam/settings", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) AddSpamWhitelist(ctx context.Context, creds Credentials, address string) error {
	return c.postJSON(ctx, creds, "/spam/whitelist/add", map[string]any{"address": address}, nil)
}

func (c *Client) RemoveSpamWhitelist(ctx context.Context, creds Credentials, address string) error {
	return c.postJSON(ctx, creds, "/spam/whitelist/remove", map[string]any{"address": address}, nil)
}

func (c *Client) AddSpamBlacklist(ctx context.Context, creds Credentials, address string) error {
	return c.postJSON(ctx, creds, "/spam/blacklist/add", map[string]any{"address": address}, nil)
}

func (c *Client) RemoveSpamBlacklist(ctx context.Context, creds Credentials, address string) error {
	return c.postJSON(ctx, creds, "/spam/blacklist/remove", map[string]any{"address": address}, nil)
}

func (c *Client) SetSpamThreshold(ctx context.Context, creds Credentials, score float64) error {
	return c.postJSON(ctx, creds, "/spam/threshold", map[string]any{"threshold": score}, nil)
}

// --- Backups ---

func (c *Client) BackupConfig(ctx context.Context, creds Credentials) (*BackupConfig, error) {
	var cfg BackupConfig
	if err := c.getJSON(ctx, creds, "/backup/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetBackupConfig updates one key family of the remote backup config.
// Keys not present in the payload are left untouched by the server.
func (c *Client) SetBackupConfig(ctx context.Context, creds Credentials, settings map[string]any) error {
	return c.postJSON(ctx, creds, "/backup/config", settings, nil)
}

func (c *Client) ToggleBackup(ctx context.Context, creds Credentials, backupType string, enabled bool) error {
	return c.postJSON(ctx, creds, "/backup/toggle", map[string]any{
		"type":    backupType,
		"enabled": enabled,
	}, nil)
}

func (c *Client) RunBackup(ctx context.Context, creds Credentials, backupType string) error {
	return c.postJSON(ctx, creds, "/backup/run", map[string]any{"type": backupType}, nil)
}
