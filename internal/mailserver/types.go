package mailserver

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Credentials identify one remote server's admin API.
type Credentials struct {
	Hostname string
	APIKey   string
	Endpoint string
}

// DefaultEndpoint is the admin API path prefix used when a server has
// no explicit endpoint configured.
const DefaultEndpoint = "/admin"

// BaseURL returns the admin API base URL for these credentials. A
// hostname that already carries a scheme is used verbatim, so servers
// reachable over plain HTTP (and test servers) work too.
func (c Credentials) BaseURL() string {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if strings.Contains(c.Hostname, "://") {
		return strings.TrimSuffix(c.Hostname, "/") + endpoint
	}
	return "https://" + c.Hostname + endpoint
}

// FlexFloat decodes a JSON number that some servers send as a quoted
// string (e.g. "spam_threshold": "5.0").
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// SystemStatus is the response of the system status endpoint.
type SystemStatus struct {
	Status  string     `json:"status"`
	Version string     `json:"version"`
	CPU     *FlexFloat `json:"cpu,omitempty"`
}

// Zone is one DNS zone with its records, as reported by the zone dump.
type Zone struct {
	Zone    string      `json:"zone"`
	Records []ZoneEntry `json:"records"`
}

type ZoneEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Priority *int   `json:"priority,omitempty"`
	TTL      int    `json:"ttl"`
}

// MailboxDump is the mail user listing: an object keyed by address.
type MailboxDump map[string]MailboxDetails

type MailboxDetails struct {
	Name         string     `json:"name"`
	Status       string     `json:"status"`
	StorageUsed  int64      `json:"storage_used"`
	StorageLimit *int64     `json:"storage_limit,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// AliasDump is the alias listing: an object keyed by source address.
type AliasDump map[string]AliasDetails

type AliasDetails struct {
	ForwardTo []string   `json:"forward_to"`
	IsActive  *bool      `json:"is_active,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SpamSettings is the spam filter configuration blob.
type SpamSettings struct {
	SpamThreshold      FlexFloat `json:"spam_threshold"`
	WhitelistAddresses []string  `json:"whitelist_addresses"`
	BlacklistAddresses []string  `json:"blacklist_addresses"`
}

// BackupConfig describes up to two logical backup jobs in one object,
// distinguished by the plain and email_ key families.
type BackupConfig struct {
	Target        string     `json:"target"`
	Schedule      string     `json:"schedule"`
	RetentionDays int        `json:"retention_days"`
	EncryptionKey *string    `json:"encryption_key,omitempty"`
	Status        string     `json:"status"`
	LastRun       *time.Time `json:"last_run,omitempty"`
	NextRun       *time.Time `json:"next_run,omitempty"`

	EmailTarget        string     `json:"email_target"`
	EmailSchedule      string     `json:"email_schedule"`
	EmailRetentionDays int        `json:"email_retention_days"`
	EmailEncryptionKey *string    `json:"email_encryption_key,omitempty"`
	EmailStatus        string     `json:"email_status"`
	EmailLastRun       *time.Time `json:"email_last_run,omitempty"`
	EmailNextRun       *time.Time `json:"email_next_run,omitempty"`
}

// UsageInfo is the shared shape of the memory and disk endpoints.
type UsageInfo struct {
	Used  int64 `json:"used"`
	Total int64 `json:"total"`
}

// QueueInfo is the mail queue status.
type QueueInfo struct {
	Size              int  `json:"size"`
	ActiveConnections *int `json:"active_connections,omitempty"`
}
