package mailserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds(srv *httptest.Server) Credentials {
	return Credentials{Hostname: srv.URL, APIKey: "test-key", Endpoint: "/admin"}
}

// ---------- BaseURL ----------

func TestCredentials_BaseURL(t *testing.T) {
	creds := Credentials{Hostname: "mail.example.com", APIKey: "k"}
	assert.Equal(t, "https://mail.example.com/admin", creds.BaseURL())

	creds.Endpoint = "/api/admin"
	assert.Equal(t, "https://mail.example.com/api/admin", creds.BaseURL())

	creds = Credentials{Hostname: "http://127.0.0.1:9000", Endpoint: "/admin"}
	assert.Equal(t, "http://127.0.0.1:9000/admin", creds.BaseURL())
}

// ---------- Status ----------

func TestClient_Status_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/admin/system/status", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "expected basic auth")
		assert.Equal(t, "admin", user)
		assert.Equal(t, "test-key", pass)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"4.2.1"}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	status, err := client.Status(context.Background(), testCreds(srv))
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "4.2.1", status.Version)
}

func TestClient_Status_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Status(context.Background(), testCreds(srv))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "maintenance", apiErr.Body)
}

func TestClient_Status_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("everything is fine"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Status(context.Background(), testCreds(srv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected JSON")
}

// ---------- Version ----------

func TestClient_Version_PlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/system/version", r.URL.Path)
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("v61\n"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	version, err := client.Version(context.Background(), testCreds(srv))
	require.NoError(t, err)
	assert.Equal(t, "v61", version)
}

// ---------- DNS ----------

func TestClient_DNSZones_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/dns/zones", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"zone":"example.com","records":[{"type":"MX","name":"example.com","value":"mail.example.com","priority":10,"ttl":3600}]}]`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	zones, err := client.DNSZones(context.Background(), testCreds(srv))
	require.NoError(t, err)
	require.Len(t, zones, 1)
	require.Len(t, zones[0].Records, 1)
	assert.Equal(t, "MX", zones[0].Records[0].Type)
	require.NotNil(t, zones[0].Records[0].Priority)
	assert.Equal(t, 10, *zones[0].Records[0].Priority)
}

func TestClient_AddDNSRecord_Payload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/dns/records/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		err := json.NewDecoder(r.Body).Decode(&payload)
		require.NoError(t, err)
		assert.Equal(t, "example.com", payload["zone"])
		assert.Equal(t, "A", payload["type"])
		assert.Equal(t, "www.example.com", payload["name"])

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	err := client.AddDNSRecord(context.Background(), testCreds(srv), "example.com", ZoneEntry{
		Type:  "A",
		Name:  "www.example.com",
		Value: "203.0.113.10",
		TTL:   3600,
	})
	require.NoError(t, err)
}

// ---------- Mail users ----------

func TestClient_MailUsers_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/mail/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bob@example.com":{"name":"Bob","status":"active","storage_used":1024}}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	dump, err := client.MailUsers(context.Background(), testCreds(srv))
	require.NoError(t, err)
	require.Contains(t, dump, "bob@example.com")
	assert.Equal(t, "Bob", dump["bob@example.com"].Name)
	assert.Equal(t, int64(1024), dump["bob@example.com"].StorageUsed)
}

func TestClient_AddMailUser_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("user exists"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	err := client.AddMailUser(context.Background(), testCreds(srv), "bob@example.com", "secret123", "Bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 409")
	assert.Contains(t, err.Error(), "user exists")
}

// ---------- Spam ----------

func TestClient_SpamSettings_StringThreshold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/spam/settings", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spam_threshold":"5.0","whitelist_addresses":["ok@x.com"],"blacklist_addresses":["bad@x.com"]}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	settings, err := client.SpamSettings(context.Background(), testCreds(srv))
	require.NoError(t, err)
	assert.Equal(t, FlexFloat(5.0), settings.SpamThreshold)
	assert.Equal(t, []string{"ok@x.com"}, settings.WhitelistAddresses)
	assert.Equal(t, []string{"bad@x.com"}, settings.BlacklistAddresses)
}

func TestClient_SpamSettings_NumericThreshold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spam_threshold":7.5,"whitelist_addresses":[],"blacklist_addresses":[]}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	settings, err := client.SpamSettings(context.Background(), testCreds(srv))
	require.NoError(t, err)
	assert.Equal(t, FlexFloat(7.5), settings.SpamThreshold)
}

// ---------- Backups ----------

func TestClient_BackupConfig_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/backup/config", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"target":"s3://backups/sys","schedule":"0 3 * * *","retention_days":30,"email_target":"s3://backups/mail","email_schedule":"0 4 * * *","email_retention_days":14}`))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	cfg, err := client.BackupConfig(context.Background(), testCreds(srv))
	require.NoError(t, err)
	assert.Equal(t, "s3://backups/sys", cfg.Target)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, "s3://backups/mail", cfg.EmailTarget)
	assert.Equal(t, 14, cfg.EmailRetentionDays)
}

func TestClient_RunBackup_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/backup/run", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("backup target unreachable"))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	err := client.RunBackup(context.Background(), testCreds(srv), "system")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "backup target unreachable", apiErr.Body)
}

// ---------- Transport failures ----------

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	client := NewClient(time.Second)
	_, err := client.Status(context.Background(), testCreds(srv))
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}
