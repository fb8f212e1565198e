package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/mailpanel/internal/config"
	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/metrics"
	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/store"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

func newTestServer(t *testing.T, remote http.Handler) (*Server, *store.Memory) {
	t.Helper()
	admin := httptest.NewServer(remote)
	t.Cleanup(admin.Close)

	mem := store.NewMemory()
	mem.AddServer(model.RemoteServer{
		ID:          "srv-1",
		Hostname:    admin.URL,
		APIKey:      "test-key",
		APIEndpoint: "/admin",
	})

	engine := enginesync.NewEngine(mem, mailserver.NewClient(5*time.Second), zerolog.Nop(), metrics.NewSyncStats(prometheus.NewRegistry()))
	cfg := &config.Config{HTTPListenAddr: ":0", LogLevel: "info"}
	return NewServer(zerolog.Nop(), engine, nil, cfg), mem
}

func adminHandler(routes map[string]http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()
	for path, fn := range routes {
		mux.HandleFunc("/admin"+path, fn)
	}
	return mux
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSyncStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, adminHandler(map[string]http.HandlerFunc{
		"/system/status": jsonHandler(`{"status":"healthy","version":"1.8.2"}`),
	}))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/srv-1/sync/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"online"`)
	assert.Contains(t, rec.Body.String(), `"version":"1.8.2"`)
}

func TestSyncKindEndpoint(t *testing.T) {
	srv, mem := newTestServer(t, adminHandler(map[string]http.HandlerFunc{
		"/dns/zones": jsonHandler(`[{"zone":"example.com","records":[{"type":"A","name":"example.com","value":"203.0.113.7","ttl":300}]}]`),
	}))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/srv-1/sync/dns", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, mem.DNSRecordsFor("srv-1"), 1)
}

func TestSyncKindEndpoint_Unknown(t *testing.T) {
	srv, _ := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/srv-1/sync/bogus", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncEndpoint_UnknownServer(t *testing.T) {
	srv, _ := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/missing/sync", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMailbox(t *testing.T) {
	srv, mem := newTestServer(t, adminHandler(map[string]http.HandlerFunc{
		"/mail/users/add": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}))

	body := `{"email":"bob@example.com","password":"hunter2secret","name":"Bob"}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/srv-1/mailboxes", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	mailboxes, err := mem.ListMailboxes(context.Background(), "srv-1")
	require.NoError(t, err)
	require.Len(t, mailboxes, 1)
	assert.Equal(t, "bob@example.com", mailboxes[0].Email)
}

func TestCreateMailbox_ValidationError(t *testing.T) {
	srv, _ := newTestServer(t, http.NotFoundHandler())

	body := `{"email":"not-an-email","password":"short"}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/srv-1/mailboxes", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMailbox_RemoteErrorIsBadGateway(t *testing.T) {
	srv, _ := newTestServer(t, adminHandler(map[string]http.HandlerFunc{
		"/mail/users/add": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"user exists"}`, http.StatusConflict)
		},
	}))

	body := `{"email":"bob@example.com","password":"hunter2secret"}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/srv-1/mailboxes", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestDeleteAlias_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.NotFoundHandler())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/aliases/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSpamFilter_Whitelist(t *testing.T) {
	srv, mem := newTestServer(t, adminHandler(map[string]http.HandlerFunc{
		"/spam/whitelist/add": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}))

	body := `{"rule_type":"whitelist","pattern":"friend@example.org"}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/servers/srv-1/spam-filters", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	filters := mem.SpamFiltersFor("srv-1")
	require.Len(t, filters, 1)
	assert.Equal(t, model.RuleTypeWhitelist, filters[0].RuleType)
}

func TestRunBackupEndpoint(t *testing.T) {
	srv, mem := newTestServer(t, adminHandler(map[string]http.HandlerFunc{
		"/backup/run": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}))
	mem.InsertBackupJob(context.Background(), &model.BackupJob{
		ID: "job-1", ServerID: "srv-1", BackupType: model.BackupTypeSystem, Status: "idle",
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/backup-jobs/job-1/run", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"running"`)
}
