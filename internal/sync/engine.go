// Package sync implements the reconciliation engine that mirrors remote
// mail server state into the local store. Each resource kind syncs
// independently: one broken remote endpoint never blocks the others.
package sync

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/metrics"
	"github.com/edvin/mailpanel/internal/model"
)

// Kind identifies one independently synced resource collection.
type Kind string

const (
	KindDNS         Kind = "dns"
	KindMailboxes   Kind = "mailboxes"
	KindAliases     Kind = "aliases"
	KindSpamFilters Kind = "spam_filters"
	KindBackups     Kind = "backups"
	KindMetrics     Kind = "metrics"
)

// AllKinds lists every resource kind in the order a sequential full sync
// runs them. Aliases come after mailboxes so their mailbox references
// resolve against fresh data.
var AllKinds = []Kind{KindDNS, KindMailboxes, KindAliases, KindSpamFilters, KindBackups, KindMetrics}

// Mirror is the local mirror capability the engine reconciles against.
// Both store.Postgres and store.Memory satisfy it.
type Mirror interface {
	GetServer(ctx context.Context, id string) (*model.RemoteServer, error)
	UpdateServerStatus(ctx context.Context, id, status, version string, syncedAt time.Time) error

	ReplaceDNSRecords(ctx context.Context, serverID string, records []model.DnsRecord) error
	InsertDNSRecord(ctx context.Context, rec *model.DnsRecord) error
	GetDNSRecord(ctx context.Context, id string) (*model.DnsRecord, error)
	DeleteDNSRecord(ctx context.Context, id string) error

	ReplaceMailboxes(ctx context.Context, serverID string, mailboxes []model.Mailbox) error
	ListMailboxes(ctx context.Context, serverID string) ([]model.Mailbox, error)
	GetMailbox(ctx context.Context, id string) (*model.Mailbox, error)
	GetMailboxByEmail(ctx context.Context, serverID, email string) (*model.Mailbox, error)
	InsertMailbox(ctx context.Context, mb *model.Mailbox) error
	DeleteMailbox(ctx context.Context, id string) error

	ReplaceAliases(ctx context.Context, serverID string, aliases []model.EmailAlias) error
	GetAlias(ctx context.Context, id string) (*model.EmailAlias, error)
	InsertAlias(ctx context.Context, a *model.EmailAlias) error
	DeleteAlias(ctx context.Context, id string) error

	ReplaceSpamFilters(ctx context.Context, serverID string, filters []model.SpamFilter) error
	GetSpamFilter(ctx context.Context, id string) (*model.SpamFilter, error)
	InsertSpamFilter(ctx context.Context, f *model.SpamFilter) error
	DeleteSpamFilter(ctx context.Context, id string) error

	ReplaceBackupJobs(ctx context.Context, serverID string, jobs []model.BackupJob) error
	GetBackupJob(ctx context.Context, id string) (*model.BackupJob, error)
	InsertBackupJob(ctx context.Context, j *model.BackupJob) error
	DeleteBackupJob(ctx context.Context, id string) error
	UpdateBackupJobStatus(ctx context.Context, id, status string) error
	InsertBackupHistory(ctx context.Context, e *model.BackupHistoryEntry) error

	InsertMetrics(ctx context.Context, e *model.ServerMetricsEntry) error
}

// Engine reconciles remote server state into the mirror.
type Engine struct {
	mirror Mirror
	client *mailserver.Client
	logger zerolog.Logger
	stats  *metrics.SyncStats
	flight singleflight.Group
	now    func() time.Time
}

func NewEngine(mirror Mirror, client *mailserver.Client, logger zerolog.Logger, stats *metrics.SyncStats) *Engine {
	return &Engine{
		mirror: mirror,
		client: client,
		logger: logger,
		stats:  stats,
		now:    time.Now,
	}
}

func credentials(s *model.RemoteServer) mailserver.Credentials {
	return mailserver.Credentials{
		Hostname: s.Hostname,
		APIKey:   s.APIKey,
		Endpoint: s.APIEndpoint,
	}
}

// resolveServer loads the server row and builds API credentials for it.
func (e *Engine) resolveServer(ctx context.Context, serverID string) (*model.RemoteServer, mailserver.Credentials, error) {
	server, err := e.mirror.GetServer(ctx, serverID)
	if err != nil {
		return nil, mailserver.Credentials{}, err
	}
	return server, credentials(server), nil
}

// runSync wraps one per-kind sync in a single-flight guard so concurrent
// duplicate invocations for the same (server, kind) collapse into one
// remote fetch, and records the outcome.
func (e *Engine) runSync(serverID string, kind Kind, fn func() (any, error)) (any, error) {
	start := time.Now()
	v, err, _ := e.flight.Do(serverID+"/"+string(kind), fn)
	e.stats.ObserveSync(string(kind), time.Since(start), err)
	if err != nil {
		e.logger.Error().Err(err).
			Str("server_id", serverID).
			Str("kind", string(kind)).
			Msg("resource sync failed")
		return nil, err
	}
	return v, nil
}
