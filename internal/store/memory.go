package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/edvin/mailpanel/internal/model"
)

// Memory is an in-process mirror store with the same behavior as the
// Postgres store. It backs the engine tests and any deployment that
// does not need durable state.
type Memory struct {
	mu          sync.Mutex
	servers     map[string]model.RemoteServer
	dnsRecords  map[string][]model.DnsRecord
	mailboxes   map[string]model.Mailbox
	aliases     map[string]model.EmailAlias
	spamFilters map[string]model.SpamFilter
	backupJobs  map[string]model.BackupJob
	history     []model.BackupHistoryEntry
	metrics     []model.ServerMetricsEntry
}

func NewMemory() *Memory {
	return &Memory{
		servers:     make(map[string]model.RemoteServer),
		dnsRecords:  make(map[string][]model.DnsRecord),
		mailboxes:   make(map[string]model.Mailbox),
		aliases:     make(map[string]model.EmailAlias),
		spamFilters: make(map[string]model.SpamFilter),
		backupJobs:  make(map[string]model.BackupJob),
	}
}

// AddServer seeds a server row.
func (m *Memory) AddServer(s model.RemoteServer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.servers[s.ID] = s
}

func (m *Memory) GetServer(_ context.Context, id string) (*model.RemoteServer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.servers[id]
	if !ok {
		return nil, fmt.Errorf("server %s: %w", id, ErrNotFound)
	}
	return &s, nil
}

func (m *Memory) UpdateServerStatus(_ context.Context, id, status, version string, syncedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.servers[id]
	if !ok {
		return fmt.Errorf("server %s: %w", id, ErrNotFound)
	}
	s.Status = status
	s.Version = version
	s.LastSyncedAt = &syncedAt
	m.servers[id] = s
	return nil
}

// --- DNS ---

func (m *Memory) ReplaceDNSRecords(_ context.Context, serverID string, records []model.DnsRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dnsRecords[serverID] = append([]model.DnsRecord(nil), records...)
	return nil
}

func (m *Memory) InsertDNSRecord(_ context.Context, rec *model.DnsRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dnsRecords[rec.ServerID] = append(m.dnsRecords[rec.ServerID], *rec)
	return nil
}

func (m *Memory) GetDNSRecord(_ context.Context, id string) (*model.DnsRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, records := range m.dnsRecords {
		for _, rec := range records {
			if rec.ID == id {
				return &rec, nil
			}
		}
	}
	return nil, fmt.Errorf("dns record %s: %w", id, ErrNotFound)
}

func (m *Memory) DeleteDNSRecord(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for serverID, records := range m.dnsRecords {
		for i, rec := range records {
			if rec.ID == id {
				m.dnsRecords[serverID] = append(records[:i], records[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// DNSRecordsFor returns the mirrored DNS records for a server.
func (m *Memory) DNSRecordsFor(serverID string) []model.DnsRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.DnsRecord(nil), m.dnsRecords[serverID]...)
}

// --- Mailboxes ---

func (m *Memory) ReplaceMailboxes(_ context.Context, serverID string, mailboxes []model.Mailbox) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, mb := range m.mailboxes {
		if mb.ServerID == serverID {
			delete(m.mailboxes, id)
		}
	}
	for _, mb := range mailboxes {
		m.mailboxes[mb.ID] = mb
	}
	return nil
}

func (m *Memory) ListMailboxes(_ context.Context, serverID string) ([]model.Mailbox, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Mailbox
	for _, mb := range m.mailboxes {
		if mb.ServerID == serverID {
			out = append(out, mb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *Memory) GetMailbox(_ context.Context, id string) (*model.Mailbox, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mb, ok := m.mailboxes[id]
	if !ok {
		return nil, fmt.Errorf("mailbox %s: %w", id, ErrNotFound)
	}
	return &mb, nil
}

func (m *Memory) GetMailboxByEmail(_ context.Context, serverID, email string) (*model.Mailbox, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mb := range m.mailboxes {
		if mb.ServerID == serverID && mb.Email == email {
			return &mb, nil
		}
	}
	return nil, fmt.Errorf("mailbox %s: %w", email, ErrNotFound)
}

func (m *Memory) InsertMailbox(_ context.Context, mb *model.Mailbox) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mailboxes[mb.ID] = *mb
	return nil
}

func (m *Memory) DeleteMailbox(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.mailboxes, id)
	return nil
}

// --- Aliases ---

func (m *Memory) ReplaceAliases(_ context.Context, serverID string, aliases []model.EmailAlias) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.aliases {
		if a.ServerID == serverID {
			delete(m.aliases, id)
		}
	}
	for _, a := range aliases {
		m.aliases[a.ID] = a
	}
	return nil
}

func (m *Memory) GetAlias(_ context.Context, id string) (*model.EmailAlias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.aliases[id]
	if !ok {
		return nil, fmt.Errorf("alias %s: %w", id, ErrNotFound)
	}
	return &a, nil
}

func (m *Memory) InsertAlias(_ context.Context, a *model.EmailAlias) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aliases[a.ID] = *a
	return nil
}

func (m *Memory) DeleteAlias(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.aliases, id)
	return nil
}

// AliasesFor returns the mirrored aliases for a server, sorted by source
// then destination.
func (m *Memory) AliasesFor(serverID string) []model.EmailAlias {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.EmailAlias
	for _, a := range m.aliases {
		if a.ServerID == serverID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceEmail != out[j].SourceEmail {
			return out[i].SourceEmail < out[j].SourceEmail
		}
		return out[i].DestinationEmail < out[j].DestinationEmail
	})
	return out
}

// --- Spam filters ---

func (m *Memory) ReplaceSpamFilters(_ context.Context, serverID string, filters []model.SpamFilter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, f := range m.spamFilters {
		if f.ServerID == serverID {
			delete(m.spamFilters, id)
		}
	}
	for _, f := range filters {
		m.spamFilters[f.ID] = f
	}
	return nil
}

func (m *Memory) GetSpamFilter(_ context.Context, id string) (*model.SpamFilter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.spamFilters[id]
	if !ok {
		return nil, fmt.Errorf("spam filter %s: %w", id, ErrNotFound)
	}
	return &f, nil
}

func (m *Memory) InsertSpamFilter(_ context.Context, f *model.SpamFilter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spamFilters[f.ID] = *f
	return nil
}

func (m *Memory) DeleteSpamFilter(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.spamFilters, id)
	return nil
}

// SpamFiltersFor returns the mirrored spam filters for a server, sorted
// by rule type then pattern.
func (m *Memory) SpamFiltersFor(serverID string) []model.SpamFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SpamFilter
	for _, f := range m.spamFilters {
		if f.ServerID == serverID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RuleType != out[j].RuleType {
			return out[i].RuleType < out[j].RuleType
		}
		return out[i].Pattern < out[j].Pattern
	})
	return out
}

// --- Backup jobs ---

func (m *Memory) ReplaceBackupJobs(_ context.Context, serverID string, jobs []model.BackupJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, j := range m.backupJobs {
		if j.ServerID == serverID {
			delete(m.backupJobs, id)
		}
	}
	for _, j := range jobs {
		m.backupJobs[j.ID] = j
	}
	return nil
}

func (m *Memory) GetBackupJob(_ context.Context, id string) (*model.BackupJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.backupJobs[id]
	if !ok {
		return nil, fmt.Errorf("backup job %s: %w", id, ErrNotFound)
	}
	return &j, nil
}

func (m *Memory) InsertBackupJob(_ context.Context, j *model.BackupJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backupJobs[j.ID] = *j
	return nil
}

func (m *Memory) DeleteBackupJob(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.backupJobs, id)
	return nil
}

func (m *Memory) UpdateBackupJobStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.backupJobs[id]
	if !ok {
		return fmt.Errorf("backup job %s: %w", id, ErrNotFound)
	}
	j.Status = status
	m.backupJobs[id] = j
	return nil
}

func (m *Memory) InsertBackupHistory(_ context.Context, e *model.BackupHistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, *e)
	return nil
}

// BackupJobsFor returns the mirrored backup jobs for a server, sorted by
// backup type.
func (m *Memory) BackupJobsFor(serverID string) []model.BackupJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.BackupJob
	for _, j := range m.backupJobs {
		if j.ServerID == serverID {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BackupType < out[j].BackupType })
	return out
}

// History returns all backup history entries in insertion order.
func (m *Memory) History() []model.BackupHistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.BackupHistoryEntry(nil), m.history...)
}

// --- Metrics ---

func (m *Memory) InsertMetrics(_ context.Context, e *model.ServerMetricsEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, *e)
	return nil
}

// Metrics returns all captured metrics entries in insertion order.
func (m *Memory) Metrics() []model.ServerMetricsEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ServerMetricsEntry(nil), m.metrics...)
}
