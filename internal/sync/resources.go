package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/normalize"
	"github.com/edvin/mailpanel/internal/platform"
)

// SyncDNS replaces the mirrored DNS records with the remote zone dump.
func (e *Engine) SyncDNS(ctx context.Context, serverID string) ([]model.DnsRecord, error) {
	v, err := e.runSync(serverID, KindDNS, func() (any, error) {
		_, creds, err := e.resolveServer(ctx, serverID)
		if err != nil {
			return nil, err
		}
		zones, err := e.client.DNSZones(ctx, creds)
		if err != nil {
			return nil, err
		}
		records := normalize.DNSRecords(serverID, zones)
		if err := e.mirror.ReplaceDNSRecords(ctx, serverID, records); err != nil {
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.DnsRecord), nil
}

// SyncMailboxes replaces the mirrored mailboxes with the remote account
// dump.
func (e *Engine) SyncMailboxes(ctx context.Context, serverID string) ([]model.Mailbox, error) {
	v, err := e.runSync(serverID, KindMailboxes, func() (any, error) {
		_, creds, err := e.resolveServer(ctx, serverID)
		if err != nil {
			return nil, err
		}
		dump, err := e.client.MailUsers(ctx, creds)
		if err != nil {
			return nil, err
		}
		mailboxes := normalize.Mailboxes(serverID, dump)
		if err := e.mirror.ReplaceMailboxes(ctx, serverID, mailboxes); err != nil {
			return nil, err
		}
		return mailboxes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Mailbox), nil
}

// SyncAliases replaces the mirrored aliases with the remote alias dump.
// Mailbox references resolve against the mailboxes currently in the
// mirror, so running SyncMailboxes first gives the best linkage.
func (e *Engine) SyncAliases(ctx context.Context, serverID string) ([]model.EmailAlias, error) {
	v, err := e.runSync(serverID, KindAliases, func() (any, error) {
		_, creds, err := e.resolveServer(ctx, serverID)
		if err != nil {
			return nil, err
		}
		dump, err := e.client.MailAliases(ctx, creds)
		if err != nil {
			return nil, err
		}
		mailboxes, err := e.mirror.ListMailboxes(ctx, serverID)
		if err != nil {
			return nil, err
		}
		aliases := normalize.Aliases(serverID, dump, mailboxes)
		if err := e.mirror.ReplaceAliases(ctx, serverID, aliases); err != nil {
			return nil, err
		}
		return aliases, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.EmailAlias), nil
}

// SyncSpamFilters replaces the mirrored spam filters with rows derived
// from the remote spam settings.
func (e *Engine) SyncSpamFilters(ctx context.Context, serverID string) ([]model.SpamFilter, error) {
	v, err := e.runSync(serverID, KindSpamFilters, func() (any, error) {
		_, creds, err := e.resolveServer(ctx, serverID)
		if err != nil {
			return nil, err
		}
		settings, err := e.client.SpamSettings(ctx, creds)
		if err != nil {
			return nil, err
		}
		filters := normalize.SpamFilters(serverID, *settings)
		if err := e.mirror.ReplaceSpamFilters(ctx, serverID, filters); err != nil {
			return nil, err
		}
		return filters, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.SpamFilter), nil
}

// SyncBackups replaces the mirrored backup jobs with jobs derived from
// the remote backup config.
func (e *Engine) SyncBackups(ctx context.Context, serverID string) ([]model.BackupJob, error) {
	v, err := e.runSync(serverID, KindBackups, func() (any, error) {
		_, creds, err := e.resolveServer(ctx, serverID)
		if err != nil {
			return nil, err
		}
		cfg, err := e.client.BackupConfig(ctx, creds)
		if err != nil {
			return nil, err
		}
		jobs := normalize.BackupJobs(serverID, *cfg)
		if err := e.mirror.ReplaceBackupJobs(ctx, serverID, jobs); err != nil {
			return nil, err
		}
		return jobs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.BackupJob), nil
}

// CaptureMetrics fetches the system status, memory, disk and queue
// endpoints and appends one entry to the metrics time series. All four
// payloads are kept verbatim in the entry for later inspection.
func (e *Engine) CaptureMetrics(ctx context.Context, serverID string) (*model.ServerMetricsEntry, error) {
	v, err := e.runSync(serverID, KindMetrics, func() (any, error) {
		_, creds, err := e.resolveServer(ctx, serverID)
		if err != nil {
			return nil, err
		}

		status, err := e.client.Status(ctx, creds)
		if err != nil {
			return nil, err
		}
		memory, err := e.client.MemoryUsage(ctx, creds)
		if err != nil {
			return nil, err
		}
		disk, err := e.client.DiskUsage(ctx, creds)
		if err != nil {
			return nil, err
		}
		queue, err := e.client.MailQueue(ctx, creds)
		if err != nil {
			return nil, err
		}

		entry := &model.ServerMetricsEntry{
			ID:         platform.NewID(),
			ServerID:   serverID,
			CapturedAt: e.now(),
		}
		if status.CPU != nil {
			cpu := float64(*status.CPU)
			entry.CPUUsage = &cpu
		}
		mem := normalize.UsagePercent(memory.Used, memory.Total)
		entry.MemoryUsage = &mem
		dsk := normalize.UsagePercent(disk.Used, disk.Total)
		entry.DiskUsage = &dsk
		entry.QueueSize = &queue.Size
		entry.ActiveConnections = queue.ActiveConnections

		raw, err := json.Marshal(map[string]any{
			"status": status,
			"memory": memory,
			"disk":   disk,
			"queue":  queue,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal raw metrics: %w", err)
		}
		entry.RawMetrics = raw

		if err := e.mirror.InsertMetrics(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.ServerMetricsEntry), nil
}
