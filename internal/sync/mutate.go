package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/platform"
	"github.com/edvin/mailpanel/internal/store"
)

// Mutating operations apply the change to the remote server first and
// touch the mirror only after the remote call succeeded. A remote
// failure therefore never leaves a phantom row behind; at worst the
// mirror lags until the next sync reconciles it.

// CreateMailbox provisions an account on the remote server and mirrors
// it locally.
func (e *Engine) CreateMailbox(ctx context.Context, serverID, email, password, name string) (*model.Mailbox, error) {
	_, creds, err := e.resolveServer(ctx, serverID)
	if err != nil {
		return nil, err
	}
	if err := e.client.AddMailUser(ctx, creds, email, password, name); err != nil {
		return nil, err
	}

	mb := &model.Mailbox{
		ID:       platform.NewID(),
		ServerID: serverID,
		Email:    email,
		Name:     name,
		Status:   model.MailboxStatusActive,
	}
	if err := e.mirror.InsertMailbox(ctx, mb); err != nil {
		return nil, err
	}
	e.logger.Info().Str("server_id", serverID).Str("email", email).Msg("mailbox created")
	return mb, nil
}

// DeleteMailbox removes the account remotely, then drops the mirror row.
func (e *Engine) DeleteMailbox(ctx context.Context, mailboxID string) error {
	mb, err := e.mirror.GetMailbox(ctx, mailboxID)
	if err != nil {
		return err
	}
	_, creds, err := e.resolveServer(ctx, mb.ServerID)
	if err != nil {
		return err
	}
	if err := e.client.RemoveMailUser(ctx, creds, mb.Email); err != nil {
		return err
	}
	if err := e.mirror.DeleteMailbox(ctx, mailboxID); err != nil {
		return err
	}
	e.logger.Info().Str("server_id", mb.ServerID).Str("email", mb.Email).Msg("mailbox deleted")
	return nil
}

// ChangeMailboxPassword updates the account password on the remote
// server. Passwords are never mirrored, so there is no local write.
func (e *Engine) ChangeMailboxPassword(ctx context.Context, mailboxID, password string) error {
	mb, err := e.mirror.GetMailbox(ctx, mailboxID)
	if err != nil {
		return err
	}
	_, creds, err := e.resolveServer(ctx, mb.ServerID)
	if err != nil {
		return err
	}
	return e.client.SetMailUserPassword(ctx, creds, mb.Email, password)
}

// CreateAlias adds a forwarding pair remotely and mirrors it. The
// mailbox reference is resolved against the mirror; an unknown
// destination simply leaves it unset.
func (e *Engine) CreateAlias(ctx context.Context, serverID, source, destination string) (*model.EmailAlias, error) {
	_, creds, err := e.resolveServer(ctx, serverID)
	if err != nil {
		return nil, err
	}
	if err := e.client.AddMailAlias(ctx, creds, source, destination); err != nil {
		return nil, err
	}

	alias := &model.EmailAlias{
		ID:               platform.NewID(),
		ServerID:         serverID,
		SourceEmail:      source,
		DestinationEmail: destination,
		IsActive:         true,
	}
	mb, err := e.mirror.GetMailboxByEmail(ctx, serverID, destination)
	switch {
	case err == nil:
		alias.MailboxID = &mb.ID
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	if err := e.mirror.InsertAlias(ctx, alias); err != nil {
		return nil, err
	}
	e.logger.Info().Str("server_id", serverID).Str("source", source).Msg("alias created")
	return alias, nil
}

// DeleteAlias removes the forwarding pair remotely, then drops the
// mirror row.
func (e *Engine) DeleteAlias(ctx context.Context, aliasID string) error {
	alias, err := e.mirror.GetAlias(ctx, aliasID)
	if err != nil {
		return err
	}
	_, creds, err := e.resolveServer(ctx, alias.ServerID)
	if err != nil {
		return err
	}
	if err := e.client.RemoveMailAlias(ctx, creds, alias.SourceEmail, alias.DestinationEmail); err != nil {
		return err
	}
	return e.mirror.DeleteAlias(ctx, aliasID)
}

// SpamFilterInput describes a new spam filter rule. Only threshold,
// whitelist and blacklist rules have a remote representation; other
// rule types are rejected.
type SpamFilterInput struct {
	RuleType string
	Pattern  string
	Score    *float64
}

// CreateSpamFilter applies the rule remotely and mirrors it.
func (e *Engine) CreateSpamFilter(ctx context.Context, serverID string, in SpamFilterInput) (*model.SpamFilter, error) {
	_, creds, err := e.resolveServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	filter := &model.SpamFilter{
		ID:       platform.NewID(),
		ServerID: serverID,
		RuleType: in.RuleType,
		Pattern:  in.Pattern,
		IsActive: true,
	}

	switch in.RuleType {
	case model.RuleTypeThreshold:
		if in.Score == nil {
			return nil, fmt.Errorf("threshold rule requires a score")
		}
		if err := e.client.SetSpamThreshold(ctx, creds, *in.Score); err != nil {
			return nil, err
		}
		filter.Name = "Spam threshold"
		filter.Pattern = "*"
		filter.Action = "tag"
		filter.Score = in.Score
	case model.RuleTypeWhitelist:
		if err := e.client.AddSpamWhitelist(ctx, creds, in.Pattern); err != nil {
			return nil, err
		}
		filter.Name = "Whitelist " + in.Pattern
		filter.Action = "accept"
	case model.RuleTypeBlacklist:
		if err := e.client.AddSpamBlacklist(ctx, creds, in.Pattern); err != nil {
			return nil, err
		}
		filter.Name = "Blacklist " + in.Pattern
		filter.Action = "reject"
	default:
		return nil, fmt.Errorf("rule type %q has no remote representation", in.RuleType)
	}

	if err := e.mirror.InsertSpamFilter(ctx, filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// DeleteSpamFilter removes a whitelist or blacklist entry remotely,
// then drops the mirror row. The threshold rule cannot be deleted, only
// replaced with a new score.
func (e *Engine) DeleteSpamFilter(ctx context.Context, filterID string) error {
	filter, err := e.mirror.GetSpamFilter(ctx, filterID)
	if err != nil {
		return err
	}
	_, creds, err := e.resolveServer(ctx, filter.ServerID)
	if err != nil {
		return err
	}

	switch filter.RuleType {
	case model.RuleTypeWhitelist:
		if err := e.client.RemoveSpamWhitelist(ctx, creds, filter.Pattern); err != nil {
			return err
		}
	case model.RuleTypeBlacklist:
		if err := e.client.RemoveSpamBlacklist(ctx, creds, filter.Pattern); err != nil {
			return err
		}
	default:
		return fmt.Errorf("rule type %q cannot be deleted", filter.RuleType)
	}
	return e.mirror.DeleteSpamFilter(ctx, filterID)
}

// BackupJobInput describes a new backup job.
type BackupJobInput struct {
	Name          string
	BackupType    string
	Destination   string
	Schedule      string
	RetentionDays int
}

// CreateBackupJob writes the matching remote config key family, then
// mirrors the job.
func (e *Engine) CreateBackupJob(ctx context.Context, serverID string, in BackupJobInput) (*model.BackupJob, error) {
	_, creds, err := e.resolveServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	settings, err := backupSettings(in)
	if err != nil {
		return nil, err
	}
	if err := e.client.SetBackupConfig(ctx, creds, settings); err != nil {
		return nil, err
	}

	job := &model.BackupJob{
		ID:            platform.NewID(),
		ServerID:      serverID,
		Name:          in.Name,
		BackupType:    in.BackupType,
		Destination:   in.Destination,
		Schedule:      in.Schedule,
		Status:        "idle",
		RetentionDays: in.RetentionDays,
	}
	if err := e.mirror.InsertBackupJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// backupSettings maps a job onto the remote config key family for its
// backup type.
func backupSettings(in BackupJobInput) (map[string]any, error) {
	switch in.BackupType {
	case model.BackupTypeSystem:
		return map[string]any{
			"target":         in.Destination,
			"schedule":       in.Schedule,
			"retention_days": in.RetentionDays,
		}, nil
	case model.BackupTypeMail:
		return map[string]any{
			"email_target":         in.Destination,
			"email_schedule":       in.Schedule,
			"email_retention_days": in.RetentionDays,
		}, nil
	default:
		return nil, fmt.Errorf("unknown backup type %q", in.BackupType)
	}
}

// DeleteBackupJob disables the backup remotely, then drops the mirror
// row.
func (e *Engine) DeleteBackupJob(ctx context.Context, jobID string) error {
	job, err := e.mirror.GetBackupJob(ctx, jobID)
	if err != nil {
		return err
	}
	_, creds, err := e.resolveServer(ctx, job.ServerID)
	if err != nil {
		return err
	}
	if err := e.client.ToggleBackup(ctx, creds, job.BackupType, false); err != nil {
		return err
	}
	return e.mirror.DeleteBackupJob(ctx, jobID)
}

// RunBackup triggers an immediate backup run. On success the job is
// marked running and an open history entry is recorded. On remote
// failure a failed history entry is recorded and the job status is left
// untouched.
func (e *Engine) RunBackup(ctx context.Context, jobID string) (*model.BackupHistoryEntry, error) {
	job, err := e.mirror.GetBackupJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	_, creds, err := e.resolveServer(ctx, job.ServerID)
	if err != nil {
		return nil, err
	}

	startedAt := e.now()
	if remoteErr := e.client.RunBackup(ctx, creds, job.BackupType); remoteErr != nil {
		msg := remoteErr.Error()
		entry := &model.BackupHistoryEntry{
			ID:          platform.NewID(),
			JobID:       jobID,
			StartedAt:   startedAt,
			CompletedAt: &startedAt,
			Status:      model.BackupStatusFailed,
			Error:       &msg,
		}
		if err := e.mirror.InsertBackupHistory(ctx, entry); err != nil {
			e.logger.Error().Err(err).Str("job_id", jobID).Msg("record failed backup run")
		}
		return nil, remoteErr
	}

	entry := &model.BackupHistoryEntry{
		ID:        platform.NewID(),
		JobID:     jobID,
		StartedAt: startedAt,
		Status:    model.BackupStatusRunning,
	}
	if err := e.mirror.InsertBackupHistory(ctx, entry); err != nil {
		return nil, err
	}
	if err := e.mirror.UpdateBackupJobStatus(ctx, jobID, model.BackupStatusRunning); err != nil {
		return nil, err
	}
	e.logger.Info().Str("job_id", jobID).Str("type", job.BackupType).Msg("backup started")
	return entry, nil
}

// DNSRecordInput describes a new DNS record within a zone.
type DNSRecordInput struct {
	Zone       string
	RecordType string
	Name       string
	Value      string
	Priority   *int
	TTL        int
}

// CreateDNSRecord adds the record remotely and mirrors it.
func (e *Engine) CreateDNSRecord(ctx context.Context, serverID string, in DNSRecordInput) (*model.DnsRecord, error) {
	_, creds, err := e.resolveServer(ctx, serverID)
	if err != nil {
		return nil, err
	}
	entry := mailserver.ZoneEntry{
		Type:     in.RecordType,
		Name:     in.Name,
		Value:    in.Value,
		Priority: in.Priority,
		TTL:      in.TTL,
	}
	if err := e.client.AddDNSRecord(ctx, creds, in.Zone, entry); err != nil {
		return nil, err
	}

	rec := &model.DnsRecord{
		ID:         platform.NewID(),
		ServerID:   serverID,
		RecordType: in.RecordType,
		Name:       in.Name,
		Value:      in.Value,
		TTL:        in.TTL,
		IsManaged:  true,
	}
	if in.RecordType == "MX" || in.RecordType == "SRV" {
		rec.Priority = in.Priority
	}
	if err := e.mirror.InsertDNSRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteDNSRecord removes the record remotely, then drops the mirror
// row.
func (e *Engine) DeleteDNSRecord(ctx context.Context, recordID string) error {
	rec, err := e.mirror.GetDNSRecord(ctx, recordID)
	if err != nil {
		return err
	}
	_, creds, err := e.resolveServer(ctx, rec.ServerID)
	if err != nil {
		return err
	}
	if err := e.client.RemoveDNSRecord(ctx, creds, rec.RecordType, rec.Name, rec.Value); err != nil {
		return err
	}
	return e.mirror.DeleteDNSRecord(ctx, recordID)
}
