package normalize

import (
	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/platform"
)

// BackupJobs splits the single remote backup config into up to two
// logical jobs: the system backup and the mail backup, one per populated
// key family. A family counts as populated when its target is set.
func BackupJobs(serverID string, cfg mailserver.BackupConfig) []model.BackupJob {
	var jobs []model.BackupJob

	if cfg.Target != "" {
		jobs = append(jobs, model.BackupJob{
			ID:            platform.NewID(),
			ServerID:      serverID,
			Name:          "System backup",
			BackupType:    model.BackupTypeSystem,
			Destination:   cfg.Target,
			Schedule:      cfg.Schedule,
			Status:        jobStatus(cfg.Status),
			RetentionDays: cfg.RetentionDays,
			EncryptionKey: cfg.EncryptionKey,
			LastRunAt:     cfg.LastRun,
			NextRunAt:     cfg.NextRun,
		})
	}

	if cfg.EmailTarget != "" {
		jobs = append(jobs, model.BackupJob{
			ID:            platform.NewID(),
			ServerID:      serverID,
			Name:          "Mail backup",
			BackupType:    model.BackupTypeMail,
			Destination:   cfg.EmailTarget,
			Schedule:      cfg.EmailSchedule,
			Status:        jobStatus(cfg.EmailStatus),
			RetentionDays: cfg.EmailRetentionDays,
			EncryptionKey: cfg.EmailEncryptionKey,
			LastRunAt:     cfg.EmailLastRun,
			NextRunAt:     cfg.EmailNextRun,
		})
	}

	return jobs
}

func jobStatus(status string) string {
	if status == "" {
		return "idle"
	}
	return status
}
