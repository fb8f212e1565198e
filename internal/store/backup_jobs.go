package store

import (
	"context"
	"fmt"

	"github.com/edvin/mailpanel/internal/model"
)

const backupJobColumns = `id, server_id, name, backup_type, destination, schedule, status, retention_days, encryption_key, last_run_at, next_run_at`

func (p *Postgres) ReplaceBackupJobs(ctx context.Context, serverID string, jobs []model.BackupJob) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace backup jobs: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM backup_jobs WHERE server_id = $1`, serverID); err != nil {
		return fmt.Errorf("clear backup jobs for server %s: %w", serverID, err)
	}
	for _, j := range jobs {
		_, err := tx.Exec(ctx,
			`INSERT INTO backup_jobs (`+backupJobColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			j.ID, j.ServerID, j.Name, j.BackupType, j.Destination, j.Schedule, j.Status, j.RetentionDays, j.EncryptionKey, j.LastRunAt, j.NextRunAt,
		)
		if err != nil {
			return fmt.Errorf("insert backup job %s: %w", j.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace backup jobs: %w", err)
	}
	return nil
}

func (p *Postgres) GetBackupJob(ctx context.Context, id string) (*model.BackupJob, error) {
	var j model.BackupJob
	err := p.db.QueryRow(ctx,
		`SELECT `+backupJobColumns+` FROM backup_jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.ServerID, &j.Name, &j.BackupType, &j.Destination, &j.Schedule, &j.Status, &j.RetentionDays, &j.EncryptionKey, &j.LastRunAt, &j.NextRunAt)
	if err != nil {
		return nil, wrapNotFound(err, "backup job", id)
	}
	return &j, nil
}

func (p *Postgres) InsertBackupJob(ctx context.Context, j *model.BackupJob) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO backup_jobs (`+backupJobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.ID, j.ServerID, j.Name, j.BackupType, j.Destination, j.Schedule, j.Status, j.RetentionDays, j.EncryptionKey, j.LastRunAt, j.NextRunAt,
	)
	if err != nil {
		return fmt.Errorf("insert backup job %s: %w", j.Name, err)
	}
	return nil
}

func (p *Postgres) DeleteBackupJob(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM backup_jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete backup job %s: %w", id, err)
	}
	return nil
}

func (p *Postgres) UpdateBackupJobStatus(ctx context.Context, id, status string) error {
	tag, err := p.db.Exec(ctx,
		`UPDATE backup_jobs SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update backup job %s status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("backup job %s: %w", id, ErrNotFound)
	}
	return nil
}

// InsertBackupHistory appends one run record; history rows are never
// updated afterwards.
func (p *Postgres) InsertBackupHistory(ctx context.Context, e *model.BackupHistoryEntry) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO backup_history (id, job_id, started_at, completed_at, status, size_bytes, error)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.JobID, e.StartedAt, e.CompletedAt, e.Status, e.SizeBytes, e.Error,
	)
	if err != nil {
		return fmt.Errorf("insert backup history for job %s: %w", e.JobID, err)
	}
	return nil
}
