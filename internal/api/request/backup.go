package request

type CreateBackupJob struct {
	Name          string `json:"name" validate:"required"`
	BackupType    string `json:"backup_type" validate:"required,oneof=system mail"`
	Destination   string `json:"destination" validate:"required"`
	Schedule      string `json:"schedule"`
	RetentionDays int    `json:"retention_days" validate:"gte=0"`
}
