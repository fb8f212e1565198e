package request

// Sync optionally narrows a full-server sync. Empty kinds means every
// resource kind; a null concurrent field keeps the configured default.
type Sync struct {
	Kinds      []string `json:"kinds" validate:"omitempty,dive,oneof=dns mailboxes aliases spam_filters backups metrics"`
	Concurrent *bool    `json:"concurrent"`
}
