package model

import "time"

// EmailAlias mirrors a single source -> destination forwarding pair.
// MailboxID is a weak reference: it is set only when the destination
// address resolved to a mirrored mailbox on the same server.
type EmailAlias struct {
	ID               string     `json:"id" db:"id"`
	ServerID         string     `json:"server_id" db:"server_id"`
	MailboxID        *string    `json:"mailbox_id,omitempty" db:"mailbox_id"`
	SourceEmail      string     `json:"source_email" db:"source_email"`
	DestinationEmail string     `json:"destination_email" db:"destination_email"`
	IsActive         bool       `json:"is_active" db:"is_active"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty" db:"expires_at"`
}
