package normalize

import (
	"sort"
	"strings"

	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/platform"
)

// Mailboxes converts the address-keyed mail user dump into mailbox rows,
// sorted by email for deterministic output. Missing display names fall
// back to the local part of the address, missing status to "active".
func Mailboxes(serverID string, dump mailserver.MailboxDump) []model.Mailbox {
	emails := make([]string, 0, len(dump))
	for email := range dump {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	boxes := make([]model.Mailbox, 0, len(emails))
	for _, email := range emails {
		details := dump[email]

		name := details.Name
		if name == "" {
			name = localPart(email)
		}
		status := details.Status
		if status == "" {
			status = model.MailboxStatusActive
		}

		boxes = append(boxes, model.Mailbox{
			ID:           platform.NewID(),
			ServerID:     serverID,
			Email:        email,
			Name:         name,
			Status:       status,
			StorageUsed:  details.StorageUsed,
			StorageLimit: details.StorageLimit,
			LastLogin:    details.LastLogin,
		})
	}
	return boxes
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
