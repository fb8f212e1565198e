package normalize

import (
	"sort"

	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/platform"
)

// Aliases expands the source-keyed alias dump into one row per
// (source, destination) pair. The mailbox reference is resolved against
// the already-mirrored mailbox set for the same server; destinations
// with no matching mailbox get a nil reference.
func Aliases(serverID string, dump mailserver.AliasDump, mailboxes []model.Mailbox) []model.EmailAlias {
	byEmail := make(map[string]string, len(mailboxes))
	for _, mb := range mailboxes {
		byEmail[mb.Email] = mb.ID
	}

	sources := make([]string, 0, len(dump))
	for source := range dump {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var aliases []model.EmailAlias
	for _, source := range sources {
		details := dump[source]

		active := true
		if details.IsActive != nil {
			active = *details.IsActive
		}

		for _, destination := range details.ForwardTo {
			alias := model.EmailAlias{
				ID:               platform.NewID(),
				ServerID:         serverID,
				SourceEmail:      source,
				DestinationEmail: destination,
				IsActive:         active,
				ExpiresAt:        details.ExpiresAt,
			}
			if id, ok := byEmail[destination]; ok {
				alias.MailboxID = &id
			}
			aliases = append(aliases, alias)
		}
	}
	return aliases
}
