package normalize

import (
	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/platform"
)

// SpamFilters maps the spam settings blob onto filter rows: exactly one
// synthetic threshold row carrying the score, plus one row per whitelist
// and blacklist address.
func SpamFilters(serverID string, settings mailserver.SpamSettings) []model.SpamFilter {
	score := float64(settings.SpamThreshold)
	filters := []model.SpamFilter{{
		ID:       platform.NewID(),
		ServerID: serverID,
		Name:     "Spam threshold",
		RuleType: model.RuleTypeThreshold,
		Pattern:  "*",
		Action:   "tag",
		IsActive: true,
		Score:    &score,
	}}

	for _, address := range settings.WhitelistAddresses {
		filters = append(filters, model.SpamFilter{
			ID:       platform.NewID(),
			ServerID: serverID,
			Name:     "Whitelist " + address,
			RuleType: model.RuleTypeWhitelist,
			Pattern:  address,
			Action:   "accept",
			IsActive: true,
		})
	}
	for _, address := range settings.BlacklistAddresses {
		filters = append(filters, model.SpamFilter{
			ID:       platform.NewID(),
			ServerID: serverID,
			Name:     "Blacklist " + address,
			RuleType: model.RuleTypeBlacklist,
			Pattern:  address,
			Action:   "reject",
			IsActive: true,
		})
	}
	return filters
}
