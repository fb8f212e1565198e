// Package normalize converts the remote admin API's ad hoc response
// shapes into canonical mirror records. Every function here is a pure
// transformation; fetching and storing happen elsewhere.
package normalize

import (
	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/model"
	"github.com/edvin/mailpanel/internal/platform"
)

// DNSRecords flattens a zone dump into one record per zone entry.
// Priority is meaningful only for MX and SRV records and is dropped for
// every other type.
func DNSRecords(serverID string, zones []mailserver.Zone) []model.DnsRecord {
	var records []model.DnsRecord
	for _, zone := range zones {
		for _, entry := range zone.Records {
			rec := model.DnsRecord{
				ID:         platform.NewID(),
				ServerID:   serverID,
				RecordType: entry.Type,
				Name:       entry.Name,
				Value:      entry.Value,
				TTL:        entry.TTL,
				IsManaged:  true,
			}
			if entry.Type == "MX" || entry.Type == "SRV" {
				rec.Priority = entry.Priority
			}
			records = append(records, rec)
		}
	}
	return records
}
