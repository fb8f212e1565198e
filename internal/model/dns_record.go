package model

type DnsRecord struct {
	ID         string `json:"id" db:"id"`
	ServerID   string `json:"server_id" db:"server_id"`
	RecordType string `json:"record_type" db:"record_type"`
	Name       string `json:"name" db:"name"`
	Value      string `json:"value" db:"value"`
	Priority   *int   `json:"priority,omitempty" db:"priority"`
	TTL        int    `json:"ttl" db:"ttl"`
	IsManaged  bool   `json:"is_managed" db:"is_managed"`
}
