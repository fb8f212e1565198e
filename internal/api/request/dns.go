package request

type CreateDNSRecord struct {
	Zone       string `json:"zone" validate:"required"`
	RecordType string `json:"record_type" validate:"required,oneof=A AAAA CNAME MX TXT SRV NS"`
	Name       string `json:"name" validate:"required"`
	Value      string `json:"value" validate:"required"`
	Priority   *int   `json:"priority"`
	TTL        int    `json:"ttl" validate:"gte=0"`
}
