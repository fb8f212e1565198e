package store

import (
	"context"
	"fmt"

	"github.com/edvin/mailpanel/internal/model"
)

// ReplaceDNSRecords swaps the full DNS record set for a server in one
// transaction, so readers never observe a half-replaced collection.
func (p *Postgres) ReplaceDNSRecords(ctx context.Context, serverID string, records []model.DnsRecord) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace dns records: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM dns_records WHERE server_id = $1`, serverID); err != nil {
		return fmt.Errorf("clear dns records for server %s: %w", serverID, err)
	}
	for _, rec := range records {
		_, err := tx.Exec(ctx,
			`INSERT INTO dns_records (id, server_id, record_type, name, value, priority, ttl, is_managed)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rec.ID, rec.ServerID, rec.RecordType, rec.Name, rec.Value, rec.Priority, rec.TTL, rec.IsManaged,
		)
		if err != nil {
			return fmt.Errorf("insert dns record %s %s: %w", rec.RecordType, rec.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace dns records: %w", err)
	}
	return nil
}

func (p *Postgres) InsertDNSRecord(ctx context.Context, rec *model.DnsRecord) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO dns_records (id, server_id, record_type, name, value, priority, ttl, is_managed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.ServerID, rec.RecordType, rec.Name, rec.Value, rec.Priority, rec.TTL, rec.IsManaged,
	)
	if err != nil {
		return fmt.Errorf("insert dns record: %w", err)
	}
	return nil
}

func (p *Postgres) GetDNSRecord(ctx context.Context, id string) (*model.DnsRecord, error) {
	var rec model.DnsRecord
	err := p.db.QueryRow(ctx,
		`SELECT id, server_id, record_type, name, value, priority, ttl, is_managed
		 FROM dns_records WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.ServerID, &rec.RecordType, &rec.Name, &rec.Value, &rec.Priority, &rec.TTL, &rec.IsManaged)
	if err != nil {
		return nil, wrapNotFound(err, "dns record", id)
	}
	return &rec, nil
}

func (p *Postgres) DeleteDNSRecord(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM dns_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dns record %s: %w", id, err)
	}
	return nil
}
