package store

import (
	"context"
	"fmt"

	"github.com/edvin/mailpanel/internal/model"
)

const spamFilterColumns = `id, server_id, name, rule_type, pattern, action, is_active, description, score`

func (p *Postgres) ReplaceSpamFilters(ctx context.Context, serverID string, filters []model.SpamFilter) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace spam filters: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM spam_filters WHERE server_id = $1`, serverID); err != nil {
		return fmt.Errorf("clear spam filters for server %s: %w", serverID, err)
	}
	for _, f := range filters {
		_, err := tx.Exec(ctx,
			`INSERT INTO spam_filters (`+spamFilterColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			f.ID, f.ServerID, f.Name, f.RuleType, f.Pattern, f.Action, f.IsActive, f.Description, f.Score,
		)
		if err != nil {
			return fmt.Errorf("insert spam filter %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace spam filters: %w", err)
	}
	return nil
}

func (p *Postgres) GetSpamFilter(ctx context.Context, id string) (*model.SpamFilter, error) {
	var f model.SpamFilter
	err := p.db.QueryRow(ctx,
		`SELECT `+spamFilterColumns+` FROM spam_filters WHERE id = $1`, id,
	).Scan(&f.ID, &f.ServerID, &f.Name, &f.RuleType, &f.Pattern, &f.Action, &f.IsActive, &f.Description, &f.Score)
	if err != nil {
		return nil, wrapNotFound(err, "spam filter", id)
	}
	return &f, nil
}

func (p *Postgres) InsertSpamFilter(ctx context.Context, f *model.SpamFilter) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO spam_filters (`+spamFilterColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		f.ID, f.ServerID, f.Name, f.RuleType, f.Pattern, f.Action, f.IsActive, f.Description, f.Score,
	)
	if err != nil {
		return fmt.Errorf("insert spam filter %s: %w", f.Name, err)
	}
	return nil
}

func (p *Postgres) DeleteSpamFilter(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM spam_filters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete spam filter %s: %w", id, err)
	}
	return nil
}
