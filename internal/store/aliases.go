package store

import (
	"context"
	"fmt"

	"github.com/edvin/mailpanel/internal/model"
)

const aliasColumns = `id, server_id, mailbox_id, source_email, destination_email, is_active, expires_at`

func (p *Postgres) ReplaceAliases(ctx context.Context, serverID string, aliases []model.EmailAlias) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace aliases: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM email_aliases WHERE server_id = $1`, serverID); err != nil {
		return fmt.Errorf("clear aliases for server %s: %w", serverID, err)
	}
	for _, a := range aliases {
		_, err := tx.Exec(ctx,
			`INSERT INTO email_aliases (`+aliasColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			a.ID, a.ServerID, a.MailboxID, a.SourceEmail, a.DestinationEmail, a.IsActive, a.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("insert alias %s: %w", a.SourceEmail, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace aliases: %w", err)
	}
	return nil
}

func (p *Postgres) GetAlias(ctx context.Context, id string) (*model.EmailAlias, error) {
	var a model.EmailAlias
	err := p.db.QueryRow(ctx,
		`SELECT `+aliasColumns+` FROM email_aliases WHERE id = $1`, id,
	).Scan(&a.ID, &a.ServerID, &a.MailboxID, &a.SourceEmail, &a.DestinationEmail, &a.IsActive, &a.ExpiresAt)
	if err != nil {
		return nil, wrapNotFound(err, "alias", id)
	}
	return &a, nil
}

func (p *Postgres) InsertAlias(ctx context.Context, a *model.EmailAlias) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO email_aliases (`+aliasColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ServerID, a.MailboxID, a.SourceEmail, a.DestinationEmail, a.IsActive, a.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert alias %s: %w", a.SourceEmail, err)
	}
	return nil
}

func (p *Postgres) DeleteAlias(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM email_aliases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete alias %s: %w", id, err)
	}
	return nil
}
