package store

import (
	"context"
	"fmt"

	"github.com/edvin/mailpanel/internal/model"
)

const mailboxColumns = `id, server_id, email, name, status, storage_used, storage_limit, last_login`

func (p *Postgres) ReplaceMailboxes(ctx context.Context, serverID string, mailboxes []model.Mailbox) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace mailboxes: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM mailboxes WHERE server_id = $1`, serverID); err != nil {
		return fmt.Errorf("clear mailboxes for server %s: %w", serverID, err)
	}
	for _, mb := range mailboxes {
		_, err := tx.Exec(ctx,
			`INSERT INTO mailboxes (`+mailboxColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			mb.ID, mb.ServerID, mb.Email, mb.Name, mb.Status, mb.StorageUsed, mb.StorageLimit, mb.LastLogin,
		)
		if err != nil {
			return fmt.Errorf("insert mailbox %s: %w", mb.Email, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace mailboxes: %w", err)
	}
	return nil
}

func (p *Postgres) ListMailboxes(ctx context.Context, serverID string) ([]model.Mailbox, error) {
	rows, err := p.db.Query(ctx,
		`SELECT `+mailboxColumns+` FROM mailboxes WHERE server_id = $1 ORDER BY email`, serverID)
	if err != nil {
		return nil, fmt.Errorf("list mailboxes for server %s: %w", serverID, err)
	}
	defer rows.Close()

	var mailboxes []model.Mailbox
	for rows.Next() {
		var mb model.Mailbox
		if err := rows.Scan(&mb.ID, &mb.ServerID, &mb.Email, &mb.Name, &mb.Status, &mb.StorageUsed, &mb.StorageLimit, &mb.LastLogin); err != nil {
			return nil, fmt.Errorf("scan mailbox: %w", err)
		}
		mailboxes = append(mailboxes, mb)
	}
	return mailboxes, rows.Err()
}

func (p *Postgres) GetMailbox(ctx context.Context, id string) (*model.Mailbox, error) {
	var mb model.Mailbox
	err := p.db.QueryRow(ctx,
		`SELECT `+mailboxColumns+` FROM mailboxes WHERE id = $1`, id,
	).Scan(&mb.ID, &mb.ServerID, &mb.Email, &mb.Name, &mb.Status, &mb.StorageUsed, &mb.StorageLimit, &mb.LastLogin)
	if err != nil {
		return nil, wrapNotFound(err, "mailbox", id)
	}
	return &mb, nil
}

func (p *Postgres) GetMailboxByEmail(ctx context.Context, serverID, email string) (*model.Mailbox, error) {
	var mb model.Mailbox
	err := p.db.QueryRow(ctx,
		`SELECT `+mailboxColumns+` FROM mailboxes WHERE server_id = $1 AND email = $2`, serverID, email,
	).Scan(&mb.ID, &mb.ServerID, &mb.Email, &mb.Name, &mb.Status, &mb.StorageUsed, &mb.StorageLimit, &mb.LastLogin)
	if err != nil {
		return nil, wrapNotFound(err, "mailbox", email)
	}
	return &mb, nil
}

func (p *Postgres) InsertMailbox(ctx context.Context, mb *model.Mailbox) error {
	_, err := p.db.Exec(ctx,
		`INSERT INTO mailboxes (`+mailboxColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		mb.ID, mb.ServerID, mb.Email, mb.Name, mb.Status, mb.StorageUsed, mb.StorageLimit, mb.LastLogin,
	)
	if err != nil {
		return fmt.Errorf("insert mailbox %s: %w", mb.Email, err)
	}
	return nil
}

func (p *Postgres) DeleteMailbox(ctx context.Context, id string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM mailboxes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mailbox %s: %w", id, err)
	}
	return nil
}
