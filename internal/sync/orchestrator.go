package sync

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/edvin/mailpanel/internal/model"
)

// Options controls a full-server sync.
type Options struct {
	// Kinds restricts the run to a subset of resource kinds. Empty
	// means all kinds.
	Kinds []Kind
	// Concurrent runs the per-kind syncs in parallel instead of in
	// AllKinds order. Mailboxes and aliases still run in order
	// relative to each other.
	Concurrent bool
}

// Report summarizes one full-server sync run.
type Report struct {
	ServerID    string          `json:"server_id"`
	Status      string          `json:"status"`
	Version     string          `json:"version"`
	StatusError string          `json:"status_error,omitempty"`
	Results     map[Kind]string `json:"results"`
	// Synced is true when the status check and every requested kind
	// succeeded.
	Synced bool `json:"synced"`
}

const resultOK = "ok"

// SyncAll runs the status check and then every requested resource kind.
// An offline server short-circuits the run: no resource syncs are
// attempted and the mirror keeps its last known data. Per-kind failures
// are isolated; each kind's outcome lands in the report and one failure
// never stops the others.
func (e *Engine) SyncAll(ctx context.Context, serverID string, opts Options) (*Report, error) {
	status, err := e.SyncStatus(ctx, serverID)
	if err != nil {
		e.stats.ObserveFullSync(false)
		return nil, err
	}

	report := &Report{
		ServerID:    serverID,
		Status:      status.Status,
		Version:     status.Version,
		StatusError: status.Error,
		Results:     make(map[Kind]string),
	}
	if status.Status != model.ServerStatusOnline {
		e.stats.ObserveFullSync(false)
		return report, nil
	}

	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = AllKinds
	}

	var mu sync.Mutex
	record := func(kind Kind, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			report.Results[kind] = err.Error()
			return
		}
		report.Results[kind] = resultOK
	}

	if opts.Concurrent {
		g, gctx := errgroup.WithContext(ctx)
		var hasMailboxes, hasAliases bool
		for _, kind := range kinds {
			if kind == KindMailboxes {
				hasMailboxes = true
				continue
			}
			if kind == KindAliases {
				hasAliases = true
				continue
			}
			kind := kind
			g.Go(func() error {
				record(kind, e.syncKind(gctx, serverID, kind))
				return nil
			})
		}
		if hasMailboxes || hasAliases {
			// Every mailbox sync regenerates row IDs and aliases
			// resolve their mailbox references against the mirrored
			// set, so these two kinds run in order within one
			// goroutine. Racing them leaves aliases pointing at
			// mailbox rows that no longer exist.
			g.Go(func() error {
				if hasMailboxes {
					record(KindMailboxes, e.syncKind(gctx, serverID, KindMailboxes))
				}
				if hasAliases {
					record(KindAliases, e.syncKind(gctx, serverID, KindAliases))
				}
				return nil
			})
		}
		g.Wait()
	} else {
		for _, kind := range kinds {
			record(kind, e.syncKind(ctx, serverID, kind))
		}
	}

	report.Synced = true
	for _, outcome := range report.Results {
		if outcome != resultOK {
			report.Synced = false
			break
		}
	}
	e.stats.ObserveFullSync(report.Synced)
	return report, nil
}

func (e *Engine) syncKind(ctx context.Context, serverID string, kind Kind) error {
	var err error
	switch kind {
	case KindDNS:
		_, err = e.SyncDNS(ctx, serverID)
	case KindMailboxes:
		_, err = e.SyncMailboxes(ctx, serverID)
	case KindAliases:
		_, err = e.SyncAliases(ctx, serverID)
	case KindSpamFilters:
		_, err = e.SyncSpamFilters(ctx, serverID)
	case KindBackups:
		_, err = e.SyncBackups(ctx, serverID)
	case KindMetrics:
		_, err = e.CaptureMetrics(ctx, serverID)
	}
	return err
}
