package sync

import (
	"context"

	"github.com/edvin/mailpanel/internal/model"
)

// StatusResult reports the outcome of one reachability check.
type StatusResult struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	// Error carries the remote failure text when the server was marked
	// offline. It is informational; the sync itself succeeded.
	Error string `json:"error,omitempty"`
}

// SyncStatus probes the remote server and records its reachability.
// A remote failure is not an error here: it is the answer. The server
// is marked offline, the previously known version is kept, and the
// failure text is returned in the result. Only mirror failures
// propagate as errors.
func (e *Engine) SyncStatus(ctx context.Context, serverID string) (*StatusResult, error) {
	server, creds, err := e.resolveServer(ctx, serverID)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{
		Status:  model.ServerStatusOnline,
		Version: server.Version,
	}

	remote, remoteErr := e.client.Status(ctx, creds)
	if remoteErr != nil {
		result.Status = model.ServerStatusOffline
		result.Error = remoteErr.Error()
		e.logger.Warn().Err(remoteErr).
			Str("server_id", serverID).
			Str("hostname", server.Hostname).
			Msg("server unreachable, marking offline")
	} else if remote.Version != "" {
		result.Version = remote.Version
	}

	// The status endpoint may omit the version; the dedicated version
	// endpoint answers in plain text. Best effort only.
	if remoteErr == nil && result.Version == "" {
		if v, err := e.client.Version(ctx, creds); err == nil && v != "" {
			result.Version = v
		}
	}
	if result.Version == "" {
		result.Version = "unknown"
	}

	if err := e.mirror.UpdateServerStatus(ctx, serverID, result.Status, result.Version, e.now()); err != nil {
		return nil, err
	}
	return result, nil
}
