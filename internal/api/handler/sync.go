package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/mailpanel/internal/api/request"
	"github.com/edvin/mailpanel/internal/api/response"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

type Sync struct {
	engine *enginesync.Engine
	// concurrent is the default for full syncs; a request body can
	// override it.
	concurrent bool
}

func NewSync(engine *enginesync.Engine, concurrent bool) *Sync {
	return &Sync{engine: engine, concurrent: concurrent}
}

// Full runs a full-server sync. The body is optional; when present it
// may narrow the run to specific kinds or enable concurrency.
func (h *Sync) Full(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := enginesync.Options{Concurrent: h.concurrent}
	if r.ContentLength != 0 {
		var req request.Sync
		if err := request.Decode(r, &req); err != nil {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		for _, k := range req.Kinds {
			opts.Kinds = append(opts.Kinds, enginesync.Kind(k))
		}
		if req.Concurrent != nil {
			opts.Concurrent = *req.Concurrent
		}
	}

	report, err := h.engine.SyncAll(r.Context(), serverID, opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, report)
}

// Status runs only the reachability check.
func (h *Sync) Status(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.SyncStatus(r.Context(), serverID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}

// Kind runs one resource kind sync and returns the fresh mirror rows.
func (h *Sync) Kind(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	var result any
	switch enginesync.Kind(chi.URLParam(r, "kind")) {
	case enginesync.KindDNS:
		result, err = h.engine.SyncDNS(ctx, serverID)
	case enginesync.KindMailboxes:
		result, err = h.engine.SyncMailboxes(ctx, serverID)
	case enginesync.KindAliases:
		result, err = h.engine.SyncAliases(ctx, serverID)
	case enginesync.KindSpamFilters:
		result, err = h.engine.SyncSpamFilters(ctx, serverID)
	case enginesync.KindBackups:
		result, err = h.engine.SyncBackups(ctx, serverID)
	case enginesync.KindMetrics:
		result, err = h.engine.CaptureMetrics(ctx, serverID)
	default:
		response.WriteError(w, http.StatusBadRequest, "unknown sync kind")
		return
	}
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}
