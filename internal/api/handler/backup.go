package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/mailpanel/internal/api/request"
	"github.com/edvin/mailpanel/internal/api/response"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

type Backup struct {
	engine *enginesync.Engine
}

func NewBackup(engine *enginesync.Engine) *Backup {
	return &Backup{engine: engine}
}

func (h *Backup) Create(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateBackupJob
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.engine.CreateBackupJob(r.Context(), serverID, enginesync.BackupJobInput{
		Name:          req.Name,
		BackupType:    req.BackupType,
		Destination:   req.Destination,
		Schedule:      req.Schedule,
		RetentionDays: req.RetentionDays,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, job)
}

func (h *Backup) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.DeleteBackupJob(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Backup) Run(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.engine.RunBackup(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusAccepted, entry)
}
