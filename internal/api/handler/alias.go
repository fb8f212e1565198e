package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/mailpanel/internal/api/request"
	"github.com/edvin/mailpanel/internal/api/response"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

type Alias struct {
	engine *enginesync.Engine
}

func NewAlias(engine *enginesync.Engine) *Alias {
	return &Alias{engine: engine}
}

func (h *Alias) Create(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateAlias
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	alias, err := h.engine.CreateAlias(r.Context(), serverID, req.SourceEmail, req.DestinationEmail)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, alias)
}

func (h *Alias) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.DeleteAlias(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
