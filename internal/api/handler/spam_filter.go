package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/mailpanel/internal/api/request"
	"github.com/edvin/mailpanel/internal/api/response"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

type SpamFilter struct {
	engine *enginesync.Engine
}

func NewSpamFilter(engine *enginesync.Engine) *SpamFilter {
	return &SpamFilter{engine: engine}
}

func (h *SpamFilter) Create(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateSpamFilter
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := h.engine.CreateSpamFilter(r.Context(), serverID, enginesync.SpamFilterInput{
		RuleType: req.RuleType,
		Pattern:  req.Pattern,
		Score:    req.Score,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, filter)
}

func (h *SpamFilter) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.DeleteSpamFilter(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
