package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/mailpanel/internal/api/request"
	"github.com/edvin/mailpanel/internal/api/response"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

type DNS struct {
	engine *enginesync.Engine
}

func NewDNS(engine *enginesync.Engine) *DNS {
	return &DNS{engine: engine}
}

func (h *DNS) Create(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateDNSRecord
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.engine.CreateDNSRecord(r.Context(), serverID, enginesync.DNSRecordInput{
		Zone:       req.Zone,
		RecordType: req.RecordType,
		Name:       req.Name,
		Value:      req.Value,
		Priority:   req.Priority,
		TTL:        req.TTL,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, rec)
}

func (h *DNS) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.DeleteDNSRecord(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
