package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/edvin/mailpanel/internal/api/request"
	"github.com/edvin/mailpanel/internal/api/response"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

type Mailbox struct {
	engine *enginesync.Engine
}

func NewMailbox(engine *enginesync.Engine) *Mailbox {
	return &Mailbox{engine: engine}
}

func (h *Mailbox) Create(w http.ResponseWriter, r *http.Request) {
	serverID, err := request.RequireID(chi.URLParam(r, "serverID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateMailbox
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	mb, err := h.engine.CreateMailbox(r.Context(), serverID, req.Email, req.Password, req.Name)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, mb)
}

func (h *Mailbox) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.DeleteMailbox(r.Context(), id); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Mailbox) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.ChangeMailboxPassword
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.engine.ChangeMailboxPassword(r.Context(), id, req.Password); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
