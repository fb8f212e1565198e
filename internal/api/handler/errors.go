package handler

import (
	"errors"
	"net/http"

	"github.com/edvin/mailpanel/internal/api/response"
	"github.com/edvin/mailpanel/internal/mailserver"
	"github.com/edvin/mailpanel/internal/store"
)

// writeEngineError maps engine failures onto HTTP statuses: unknown
// local resources are 404, remote admin API failures are 502, anything
// else is 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var apiErr *mailserver.APIError
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &apiErr):
		response.WriteError(w, http.StatusBadGateway, err.Error())
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
