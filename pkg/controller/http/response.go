package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

func writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}

// writeList answers a collection endpoint. A nil slice is sent as [] so the
// client always sees an array.
func writeList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, r, http.StatusOK, items)
}

// decodeJSON reads the request body into v and answers 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return false
	}
	return true
}

// handleError maps backend sentinels to status codes. A conflict asks the
// client for confirmation.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, interfaces.ErrConflict):
		logging.From(r.Context()).Info("request needs confirmation", "error", err.Error())
		errutil.WriteJSONError(w, err.Error(), http.StatusConflict, true)
	case errors.Is(err, interfaces.ErrNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	case errors.Is(err, interfaces.ErrInvalidInput):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}
