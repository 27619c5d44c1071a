package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"catalogadmin/internal/apis/catalog"
)

type ErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string) {
	var b ErrorBody
	b.Error.Code = code
	b.Error.Message = msg
	WriteJSON(w, status, b)
}

func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, "bad_request", msg)
}

// WriteCatalogError maps a catalog failure onto the facade's status codes:
// not found 404, upstream timeout 504, other upstream or malformed replies
// 502, anything else 500.
func WriteCatalogError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var (
		nf *catalog.NotFoundError
		ue *catalog.UpstreamError
		me *catalog.MalformedResponseError
	)
	switch {
	case errors.As(err, &nf):
		WriteError(w, http.StatusNotFound, "not_found", nf.Error())
	case errors.As(err, &ue) && ue.Timeout:
		log.Warn(op+" timed out", "err", err)
		WriteError(w, http.StatusGatewayTimeout, "upstream_timeout", "upstream did not answer in time")
	case errors.As(err, &ue):
		log.Warn(op+" failed", "err", err, "status", ue.Status)
		WriteError(w, http.StatusBadGateway, "upstream_error", ue.Error())
	case errors.As(err, &me):
		log.Warn(op+" failed", "err", err)
		WriteError(w, http.StatusBadGateway, "upstream_error", me.Error())
	default:
		log.Error(op+" failed", "err", err)
		WriteInternalError(w)
	}
}
