package controllers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// envelope is the top-level wrapper every JSON response body is keyed
// under, matching the teacher's own response shape.
type envelope map[string]interface{}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeJSON marshals data and writes it with the given status and
// headers.
func (api *mapAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')
	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		api.log.Error("failed to write JSON response", zap.Error(err))
		return err
	}

	return nil
}

func (api *mapAPI) errorResponse(w http.ResponseWriter, status int, code, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message

	js, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		api.log.Error("failed to marshal error response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(js, '\n'))
}

// BadRequestResponse reports a client-side request error.
func (api *mapAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, http.StatusBadRequest, "bad_request", err.Error())
}

// NotFoundResponse reports that the requested lane, route, or submap
// window has no result.
func (api *mapAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, http.StatusNotFound, "not_found", err.Error())
}

// ServerErrorResponse reports an unexpected failure, logging the
// underlying cause.
func (api *mapAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("server error", zap.Error(err), zap.String("path", r.URL.Path))
	api.errorResponse(w, http.StatusInternalServerError, "server_error", "the server encountered a problem and could not process your request")
}
