package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcclellann/branchdesk/pkg/collection"
	"github.com/mcclellann/branchdesk/pkg/ledger"
	"github.com/mcclellann/branchdesk/pkg/logger"
	"github.com/mcclellann/branchdesk/pkg/models"
	"github.com/mcclellann/branchdesk/pkg/validate"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", zap.Error(err))
	}
}

type errorBody struct {
	Error  string          `json:"error"`
	Fields validate.Errors `json:"fields,omitempty"`
}

// writeError maps validation failures to 400, unknown ids to 404 and
// everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fields validate.Errors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: fields})
	case errors.Is(err, ledger.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		logger.Error("Request failed", err, zap.String("method", r.Method), zap.String("path", r.URL.Path))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// decode reads a JSON body into v. An empty body is allowed when optional.
func decode(w http.ResponseWriter, r *http.Request, v interface{}, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	badRequest(w, "invalid request body: "+err.Error())
	return false
}

// listQuery reads the shared list filters. An absent officer or status
// means every officer or status.
func listQuery(r *http.Request) (collection.Query, error) {
	params := r.URL.Query()
	q := collection.Query{
		Field:   models.ParseSearchField(params.Get("field")),
		Text:    params.Get("q"),
		Date:    strings.TrimSpace(params.Get("date")),
		Officer: params.Get("officer"),
		Status:  params.Get("status"),
	}
	if q.Officer == "" {
		q.Officer = collection.AllOfficers
	}
	if q.Status == "" {
		q.Status = collection.AllStatuses
	}
	if err := validate.Var("date", q.Date, "omitempty,dateprefix"); err != nil {
		return q, err
	}
	if err := validate.Var("status", q.Status, "oneof=ALL Pending Submitted"); err != nil {
		return q, err
	}
	return q, nil
}

func queryInt(r *http.Request, name string, def int, tag string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validate.Errors{{Field: name, Rule: "number", Message: name + " must be a whole number"}}
	}
	if err := validate.Var(name, n, tag); err != nil {
		return 0, err
	}
	return n, nil
}
