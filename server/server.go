// Package server exposes the compiler as a small HTTP service.
//
// The service is stateless: every request compiles the posted source from
// scratch and nothing is stored between requests.
//
//   - POST /compile - accepts CPL source and returns the quad program, or the
//     compilation diagnostics if the source has problems.
//   - GET  /info    - returns version information about the service.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dekarrin/cpq"
	"github.com/dekarrin/cpq/internal/version"
)

// MaxSourceLen bounds how much source a single request may post.
const MaxSourceLen = 1 << 20

// CompileRequest is the body of a POST /compile request.
type CompileRequest struct {
	Source string `json:"source"`
}

// CompileResponse is the body of a successful POST /compile response.
// Exactly one of Quads or Errors is populated.
type CompileResponse struct {
	Quads  []string       `json:"quads,omitempty"`
	Errors []CompileError `json:"errors,omitempty"`
}

// CompileError is one diagnostic, as reported to API clients.
type CompileError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// InfoResponse is the body of a GET /info response.
type InfoResponse struct {
	Version string `json:"version"`
}

// New returns the http.Handler serving the compile API.
func New() http.Handler {
	r := chi.NewRouter()

	r.Post("/compile", handleCompile)
	r.Get("/info", handleInfo)

	return r
}

func handleCompile(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, MaxSourceLen+1))
	if err != nil {
		jsonErr(w, http.StatusBadRequest, "could not read request body")
		return
	}
	if len(body) > MaxSourceLen {
		jsonErr(w, http.StatusRequestEntityTooLarge, "source too large")
		return
	}

	var cr CompileRequest
	if err := json.Unmarshal(body, &cr); err != nil {
		jsonErr(w, http.StatusBadRequest, "request body must be JSON with a \"source\" key")
		return
	}

	prog, diags, err := cpq.CompileString(cr.Source)
	if err != nil {
		jsonErr(w, http.StatusInternalServerError, "internal compiler error")
		return
	}

	if len(diags) > 0 {
		resp := CompileResponse{Errors: make([]CompileError, len(diags))}
		for i, d := range diags {
			resp.Errors[i] = CompileError{Line: d.Line, Message: d.Message}
		}
		jsonOK(w, resp)
		return
	}

	lines, err := prog.Lines()
	if err != nil {
		jsonErr(w, http.StatusInternalServerError, "internal compiler error")
		return
	}

	jsonOK(w, CompileResponse{Quads: lines})
}

func handleInfo(w http.ResponseWriter, req *http.Request) {
	jsonOK(w, InfoResponse{Version: version.Current})
}

func jsonOK(w http.ResponseWriter, respObj interface{}) {
	writeJSON(w, http.StatusOK, respObj)
}

func jsonErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error":  msg,
		"status": status,
	})
}

func writeJSON(w http.ResponseWriter, status int, respObj interface{}) {
	data, err := json.Marshal(respObj)
	if err != nil {
		http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, string(data))
}
