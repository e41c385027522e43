// Package diag is the read-only HTTP diagnostics surface the two daemon
// personalities (cmd/hlxsimd, cmd/hlxproxyd) expose alongside their
// wire-protocol listener; the one-shot cmd/hlxc client does not mount it. It is not a control plane: there is no
// route here that mutates anything, matching spec.md §1's placement of
// the bracket-framed protocol as the sole control interface. Grounded
// in the teacher's internal/api/router.go for the chi wiring, stripped
// of auth and every mutating route.
package diag

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openhlxgo/hlx/internal/model"
)

// StateFunc returns the current state snapshot of whichever personality
// owns it (internal/client.Controller, internal/server.Controller, or
// the upstream of an internal/proxy.Proxy all satisfy this shape via
// their State() method).
type StateFunc func() model.State

// NewRouter builds the diagnostics handler. name identifies the
// personality in /healthz's response ("hlxsimd", "hlxproxyd").
func NewRouter(name string, state StateFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "personality": name})
	})

	r.Get("/debug/state", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, state())
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
