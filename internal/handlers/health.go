package handlers

import (
	"net/http"

	"devfolio/internal/store"
)

// Health reports liveness and the storage backend serving requests.
func Health(f *store.Facade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"backend": f.Backend(),
		})
	}
}
