package handlers

import (
	"net/http"

	"github.com/andrewpaige1/revisa-api/utils"
)

// GetMe returns the caller with fresh XP and streak values.
func (h *DBHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	fresh, err := h.Store.GetUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, fresh)
}

func (h *DBHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	stats, err := h.Store.Stats(r.Context(), user.ID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}

// Healthz answers 200 while the database responds.
func (h *DBHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
