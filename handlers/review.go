package handlers

import (
	"net/http"

	"github.com/andrewpaige1/revisa-api/metrics"
	"github.com/andrewpaige1/revisa-api/srs"
	"github.com/andrewpaige1/revisa-api/utils"
)

type reviewRequest struct {
	FlashcardID string `json:"flashcardId" validate:"required,max=32"`
	Quality     *int   `json:"quality" validate:"required,min=0,max=5"`
}

// ReviewFlashcard rates a card and answers with its new schedule once it
// is persisted.
func (h *DBHandler) ReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req reviewRequest
	if !h.decode(w, r, &req) {
		return
	}

	q := srs.Quality(*req.Quality)
	schedule, err := h.Store.ReviewFlashcard(r.Context(), user.ID, req.FlashcardID, q, h.now())
	metrics.ObserveReview(q, err)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, schedule)
}

func (h *DBHandler) GetReviewHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	logs, err := h.Store.ReviewHistory(r.Context(), user.ID, r.PathValue("flashcardID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, logs)
}
