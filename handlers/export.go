package handlers

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andrewpaige1/revisa-api/models"
)

var exportHeader = []string{"id", "frente", "verso", "disciplina", "tags", "dificuldade", "proxima_revisao"}

func exportRow(card models.Flashcard) []string {
	course := ""
	if card.Course != nil {
		course = card.Course.Name
	}
	due := ""
	if card.Review != nil {
		due = card.Review.DueAt.UTC().Format(time.RFC3339)
	}
	return []string{
		card.ID,
		card.Front,
		card.Back,
		course,
		strings.Join(card.Tags, ";"),
		strconv.Itoa(int(card.Difficulty)),
		due,
	}
}

// ExportFlashcards streams the user's deck as CSV. Never reviewed cards
// have an empty proxima_revisao.
func (h *DBHandler) ExportFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cards, err := h.Store.ListFlashcards(r.Context(), user.ID, storeFilterFromQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="flashcards.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, card := range cards {
		cw.Write(exportRow(card))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("write csv export", "user_id", user.ID, "error", err)
	}
}
