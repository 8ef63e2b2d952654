package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/andrewpaige1/revisa-api/generator"
	"github.com/andrewpaige1/revisa-api/metrics"
	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/store"
	"github.com/andrewpaige1/revisa-api/utils"
)

type generateRequest struct {
	CourseID string   `json:"disciplinaId" validate:"required,max=32"`
	Quantity int      `json:"quantidade" validate:"required,min=1,max=50"`
	Tags     []string `json:"tags" validate:"max=10,dive,max=50"`
}

// GenerateFlashcards asks the model for a batch of cards about a course and
// stores them only if the whole batch came back.
func (h *DBHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req generateRequest
	if !h.decode(w, r, &req) {
		return
	}

	course, err := h.Store.GetCourse(r.Context(), user.ID, req.CourseID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if h.Generator == nil {
		http.Error(w, "Flashcard generation is not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.GenerateTimeout)
	defer cancel()

	generated, err := h.Generator.Generate(ctx, generator.Request{
		CourseName: course.Name,
		Quantity:   req.Quantity,
		Tags:       req.Tags,
	})
	if err != nil {
		result := "error"
		if errors.Is(err, generator.ErrPartialGeneration) {
			result = "partial"
		}
		metrics.ObserveGeneration(result, 0)
		slog.Warn("flashcard generation failed", "course_id", course.ID, "quantity", req.Quantity, "error", err)
		http.Error(w, "Flashcard generation failed", http.StatusBadGateway)
		return
	}

	cards := make([]models.Flashcard, len(generated))
	for i, g := range generated {
		cards[i] = models.Flashcard{
			Front:      g.Front,
			Back:       g.Back,
			Tags:       append(append([]string{}, req.Tags...), g.Tags...),
			Difficulty: models.Difficulty(g.Difficulty),
		}
	}

	inserted, err := h.Store.InsertGenerated(r.Context(), user.ID, course.ID, cards)
	if err != nil {
		metrics.ObserveGeneration("error", 0)
		if errors.Is(err, store.ErrInvalid) {
			slog.Warn("generated batch rejected", "course_id", course.ID, "error", err)
			http.Error(w, "Flashcard generation failed", http.StatusBadGateway)
			return
		}
		writeError(w, r, err)
		return
	}

	metrics.ObserveGeneration("ok", len(inserted))
	slog.Info("generated flashcards", "user_id", user.ID, "course_id", course.ID, "count", len(inserted))
	utils.WriteJSON(w, http.StatusCreated, inserted)
}
