package handlers

import (
	"net/http"

	"github.com/andrewpaige1/revisa-api/metrics"
	"github.com/andrewpaige1/revisa-api/middleware"
)

// Routes mounts the API behind auth. /healthz and /metrics stay public.
func (h *DBHandler) Routes(auth func(http.Handler) http.Handler) http.Handler {
	syncUser := middleware.SyncUserMiddleware(h.Store)
	api := http.NewServeMux()

	// Flashcards
	api.HandleFunc("GET /api/flashcards", syncUser(h.GetFlashcards))
	api.HandleFunc("GET /api/flashcards/due", syncUser(h.GetDueFlashcards))
	api.HandleFunc("GET /api/flashcards/stats", syncUser(h.GetStats))
	api.HandleFunc("GET /api/flashcards/export.csv", syncUser(h.ExportFlashcards))
	api.HandleFunc("POST /api/flashcards", syncUser(h.CreateFlashCard))
	api.HandleFunc("GET /api/flashcards/{flashcardID}", syncUser(h.GetFlashcardByID))
	api.HandleFunc("PUT /api/flashcards/{flashcardID}", syncUser(h.UpdateFlashCardByID))
	api.HandleFunc("DELETE /api/flashcards/{flashcardID}", syncUser(h.DeleteFlashCardByID))

	// Reviews
	api.HandleFunc("POST /api/flashcards/review", syncUser(h.ReviewFlashcard))
	api.HandleFunc("GET /api/flashcards/{flashcardID}/reviews", syncUser(h.GetReviewHistory))

	// Generation
	api.HandleFunc("POST /api/flashcards/generate", syncUser(h.GenerateFlashcards))

	// Courses
	api.HandleFunc("GET /api/disciplinas", syncUser(h.GetCourses))
	api.HandleFunc("POST /api/disciplinas", syncUser(h.CreateCourse))
	api.HandleFunc("PUT /api/disciplinas/{courseID}", syncUser(h.UpdateCourse))
	api.HandleFunc("DELETE /api/disciplinas/{courseID}", syncUser(h.DeleteCourse))

	// User
	api.HandleFunc("GET /api/me", syncUser(h.GetMe))

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", h.Healthz)
	root.Handle("GET /metrics", metrics.Handler())
	root.Handle("/api/", auth(metrics.Instrument(api)))
	return root
}
