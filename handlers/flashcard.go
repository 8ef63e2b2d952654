package handlers

import (
	"net/http"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/store"
	"github.com/andrewpaige1/revisa-api/utils"
)

type createFlashcardRequest struct {
	Front      string   `json:"frente" validate:"required,max=2000"`
	Back       string   `json:"verso" validate:"required,max=4000"`
	CourseID   *string  `json:"disciplinaId" validate:"omitempty,max=32"`
	Tags       []string `json:"tags" validate:"max=20,dive,max=50"`
	Difficulty *int     `json:"dificuldade" validate:"omitempty,min=0,max=2"`
}

// updateFlashcardRequest treats an empty disciplinaId as "detach from course".
type updateFlashcardRequest struct {
	Front      *string   `json:"frente" validate:"omitempty,max=2000"`
	Back       *string   `json:"verso" validate:"omitempty,max=4000"`
	CourseID   *string   `json:"disciplinaId" validate:"omitempty,max=32"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Difficulty *int      `json:"dificuldade" validate:"omitempty,min=0,max=2"`
}

func storeFilterFromQuery(r *http.Request) store.FlashcardFilter {
	return store.FlashcardFilter{
		CourseID: r.URL.Query().Get("disciplinaId"),
		Tag:      r.URL.Query().Get("tag"),
	}
}

func (h *DBHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cards, err := h.Store.ListFlashcards(r.Context(), user.ID, storeFilterFromQuery(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cards)
}

func (h *DBHandler) GetDueFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	cards, err := h.Store.DueFlashcards(r.Context(), user.ID, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cards)
}

func (h *DBHandler) GetFlashcardByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	flashcardID := r.PathValue("flashcardID")
	if flashcardID == "" {
		http.Error(w, "Flashcard ID is required", http.StatusBadRequest)
		return
	}

	card, err := h.Store.GetFlashcard(r.Context(), user.ID, flashcardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

func (h *DBHandler) CreateFlashCard(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req createFlashcardRequest
	if !h.decode(w, r, &req) {
		return
	}

	card := &models.Flashcard{
		Front:    req.Front,
		Back:     req.Back,
		CourseID: req.CourseID,
		Tags:     req.Tags,
	}
	if req.Difficulty != nil {
		card.Difficulty = models.Difficulty(*req.Difficulty)
	}
	if err := h.Store.CreateFlashcard(r.Context(), user.ID, card); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.Store.GetFlashcard(r.Context(), user.ID, card.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *DBHandler) UpdateFlashCardByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req updateFlashcardRequest
	if !h.decode(w, r, &req) {
		return
	}

	patch := store.FlashcardPatch{
		Front: req.Front,
		Back:  req.Back,
		Tags:  req.Tags,
	}
	if req.CourseID != nil {
		if *req.CourseID == "" {
			patch.ClearCourse = true
		} else {
			patch.CourseID = req.CourseID
		}
	}
	if req.Difficulty != nil {
		d := models.Difficulty(*req.Difficulty)
		patch.Difficulty = &d
	}

	card, err := h.Store.UpdateFlashcard(r.Context(), user.ID, r.PathValue("flashcardID"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, card)
}

func (h *DBHandler) DeleteFlashCardByID(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteFlashcard(r.Context(), user.ID, r.PathValue("flashcardID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
