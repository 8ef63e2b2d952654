package handlers

import (
	"net/http"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/store"
	"github.com/andrewpaige1/revisa-api/utils"
)

type createCourseRequest struct {
	Name     string `json:"nome" validate:"required,max=150"`
	Favorite bool   `json:"favorita"`
	Order    int    `json:"ordem" validate:"min=0"`
}

type updateCourseRequest struct {
	Name     *string `json:"nome" validate:"omitempty,max=150"`
	Favorite *bool   `json:"favorita"`
	Order    *int    `json:"ordem" validate:"omitempty,min=0"`
}

func (h *DBHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	courses, err := h.Store.ListCourses(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, courses)
}

func (h *DBHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req createCourseRequest
	if !h.decode(w, r, &req) {
		return
	}

	course := &models.Course{Name: req.Name, Favorite: req.Favorite, Order: req.Order}
	if err := h.Store.CreateCourse(r.Context(), user.ID, course); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, course)
}

func (h *DBHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req updateCourseRequest
	if !h.decode(w, r, &req) {
		return
	}

	course, err := h.Store.UpdateCourse(r.Context(), user.ID, r.PathValue("courseID"), store.CoursePatch{
		Name:     req.Name,
		Favorite: req.Favorite,
		Order:    req.Order,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, course)
}

func (h *DBHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteCourse(r.Context(), user.ID, r.PathValue("courseID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
