package handler

import (
	"encoding/json"
	"net/http"

	"github.com/codeedexprojects/poky-backend/internal/application/subcategory"
	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// SubCategoryHandler handles subcategory CRUD endpoints.
type SubCategoryHandler struct {
	svc subcategory.Service
}

func NewSubCategoryHandler(svc subcategory.Service) *SubCategoryHandler {
	return &SubCategoryHandler{svc: svc}
}

func (h *SubCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSubCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	sc, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

func (h *SubCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSubCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sc, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *SubCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "subcategory deleted"})
}

func (h *SubCategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	sc, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (h *SubCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	subcategories, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subcategories)
}

func (h *SubCategoryHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	subcategories, err := h.svc.ListByCategory(r.Context(), chi.URLParam(r, "categoryID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subcategories)
}
