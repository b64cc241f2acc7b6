package handler

import (
	"encoding/json"
	"net/http"

	"github.com/codeedexprojects/poky-backend/internal/application/slider"
	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/validate"
	"github.com/go-chi/chi/v5"
)

// SliderHandler handles promotional slider endpoints.
type SliderHandler struct {
	svc slider.Service
}

func NewSliderHandler(svc slider.Service) *SliderHandler {
	return &SliderHandler{svc: svc}
}

func (h *SliderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSliderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	sl, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sl)
}

func (h *SliderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSliderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sl, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sl)
}

func (h *SliderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "slider deleted"})
}

// List returns active sliders for the storefront; ?all=true includes
// inactive ones for the admin console.
func (h *SliderHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("all") != "true"
	sliders, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sliders)
}
