package handler

import (
	"encoding/json"
	"net/http"

	"github.com/codeedexprojects/poky-backend/internal/application/product"
	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/validate"
	"github.com/codeedexprojects/poky-backend/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// ProductHandler handles catalog product endpoints.
type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// viewerID returns the authenticated user ID, or "" for anonymous callers.
func viewerID(r *http.Request) string {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.UserID
	}
	return ""
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "product deleted"})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), viewerID(r))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.List(r.Context(), viewerID(r))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.ListByCategory(r.Context(), chi.URLParam(r, "categoryID"), viewerID(r))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ProductHandler) ListBySubCategory(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.ListBySubCategory(r.Context(), chi.URLParam(r, "categoryID"), chi.URLParam(r, "subCategoryID"), viewerID(r))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"), viewerID(r))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *ProductHandler) Similar(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.Similar(r.Context(), chi.URLParam(r, "id"), viewerID(r))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}
