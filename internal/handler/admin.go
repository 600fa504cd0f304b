package handler

import (
	"net/http"

	"github.com/asyachem/explore-events/internal/model"
	"github.com/asyachem/explore-events/internal/service"
	"github.com/go-chi/chi/v5"
)

// AdminHandler holds the HTTP handlers for user, category and compilation
// management.
type AdminHandler struct {
	users        *service.UserService
	categories   *service.CategoryService
	compilations *service.CompilationService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(
	users *service.UserService,
	categories *service.CategoryService,
	compilations *service.CompilationService,
) *AdminHandler {
	return &AdminHandler{users: users, categories: categories, compilations: compilations}
}

// CreateUser handles POST /admin/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.NewUser
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.users.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}
	users, err := h.users.List(r.Context(), listParam(r, "ids"), from, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// DeleteUser handles DELETE /admin/users/{userId}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "userId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateCategory handles POST /admin/categories
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.NewCategory
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	cat, err := h.categories.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

// UpdateCategory handles PATCH /admin/categories/{catId}
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.NewCategory
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	cat, err := h.categories.Update(r.Context(), chi.URLParam(r, "catId"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// DeleteCategory handles DELETE /admin/categories/{catId}
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "catId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /categories
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cats, err := h.categories.List(r.Context(), from, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// GetCategory handles GET /categories/{catId}
func (h *AdminHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := h.categories.Get(r.Context(), chi.URLParam(r, "catId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// CreateCompilation handles POST /admin/compilations
func (h *AdminHandler) CreateCompilation(w http.ResponseWriter, r *http.Request) {
	var req model.NewCompilation
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	comp, err := h.compilations.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comp)
}

// UpdateCompilation handles PATCH /admin/compilations/{compId}
func (h *AdminHandler) UpdateCompilation(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCompilation
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	comp, err := h.compilations.Update(r.Context(), chi.URLParam(r, "compId"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

// DeleteCompilation handles DELETE /admin/compilations/{compId}
func (h *AdminHandler) DeleteCompilation(w http.ResponseWriter, r *http.Request) {
	if err := h.compilations.Delete(r.Context(), chi.URLParam(r, "compId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCompilations handles GET /compilations
func (h *AdminHandler) ListCompilations(w http.ResponseWriter, r *http.Request) {
	from, size, err := pagination(r)
	if err != nil {
		writeError(w, err)
		return
	}
	pinned, err := boolParam(r, "pinned")
	if err != nil {
		writeError(w, err)
		return
	}
	comps, err := h.compilations.List(r.Context(), pinned, from, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comps)
}

// GetCompilation handles GET /compilations/{compId}
func (h *AdminHandler) GetCompilation(w http.ResponseWriter, r *http.Request) {
	comp, err := h.compilations.Get(r.Context(), chi.URLParam(r, "compId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}
