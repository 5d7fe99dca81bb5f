package http

import (
	"net/http"

	"github.com/salmankhalil12/Restaurant-Site/internal/catalog"
	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/pkg/httputil"
	"github.com/salmankhalil12/Restaurant-Site/pkg/pagination"
)

// MenuHandler serves the read-only catalog.
type MenuHandler struct {
	menu *catalog.Catalog
}

// NewMenuHandler creates a menu handler.
func NewMenuHandler(menu *catalog.Catalog) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// ListMenu handles GET /api/v1/menu?category=&page=&per_page=
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items := h.menu.Filter(r.URL.Query().Get("category"))
	httputil.WriteData(w, http.StatusOK, pagination.Paginate(items, pagination.FromRequest(r)))
}

// SearchMenu handles GET /api/v1/menu/search?q=
func (h *MenuHandler) SearchMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	httputil.WriteData(w, http.StatusOK, struct {
		Query string            `json:"query"`
		Items []domain.MenuItem `json:"items"`
	}{Query: q, Items: h.menu.Search(q)})
}

// ListCategories handles GET /api/v1/menu/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.menu.Categories())
}
