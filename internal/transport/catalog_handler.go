package transport

import (
	"net/http"

	"cooler-emporium/internal/domain"
	"cooler-emporium/internal/middleware"
	"cooler-emporium/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryView is a category as served to storefront consumers, with the
// product count the category pages show.
type CategoryView struct {
	domain.Category
	ProductCount int `json:"productCount"`
}

// CatalogHandler serves the public, read-only catalog endpoints.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers the public catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/categories", h.ListCategories)
	r.Get("/api/categories/{idOrSlug}", h.GetCategory)
	r.Get("/api/products", h.ListProducts)
	r.Get("/api/products/{id}", h.GetProduct)
}

// ListCategories returns all categories in display order.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.catalog.Categories()

	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, CategoryView{
			Category:     *category,
			ProductCount: h.catalog.GetCategoryProductCount(category.ID),
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, views)
}

// GetCategory returns one category, looked up by id first, then by slug.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	category := h.catalog.GetCategoryByID(idOrSlug)
	if category == nil {
		category = h.catalog.GetCategoryBySlug(idOrSlug)
	}
	if category == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CategoryView{
		Category:     *category,
		ProductCount: h.catalog.GetCategoryProductCount(category.ID),
	})
}

// ListProducts returns products filtered by the category and search query
// parameters. The category parameter accepts an id, a slug or "all" (the
// default); filtering happens before the search and relative order is
// preserved.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	categoryParam := r.URL.Query().Get("category")
	if categoryParam == "" {
		categoryParam = service.AllCategories
	}

	categoryID := categoryParam
	if categoryParam != service.AllCategories && h.catalog.GetCategoryByID(categoryParam) == nil {
		if category := h.catalog.GetCategoryBySlug(categoryParam); category != nil {
			categoryID = category.ID
		}
	}

	products := h.catalog.FilterProducts(categoryID, r.URL.Query().Get("search"))
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetProduct returns one product by id.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product := h.catalog.GetProductByID(chi.URLParam(r, "id"))
	if product == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}
