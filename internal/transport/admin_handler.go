package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"cooler-emporium/internal/domain"
	"cooler-emporium/internal/middleware"
	"cooler-emporium/internal/service"
	"cooler-emporium/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateCategoryRequest represents the category creation payload
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UpdateCategoryRequest represents a partial category update; absent fields
// are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name            string                        `json:"name" validate:"required"`
	Headline        string                        `json:"headline"`
	Description     string                        `json:"description"`
	CategoryID      string                        `json:"categoryId"`
	Images          []string                      `json:"images"`
	ProductImages   []domain.ProductImage         `json:"productImages"`
	MRP             *float64                      `json:"mrp"`
	DiscountedPrice *float64                      `json:"discountedPrice"`
	Price           *float64                      `json:"price"`
	InStock         *bool                         `json:"inStock"`
	IsFeatured      bool                          `json:"isFeatured"`
	Features        []string                      `json:"features"`
	ProductFeatures []domain.ProductFeature       `json:"productFeatures"`
	Specifications  []domain.ProductSpecification `json:"specifications"`
	Benefits        []domain.ProductBenefit       `json:"benefits"`
	Tags            []string                      `json:"tags"`
}

// UpdateProductRequest represents a partial product update; absent fields are
// left unchanged.
type UpdateProductRequest struct {
	Name            *string                        `json:"name"`
	Headline        *string                        `json:"headline"`
	Description     *string                        `json:"description"`
	CategoryID      *string                        `json:"categoryId"`
	Images          *[]string                      `json:"images"`
	ProductImages   *[]domain.ProductImage         `json:"productImages"`
	MRP             *float64                       `json:"mrp"`
	DiscountedPrice *float64                       `json:"discountedPrice"`
	Price           *float64                       `json:"price"`
	InStock         *bool                          `json:"inStock"`
	IsFeatured      *bool                          `json:"isFeatured"`
	Features        *[]string                      `json:"features"`
	ProductFeatures *[]domain.ProductFeature       `json:"productFeatures"`
	Specifications  *[]domain.ProductSpecification `json:"specifications"`
	Benefits        *[]domain.ProductBenefit       `json:"benefits"`
	Tags            *[]string                      `json:"tags"`
}

// AdminHandler handles the session-guarded catalog mutation endpoints.
type AdminHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(catalog *service.CatalogService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all admin catalog routes behind the session
// middleware. The draft routes are registered before the {id} routes so the
// static segment wins.
func (h *AdminHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)

		r.Post("/api/admin/categories", h.CreateCategory)
		r.Put("/api/admin/categories/{id}", h.UpdateCategory)
		r.Delete("/api/admin/categories/{id}", h.DeleteCategory)

		r.Post("/api/admin/products", h.CreateProduct)
		r.Put("/api/admin/products/draft", h.SaveDraft)
		r.Get("/api/admin/products/draft", h.GetDraft)
		r.Delete("/api/admin/products/draft", h.ClearDraft)
		r.Put("/api/admin/products/{id}", h.UpdateProduct)
		r.Delete("/api/admin/products/{id}", h.DeleteProduct)
		r.Post("/api/admin/products/{id}/duplicate", h.DuplicateProduct)
	})
}

// CreateCategory creates a new category. Duplicate names are rejected so the
// storefront never shows two identically named sections.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondDecodeError(w, err)
		return
	}

	if h.categoryNameTaken(req.Name, "") {
		middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
		return
	}

	category := h.catalog.AddCategory(r.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})

	h.logger.Info("Category created", zap.String("category_id", category.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

// UpdateCategory applies a partial update to an existing category.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCategoryRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondDecodeError(w, err)
		return
	}

	if h.catalog.GetCategoryByID(id) == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "Name", Message: "This field is required"},
			})
			return
		}
		if h.categoryNameTaken(*req.Name, id) {
			middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
			return
		}
	}

	category := h.catalog.UpdateCategory(r.Context(), id, service.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if category == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}

	h.logger.Info("Category updated", zap.String("category_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// DeleteCategory removes a category; its products are detached, not deleted.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.catalog.DeleteCategory(r.Context(), id) {
		middleware.RespondWithError(w, http.StatusNotFound, "category not found")
		return
	}

	h.logger.Info("Category deleted", zap.String("category_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// CreateProduct creates a new product. Derived fields come back recomputed.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondDecodeError(w, err)
		return
	}

	// New products are in stock unless the form says otherwise.
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := h.catalog.AddProduct(r.Context(), service.ProductInput{
		Name:            req.Name,
		Headline:        req.Headline,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		Images:          req.Images,
		ProductImages:   req.ProductImages,
		MRP:             req.MRP,
		DiscountedPrice: req.DiscountedPrice,
		Price:           req.Price,
		InStock:         inStock,
		IsFeatured:      req.IsFeatured,
		Features:        req.Features,
		ProductFeatures: req.ProductFeatures,
		Specifications:  req.Specifications,
		Benefits:        req.Benefits,
		Tags:            req.Tags,
	})

	h.logger.Info("Product created", zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct applies a partial update to an existing product.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.respondDecodeError(w, err)
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "Name", Message: "This field is required"},
		})
		return
	}

	product := h.catalog.UpdateProduct(r.Context(), id, service.ProductPatch{
		Name:            req.Name,
		Headline:        req.Headline,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		Images:          req.Images,
		ProductImages:   req.ProductImages,
		MRP:             req.MRP,
		DiscountedPrice: req.DiscountedPrice,
		Price:           req.Price,
		InStock:         req.InStock,
		IsFeatured:      req.IsFeatured,
		Features:        req.Features,
		ProductFeatures: req.ProductFeatures,
		Specifications:  req.Specifications,
		Benefits:        req.Benefits,
		Tags:            req.Tags,
	})
	if product == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !h.catalog.DeleteProduct(r.Context(), id) {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateProduct deep-copies a product under a fresh id and "(Copy)" name.
func (h *AdminHandler) DuplicateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product := h.catalog.DuplicateProduct(r.Context(), id)
	if product == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Product duplicated",
		zap.String("source_id", id),
		zap.String("product_id", product.ID))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// SaveDraft stores the admin form's autosaved draft blob. The payload is
// opaque; only well-formed JSON is required.
func (h *AdminHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if !json.Valid(body) {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalog.SaveDraft(r.Context(), body); err != nil {
		h.logger.Error("Failed to save draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to save draft")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDraft returns the saved draft blob, if any.
func (h *AdminHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.catalog.LoadDraft(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "no draft saved")
			return
		}

		h.logger.Error("Failed to load draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load draft")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(draft)
}

// ClearDraft discards the saved draft blob.
func (h *AdminHandler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.ClearDraft(r.Context()); err != nil {
		h.logger.Error("Failed to clear draft", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear draft")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) respondDecodeError(w http.ResponseWriter, err error) {
	h.logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}

func (h *AdminHandler) categoryNameTaken(name, excludeID string) bool {
	for _, category := range h.catalog.Categories() {
		if category.ID != excludeID && strings.EqualFold(category.Name, name) {
			return true
		}
	}
	return false
}
