package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"cooler-emporium/internal/domain"
	"cooler-emporium/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Slot keys for the persisted catalog state. The draft slot is independent of
// the catalog slots and holds an advisory admin-form blob.
const (
	CategoriesSlotKey   = "cooler_emporium_categories"
	ProductsSlotKey     = "cooler_emporium_products"
	ProductDraftSlotKey = "cooler_emporium_product_draft"
)

// AllCategories is the filter value that selects every product regardless of
// its category reference.
const AllCategories = "all"

// CategoryInput is the payload for creating a category. The store assigns the
// id, slug and creation time.
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
}

// CategoryPatch is a partial category update; nil fields are left unchanged.
// A name change recomputes the slug.
type CategoryPatch struct {
	Name        *string
	Description *string
	Icon        *string
}

// ProductInput is the payload for creating a product. The store assigns the
// id and creation time and recomputes all derived fields.
type ProductInput struct {
	Name            string
	Headline        string
	Description     string
	CategoryID      string
	Images          []string
	ProductImages   []domain.ProductImage
	MRP             *float64
	DiscountedPrice *float64
	Price           *float64
	InStock         bool
	IsFeatured      bool
	Features        []string
	ProductFeatures []domain.ProductFeature
	Specifications  []domain.ProductSpecification
	Benefits        []domain.ProductBenefit
	Tags            []string
}

// ProductPatch is a partial product update; nil fields are left unchanged.
type ProductPatch struct {
	Name            *string
	Headline        *string
	Description     *string
	CategoryID      *string
	Images          *[]string
	ProductImages   *[]domain.ProductImage
	MRP             *float64
	DiscountedPrice *float64
	Price           *float64
	InStock         *bool
	IsFeatured      *bool
	Features        *[]string
	ProductFeatures *[]domain.ProductFeature
	Specifications  *[]domain.ProductSpecification
	Benefits        *[]domain.ProductBenefit
	Tags            *[]string
}

// CatalogService owns the two catalog collections. All mutations go through
// its operations; accessors return deep copies so callers can never reach the
// owned records. Every mutation rewrites the whole affected collection to its
// storage slot; persistence failures are logged and do not roll back the
// in-memory state.
type CatalogService struct {
	mu         sync.RWMutex
	store      storage.Store
	logger     *zap.Logger
	categories []*domain.Category
	products   []*domain.Product
}

// NewCatalogService rehydrates the catalog from the store. A missing or
// unparseable slot falls back to the seed data.
func NewCatalogService(store storage.Store, logger *zap.Logger) *CatalogService {
	s := &CatalogService{
		store:  store,
		logger: logger,
	}

	ctx := context.Background()
	s.categories = loadSlot(ctx, store, logger, CategoriesSlotKey, seedCategories)
	s.products = loadSlot(ctx, store, logger, ProductsSlotKey, seedProducts)

	return s
}

func loadSlot[T any](ctx context.Context, store storage.Store, logger *zap.Logger, key string, seed func() []*T) []*T {
	data, err := store.Load(ctx, key)
	if err != nil {
		if err != storage.ErrSlotNotFound {
			logger.Warn("Failed to load catalog slot, falling back to seed data",
				zap.String("slot", key),
				zap.Error(err),
			)
		}
		return seed()
	}

	var records []*T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("Persisted catalog slot is unparseable, falling back to seed data",
			zap.String("slot", key),
			zap.Error(err),
		)
		return seed()
	}
	return records
}

func (s *CatalogService) persistCategories(ctx context.Context) {
	s.persistSlot(ctx, CategoriesSlotKey, s.categories)
}

func (s *CatalogService) persistProducts(ctx context.Context) {
	s.persistSlot(ctx, ProductsSlotKey, s.products)
}

func (s *CatalogService) persistSlot(ctx context.Context, key string, collection interface{}) {
	data, err := json.Marshal(collection)
	if err != nil {
		s.logger.Error("Failed to serialize catalog slot", zap.String("slot", key), zap.Error(err))
		return
	}
	if err := s.store.Save(ctx, key, data); err != nil {
		s.logger.Error("Failed to persist catalog slot", zap.String("slot", key), zap.Error(err))
	}
}

func newEntityID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Categories returns all categories in insertion order.
func (s *CatalogService) Categories() []*domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Category, len(s.categories))
	for i, c := range s.categories {
		out[i] = c.Clone()
	}
	return out
}

// Products returns all products in insertion order.
func (s *CatalogService) Products() []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Product, len(s.products))
	for i, p := range s.products {
		out[i] = p.Clone()
	}
	return out
}

// AddCategory creates a category with a generated id and a slug derived from
// the name, and appends it to the collection.
func (s *CatalogService) AddCategory(ctx context.Context, in CategoryInput) *domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := &domain.Category{
		ID:          newEntityID("cat"),
		Name:        in.Name,
		Slug:        domain.Slugify(in.Name),
		Description: in.Description,
		Icon:        in.Icon,
		CreatedAt:   time.Now(),
	}
	s.categories = append(s.categories, category)
	s.persistCategories(ctx)

	s.logger.Info("Category added",
		zap.String("category_id", category.ID),
		zap.String("slug", category.Slug),
	)
	return category.Clone()
}

// UpdateCategory merges the patch into the matching category. A name change
// recomputes the slug. Returns nil when the id is unknown.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) *domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := s.findCategory(id)
	if category == nil {
		return nil
	}

	if patch.Name != nil {
		category.Name = *patch.Name
		category.Slug = domain.Slugify(*patch.Name)
	}
	if patch.Description != nil {
		category.Description = *patch.Description
	}
	if patch.Icon != nil {
		category.Icon = *patch.Icon
	}

	s.persistCategories(ctx)
	return category.Clone()
}

// DeleteCategory detaches every dependent product (categoryId becomes empty,
// meaning uncategorized) and then removes the category. Detachment is
// persisted before removal so a crash between the two writes never leaves a
// dangling reference. Returns false when the id is unknown.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCategory(id) == nil {
		return false
	}

	detached := 0
	for _, p := range s.products {
		if p.CategoryID == id {
			p.CategoryID = ""
			detached++
		}
	}
	if detached > 0 {
		s.persistProducts(ctx)
	}

	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.persistCategories(ctx)

	s.logger.Info("Category deleted",
		zap.String("category_id", id),
		zap.Int("detached_products", detached),
	)
	return true
}

// AddProduct creates a product with a generated id, recomputes its derived
// fields and appends it to the collection.
func (s *CatalogService) AddProduct(ctx context.Context, in ProductInput) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := &domain.Product{
		ID:              newEntityID("prod"),
		Name:            in.Name,
		Headline:        in.Headline,
		Description:     in.Description,
		CategoryID:      in.CategoryID,
		Images:          append([]string(nil), in.Images...),
		ProductImages:   append([]domain.ProductImage(nil), in.ProductImages...),
		MRP:             in.MRP,
		DiscountedPrice: in.DiscountedPrice,
		Price:           in.Price,
		InStock:         in.InStock,
		IsFeatured:      in.IsFeatured,
		Features:        append([]string(nil), in.Features...),
		ProductFeatures: append([]domain.ProductFeature(nil), in.ProductFeatures...),
		Specifications:  append([]domain.ProductSpecification(nil), in.Specifications...),
		Benefits:        append([]domain.ProductBenefit(nil), in.Benefits...),
		Tags:            append([]string(nil), in.Tags...),
		CreatedAt:       time.Now(),
	}
	normalizeProduct(product)

	s.products = append(s.products, product)
	s.persistProducts(ctx)

	s.logger.Info("Product added", zap.String("product_id", product.ID))
	return product.Clone()
}

// UpdateProduct merges the patch into the matching product, recomputes the
// derived fields and refreshes updatedAt. Returns nil when the id is unknown.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := s.findProduct(id)
	if product == nil {
		return nil
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Headline != nil {
		product.Headline = *patch.Headline
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.CategoryID != nil {
		product.CategoryID = *patch.CategoryID
	}
	if patch.Images != nil {
		product.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.ProductImages != nil {
		product.ProductImages = append([]domain.ProductImage(nil), (*patch.ProductImages)...)
		// Clearing the structured list clears its legacy mirror, unless the
		// patch sets images directly (the legacy passthrough).
		if len(product.ProductImages) == 0 && patch.Images == nil {
			product.Images = nil
		}
	}
	if patch.MRP != nil {
		product.MRP = patch.MRP
	}
	if patch.DiscountedPrice != nil {
		product.DiscountedPrice = patch.DiscountedPrice
	}
	if patch.Price != nil {
		product.Price = patch.Price
	}
	if patch.InStock != nil {
		product.InStock = *patch.InStock
	}
	if patch.IsFeatured != nil {
		product.IsFeatured = *patch.IsFeatured
	}
	if patch.Features != nil {
		product.Features = append([]string(nil), (*patch.Features)...)
	}
	if patch.ProductFeatures != nil {
		product.ProductFeatures = append([]domain.ProductFeature(nil), (*patch.ProductFeatures)...)
		if len(product.ProductFeatures) == 0 && patch.Features == nil {
			product.Features = nil
		}
	}
	if patch.Specifications != nil {
		product.Specifications = append([]domain.ProductSpecification(nil), (*patch.Specifications)...)
	}
	if patch.Benefits != nil {
		product.Benefits = append([]domain.ProductBenefit(nil), (*patch.Benefits)...)
	}
	if patch.Tags != nil {
		product.Tags = append([]string(nil), (*patch.Tags)...)
	}

	normalizeProduct(product)
	now := time.Now()
	product.UpdatedAt = &now

	s.persistProducts(ctx)
	return product.Clone()
}

// DeleteProduct removes the matching product. Returns false when the id is
// unknown.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findProduct(id) == nil {
		return false
	}

	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.persistProducts(ctx)

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return true
}

// DuplicateProduct appends a deep copy of the source product with a fresh id
// and creation time and the name suffixed with " (Copy)". Returns nil when
// the source id is unknown.
func (s *CatalogService) DuplicateProduct(ctx context.Context, id string) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	source := s.findProduct(id)
	if source == nil {
		return nil
	}

	dup := source.Clone()
	dup.ID = newEntityID("prod")
	dup.Name = source.Name + " (Copy)"
	dup.CreatedAt = time.Now()

	s.products = append(s.products, dup)
	s.persistProducts(ctx)

	s.logger.Info("Product duplicated",
		zap.String("source_id", id),
		zap.String("product_id", dup.ID),
	)
	return dup.Clone()
}

// GetProductsByCategory returns products with a matching category reference
// in their original relative order. The AllCategories filter returns every
// product.
func (s *CatalogService) GetProductsByCategory(categoryID string) []*domain.Product {
	return s.FilterProducts(categoryID, "")
}

// FilterProducts applies the category filter and then a case-insensitive
// substring search over name and description, preserving insertion order.
func (s *CatalogService) FilterProducts(categoryID, query string) []*domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))

	out := []*domain.Product{}
	for _, p := range s.products {
		if categoryID != AllCategories && p.CategoryID != categoryID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

// GetCategoryByID returns the matching category, or nil when absent.
func (s *CatalogService) GetCategoryByID(id string) *domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findCategory(id).Clone()
}

// GetCategoryBySlug returns the category with the matching slug, or nil when
// absent. Category filters round-trip through URLs by slug.
func (s *CatalogService) GetCategoryBySlug(slug string) *domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Slug == slug {
			return c.Clone()
		}
	}
	return nil
}

// GetProductByID returns the matching product, or nil when absent.
func (s *CatalogService) GetProductByID(id string) *domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findProduct(id).Clone()
}

// GetCategoryProductCount counts the products referencing the category.
func (s *CatalogService) GetCategoryProductCount(categoryID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count
}

// ResolveCategory returns the product's category, or the Uncategorized
// placeholder when the reference is empty or dangling.
func (s *CatalogService) ResolveCategory(product *domain.Product) *domain.Category {
	if product == nil || product.CategoryID == "" {
		return domain.Uncategorized.Clone()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if c := s.findCategory(product.CategoryID); c != nil {
		return c.Clone()
	}
	return domain.Uncategorized.Clone()
}

// SaveDraft stores the admin form's autosaved draft blob in its own slot.
func (s *CatalogService) SaveDraft(ctx context.Context, draft json.RawMessage) error {
	return s.store.Save(ctx, ProductDraftSlotKey, draft)
}

// LoadDraft returns the autosaved draft blob; storage.ErrSlotNotFound when no
// draft exists.
func (s *CatalogService) LoadDraft(ctx context.Context) (json.RawMessage, error) {
	return s.store.Load(ctx, ProductDraftSlotKey)
}

// ClearDraft discards the autosaved draft blob.
func (s *CatalogService) ClearDraft(ctx context.Context) error {
	return s.store.Delete(ctx, ProductDraftSlotKey)
}

func (s *CatalogService) findCategory(id string) *domain.Category {
	for _, c := range s.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *CatalogService) findProduct(id string) *domain.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// normalizeProduct recomputes every derived field so they can never drift
// from their inputs:
//   - productImages are ordered, exactly one is primary, and the legacy
//     images field mirrors their URLs;
//   - the legacy features field mirrors the ordered productFeatures titles;
//   - price and discountPercentage follow mrp/discountedPrice whenever either
//     is set. Products priced without an mrp keep their plain price.
func normalizeProduct(p *domain.Product) {
	if len(p.ProductImages) > 0 {
		sort.SliceStable(p.ProductImages, func(i, j int) bool {
			return p.ProductImages[i].Order < p.ProductImages[j].Order
		})

		primarySeen := false
		for i := range p.ProductImages {
			if p.ProductImages[i].IsPrimary {
				if primarySeen {
					p.ProductImages[i].IsPrimary = false
				}
				primarySeen = true
			}
		}
		if !primarySeen {
			p.ProductImages[0].IsPrimary = true
		}

		urls := make([]string, len(p.ProductImages))
		for i, img := range p.ProductImages {
			urls[i] = img.URL
		}
		p.Images = urls
	}

	if len(p.ProductFeatures) > 0 {
		sort.SliceStable(p.ProductFeatures, func(i, j int) bool {
			return p.ProductFeatures[i].Order < p.ProductFeatures[j].Order
		})

		titles := make([]string, len(p.ProductFeatures))
		for i, f := range p.ProductFeatures {
			titles[i] = f.Title
		}
		p.Features = titles
	}

	if p.MRP != nil || p.DiscountedPrice != nil {
		p.Price = domain.EffectivePrice(p.MRP, p.DiscountedPrice)
		p.DiscountPercentage = domain.DiscountPercent(p.MRP, p.DiscountedPrice)
	} else {
		p.DiscountPercentage = 0
	}
}
