package service

import (
	"context"
	"encoding/json"
	"testing"

	"cooler-emporium/internal/domain"
	"cooler-emporium/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalog(t *testing.T) (*CatalogService, *storage.MemStore) {
	t.Helper()
	store := storage.NewMemStore()
	return NewCatalogService(store, zap.NewNop()), store
}

func TestSeedFallbackWhenStoreIsEmpty(t *testing.T) {
	svc, _ := newTestCatalog(t)

	assert.Len(t, svc.Categories(), 3)
	assert.Len(t, svc.Products(), 10)
}

func TestSeedFallbackWhenSlotIsCorrupt(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, CategoriesSlotKey, []byte("{not json")))
	require.NoError(t, store.Save(ctx, ProductsSlotKey, []byte("also not json")))

	svc := NewCatalogService(store, zap.NewNop())

	assert.Len(t, svc.Categories(), 3)
	assert.Len(t, svc.Products(), 10)
}

func TestAddCategoryDerivesSlug(t *testing.T) {
	svc, _ := newTestCatalog(t)

	category := svc.AddCategory(context.Background(), CategoryInput{
		Name:        "Air Conditioners & Coolers!",
		Description: "Split and window ACs",
		Icon:        "🧊",
	})

	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "air-conditioners-coolers", category.Slug)
	assert.False(t, category.CreatedAt.IsZero())
	assert.Len(t, svc.Categories(), 4)
}

func TestUpdateCategoryRecomputesSlugOnRename(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	category := svc.AddCategory(ctx, CategoryInput{Name: "Geysers"})

	name := "Water Heaters & Geysers"
	updated := svc.UpdateCategory(ctx, category.ID, CategoryPatch{Name: &name})
	require.NotNil(t, updated)
	assert.Equal(t, "water-heaters-geysers", updated.Slug)

	// Updating other fields leaves the slug untouched.
	desc := "Instant and storage heaters"
	updated = svc.UpdateCategory(ctx, category.ID, CategoryPatch{Description: &desc})
	require.NotNil(t, updated)
	assert.Equal(t, "water-heaters-geysers", updated.Slug)
	assert.Equal(t, desc, updated.Description)
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	dependents := svc.GetProductsByCategory("cat_1")
	require.NotEmpty(t, dependents)
	productsBefore := len(svc.Products())

	require.True(t, svc.DeleteCategory(ctx, "cat_1"))

	assert.Nil(t, svc.GetCategoryByID("cat_1"))
	assert.Len(t, svc.Products(), productsBefore, "product count must be unchanged")

	for _, p := range svc.Products() {
		assert.NotEqual(t, "cat_1", p.CategoryID)
	}
	for _, p := range dependents {
		detached := svc.GetProductByID(p.ID)
		require.NotNil(t, detached)
		assert.Equal(t, "", detached.CategoryID)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	categoriesBefore := svc.Categories()
	productsBefore := svc.Products()

	name := "Ghost"
	assert.Nil(t, svc.UpdateCategory(ctx, "cat_missing", CategoryPatch{Name: &name}))
	assert.False(t, svc.DeleteCategory(ctx, "cat_missing"))
	assert.Nil(t, svc.UpdateProduct(ctx, "prod_missing", ProductPatch{Name: &name}))
	assert.False(t, svc.DeleteProduct(ctx, "prod_missing"))
	assert.Nil(t, svc.DuplicateProduct(ctx, "prod_missing"))

	assert.Equal(t, categoriesBefore, svc.Categories())
	assert.Equal(t, productsBefore, svc.Products())
}

func TestAddProductRecomputesPricing(t *testing.T) {
	svc, _ := newTestCatalog(t)

	product := svc.AddProduct(context.Background(), ProductInput{
		Name:            "IceBerg Mini Cooler",
		Description:     "Personal cooler",
		CategoryID:      "cat_2",
		MRP:             floatPtr(15000),
		DiscountedPrice: floatPtr(9900),
		InStock:         true,
	})

	require.NotNil(t, product.Price)
	assert.Equal(t, 9900.0, *product.Price)
	assert.Equal(t, 34, product.DiscountPercentage)
}

func TestUpdateProductRecomputesPricingAndTimestamps(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	product := svc.AddProduct(ctx, ProductInput{
		Name: "Plain Fan", CategoryID: "cat_3", MRP: floatPtr(2000), DiscountedPrice: floatPtr(1500),
	})
	assert.Equal(t, 25, product.DiscountPercentage)
	assert.Nil(t, product.UpdatedAt)

	updated := svc.UpdateProduct(ctx, product.ID, ProductPatch{DiscountedPrice: floatPtr(1000)})
	require.NotNil(t, updated)
	assert.Equal(t, 50, updated.DiscountPercentage)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 1000.0, *updated.Price)
	assert.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, product.CreatedAt, updated.CreatedAt)
}

func TestPlainPriceSurvivesWithoutMRP(t *testing.T) {
	svc, _ := newTestCatalog(t)

	product := svc.AddProduct(context.Background(), ProductInput{
		Name:  "Budget Table Fan",
		Price: floatPtr(899),
	})

	require.NotNil(t, product.Price)
	assert.Equal(t, 899.0, *product.Price)
	assert.Equal(t, 0, product.DiscountPercentage)
}

func TestProductImageNormalization(t *testing.T) {
	svc, _ := newTestCatalog(t)

	product := svc.AddProduct(context.Background(), ProductInput{
		Name: "Gallery Cooler",
		ProductImages: []domain.ProductImage{
			{ID: "img_b", URL: "https://example.com/b.jpg", Order: 2},
			{ID: "img_a", URL: "https://example.com/a.jpg", Order: 1},
			{ID: "img_c", URL: "https://example.com/c.jpg", Order: 3, IsPrimary: true},
		},
	})

	// Ordered by Order, legacy images mirror the URLs.
	assert.Equal(t, []string{
		"https://example.com/a.jpg",
		"https://example.com/b.jpg",
		"https://example.com/c.jpg",
	}, product.Images)

	primaries := 0
	for _, img := range product.ProductImages {
		if img.IsPrimary {
			primaries++
			assert.Equal(t, "img_c", img.ID)
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestProductImagePrimaryDefaultsToFirst(t *testing.T) {
	svc, _ := newTestCatalog(t)

	product := svc.AddProduct(context.Background(), ProductInput{
		Name: "No Primary",
		ProductImages: []domain.ProductImage{
			{ID: "img_1", URL: "https://example.com/1.jpg", Order: 1},
			{ID: "img_2", URL: "https://example.com/2.jpg", Order: 2},
		},
	})

	assert.True(t, product.ProductImages[0].IsPrimary)
	assert.False(t, product.ProductImages[1].IsPrimary)
}

func TestFeatureTitlesMirrorStructuredFeatures(t *testing.T) {
	svc, _ := newTestCatalog(t)

	product := svc.AddProduct(context.Background(), ProductInput{
		Name: "Feature Rich",
		ProductFeatures: []domain.ProductFeature{
			{ID: "feat_2", Title: "Remote Control", Order: 2},
			{ID: "feat_1", Title: "Honeycomb Pads", Order: 1},
		},
	})

	assert.Equal(t, []string{"Honeycomb Pads", "Remote Control"}, product.Features)
}

func TestClearingStructuredListsClearsLegacyMirrors(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	product := svc.AddProduct(ctx, ProductInput{
		Name: "Stripped Cooler",
		ProductImages: []domain.ProductImage{
			{ID: "img_1", URL: "https://example.com/1.jpg", Order: 1},
		},
		ProductFeatures: []domain.ProductFeature{
			{ID: "feat_1", Title: "Honeycomb Pads", Order: 1},
		},
	})
	require.Equal(t, []string{"https://example.com/1.jpg"}, product.Images)
	require.Equal(t, []string{"Honeycomb Pads"}, product.Features)

	updated := svc.UpdateProduct(ctx, product.ID, ProductPatch{
		ProductImages:   &[]domain.ProductImage{},
		ProductFeatures: &[]domain.ProductFeature{},
	})

	require.NotNil(t, updated)
	assert.Empty(t, updated.ProductImages)
	assert.Empty(t, updated.Images, "legacy images must not outlive the cleared structured list")
	assert.Empty(t, updated.ProductFeatures)
	assert.Empty(t, updated.Features, "legacy features must not outlive the cleared structured list")
}

func TestLegacyFieldPatchesYieldToStructuredLists(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	product := svc.AddProduct(ctx, ProductInput{
		Name: "Mirrored Cooler",
		ProductImages: []domain.ProductImage{
			{ID: "img_1", URL: "https://example.com/real.jpg", Order: 1},
		},
	})

	// While the structured list is populated the mirror wins over a direct
	// legacy patch.
	updated := svc.UpdateProduct(ctx, product.ID, ProductPatch{
		Images: &[]string{"https://example.com/stale.jpg"},
	})
	require.NotNil(t, updated)
	assert.Equal(t, []string{"https://example.com/real.jpg"}, updated.Images)

	// Clearing the structured list in the same patch hands the legacy field
	// back to the caller.
	updated = svc.UpdateProduct(ctx, product.ID, ProductPatch{
		ProductImages: &[]domain.ProductImage{},
		Images:        &[]string{"https://example.com/legacy.jpg"},
	})
	require.NotNil(t, updated)
	assert.Empty(t, updated.ProductImages)
	assert.Equal(t, []string{"https://example.com/legacy.jpg"}, updated.Images)
}

func TestDuplicateProduct(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	source := svc.GetProductByID("prod_10")
	require.NotNil(t, source)

	dup := svc.DuplicateProduct(ctx, "prod_10")
	require.NotNil(t, dup)

	assert.NotEqual(t, source.ID, dup.ID)
	assert.Equal(t, source.Name+" (Copy)", dup.Name)
	assert.Equal(t, source.Description, dup.Description)
	assert.Equal(t, source.CategoryID, dup.CategoryID)
	assert.Equal(t, source.Images, dup.Images)
	assert.Equal(t, source.Features, dup.Features)
	assert.Equal(t, source.Tags, dup.Tags)
	assert.Equal(t, source.MRP, dup.MRP)
	assert.Equal(t, source.DiscountedPrice, dup.DiscountedPrice)
	assert.Equal(t, source.DiscountPercentage, dup.DiscountPercentage)
	assert.Len(t, svc.Products(), 11)
}

func TestGetProductsByCategory(t *testing.T) {
	svc, _ := newTestCatalog(t)

	all := svc.GetProductsByCategory(AllCategories)
	assert.Len(t, all, 10)

	fans := svc.GetProductsByCategory("cat_3")
	require.Len(t, fans, 3)
	// Original relative order preserved.
	assert.Equal(t, "prod_7", fans[0].ID)
	assert.Equal(t, "prod_8", fans[1].ID)
	assert.Equal(t, "prod_9", fans[2].ID)

	assert.Empty(t, svc.GetProductsByCategory("cat_missing"))
}

func TestFilterProductsSearch(t *testing.T) {
	svc, _ := newTestCatalog(t)

	matches := svc.FilterProducts(AllCategories, "CEILING")
	require.Len(t, matches, 1)
	assert.Equal(t, "WindFlow Ceiling Fan", matches[0].Name)

	// Search also matches descriptions and composes with the category filter.
	matches = svc.FilterProducts("cat_2", "honeycomb")
	require.Len(t, matches, 1)
	assert.Equal(t, "prod_4", matches[0].ID)

	assert.Empty(t, svc.FilterProducts("cat_3", "honeycomb"))
}

func TestGetCategoryProductCount(t *testing.T) {
	svc, _ := newTestCatalog(t)

	assert.Equal(t, 4, svc.GetCategoryProductCount("cat_1"))
	assert.Equal(t, 3, svc.GetCategoryProductCount("cat_2"))
	assert.Equal(t, 3, svc.GetCategoryProductCount("cat_3"))
	assert.Equal(t, 0, svc.GetCategoryProductCount("cat_missing"))
}

func TestGetCategoryBySlug(t *testing.T) {
	svc, _ := newTestCatalog(t)

	category := svc.GetCategoryBySlug("ro-purifier")
	require.NotNil(t, category)
	assert.Equal(t, "cat_1", category.ID)

	assert.Nil(t, svc.GetCategoryBySlug("missing-slug"))
}

func TestResolveCategory(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	product := svc.GetProductByID("prod_4")
	require.NotNil(t, product)
	assert.Equal(t, "Cooler", svc.ResolveCategory(product).Name)

	require.True(t, svc.DeleteCategory(ctx, "cat_2"))
	detached := svc.GetProductByID("prod_4")
	resolved := svc.ResolveCategory(detached)
	assert.Equal(t, "Uncategorized", resolved.Name)
	assert.Equal(t, "uncategorized", resolved.Slug)
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemStore()
	ctx := context.Background()

	first := NewCatalogService(store, zap.NewNop())
	first.AddCategory(ctx, CategoryInput{Name: "Heaters", Icon: "🔥"})
	first.AddProduct(ctx, ProductInput{
		Name:            "Blaze Room Heater",
		CategoryID:      "cat_3",
		MRP:             floatPtr(3000),
		DiscountedPrice: floatPtr(2400),
		Tags:            []string{"New Arrival"},
		Specifications: []domain.ProductSpecification{
			{ID: "spec_1", Label: "Power Consumption", Value: "2000", Unit: "Watts"},
		},
		Benefits: []domain.ProductBenefit{
			{ID: "benefit_1", Category: "For Families", Title: "Child Safe Grill"},
		},
	})

	// A fresh instance reading the same slots sees a deep-equal catalog.
	second := NewCatalogService(store, zap.NewNop())

	wantCategories, err := json.Marshal(first.Categories())
	require.NoError(t, err)
	gotCategories, err := json.Marshal(second.Categories())
	require.NoError(t, err)
	assert.JSONEq(t, string(wantCategories), string(gotCategories))

	wantProducts, err := json.Marshal(first.Products())
	require.NoError(t, err)
	gotProducts, err := json.Marshal(second.Products())
	require.NoError(t, err)
	assert.JSONEq(t, string(wantProducts), string(gotProducts))
}

func TestDraftSlotLifecycle(t *testing.T) {
	svc, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := svc.LoadDraft(ctx)
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)

	draft := json.RawMessage(`{"name":"half-typed product","price":"120"}`)
	require.NoError(t, svc.SaveDraft(ctx, draft))

	got, err := svc.LoadDraft(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(draft), string(got))

	require.NoError(t, svc.ClearDraft(ctx))
	_, err = svc.LoadDraft(ctx)
	assert.ErrorIs(t, err, storage.ErrSlotNotFound)
}

func TestAccessorsReturnCopies(t *testing.T) {
	svc, _ := newTestCatalog(t)

	product := svc.GetProductByID("prod_10")
	require.NotNil(t, product)
	product.Name = "mutated"
	product.Tags[0] = "mutated"

	fresh := svc.GetProductByID("prod_10")
	assert.Equal(t, "Havells Albus UV Plus Water Purifier", fresh.Name)
	assert.Equal(t, "Best Seller", fresh.Tags[0])
}
