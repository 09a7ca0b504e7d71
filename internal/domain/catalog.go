package domain

import (
	"time"
)

// Category represents a product category in the catalog.
// Slug is always the normalized form of the current Name.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Uncategorized is the placeholder category resolved for products whose
// category was deleted (CategoryID == "").
var Uncategorized = Category{
	ID:   "",
	Name: "Uncategorized",
	Slug: "uncategorized",
}

// ProductImage is one entry of a product's ordered image gallery.
type ProductImage struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	AltText   string `json:"altText"`
	IsPrimary bool   `json:"isPrimary"`
	Order     int    `json:"order"`
}

// ProductFeature is a structured selling point with a display order.
type ProductFeature struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

// ProductSpecification is a single label/value technical attribute.
type ProductSpecification struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// ProductBenefit is a customer-facing benefit grouped under a benefit category.
type ProductBenefit struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Product represents a catalog product.
//
// CategoryID is a weak reference: it may be the empty string when the
// referenced category has been deleted. Images and Features are legacy
// fields kept in sync with ProductImages and ProductFeatures. Price and
// DiscountPercentage are derived from MRP and DiscountedPrice.
type Product struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Headline           string                 `json:"headline,omitempty"`
	Description        string                 `json:"description"`
	CategoryID         string                 `json:"categoryId"`
	Images             []string               `json:"images"`
	ProductImages      []ProductImage         `json:"productImages,omitempty"`
	Price              *float64               `json:"price,omitempty"`
	MRP                *float64               `json:"mrp,omitempty"`
	DiscountedPrice    *float64               `json:"discountedPrice,omitempty"`
	DiscountPercentage int                    `json:"discountPercentage,omitempty"`
	InStock            bool                   `json:"inStock"`
	IsFeatured         bool                   `json:"isFeatured,omitempty"`
	Features           []string               `json:"features"`
	ProductFeatures    []ProductFeature       `json:"productFeatures,omitempty"`
	Specifications     []ProductSpecification `json:"specifications,omitempty"`
	Benefits           []ProductBenefit       `json:"benefits,omitempty"`
	Tags               []string               `json:"tags,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          *time.Time             `json:"updatedAt,omitempty"`
}

// Clone returns a deep copy of the product, including all nested sequences.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	c.Images = append([]string(nil), p.Images...)
	c.ProductImages = append([]ProductImage(nil), p.ProductImages...)
	c.Features = append([]string(nil), p.Features...)
	c.ProductFeatures = append([]ProductFeature(nil), p.ProductFeatures...)
	c.Specifications = append([]ProductSpecification(nil), p.Specifications...)
	c.Benefits = append([]ProductBenefit(nil), p.Benefits...)
	c.Tags = append([]string(nil), p.Tags...)
	c.Price = clonePrice(p.Price)
	c.MRP = clonePrice(p.MRP)
	c.DiscountedPrice = clonePrice(p.DiscountedPrice)
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// Clone returns a copy of the category.
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func clonePrice(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
