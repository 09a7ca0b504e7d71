package service

import (
	"time"

	"cooler-emporium/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

// seedCategories returns the default categories used when no persisted
// catalog exists yet.
func seedCategories() []*domain.Category {
	now := time.Now()
	return []*domain.Category{
		{
			ID:          "cat_1",
			Name:        "RO Purifier",
			Slug:        "ro-purifier",
			Description: "Reverse Osmosis water purification systems for clean, safe drinking water",
			Icon:        "💧",
			CreatedAt:   now,
		},
		{
			ID:          "cat_2",
			Name:        "Cooler",
			Slug:        "cooler",
			Description: "Air cooling solutions for hot climates",
			Icon:        "❄️",
			CreatedAt:   now,
		},
		{
			ID:          "cat_3",
			Name:        "Fans",
			Slug:        "fans",
			Description: "Ceiling, table, and pedestal fans",
			Icon:        "🌀",
			CreatedAt:   now,
		},
	}
}

// seedProducts returns the default product set matching the seed categories.
func seedProducts() []*domain.Product {
	now := time.Now()
	return []*domain.Product{
		{
			ID:                 "prod_10",
			Name:               "Havells Albus UV Plus Water Purifier",
			Headline:           "Pure Water, Healthy Living",
			Description:        "Transform your drinking water into a source of pure health with advanced 4-stage UV purification and germicidal UV-C protection. Features iProtect monitoring that automatically stops water flow if unsafe, 6L stainless steel tank, and sleek black design. Perfect for modern Indian homes with TDS up to 2000 ppm.",
			CategoryID:         "cat_1",
			Images:             []string{"https://images.unsplash.com/photo-1624958723474-a7eb2a0c2ae0?w=800&auto=format&fit=crop"},
			MRP:                floatPtr(15000),
			DiscountedPrice:    floatPtr(9900),
			DiscountPercentage: 34,
			Price:              floatPtr(9900),
			InStock:            true,
			IsFeatured:         true,
			Features:           []string{"4-Stage RO+UV+UF Purification", "iProtect Safety Monitoring", "6L Stainless Steel Tank", "15L/Hour Flow Rate", "Free Installation & 1-Year Warranty"},
			Tags:               []string{"Best Seller", "Limited Offer"},
			CreatedAt:          now,
		},
		{
			ID:          "prod_1",
			Name:        "AquaPure RO+UV Water Purifier",
			Description: "Advanced 7-stage purification with UV sterilization. Perfect for homes with hard water, removes up to 99.9% impurities.",
			CategoryID:  "cat_1",
			Images:      []string{"https://images.unsplash.com/photo-1624958723474-a7eb2a0c2ae0?w=800&auto=format&fit=crop"},
			Price:       floatPtr(12999),
			InStock:     true,
			Features:    []string{"7-Stage Purification", "UV+UF Technology", "12L Storage Tank", "Smart TDS Controller"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_2",
			Name:        "CrystalClear Compact RO",
			Description: "Space-saving design with powerful filtration. Ideal for small kitchens and apartments with built-in mineral enhancer.",
			CategoryID:  "cat_1",
			Images:      []string{"https://images.unsplash.com/photo-1564419320408-38e24e038739?w=800&auto=format&fit=crop"},
			Price:       floatPtr(8499),
			InStock:     true,
			Features:    []string{"5-Stage Filtration", "8L Storage", "Wall Mountable", "Mineral Enhancer"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_3",
			Name:        "ProPure Commercial RO",
			Description: "High-capacity RO system for offices and commercial spaces. 25L/hr purification rate with auto-flush technology.",
			CategoryID:  "cat_1",
			Images:      []string{"https://images.unsplash.com/photo-1585687433636-c1a5a1e98e9f?w=800&auto=format&fit=crop"},
			Price:       floatPtr(24999),
			InStock:     true,
			Features:    []string{"25L/Hr Capacity", "Auto Flush", "TDS Display", "Industrial Grade Filters"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_4",
			Name:        "Arctic Storm Desert Cooler",
			Description: "Powerful desert cooler with honeycomb pads for maximum cooling. Covers up to 500 sq.ft with whisper-quiet operation.",
			CategoryID:  "cat_2",
			Images:      []string{"https://images.unsplash.com/photo-1585771724684-38269d6639fd?w=800&auto=format&fit=crop"},
			Price:       floatPtr(9999),
			InStock:     true,
			Features:    []string{"60L Water Tank", "Honeycomb Pads", "4-Way Air Flow", "Auto Water Fill"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_5",
			Name:        "BreezeMaster Personal Cooler",
			Description: "Compact personal cooler perfect for bedrooms. Energy-efficient with ice chamber for extra cooling power.",
			CategoryID:  "cat_2",
			Images:      []string{"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=800&auto=format&fit=crop"},
			Price:       floatPtr(4999),
			InStock:     true,
			Features:    []string{"35L Capacity", "Ice Chamber", "Castor Wheels", "3-Speed Control"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_6",
			Name:        "CoolBreeze Tower Cooler",
			Description: "Sleek tower design cooler with 360° air distribution. Modern aesthetics with powerful cooling performance.",
			CategoryID:  "cat_2",
			Images:      []string{"https://images.unsplash.com/photo-1615874694520-474822394e73?w=800&auto=format&fit=crop"},
			Price:       floatPtr(7499),
			InStock:     true,
			Features:    []string{"360° Air Flow", "Touch Controls", "Remote Included", "Anti-Bacterial Tank"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_7",
			Name:        "WindFlow Ceiling Fan",
			Description: "Premium ceiling fan with aerodynamic blades. Ultra-silent operation with remote control and LED indicator.",
			CategoryID:  "cat_3",
			Images:      []string{"https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=800&auto=format&fit=crop"},
			Price:       floatPtr(2499),
			InStock:     true,
			Features:    []string{"1200mm Sweep", "5-Speed Remote", "Energy Star Rated", "Anti-Dust Coating"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_8",
			Name:        "TurboMax Pedestal Fan",
			Description: "Powerful pedestal fan with adjustable height and oscillation. Perfect for living rooms and offices.",
			CategoryID:  "cat_3",
			Images:      []string{"https://images.unsplash.com/photo-1572726729207-a78d6feb18d7?w=800&auto=format&fit=crop"},
			Price:       floatPtr(1999),
			InStock:     false,
			Features:    []string{"Adjustable Height", "Wide Oscillation", "3-Speed Control", "Tilt Adjustable"},
			CreatedAt:   now,
		},
		{
			ID:          "prod_9",
			Name:        "WhisperQuiet Table Fan",
			Description: "Compact table fan with ultra-quiet operation. Perfect for desks and bedside tables.",
			CategoryID:  "cat_3",
			Images:      []string{"https://images.unsplash.com/photo-1541640196167-da92986db4e8?w=800&auto=format&fit=crop"},
			Price:       floatPtr(899),
			InStock:     true,
			Features:    []string{"300mm Blade", "Silent Motor", "Tilt Adjustable", "Compact Design"},
			CreatedAt:   now,
		},
	}
}
