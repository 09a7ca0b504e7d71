package domain

import "math"

// DiscountPercent computes the rounded discount percentage from the listed
// MRP and the discounted price. It returns 0 when either input is absent,
// the MRP is not positive, or the discounted price is not strictly below
// the MRP.
func DiscountPercent(mrp, discounted *float64) int {
	if mrp == nil || discounted == nil {
		return 0
	}
	if *mrp <= 0 || *mrp <= *discounted {
		return 0
	}
	return int(math.Round((*mrp - *discounted) / *mrp * 100))
}

// EffectivePrice returns the price a buyer pays: the discounted price when
// present, otherwise the MRP. The result is a fresh pointer so callers cannot
// alias the inputs.
func EffectivePrice(mrp, discounted *float64) *float64 {
	if discounted != nil {
		v := *discounted
		return &v
	}
	if mrp != nil {
		v := *mrp
		return &v
	}
	return nil
}
