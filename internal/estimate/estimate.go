package estimate

import (
	"fmt"
	"math"
)

// Calculate computes the full cost breakdown for one set of wizard
// selections against a pricing context snapshot. It is pure and synchronous:
// identical inputs always produce an identical breakdown.
func Calculate(sel SelectionSet, pc PricingContext) (Breakdown, error) {
	if err := validateSelection(sel); err != nil {
		return Breakdown{}, err
	}
	if err := pc.Rates.Validate(); err != nil {
		return Breakdown{}, err
	}

	rates := pc.Rates
	var b Breakdown

	b.FloorArea = sel.Dimensions.Length * sel.Dimensions.Width
	b.WallArea = 2 * (sel.Dimensions.Length + sel.Dimensions.Width) * sel.Dimensions.Height
	b.TotalArea = b.FloorArea + b.WallArea

	// Two independent ceilings: breakage applies to the already-rounded
	// tile count, not to the raw area. At boundary values this changes the
	// total by whole tiles, so the stages must stay separate.
	b.TileQuantity = math.Ceil(b.TotalArea / rates.TileCoverageSqft)
	b.TileQuantityWithBreakage = math.Ceil(b.TileQuantity * (1 + rates.BreakagePct))

	b.TileMaterialCost = b.TileQuantityWithBreakage * rates.TileCostPerUnit
	// Labor follows the continuous area, not the tile count.
	b.TilingLaborCost = b.TotalArea * rates.TilingLaborRatePerSqft
	b.TotalTilingCost = b.TileMaterialCost + b.TilingLaborCost

	electrical, err := sumFixturePrices(sel.ElectricalFixtureIDs, pc.Electrical, "electrical")
	if err != nil {
		return Breakdown{}, err
	}
	b.ElectricalFixturesPrice = electrical

	b.PlumbingPrice = plumbingFlatFee(sel.Plumbing, rates) + b.FloorArea*rates.PlumbingRatePerSqft

	additional, err := sumFixturePrices(sel.AdditionalFixtureIDs, pc.Additional, "additional")
	if err != nil {
		return Breakdown{}, err
	}
	b.AdditionalFixturesPrice = additional

	if sel.BrandID != "" {
		// Ids absent from the catalog contribute zero, never an error.
		if brand, ok := pc.Brands[sel.BrandID]; ok {
			if brand.PremiumPrice < 0 {
				return Breakdown{}, fmt.Errorf("brand %q has negative premium: %w", brand.ID, ErrConfiguration)
			}
			b.BrandPremium = brand.PremiumPrice
		}
	}

	b.Subtotal = b.ElectricalFixturesPrice + b.PlumbingPrice + b.AdditionalFixturesPrice +
		b.BrandPremium + b.TotalTilingCost + b.BasePrice

	if sel.Timeline == TimelineFlexible {
		b.TimelineDiscount = b.Subtotal * rates.TimelineDiscountPct
	}

	b.Total = b.Subtotal - b.TimelineDiscount
	if b.Total < 0 {
		b.Total = 0
	}

	return b, nil
}

func validateSelection(sel SelectionSet) error {
	d := sel.Dimensions
	if d.Length <= 0 || d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("dimensions must be positive, got %gx%gx%g: %w", d.Length, d.Width, d.Height, ErrInvalidGeometry)
	}

	switch sel.Plumbing {
	case PlumbingComplete, PlumbingFixtureOnly:
	default:
		return fmt.Errorf("plumbing requirement %q: %w", sel.Plumbing, ErrMissingSelection)
	}

	switch sel.Timeline {
	case TimelineStandard, TimelineFlexible:
	default:
		return fmt.Errorf("timeline %q: %w", sel.Timeline, ErrMissingSelection)
	}

	return nil
}

// Validate checks a rate snapshot for nonsensical values. Calculate applies
// it before computing; the admin API applies it before persisting.
func (rates RateConfig) Validate() error {
	if rates.TileCoverageSqft <= 0 {
		return fmt.Errorf("tile coverage must be positive, got %g: %w", rates.TileCoverageSqft, ErrConfiguration)
	}
	if rates.TimelineDiscountPct < 0 || rates.TimelineDiscountPct > 1 {
		return fmt.Errorf("timeline discount pct must be within [0,1], got %g: %w", rates.TimelineDiscountPct, ErrConfiguration)
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"plumbing_rate_per_sqft", rates.PlumbingRatePerSqft},
		{"tile_cost_per_unit", rates.TileCostPerUnit},
		{"tiling_labor_rate_per_sqft", rates.TilingLaborRatePerSqft},
		{"breakage_pct", rates.BreakagePct},
		{"plumbing_flat_fee_complete", rates.PlumbingFlatFeeComplete},
		{"plumbing_flat_fee_fixture_only", rates.PlumbingFlatFeeFixtureOnly},
		{"wall_height_ft", rates.WallHeightFt},
	}
	for _, c := range nonNegative {
		if c.value < 0 {
			return fmt.Errorf("%s must not be negative, got %g: %w", c.field, c.value, ErrConfiguration)
		}
	}

	return nil
}

// sumFixturePrices totals the catalog prices of the selected ids. Ids not
// present in the catalog contribute zero; stale selections referencing a
// deleted fixture must not break an estimate.
func sumFixturePrices(ids []string, cat map[string]FixtureEntry, catalogName string) (float64, error) {
	var sum float64
	for _, id := range ids {
		entry, ok := cat[id]
		if !ok {
			continue
		}
		if entry.Price < 0 {
			return 0, fmt.Errorf("%s fixture %q has negative price: %w", catalogName, id, ErrConfiguration)
		}
		sum += entry.Price
	}
	return sum, nil
}

func plumbingFlatFee(req PlumbingRequirement, rates RateConfig) float64 {
	switch req {
	case PlumbingComplete:
		return rates.PlumbingFlatFeeComplete
	case PlumbingFixtureOnly:
		return rates.PlumbingFlatFeeFixtureOnly
	}
	return 0
}
