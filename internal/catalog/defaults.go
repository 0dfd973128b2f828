package catalog

import "github.com/renovata/washquote/internal/estimate"

// Defaults returns the built-in pricing snapshot. It backs two things: the
// first seed of an empty database, and the fallback context used when the
// store cannot be read, so a customer can always be given a quote.
func Defaults() estimate.PricingContext {
	return estimate.PricingContext{
		Rates: estimate.RateConfig{
			PlumbingRatePerSqft:        50,
			TileCostPerUnit:            80,
			TilingLaborRatePerSqft:     85,
			TileCoverageSqft:           4,
			BreakagePct:                0.10,
			PlumbingFlatFeeComplete:    1500,
			PlumbingFlatFeeFixtureOnly: 500,
			TimelineDiscountPct:        0.05,
			WallHeightFt:               9,
		},
		Electrical: fixtureMap([]estimate.FixtureEntry{
			{ID: "water-heater", Name: "Water Heater", Price: 3500, Description: "Storage geyser, 15L"},
			{ID: "exhaust-fan", Name: "Exhaust Fan", Price: 1200},
			{ID: "led-mirror", Name: "LED Mirror", Price: 1800},
			{ID: "heated-towel-rail", Name: "Heated Towel Rail", Price: 4500},
		}),
		Additional: fixtureMap([]estimate.FixtureEntry{
			{ID: "bathtub", Name: "Bathtub", Price: 15000, Description: "Acrylic freestanding tub"},
			{ID: "rain-shower", Name: "Rain Shower Set", Price: 6500},
			{ID: "vanity-unit", Name: "Vanity Unit", Price: 9000},
			{ID: "wall-hung-wc", Name: "Wall-hung WC", Price: 11000},
		}),
		Brands: brandMap([]estimate.BrandEntry{
			{ID: "essentia", Name: "Essentia", PremiumPrice: 0},
			{ID: "aquaprime", Name: "AquaPrime", PremiumPrice: 1200},
			{ID: "lumiere", Name: "Lumière", PremiumPrice: 3000},
		}),
	}
}

func fixtureMap(entries []estimate.FixtureEntry) map[string]estimate.FixtureEntry {
	m := make(map[string]estimate.FixtureEntry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

func brandMap(entries []estimate.BrandEntry) map[string]estimate.BrandEntry {
	m := make(map[string]estimate.BrandEntry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}
