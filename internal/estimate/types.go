package estimate

// ProjectType distinguishes a from-scratch build from a renovation.
type ProjectType string

const (
	ProjectNew        ProjectType = "new"
	ProjectRenovation ProjectType = "renovation"
)

// PlumbingRequirement is the kind of plumbing work the customer needs.
type PlumbingRequirement string

const (
	PlumbingComplete    PlumbingRequirement = "complete"
	PlumbingFixtureOnly PlumbingRequirement = "fixture-only"
)

// Timeline is the schedule the customer accepts. Flexible earns a discount.
type Timeline string

const (
	TimelineStandard Timeline = "standard"
	TimelineFlexible Timeline = "flexible"
)

// Dimensions are the washroom footprint and wall height, in feet.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Customer holds the contact fields collected on the final wizard step.
// Validation happens in the client; the estimator never reads these.
type Customer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// SelectionSet is the wizard's accumulated choices for one estimate.
type SelectionSet struct {
	ProjectType          ProjectType         `json:"project_type"`
	Dimensions           Dimensions          `json:"dimensions"`
	ElectricalFixtureIDs []string            `json:"electrical_fixture_ids"`
	Plumbing             PlumbingRequirement `json:"plumbing"`
	AdditionalFixtureIDs []string            `json:"additional_fixture_ids"`
	Timeline             Timeline            `json:"timeline"`
	BrandID              string              `json:"brand_id,omitempty"`
	Customer             Customer            `json:"customer"`
}

// RateConfig is an immutable snapshot of the admin-configured rates.
type RateConfig struct {
	PlumbingRatePerSqft        float64 `json:"plumbing_rate_per_sqft"`
	TileCostPerUnit            float64 `json:"tile_cost_per_unit"`
	TilingLaborRatePerSqft     float64 `json:"tiling_labor_rate_per_sqft"`
	TileCoverageSqft           float64 `json:"tile_coverage_sqft"`
	BreakagePct                float64 `json:"breakage_pct"`
	PlumbingFlatFeeComplete    float64 `json:"plumbing_flat_fee_complete"`
	PlumbingFlatFeeFixtureOnly float64 `json:"plumbing_flat_fee_fixture_only"`
	TimelineDiscountPct        float64 `json:"timeline_discount_pct"`

	// WallHeightFt is the policy wall height the wizard pre-fills.
	// Callers may still estimate with any positive height.
	WallHeightFt float64 `json:"wall_height_ft"`
}

// FixtureEntry is one priced fixture within a catalog. Ids are unique only
// within their own catalog.
type FixtureEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// BrandEntry maps a brand tier to its client-facing premium.
type BrandEntry struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PremiumPrice float64 `json:"premium_price"`
}

// PricingContext bundles everything the estimator needs besides the
// selections. It is fetched once per wizard session and passed around as a
// value; there is no ambient cache.
type PricingContext struct {
	Rates      RateConfig              `json:"rates"`
	Electrical map[string]FixtureEntry `json:"electrical"`
	Additional map[string]FixtureEntry `json:"additional"`
	Brands     map[string]BrandEntry   `json:"brands"`

	// UsingDefaults is true when the context came from the built-in
	// fallback snapshot instead of the store.
	UsingDefaults bool `json:"using_defaults"`
}

// Breakdown contains every computed quantity of one estimate. It is created
// once by Calculate and never mutated afterwards.
type Breakdown struct {
	FloorArea float64 `json:"floor_area"`
	WallArea  float64 `json:"wall_area"`
	TotalArea float64 `json:"total_area"`

	TileQuantity             float64 `json:"tile_quantity"`
	TileQuantityWithBreakage float64 `json:"tile_quantity_with_breakage"`
	TileMaterialCost         float64 `json:"tile_material_cost"`
	TilingLaborCost          float64 `json:"tiling_labor_cost"`
	TotalTilingCost          float64 `json:"total_tiling_cost"`

	ElectricalFixturesPrice float64 `json:"electrical_fixtures_price"`
	PlumbingPrice           float64 `json:"plumbing_price"`
	AdditionalFixturesPrice float64 `json:"additional_fixtures_price"`
	BrandPremium            float64 `json:"brand_premium"`

	// BasePrice exists for forward compatibility and is always 0 in the
	// current rate model.
	BasePrice float64 `json:"base_price"`

	Subtotal         float64 `json:"subtotal"`
	TimelineDiscount float64 `json:"timeline_discount"`
	Total            float64 `json:"total"`
}
