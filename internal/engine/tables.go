package engine

// categoryProfile groups every category-keyed constant the engine uses.
// Keeping them in one struct makes the table exhaustive: a category is
// either fully known or falls back to defaultProfile wholesale.
type categoryProfile struct {
	// DemandMultiplier scales baseline market traffic.
	DemandMultiplier float64
	// GrowthCurve holds year-over-year demand growth factors; indexes
	// past the end clamp to the last value.
	GrowthCurve [5]float64
	// CompetitiveAdjustment reflects pricing pressure from competitors.
	CompetitiveAdjustment float64
	// DemandElasticity is the % demand change per % price change.
	// Always negative; only its magnitude feeds the price model.
	DemandElasticity float64
	// MarketCondition reflects the category's overall market direction.
	MarketCondition float64
}

// defaultProfile applies to any category missing from the table.
var defaultProfile = categoryProfile{
	DemandMultiplier:      1.0,
	GrowthCurve:           [5]float64{1.0, 1.02, 1.04, 1.05, 1.06},
	CompetitiveAdjustment: 1.0,
	DemandElasticity:      -1.0,
	MarketCondition:       1.0,
}

var categoryProfiles = map[string]categoryProfile{
	"Electronics": {
		DemandMultiplier:      2.5,
		GrowthCurve:           [5]float64{1.0, 1.15, 1.25, 1.30, 1.35},
		CompetitiveAdjustment: 0.95,
		DemandElasticity:      -1.5,
		MarketCondition:       1.05,
	},
	"Home Automation": {
		DemandMultiplier:      2.0,
		GrowthCurve:           [5]float64{1.0, 1.20, 1.35, 1.45, 1.55},
		CompetitiveAdjustment: 1.1,
		DemandElasticity:      -1.2,
		MarketCondition:       1.15,
	},
	"Transportation": {
		DemandMultiplier:      1.8,
		GrowthCurve:           [5]float64{1.0, 1.10, 1.18, 1.25, 1.30},
		CompetitiveAdjustment: 1.05,
		DemandElasticity:      -0.8,
		MarketCondition:       1.08,
	},
	"Wearables": {
		DemandMultiplier:      1.6,
		GrowthCurve:           [5]float64{1.0, 1.12, 1.20, 1.25, 1.28},
		CompetitiveAdjustment: 1.08,
		DemandElasticity:      -1.3,
		MarketCondition:       1.03,
	},
	"Outdoor & Sports": {
		DemandMultiplier:      1.4,
		GrowthCurve:           [5]float64{1.0, 1.08, 1.15, 1.20, 1.22},
		CompetitiveAdjustment: 1.02,
		DemandElasticity:      -1.1,
		MarketCondition:       1.06,
	},
	"Stationary": {
		DemandMultiplier:      1.2,
		GrowthCurve:           [5]float64{1.0, 0.98, 0.95, 0.92, 0.90},
		CompetitiveAdjustment: 0.98,
		DemandElasticity:      -0.6,
		MarketCondition:       0.95,
	},
	"Apparel": {
		DemandMultiplier:      1.5,
		GrowthCurve:           [5]float64{1.0, 1.05, 1.08, 1.10, 1.12},
		CompetitiveAdjustment: 1.03,
		DemandElasticity:      -1.4,
		MarketCondition:       1.02,
	},
	"Home & Garden": {
		DemandMultiplier:      1.3,
		GrowthCurve:           [5]float64{1.0, 1.06, 1.10, 1.12, 1.15},
		CompetitiveAdjustment: 1.01,
		DemandElasticity:      -0.9,
		MarketCondition:       1.04,
	},
	"Furniture": {
		DemandMultiplier:      1.1,
		GrowthCurve:           [5]float64{1.0, 1.03, 1.05, 1.06, 1.08},
		CompetitiveAdjustment: 1.06,
		DemandElasticity:      -1.0,
		MarketCondition:       1.01,
	},
	"Books": {
		DemandMultiplier:      0.9,
		GrowthCurve:           [5]float64{1.0, 0.95, 0.90, 0.87, 0.85},
		CompetitiveAdjustment: 0.95,
		DemandElasticity:      -1.6,
		MarketCondition:       0.93,
	},
}

// profileFor returns the constants for a category, or defaultProfile
// when the category is unknown.
func profileFor(category string) categoryProfile {
	if profile, ok := categoryProfiles[category]; ok {
		return profile
	}
	return defaultProfile
}

// KnownCategories lists the categories with dedicated constant sets.
func KnownCategories() []string {
	categories := make([]string, 0, len(categoryProfiles))
	for category := range categoryProfiles {
		categories = append(categories, category)
	}
	return categories
}
