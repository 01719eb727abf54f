package model

// CategoryTotal is the summed weight of one waste category across all sorted
// loads.
type CategoryTotal struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
}

// CO2Point is one entry of the simulated emissions series shown on the
// dashboard chart. Presentational, not a measured quantity.
type CO2Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TotalStats is the facility-wide roll-up of all truck records.
type TotalStats struct {
	TotalInitial   float64 `json:"totalInitial"`
	TotalOrganic   float64 `json:"totalOrganic"`
	TotalInorganic float64 `json:"totalInorganic"`

	// TotalDifference sums initialWeight minus the legacy organic/inorganic
	// pair, so trucks still awaiting sorting contribute their full initial
	// weight. The dashboard reads this as weight not yet recovered.
	TotalDifference float64 `json:"totalDifference"`

	TotalProcessed   float64 `json:"totalProcessed"`
	TotalRecycled    float64 `json:"totalRecycled"`
	TotalNonRecycled float64 `json:"totalNonRecycled"`
	RecyclingRate    float64 `json:"recyclingRate"`

	RecyclingCategories []CategoryTotal `json:"recyclingCategories"`
	CO2Emissions        []CO2Point      `json:"co2Emissions"`
}
