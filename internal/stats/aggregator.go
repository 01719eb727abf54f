package stats

import (
	"math"
	"sort"
	"time"

	"waste-bi-backend/internal/model"
)

// ComputeTotals folds the whole record set into facility-wide statistics.
// Pure, order-independent, recomputed from scratch on every call; record
// counts stay in the tens to low thousands so nothing is cached.
func ComputeTotals(trucks []model.TruckRecord, now time.Time) model.TotalStats {
	totals := model.TotalStats{
		RecyclingCategories: []model.CategoryTotal{},
	}

	byCategory := make(map[string]float64)
	for _, truck := range trucks {
		totals.TotalInitial += truck.InitialWeight
		totals.TotalOrganic += truck.OrganicWeight
		totals.TotalInorganic += truck.InorganicWeight
		totals.TotalProcessed += truck.TotalProcessed

		// Trucks still awaiting sorting contribute their full initial weight
		// here: the dashboard reads this as weight not yet recovered.
		totals.TotalDifference += truck.InitialWeight - (truck.OrganicWeight + truck.InorganicWeight)

		for _, item := range truck.WasteItems {
			byCategory[item.CategoryID] += item.Weight
		}
	}

	totals.TotalRecycled = totals.TotalProcessed
	totals.TotalNonRecycled = totals.TotalDifference
	if totals.TotalInitial > 0 {
		totals.RecyclingRate = totals.TotalProcessed / totals.TotalInitial * 100
	}

	ids := make([]string, 0, len(byCategory))
	for id := range byCategory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		totals.RecyclingCategories = append(totals.RecyclingCategories, model.CategoryTotal{
			CategoryID: id,
			Name:       model.CategoryName(id),
			Weight:     byCategory[id],
		})
	}

	totals.CO2Emissions = co2Series(totals.TotalInitial, totals.TotalDifference, now.Year())
	return totals
}

// co2Series is the simulated year-over-year emissions chart data. The scale
// factors are fixed presentation constants with no physical meaning.
func co2Series(totalInitial, totalDifference float64, currentYear int) []model.CO2Point {
	return []model.CO2Point{
		{Year: currentYear - 3, Value: math.Round(totalInitial * 0.8)},
		{Year: currentYear - 2, Value: math.Round(totalInitial * 0.6)},
		{Year: currentYear - 1, Value: math.Round(totalInitial * 0.4)},
		{Year: currentYear, Value: math.Round(totalDifference * 0.2)},
	}
}
