package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waste-bi-backend/internal/model"
)

func sortedTruck(id string, initial, organic, inorganic float64) model.TruckRecord {
	sortingDate := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	return model.TruckRecord{
		ID:            id,
		PlateNumber:   "B 1234 ABC",
		InitialWeight: initial,
		EntryDate:     time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC),
		Status:        model.StatusSorted,
		WasteItems: []model.WasteItem{
			{CategoryID: model.CategoryOrganic, Weight: organic},
			{CategoryID: model.CategoryInorganic, Weight: inorganic},
		},
		OrganicWeight:   organic,
		InorganicWeight: inorganic,
		TotalProcessed:  organic + inorganic,
		Difference:      initial - (organic + inorganic),
		SortingDate:     &sortingDate,
	}
}

func awaitingTruck(id string, initial float64) model.TruckRecord {
	return model.TruckRecord{
		ID:            id,
		PlateNumber:   "D 5678 XY",
		InitialWeight: initial,
		EntryDate:     time.Date(2026, 8, 21, 8, 0, 0, 0, time.UTC),
		Status:        model.StatusAwaitingSorting,
	}
}

func TestComputeTotals(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	trucks := []model.TruckRecord{
		sortedTruck("t1", 1000, 600, 350),
		awaitingTruck("t2", 500),
	}

	totals := ComputeTotals(trucks, now)

	assert.Equal(t, 1500.0, totals.TotalInitial)
	assert.Equal(t, 600.0, totals.TotalOrganic)
	assert.Equal(t, 350.0, totals.TotalInorganic)
	assert.Equal(t, 950.0, totals.TotalProcessed)
	// An unsorted truck contributes its full initial weight to the
	// difference total.
	assert.Equal(t, 550.0, totals.TotalDifference)
	assert.Equal(t, totals.TotalProcessed, totals.TotalRecycled)
	assert.Equal(t, totals.TotalDifference, totals.TotalNonRecycled)
	assert.InDelta(t, 950.0/1500.0*100, totals.RecyclingRate, 1e-9)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	assert.Zero(t, totals.TotalInitial)
	assert.Zero(t, totals.RecyclingRate)
	assert.Empty(t, totals.RecyclingCategories)
	require.Len(t, totals.CO2Emissions, 4)
	for _, point := range totals.CO2Emissions {
		assert.Zero(t, point.Value)
	}
}

func TestComputeTotalsAdditivity(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	trucks := []model.TruckRecord{
		sortedTruck("t1", 1000, 600, 350),
		sortedTruck("t2", 2000, 900, 800),
		awaitingTruck("t3", 700),
	}

	whole := ComputeTotals(trucks, now)

	var sumInitial, sumOrganic, sumInorganic float64
	for _, truck := range trucks {
		single := ComputeTotals([]model.TruckRecord{truck}, now)
		sumInitial += single.TotalInitial
		sumOrganic += single.TotalOrganic
		sumInorganic += single.TotalInorganic
	}

	assert.Equal(t, whole.TotalInitial, sumInitial)
	assert.Equal(t, whole.TotalOrganic, sumOrganic)
	assert.Equal(t, whole.TotalInorganic, sumInorganic)
}

func TestComputeTotalsCategories(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sortingDate := time.Date(2026, 8, 22, 9, 0, 0, 0, time.UTC)
	trucks := []model.TruckRecord{
		sortedTruck("t1", 1000, 600, 350),
		{
			ID:            "t2",
			PlateNumber:   "F 11 Z",
			InitialWeight: 400,
			Status:        model.StatusSorted,
			WasteItems: []model.WasteItem{
				{CategoryID: "paper", Weight: 100},
				{CategoryID: model.CategoryOrganic, Weight: 250},
			},
			OrganicWeight:  250,
			TotalProcessed: 350,
			Difference:     50,
			SortingDate:    &sortingDate,
		},
	}

	totals := ComputeTotals(trucks, now)

	byID := make(map[string]model.CategoryTotal)
	for _, c := range totals.RecyclingCategories {
		byID[c.CategoryID] = c
	}
	require.Len(t, byID, 3)
	assert.Equal(t, 850.0, byID[model.CategoryOrganic].Weight)
	assert.Equal(t, "Organik", byID[model.CategoryOrganic].Name)
	assert.Equal(t, 350.0, byID[model.CategoryInorganic].Weight)
	assert.Equal(t, 100.0, byID["paper"].Weight)
	assert.Equal(t, "Kertas", byID["paper"].Name)
}

func TestCO2SeriesDeterministic(t *testing.T) {
	points := co2Series(1000, 550, 2026)
	assert.Equal(t, []model.CO2Point{
		{Year: 2023, Value: 800},
		{Year: 2024, Value: 600},
		{Year: 2025, Value: 400},
		{Year: 2026, Value: 110},
	}, points)
}
