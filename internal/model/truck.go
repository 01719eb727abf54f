package model

import (
	"time"
)

type TruckStatus string

// Wire values stay compatible with the legacy dashboard blobs.
const (
	StatusAwaitingSorting TruckStatus = "initial"
	StatusSorted          TruckStatus = "sorted"
)

// Label returns the human-readable Indonesian status label used by the
// dashboard tables and the CSV export.
func (s TruckStatus) Label() string {
	switch s {
	case StatusSorted:
		return "Sudah Dicacah"
	default:
		return "Menunggu Pencacahan"
	}
}

// WasteItem is a single weighed category entry recorded at sorting time.
type WasteItem struct {
	CategoryID string  `json:"categoryId"`
	Weight     float64 `json:"weight"`
}

// TruckRecord is one physical truck visit, from entry weighing until the load
// is broken down into waste categories.
type TruckRecord struct {
	ID            string      `json:"id"`
	PlateNumber   string      `json:"plateNumber"`
	InitialWeight float64     `json:"initialWeight"`
	EntryDate     time.Time   `json:"entryDate"`
	Status        TruckStatus `json:"status"`

	WasteItems []WasteItem `json:"wasteItems,omitempty"`

	// Legacy mirrors of the organic/inorganic entries of WasteItems, kept for
	// consumers of the old two-field shape. Always recomputable.
	OrganicWeight   float64 `json:"organicWeight,omitempty"`
	InorganicWeight float64 `json:"inorganicWeight,omitempty"`

	TotalProcessed float64    `json:"totalProcessed,omitempty"`
	Difference     float64    `json:"difference,omitempty"`
	SortingDate    *time.Time `json:"sortingDate,omitempty"`
}

// Sorted reports whether the record has completed the sorting workflow.
func (t *TruckRecord) Sorted() bool {
	return t.Status == StatusSorted
}

// EntryDay returns the calendar day of entry, the granularity used for
// duplicate detection.
func (t *TruckRecord) EntryDay() string {
	return t.EntryDate.Format("2006-01-02")
}
