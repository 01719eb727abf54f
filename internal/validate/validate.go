package validate

import (
	"regexp"
	"strings"
	"time"
)

// Field tags let the caller route a message to the right form field.
const (
	FieldPlate    = "plate"
	FieldWeight   = "weight"
	FieldDate     = "date"
	FieldTruck    = "truck"
	FieldCategory = "category"
)

const (
	MaxWeightKg     = 50000
	MinPlateLength  = 3
	MaxEntryAgeDays = 365
	WeightTolerance = 0.05
	entryDateLayout = "2006-01-02"
)

// plateRe matches Indonesian plates of the form "B 1234 ABC", applied after
// normalization so casing and whitespace variants validate identically.
var plateRe = regexp.MustCompile(`^[A-Z]{1,2} \d{1,4} [A-Z]{1,3}$`)

var spacesRe = regexp.MustCompile(`\s+`)

// FieldError is one business-rule violation, tagged with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result collects all violations found; checks never short-circuit.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

func newResult(errs []FieldError) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// NormalizePlate trims, uppercases, and collapses internal whitespace.
// Idempotent: normalizing an already-normalized plate is a no-op.
func NormalizePlate(plate string) string {
	return spacesRe.ReplaceAllString(strings.ToUpper(strings.TrimSpace(plate)), " ")
}

// EntryInput is the raw entry-workflow form data.
type EntryInput struct {
	PlateNumber   string  `json:"plateNumber"`
	InitialWeight float64 `json:"initialWeight"`
	EntryDate     string  `json:"entryDate"`
}

// Entry checks the entry form against the facility's business rules,
// evaluated relative to now. Pure, no side effects.
func Entry(input EntryInput, now time.Time) Result {
	var errs []FieldError

	plate := NormalizePlate(input.PlateNumber)
	switch {
	case plate == "":
		errs = append(errs, FieldError{FieldPlate, "Nomor plat tidak boleh kosong"})
	case len(plate) < MinPlateLength:
		errs = append(errs, FieldError{FieldPlate, "Nomor plat minimal 3 karakter"})
	case !plateRe.MatchString(plate):
		errs = append(errs, FieldError{FieldPlate, "Format nomor plat tidak valid (contoh: B 1234 ABC)"})
	}

	if input.InitialWeight <= 0 {
		errs = append(errs, FieldError{FieldWeight, "Berat awal harus lebih dari 0 kg"})
	} else if input.InitialWeight > MaxWeightKg {
		errs = append(errs, FieldError{FieldWeight, "Berat awal tidak boleh lebih dari 50.000 kg"})
	}

	if input.EntryDate == "" {
		errs = append(errs, FieldError{FieldDate, "Tanggal masuk tidak boleh kosong"})
	} else if entryDate, err := time.ParseInLocation(entryDateLayout, input.EntryDate, now.Location()); err != nil {
		errs = append(errs, FieldError{FieldDate, "Tanggal masuk tidak valid"})
	} else if entryDate.After(now) {
		errs = append(errs, FieldError{FieldDate, "Tanggal masuk tidak boleh di masa depan"})
	} else if entryDate.Before(now.AddDate(0, 0, -MaxEntryAgeDays)) {
		errs = append(errs, FieldError{FieldDate, "Tanggal masuk tidak boleh lebih dari 1 tahun yang lalu"})
	}

	return newResult(errs)
}

// SortingItem mirrors model.WasteItem without importing it, keeping this
// package dependency-free.
type SortingItem struct {
	CategoryID string  `json:"categoryId"`
	Weight     float64 `json:"weight"`
}

// SortingInput is the sorting-workflow form data. Either WasteItems or the
// legacy organic/inorganic pair is supplied.
type SortingInput struct {
	TruckID         string        `json:"truckId"`
	WasteItems      []SortingItem `json:"wasteItems,omitempty"`
	OrganicWeight   *float64      `json:"organicWeight,omitempty"`
	InorganicWeight *float64      `json:"inorganicWeight,omitempty"`
}

// Legacy reports whether the input uses the old two-field shape.
func (in SortingInput) Legacy() bool {
	return len(in.WasteItems) == 0 && in.OrganicWeight != nil && in.InorganicWeight != nil
}

// Total sums all supplied weights, over whichever shape is present.
func (in SortingInput) Total() float64 {
	if len(in.WasteItems) > 0 {
		total := 0.0
		for _, item := range in.WasteItems {
			total += item.Weight
		}
		return total
	}
	if in.Legacy() {
		return *in.OrganicWeight + *in.InorganicWeight
	}
	return 0
}

// Sorting checks the sorting form against the truck's recorded initial
// weight. Pure, no side effects.
func Sorting(input SortingInput, initialWeight float64) Result {
	var errs []FieldError

	if strings.TrimSpace(input.TruckID) == "" {
		errs = append(errs, FieldError{FieldTruck, "Mohon pilih truk yang akan dicacah"})
	}

	totalProcessed := 0.0
	switch {
	case len(input.WasteItems) > 0:
		seen := make(map[string]bool, len(input.WasteItems))
		for _, item := range input.WasteItems {
			if item.Weight < 0 {
				errs = append(errs, FieldError{FieldWeight, "Berat sampah tidak boleh negatif"})
				continue
			}
			totalProcessed += item.Weight
			if seen[item.CategoryID] {
				errs = append(errs, FieldError{FieldCategory, "Kategori sampah tidak boleh duplikat"})
			}
			seen[item.CategoryID] = true
		}
	case input.Legacy():
		if *input.OrganicWeight < 0 {
			errs = append(errs, FieldError{FieldWeight, "Berat sampah organik tidak boleh negatif"})
		}
		if *input.InorganicWeight < 0 {
			errs = append(errs, FieldError{FieldWeight, "Berat sampah anorganik tidak boleh negatif"})
		}
		totalProcessed = *input.OrganicWeight + *input.InorganicWeight
	default:
		errs = append(errs, FieldError{FieldCategory, "Data pencacahan tidak valid"})
	}

	maxAllowed := initialWeight * (1 + WeightTolerance)
	if totalProcessed > maxAllowed {
		errs = append(errs, FieldError{FieldWeight, "Total berat cacah melebihi berat awal + toleransi 5%"})
	}
	if totalProcessed == 0 {
		errs = append(errs, FieldError{FieldWeight, "Minimal harus ada sampah yang dicacah"})
	}

	return newResult(errs)
}
