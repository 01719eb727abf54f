package model

// WasteCategory is a fixed catalog entry. Read-only reference data, not
// derived from truck records.
type WasteCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

const (
	CategoryOrganic   = "organic"
	CategoryInorganic = "inorganic"
)

// WasteCategories is the facility's category catalog.
var WasteCategories = []WasteCategory{
	{
		ID:          CategoryOrganic,
		Name:        "Organik",
		Description: "Sampah yang dapat terurai secara alami seperti sisa makanan, daun, dll.",
		Color:       "#4CAF50",
	},
	{
		ID:          CategoryInorganic,
		Name:        "Anorganik",
		Description: "Sampah yang sulit terurai seperti plastik, kaca, logam, dll.",
		Color:       "#FFC107",
	},
	{
		ID:          "paper",
		Name:        "Kertas",
		Description: "Sampah berbahan kertas seperti kardus, koran, majalah, dll.",
		Color:       "#2196F3",
	},
	{
		ID:          "hazardous",
		Name:        "B3 (Bahan Berbahaya dan Beracun)",
		Description: "Sampah berbahaya seperti baterai, lampu, kemasan pestisida, dll.",
		Color:       "#F44336",
	},
	{
		ID:          "residue",
		Name:        "Residu",
		Description: "Sampah yang tidak dapat didaur ulang atau dikomposkan.",
		Color:       "#9E9E9E",
	},
	{
		ID:          "metal",
		Name:        "Logam",
		Description: "Sampah berbahan logam seperti kaleng, besi, aluminium, dll.",
		Color:       "#607D8B",
	},
	{
		ID:          "glass",
		Name:        "Kaca",
		Description: "Sampah berbahan kaca seperti botol, gelas, dll.",
		Color:       "#00BCD4",
	},
	{
		ID:          "plastic",
		Name:        "Plastik",
		Description: "Sampah berbahan plastik seperti botol, kantong, dll.",
		Color:       "#FF9800",
	},
	{
		ID:          "textile",
		Name:        "Tekstil",
		Description: "Sampah berbahan tekstil seperti pakaian, kain, dll.",
		Color:       "#9C27B0",
	},
	{
		ID:          "electronic",
		Name:        "Elektronik",
		Description: "Sampah elektronik seperti ponsel, komputer, dll.",
		Color:       "#795548",
	},
}

// CategoryByID looks up a catalog entry. The second return value reports
// whether the id is known.
func CategoryByID(id string) (WasteCategory, bool) {
	for _, c := range WasteCategories {
		if c.ID == id {
			return c, true
		}
	}
	return WasteCategory{}, false
}

// CategoryName returns the display name for an id, falling back to the raw id
// for unknown categories so aggregation never drops data.
func CategoryName(id string) string {
	if c, ok := CategoryByID(id); ok {
		return c.Name
	}
	return id
}
