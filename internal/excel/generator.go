package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"waste-bi-backend/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the facility workbook: a summary sheet with the roll-up
// statistics and a detail sheet listing every truck record.
func (g *Generator) Generate(trucks []model.TruckRecord, totals model.TotalStats) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Ringkasan"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, totals); err != nil {
		return nil, err
	}

	detailSheet := "Data Truk"
	file.NewSheet(detailSheet)
	if err := g.writeDetail(file, detailSheet, trucks); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, totals model.TotalStats) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Total Berat Awal (kg)")
	set("B1", totals.TotalInitial)
	set("A2", "Total Organik (kg)")
	set("B2", totals.TotalOrganic)
	set("A3", "Total Anorganik (kg)")
	set("B3", totals.TotalInorganic)
	set("A4", "Total Dicacah (kg)")
	set("B4", totals.TotalProcessed)
	set("A5", "Total Selisih (kg)")
	set("B5", totals.TotalDifference)
	set("A6", "Tingkat Daur Ulang (%)")
	set("B6", fmt.Sprintf("%.2f", totals.RecyclingRate))

	tableRow := 8
	set(fmt.Sprintf("A%d", tableRow), "Kategori")
	set(fmt.Sprintf("B%d", tableRow), "Berat (kg)")
	for i, category := range totals.RecyclingCategories {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), category.Name)
		set(fmt.Sprintf("B%d", row), category.Weight)
	}

	_ = file.SetColWidth(sheet, "A", "A", 34)
	_ = file.SetColWidth(sheet, "B", "B", 16)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, trucks []model.TruckRecord) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Nomor Plat",
		"Tgl Masuk",
		"Berat Awal (kg)",
		"Organik (kg)",
		"Anorganik (kg)",
		"Total Dicacah (kg)",
		"Selisih (kg)",
		"Tgl Cacah",
		"Status",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, truck := range trucks {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), truck.PlateNumber)
		set(fmt.Sprintf("B%d", row), formatDate(truck.EntryDate))
		set(fmt.Sprintf("C%d", row), truck.InitialWeight)
		set(fmt.Sprintf("D%d", row), truck.OrganicWeight)
		set(fmt.Sprintf("E%d", row), truck.InorganicWeight)
		set(fmt.Sprintf("F%d", row), truck.TotalProcessed)
		set(fmt.Sprintf("G%d", row), truck.Difference)
		set(fmt.Sprintf("H%d", row), formatOptionalDate(truck.SortingDate))
		set(fmt.Sprintf("I%d", row), truck.Status.Label())
	}

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "H", 18)
	_ = file.SetColWidth(sheet, "I", "I", 24)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
