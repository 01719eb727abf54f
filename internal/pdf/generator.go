package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"waste-bi-backend/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders the facility report: the roll-up statistics followed by a
// table of all truck records.
func (g *Generator) Generate(trucks []model.TruckRecord, totals model.TotalStats, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Laporan Pengolahan Sampah", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Dibuat: %s", generatedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Statistik Keseluruhan", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)

	summary := []string{
		fmt.Sprintf("Total berat awal: %s kg", formatAmount(totals.TotalInitial)),
		fmt.Sprintf("Total dicacah: %s kg", formatAmount(totals.TotalProcessed)),
		fmt.Sprintf("Total organik: %s kg, anorganik: %s kg", formatAmount(totals.TotalOrganic), formatAmount(totals.TotalInorganic)),
		fmt.Sprintf("Total selisih: %s kg", formatAmount(totals.TotalDifference)),
		fmt.Sprintf("Tingkat daur ulang: %.2f%%", totals.RecyclingRate),
	}
	for _, line := range summary {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Data Truk", "", 1, "L", false, 0, "")

	headers := []string{"Nomor Plat", "Tgl Masuk", "Berat Awal", "Total Dicacah", "Selisih", "Tgl Cacah", "Status"}
	colWidths := []float64{40, 30, 35, 35, 35, 30, 55}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, truck := range trucks {
		row := []string{
			truck.PlateNumber,
			formatDate(truck.EntryDate),
			formatAmount(truck.InitialWeight),
			formatAmount(truck.TotalProcessed),
			formatAmount(truck.Difference),
			formatOptionalDate(truck.SortingDate),
			truck.Status.Label(),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i >= 2 && i <= 4 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func formatAmount(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}
