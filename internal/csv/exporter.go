package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"fmt"
	"time"

	"waste-bi-backend/internal/model"
)

// Headers is the fixed export layout the facility's spreadsheets expect.
var Headers = []string{
	"ID",
	"Nomor Plat",
	"Berat Awal (kg)",
	"Tgl Masuk",
	"Organik (kg)",
	"Anorganik (kg)",
	"Total Dicacah",
	"Selisih",
	"Tgl Cacah",
	"Status",
}

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Generate renders the records as CSV. All fields go through the quoting
// writer, so plates or ids containing commas cannot corrupt a row.
func (e *Exporter) Generate(trucks []model.TruckRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)

	if err := w.Write(Headers); err != nil {
		return nil, err
	}
	for _, truck := range trucks {
		if err := w.Write(row(truck)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func row(truck model.TruckRecord) []string {
	return []string{
		truck.ID,
		truck.PlateNumber,
		formatWeight(truck.InitialWeight),
		formatDate(truck.EntryDate),
		formatWeight(truck.OrganicWeight),
		formatWeight(truck.InorganicWeight),
		formatWeight(truck.TotalProcessed),
		formatWeight(truck.Difference),
		formatOptionalDate(truck.SortingDate),
		truck.Status.Label(),
	}
}

func formatWeight(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.2f", value)
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
