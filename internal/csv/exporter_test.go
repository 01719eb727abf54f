package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waste-bi-backend/internal/model"
)

func TestGenerate(t *testing.T) {
	sortingDate := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	trucks := []model.TruckRecord{
		{
			ID:              "t1",
			PlateNumber:     "B 1234 ABC",
			InitialWeight:   1000,
			EntryDate:       time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			Status:          model.StatusSorted,
			OrganicWeight:   600,
			InorganicWeight: 350,
			TotalProcessed:  950,
			Difference:      50,
			SortingDate:     &sortingDate,
		},
		{
			ID:            "t2",
			PlateNumber:   "D 5678 XY",
			InitialWeight: 500.5,
			EntryDate:     time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC),
			Status:        model.StatusAwaitingSorting,
		},
	}

	content, err := NewExporter().Generate(trucks)
	require.NoError(t, err)

	rows, err := stdcsv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{
		"t1", "B 1234 ABC", "1000", "2026-09-01", "600", "350", "950", "50", "2026-09-01", "Sudah Dicacah",
	}, rows[1])
	assert.Equal(t, []string{
		"t2", "D 5678 XY", "500.50", "2026-09-02", "0", "0", "0", "0", "", "Menunggu Pencacahan",
	}, rows[2])
}

func TestGenerateQuotesCommas(t *testing.T) {
	trucks := []model.TruckRecord{
		{
			ID:            "t1,with-comma",
			PlateNumber:   "B 1234 ABC",
			InitialWeight: 100,
			EntryDate:     time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			Status:        model.StatusAwaitingSorting,
		},
	}

	content, err := NewExporter().Generate(trucks)
	require.NoError(t, err)

	rows, err := stdcsv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "t1,with-comma", rows[1][0], "a comma in a field must not split the row")
	assert.Len(t, rows[1], len(Headers))
}

func TestGenerateEmpty(t *testing.T) {
	content, err := NewExporter().Generate(nil)
	require.NoError(t, err)

	rows, err := stdcsv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "empty export still carries the header row")
	assert.Equal(t, Headers, rows[0])
}
