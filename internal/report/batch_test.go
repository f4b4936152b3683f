package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Agrid-Dev/heizlast/internal/building"
	"github.com/Agrid-Dev/heizlast/internal/heatload"
)

const batchCSV = `name,preset,length_a_m,length_b_m,floors,ridge_axis,window_area_m2,delta_t_K
house,,10,5,1,A,25,20
villa,Neubau,"12,5",8,2,B,30,25

broken,,10,5,1,A,999,20
typo,,ten,5,1,A,20,20
`

func TestReadBatchCSV(t *testing.T) {
	items, err := ReadBatch(strings.NewReader(batchCSV), FormatCSV)
	require.NoError(t, err)
	require.Len(t, items, 4)

	house := items[0]
	require.NoError(t, house.Err)
	assert.Equal(t, 2, house.Row)
	assert.Equal(t, "house", house.Name)
	want, _ := heatload.Detailed(heatload.DefaultDetailedInput())
	assert.InDelta(t, want.Breakdown.Total, house.Result.Breakdown.Total, 1e-9)

	villa := items[1]
	require.NoError(t, villa.Err)
	assert.Equal(t, 12.5, villa.Input.LengthA)
	assert.Equal(t, 2, villa.Input.Floors)
	assert.Equal(t, heatload.RidgeAxisB, villa.Input.RidgeAxis)
	assert.Equal(t, heatload.LookupPreset("Neubau").UWall, villa.Input.UWall)

	broken := items[2]
	assert.Equal(t, 4, broken.Row)
	assert.ErrorIs(t, broken.Err, heatload.ErrWindowAreaExceedsWall)

	typo := items[3]
	require.Error(t, typo.Err)
	assert.Contains(t, typo.Err.Error(), "length_a_m")
}

func TestReadBatchXLSX(t *testing.T) {
	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]any{"name", "u_wall_W_m2K", "delta_t_K"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]any{"a", 0.3, 10}))
	require.NoError(t, x.SetSheetRow(sheet, "A3", &[]any{"b", 0.2, 30}))
	var buf bytes.Buffer
	require.NoError(t, x.Write(&buf))
	require.NoError(t, x.Close())

	items, err := ReadBatch(&buf, FormatXLSX)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 0.3, items[0].Input.UWall)
	assert.Equal(t, 30.0, items[1].Input.DeltaT)
	assert.NoError(t, items[1].Err)
}

func TestReadBatchEmpty(t *testing.T) {
	_, err := ReadBatch(strings.NewReader("name,delta_t_K\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrEmptySheet)

	_, err = ReadBatch(strings.NewReader(""), FormatPDF)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadBatchUnknownColumn(t *testing.T) {
	_, err := ReadBatch(strings.NewReader("name,length_a,u_wall\nhaus,20,0.2\n"), FormatCSV)
	assert.ErrorIs(t, err, building.ErrUnknownField)
	assert.Contains(t, err.Error(), "length_a")

	items, err := ReadBatch(strings.NewReader(" name , preset,ridge_axis,,u_wall_W_m2K\nhaus,Altbau,B,,0.2\n"), FormatCSV)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NoError(t, items[0].Err)
	assert.Equal(t, "haus", items[0].Name)
}

func TestWriteBatch(t *testing.T) {
	items, err := ReadBatch(strings.NewReader(batchCSV), FormatCSV)
	require.NoError(t, err)

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBatch(&buf, FormatCSV, items))
		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 5)
		assert.Equal(t, batchHeader, records[0])
		assert.Equal(t, "house", records[1][1])
		assert.NotEmpty(t, records[3][len(batchHeader)-1])
	})

	t.Run("xlsx", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBatch(&buf, FormatXLSX, items))
		f, err := excelize.OpenReader(&buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		require.NoError(t, err)
		assert.Len(t, rows, 5)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBatch(&buf, FormatJSON, items))
		var got []map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 4)
		assert.Contains(t, got[0], "export")
		assert.Contains(t, got[2], "error")
	})

	t.Run("pdf unsupported", func(t *testing.T) {
		assert.ErrorIs(t, WriteBatch(&bytes.Buffer{}, FormatPDF, items), ErrUnsupportedFormat)
	})
}
