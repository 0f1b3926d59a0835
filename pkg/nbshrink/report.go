package nbshrink

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	imagesSheet  = "Images"
)

var imageColumns = []interface{}{
	"Index", "File", "Link", "Cell", "Source MIME", "Detected MIME",
	"Original Bytes", "JPEG Bytes", "Width", "Height", "Status",
}

// WriteReport writes an xlsx workbook describing the run: a Summary sheet
// with the totals and an Images sheet with one row per extracted image.
func WriteReport(path string, res *Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	summary := [][]interface{}{
		{"Input", res.InputPath},
		{"Output", res.OutputPath},
		{"Budget (MB)", res.BudgetMB},
		{"Final Size (MB)", roundMB(res.SizeMB())},
		{"Final Size (bytes)", res.Bytes},
		{"Serialization Passes", len(res.Passes)},
		{"Images Extracted", len(res.Images)},
		{"Images Trimmed", res.Trimmed()},
		{"Budget Met", strconv.FormatBool(res.BudgetMet())},
	}
	if err := setRows(f, summarySheet, summary); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if _, err := f.NewSheet(imagesSheet); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	rows := [][]interface{}{imageColumns}
	for _, img := range res.Images {
		status := "kept"
		if img.Trimmed {
			status = "trimmed"
		}
		rows = append(rows, []interface{}{
			img.Index, img.Path, img.Link, img.Cell, img.SourceMIME, img.DetectedMIME,
			img.OriginalBytes, img.CompressedBytes, img.Width, img.Height, status,
		})
	}
	if err := setRows(f, imagesSheet, rows); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := f.SaveAs(path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// setRows writes rows starting at A1.
func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// roundMB keeps two decimals, matching the console summary.
func roundMB(mb float64) float64 {
	return float64(int64(mb*100+0.5)) / 100
}
