// Package export renders admin data into downloadable documents.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lumastory/lumastory/internal/domain/audit"
)

const (
	activitySheet = "Activity"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var activityHeaders = []string{"Time (UTC)", "Admin", "Action", "Target Type", "Target", "IP Address", "User Agent", "Details"}

// ActivityXLSXExporter writes the activity log as a single-sheet workbook.
type ActivityXLSXExporter struct{}

func NewActivityXLSXExporter() *ActivityXLSXExporter {
	return &ActivityXLSXExporter{}
}

func (e *ActivityXLSXExporter) ContentType() string { return xlsxMIME }

func (e *ActivityXLSXExporter) Extension() string { return "xlsx" }

func (e *ActivityXLSXExporter) Render(entries []*audit.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", activitySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(activitySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4F46E5"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, width := range []float64{20, 24, 20, 12, 24, 16, 30, 50} {
		if err := sw.SetColWidth(col+1, col+1, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	header := make([]interface{}, len(activityHeaders))
	for i, h := range activityHeaders {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, activityRow(entry)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush workbook: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func activityRow(e *audit.Entry) []interface{} {
	details := ""
	if len(e.Details()) > 0 {
		if b, err := json.Marshal(e.Details()); err == nil {
			details = string(b)
		}
	}
	targetType := ""
	if tt := e.TargetType(); tt != nil {
		targetType = string(*tt)
	}
	return []interface{}{
		e.CreatedAt().UTC().Format(time.DateTime),
		e.AdminID(),
		e.ActionType().String(),
		targetType,
		deref(e.TargetID()),
		deref(e.IPAddress()),
		deref(e.UserAgent()),
		details,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
