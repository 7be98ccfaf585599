package extractor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shakinm/xlsReader/xls"
	"github.com/shakinm/xlsReader/xls/structure"
)

// xlsExtractor extracts text from legacy XLS workbooks, mirroring the XLSX
// strategy's sheet/row layout.
type xlsExtractor struct{}

// NewXLSExtractor returns the XLS strategy.
func NewXLSExtractor() Extractor {
	return &xlsExtractor{}
}

func (e *xlsExtractor) Extract(ctx context.Context, name string, data []byte) (*Extraction, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	var buf bytes.Buffer
	for i := 0; i < workbook.GetNumberSheets(); i++ {
		sheet, err := workbook.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		rows := sheet.GetRows()
		if len(rows) == 0 {
			continue
		}
		var lines [][]string
		for _, row := range rows {
			lines = append(lines, xlsRowValues(row.GetCols()))
		}
		writeSheet(&buf, sheet.GetName(), lines)
	}
	return &Extraction{Text: buf.Bytes()}, nil
}

func xlsRowValues(cols []structure.CellData) []string {
	values := make([]string, 0, len(cols))
	for _, col := range cols {
		values = append(values, col.GetString())
	}
	return values
}
