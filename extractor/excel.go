package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// excelExtractor extracts text from XLSX workbooks, one tab-joined line per
// row, prefixed with a sheet heading.
type excelExtractor struct{}

// NewExcelExtractor returns the XLSX strategy.
func NewExcelExtractor() Extractor {
	return &excelExtractor{}
}

func (e *excelExtractor) Extract(ctx context.Context, name string, data []byte) (*Extraction, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	var buf bytes.Buffer
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		writeSheet(&buf, sheet, rows)
	}
	return &Extraction{Text: buf.Bytes()}, nil
}

func writeSheet(buf *bytes.Buffer, sheet string, rows [][]string) {
	buf.WriteString("Sheet: ")
	buf.WriteString(sheet)
	buf.WriteByte('\n')
	for _, row := range rows {
		line := strings.TrimRight(strings.Join(row, "\t"), "\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
}
