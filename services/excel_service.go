package services

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/greenround/screengolf-usage/database"
	"github.com/greenround/screengolf-usage/utils"
)

// Roster uploads come from a predecessor HR system whose export layout is
// fixed; columns are addressed by position, not header name, to stay
// compatible with existing files.
const (
	ColEmpID          = 11 // 사번
	ColName           = 12 // 이름
	ColLegacyPassword = 26 // 주민번호 뒷자리, only present in old rosters
)

const exportSheetName = "이용내역"

var exportHeaders = []string{
	"이용일자", "사번", "이름", "상품명", "수량", "금액", "상태", "등록일시", "취소일시",
}

// ReadSpreadsheetRows loads every cell of the first sheet as text. The file
// extension picks the reader: legacy .xls goes through the OLE2 parser,
// everything else is treated as xlsx.
func ReadSpreadsheetRows(reader io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xls" {
		workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
		if err != nil {
			return nil, err
		}
		if workbook.NumSheets() == 0 {
			return nil, fmt.Errorf("no worksheet found")
		}
		rows := workbook.ReadAllCells(100000)
		if len(rows) == 0 {
			return nil, fmt.Errorf("worksheet is empty")
		}
		return rows, nil
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return rows, nil
}

// cleanCell normalizes a spreadsheet cell: whitespace trimmed, pandas-style
// null markers become empty, and the trailing ".0" left by numeric-to-text
// coercion is stripped.
func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "none", "nat", "":
		return ""
	}
	if strings.HasSuffix(s, ".0") {
		return s[:len(s)-2]
	}
	return s
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ImportEmployees bulk-loads a roster spreadsheet. The first row is the
// header. Rows missing an id or name after cleaning are skipped; duplicates
// by emp_id are skipped silently. When the legacy password column is
// populated it seeds the initial password, otherwise the employee id does.
// Returns the number of newly created employees; rows processed before an
// error stay committed.
func ImportEmployees(db *gorm.DB, reader io.Reader, filename string) (int, error) {
	rows, err := ReadSpreadsheetRows(reader, filename)
	if err != nil {
		return 0, err
	}

	count := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) <= ColName {
			utils.InfoLogger.Printf("Roster import: row %d has %d columns, expected at least %d; skipping", i+1, len(row), ColName+1)
			continue
		}

		empID := cleanCell(cellAt(row, ColEmpID))
		name := cleanCell(cellAt(row, ColName))
		password := cleanCell(cellAt(row, ColLegacyPassword))

		if empID == "" || name == "" {
			continue
		}

		created, err := database.UpsertEmployee(db, empID, name, password)
		if err != nil {
			return count, err
		}
		if created {
			count++
		}
	}
	return count, nil
}

// BuildUsageExport assembles the full-history workbook, canceled records
// included, one row per usage record in listing order.
func BuildUsageExport(db *gorm.DB) (*excelize.File, error) {
	records, err := database.AllUsageRecordsForExport(db)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	const timeLayout = "2006-01-02 15:04:05"
	for i, rec := range records {
		canceledAt := ""
		if rec.CanceledAt != nil {
			canceledAt = rec.CanceledAt.Format(timeLayout)
		}
		values := []interface{}{
			rec.UsageDate,
			rec.EmpID,
			rec.Name,
			rec.ItemName,
			rec.Quantity,
			rec.Amount,
			rec.StatusLabel(),
			rec.CreatedAt.Format(timeLayout),
			canceledAt,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
