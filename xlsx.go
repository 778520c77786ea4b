package csvsort

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// stageXLSX converts the first sheet of an xlsx workbook to a temporary
// delimited file so the engine can import it. The staged file uses the
// source delimiter so the generated separator directive stays correct.
func stageXLSX(path string, delimiter rune, logf func(string)) (string, func(), error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("csvsort: open workbook %s: %w", path, err)
	}
	defer func() { _ = workbook.Close() }()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, fmt.Errorf("%w: workbook %s has no sheets", ErrUnsupportedSource, path)
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return "", nil, fmt.Errorf("csvsort: read sheet %s: %w", sheets[0], err)
	}

	tmp, err := os.CreateTemp("", "csvsort-*.csv")
	if err != nil {
		return "", nil, fmt.Errorf("csvsort: create staging file: %w", err)
	}

	writer := csv.NewWriter(tmp)
	writer.Comma = delimiter
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return "", nil, fmt.Errorf("csvsort: stage workbook row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("csvsort: stage workbook %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("csvsort: close staging file: %w", err)
	}

	logf("staged sheet " + sheets[0] + " of " + path + " at " + tmp.Name())
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err == nil {
			logf("removed staged copy " + tmp.Name())
		}
	}
	return tmp.Name(), cleanup, nil
}
