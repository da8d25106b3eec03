package table

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/scatterspec/pkg/errors"
)

// readWorkbook reads the first worksheet of an Excel workbook.
func readWorkbook(path string) (*Rows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, openError(err, path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeParse, "%s has no worksheets", path)
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read sheet %q of %s", sheets[0], path)
	}
	if len(cells) == 0 {
		return nil, errors.New(errors.ErrCodeParse, "%s is empty: a header row is required", path)
	}

	rows := &Rows{Path: path, Header: cells[0]}
	for i, row := range cells[1:] {
		if isBlank(row) {
			continue
		}
		fields := make([]string, len(row))
		for j, c := range row {
			fields[j] = strings.TrimSpace(c)
		}
		rows.Records = append(rows.Records, Record{Line: i + 2, Fields: fields})
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
