package table

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/scatterspec/pkg/errors"
)

const (
	// Tab is the preferred delimiter.
	Tab = '\t'
	// Comma is used when the header has no tab-separated fields.
	Comma = ','
)

// maxLineSize bounds a single input line.
const maxLineSize = 1 << 20

// Rows is the raw content of a tabular file.
type Rows struct {
	Path      string
	Delimiter rune // Tab or Comma; zero for workbook input
	Header    []string
	Records   []Record
}

// Record is one non-blank data row.
type Record struct {
	Line   int    // 1-based line (or worksheet row) number
	Text   string // raw line without its terminator; empty for workbook rows
	Fields []string
}

// Field returns the i-th field, or "" when the row is shorter than that.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// DetectDelimiter picks the delimiter for a header line.
// A header that does not split into more than one field on tab is comma separated.
func DetectDelimiter(header string) rune {
	if len(strings.Split(strings.TrimSpace(header), string(Tab))) == 1 {
		return Comma
	}
	return Tab
}

// ReadRows reads a delimited text file or a workbook.
//
// Lines are split with only the line terminator removed, so empty leading
// cells keep their column. Fields are not trimmed; callers trim cells as they
// need. Blank lines are skipped.
func ReadRows(path string) (*Rows, error) {
	if isWorkbook(path) {
		return readWorkbook(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, openError(err, path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
		}
		return nil, errors.New(errors.ErrCodeParse, "%s is empty: a header line is required", path)
	}

	headerLine := trimTerminator(scanner.Text())
	delim := DetectDelimiter(headerLine)
	rows := &Rows{
		Path:      path,
		Delimiter: delim,
		Header:    strings.Split(headerLine, string(delim)),
	}

	line := 1
	for scanner.Scan() {
		line++
		text := trimTerminator(scanner.Text())
		if strings.TrimSpace(text) == "" {
			continue
		}
		rows.Records = append(rows.Records, Record{
			Line:   line,
			Text:   text,
			Fields: strings.Split(text, string(delim)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return rows, nil
}

func trimTerminator(s string) string {
	return strings.TrimRight(s, "\r\n")
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func openError(err error, path string) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
}
