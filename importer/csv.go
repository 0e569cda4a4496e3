package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Recognized columns in the input file header.
// Extra columns are ignored
const (
	columnName     = "name"
	columnUnit     = "qu_unit_name"
	columnAmount   = "qu_amount"
	columnLocation = "location_name"
	columnGroup    = "product_group_name"
)

// row is one record from the input file,
// representing one product to import
type row struct {
	Line         int
	Name         string
	UnitName     string
	LocationName string
	GroupName    string
	Amount       float64
}

// rowReader walks the data rows of a comma-delimited input file
// with a header row
type rowReader struct {
	reader  *csv.Reader
	indices map[string]int
	line    int
}

// newRowReader reads the header row and maps column names to indices.
// The input is decoded tolerating a UTF-8 byte order mark,
// which spreadsheet tools like to prepend on export
func newRowReader(r io.Reader) (*rowReader, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "could not read the header row")
	}

	indices := make(map[string]int)
	for i, column := range header {
		indices[strings.TrimSpace(column)] = i
	}

	return &rowReader{
		reader:  reader,
		indices: indices,
		line:    1,
	}, nil
}

// Next reads the next data row, returning io.EOF at the end of the file.
// On a row-scoped failure the partially parsed row is returned
// alongside the error, so that the caller can log whatever fields
// were available without risking a secondary failure
func (r *rowReader) Next() (*row, error) {
	record, err := r.reader.Read()
	if err != nil {
		return nil, err
	}
	r.line++

	parsed := &row{Line: r.line}

	parsed.Name, err = r.field(record, columnName)
	if err != nil {
		return parsed, err
	}

	parsed.UnitName, err = r.field(record, columnUnit)
	if err != nil {
		return parsed, err
	}

	rawAmount, err := r.field(record, columnAmount)
	if err != nil {
		return parsed, err
	}

	parsed.Amount, err = strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return parsed, NewInvalidAmountError(rawAmount)
	}

	parsed.LocationName, err = r.field(record, columnLocation)
	if err != nil {
		return parsed, err
	}

	parsed.GroupName, err = r.field(record, columnGroup)
	if err != nil {
		return parsed, err
	}

	return parsed, nil
}

// Extracts and trims a single field from the record by column name
func (r *rowReader) field(record []string, column string) (string, error) {
	index, ok := r.indices[column]
	if !ok {
		return "", NewMissingColumnError(column)
	}

	if index >= len(record) {
		return "", NewMissingFieldError(column)
	}

	return strings.TrimSpace(record[index]), nil
}
