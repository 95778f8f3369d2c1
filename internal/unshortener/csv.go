package unshortener

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"unicode/utf8"

	"unshortener/pkg/serrors"
)

// newReader validates the encoding of in and returns a reader that accepts
// records of any length. Rows shorter than the selected column are expected
// and handled per row. Stray quotes are kept as literal text, and a quoted
// field left open at the end of input runs to EOF.
func newReader(in []byte) (*csv.Reader, error) {
	if !utf8.Valid(in) {
		return nil, serrors.With(serrors.ErrEncoding, "input is not valid UTF-8")
	}

	r := csv.NewReader(bytes.NewReader(in))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	return r, nil
}

func readHeader(r *csv.Reader) ([]string, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, serrors.With(serrors.ErrNoHeader, "no header row")
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformedCSV, err, "could not read header")
	}

	return header, nil
}

// ReadHeader returns the header row of in without parsing the remaining rows.
func ReadHeader(in []byte) ([]string, error) {
	r, err := newReader(in)
	if err != nil {
		return nil, err
	}

	return readHeader(r)
}

// readDocument parses the whole input up front so a malformed record aborts
// the run before any network request is made.
func readDocument(in []byte) ([]string, [][]string, error) {
	r, err := newReader(in)
	if err != nil {
		return nil, nil, err
	}

	header, err := readHeader(r)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, serrors.Wrap(serrors.ErrMalformedCSV, err, "could not read rows")
	}

	return header, rows, nil
}

// ColumnByName returns the index of the first header cell equal to name.
func ColumnByName(header []string, name string) (int, error) {
	for i, col := range header {
		if col == name {
			return i, nil
		}
	}

	return 0, serrors.With(serrors.ErrBadRequest, "column %q not found in header", name)
}

// appendCell returns a copy of row with cell appended; row is left untouched.
func appendCell(row []string, cell string) []string {
	out := make([]string, len(row), len(row)+1)
	copy(out, row)

	return append(out, cell)
}
