package csvmat

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

// Read parses the first rows lines of r, taking the first cols cells of each,
// into a rows×cols matrix. Extra rows and columns are ignored; a short row,
// too few rows, or a non-numeric cell is an error. name is used in messages.
func Read(r io.Reader, name string, rows, cols int) (*mat.Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.NewValidationError("shape", "rows and cols must be positive", [2]int{rows, cols})
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	out := mat.NewDense(rows, cols, nil)
	row := 0
	for row < rows {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		if len(record) < cols {
			return nil, errors.NewRowDimensionError(name, row, cols, len(record))
		}
		for col := 0; col < cols; col++ {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, errors.NewParseError(name, row, col, record[col])
			}
			out.Set(row, col, v)
		}
		row++
	}
	if row < rows {
		return nil, errors.NewDimensionError(name, rows, row, 0)
	}
	return out, nil
}

// ReadFile opens path and reads a rows×cols matrix from it.
func ReadFile(path string, rows, cols int) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open file %s", path)
	}
	defer f.Close()

	return Read(bufio.NewReaderSize(f, 1<<20), path, rows, cols)
}

// Dims scans the first line of path for the column count and counts the
// lines. It does not parse values.
func Dims(path string) (rows, cols int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "could not open file %s", path)
	}
	defer f.Close()

	cr := csv.NewReader(bufio.NewReaderSize(f, 1<<20))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, cols, nil
		}
		if err != nil {
			return 0, 0, errors.Wrapf(err, "read %s", path)
		}
		if rows == 0 {
			cols = len(record)
		}
		rows++
	}
}
