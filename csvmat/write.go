// Package csvmat reads and writes numeric matrices as comma-delimited text,
// one matrix row per line.
//
// Values are written as %.18e, the format the original MNIST tooling emits,
// which round-trips every float64 exactly.
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

// FormatValue formats one cell.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'e', 18, 64)
}

// Write serializes m to w row by row.
func Write(w io.Writer, m mat.Matrix) error {
	r, c := m.Dims()
	cw := csv.NewWriter(w)
	record := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			record[j] = FormatValue(m.At(i, j))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile creates path and writes m to it. The file is closed on every
// path; a close failure is reported when the write itself succeeded.
func WriteFile(path string, m mat.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewWriteError("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.NewWriteError("close", path, cerr)
		}
	}()

	bw := bufio.NewWriterSize(f, 1<<20)
	if err := Write(bw, m); err != nil {
		return errors.NewWriteError("write", path, err)
	}
	if err := bw.Flush(); err != nil {
		return errors.NewWriteError("flush", path, err)
	}
	return nil
}
