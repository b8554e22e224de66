package errors

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewDatasetLoadError(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		reason  string
		err     error
		wantMsg string
	}{
		{
			name:    "with underlying error",
			path:    "mnist/train-images-idx3-ubyte",
			reason:  "cannot open",
			err:     fs.ErrNotExist,
			wantMsg: "mnistexport: dataset load failed for mnist/train-images-idx3-ubyte: cannot open: file does not exist",
		},
		{
			name:    "without underlying error",
			path:    "mnist/t10k-labels-idx1-ubyte",
			reason:  "bad magic number 0x00000803",
			err:     nil,
			wantMsg: "mnistexport: dataset load failed for mnist/t10k-labels-idx1-ubyte: bad magic number 0x00000803",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatasetLoadError(tt.path, tt.reason, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			formatted := fmt.Sprintf("%+v", err)
			if !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var loadErr *DatasetLoadError
			if !As(err, &loadErr) {
				t.Error("Error should be castable to *DatasetLoadError")
			}
			if tt.err != nil && !Is(err, tt.err) {
				t.Error("Error should unwrap to the underlying cause")
			}
		})
	}
}

func TestNewLabelOutOfRangeError(t *testing.T) {
	err := NewLabelOutOfRangeError(4, 12, 10)

	want := "mnistexport: label 12 of sample 4 is out of range [0,9]"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var rangeErr *LabelOutOfRangeError
	if !As(err, &rangeErr) {
		t.Fatal("Error should be castable to *LabelOutOfRangeError")
	}
	if rangeErr.Index != 4 || rangeErr.Label != 12 {
		t.Errorf("unexpected fields: %+v", rangeErr)
	}
}

func TestNewWriteError(t *testing.T) {
	cause := fs.ErrPermission
	err := NewWriteError("create", "data/train_data.csv", cause)

	want := "mnistexport: create data/train_data.csv: permission denied"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	if !Is(err, fs.ErrPermission) {
		t.Error("WriteError should unwrap to its cause")
	}
}

func TestDimensionErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rows",
			err:  NewDimensionError("data/x.csv", 784, 3, 0),
			want: "mnistexport: data/x.csv: dimension mismatch on axis 0 (rows). Expected 784, got 3",
		},
		{
			name: "columns",
			err:  NewDimensionError("Reshape", 28, 27, 1),
			want: "mnistexport: Reshape: dimension mismatch on axis 1 (columns). Expected 28, got 27",
		},
		{
			name: "columns at row",
			err:  NewRowDimensionError("data/x.csv", 5, 10, 9),
			want: "mnistexport: data/x.csv: not enough columns at row 5. Expected 10, got 9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", tt.err.Error(), tt.want)
			}
		})
	}
}

func TestNewParseError(t *testing.T) {
	err := NewParseError("data/train_labels.csv", 2, 7, "abc")

	want := `mnistexport: non-numeric value "abc" found in data/train_labels.csv at row 2, column 7`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestCombineErrors(t *testing.T) {
	primary := New("write failed")
	secondary := New("close failed")

	if got := CombineErrors(nil, secondary); !Is(got, secondary) {
		t.Errorf("CombineErrors(nil, x) should return x, got %v", got)
	}
	if got := CombineErrors(primary, nil); !Is(got, primary) {
		t.Errorf("CombineErrors(x, nil) should return x, got %v", got)
	}

	combined := CombineErrors(primary, secondary)
	if combined.Error() != "write failed" {
		t.Errorf("combined message should be the primary one, got %q", combined.Error())
	}
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Error().Object("detail", &LabelOutOfRangeError{Index: 1, Label: 10, Classes: 10}).Msg("encode")

	out := buf.String()
	for _, want := range []string{`"label":10`, `"index":1`, `"type":"LabelOutOfRangeError"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestWarnRouting(t *testing.T) {
	var got []error
	SetZerologWarnFunc(func(w error) { got = append(got, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewDuplicateDrawWarning(42, 3, 1))

	if len(got) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(got))
	}
	want := "index 42 drawn again at draw 3 (first drawn at draw 1)"
	if got[0].Error() != want {
		t.Errorf("warning = %q, want %q", got[0].Error(), want)
	}
}

func TestWarnFallsBackToHandler(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	Warn(NewDuplicateDrawWarning(1, 2, 1))

	if len(got) != 1 {
		t.Fatalf("expected handler to receive the warning, got %d", len(got))
	}
}
