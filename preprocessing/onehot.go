package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/core/model"
	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

var _ model.LabelEncoder = (*OneHotEncoder)(nil)

// DigitClasses はMNISTのクラス数
const DigitClasses = 10

// OneHotEncoder は整数ラベルを classes × n_samples のone-hot行列に変換する
// 列 j はサンプル j に対応し、ラベル行だけが1、それ以外は0になる。
type OneHotEncoder struct {
	// Classes はクラス数。ラベルは [0, Classes) に収まる必要がある
	Classes int
}

// NewOneHotEncoder は新しいOneHotEncoderを作成する
func NewOneHotEncoder(classes int) (*OneHotEncoder, error) {
	if classes < 2 {
		return nil, errors.NewValidationError("classes", "must be at least 2", classes)
	}
	return &OneHotEncoder{Classes: classes}, nil
}

// Encode はラベル列をone-hot行列に変換する
//
// 範囲外のラベルがあれば LabelOutOfRangeError を返し、行列は作成しない。
func (e *OneHotEncoder) Encode(labels []int) (*mat.Dense, error) {
	if len(labels) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "OneHotEncoder.Encode")
	}
	for j, label := range labels {
		if label < 0 || label >= e.Classes {
			return nil, errors.NewLabelOutOfRangeError(j, label, e.Classes)
		}
	}

	encoded := mat.NewDense(e.Classes, len(labels), nil)
	for j, label := range labels {
		encoded.Set(label, j, 1)
	}
	return encoded, nil
}

// Decode はone-hot行列の各列からラベルを復元する
// 各列がちょうど1つの1.0と残り0.0で構成されていない場合はエラーを返す。
func (e *OneHotEncoder) Decode(encoded mat.Matrix) ([]int, error) {
	r, c := encoded.Dims()
	if r != e.Classes {
		return nil, errors.NewDimensionError("OneHotEncoder.Decode", e.Classes, r, 0)
	}

	labels := make([]int, c)
	for j := 0; j < c; j++ {
		label := -1
		for i := 0; i < r; i++ {
			switch v := encoded.At(i, j); v {
			case 0:
			case 1:
				if label >= 0 {
					return nil, errors.NewValueErrorf("OneHotEncoder.Decode", "column %d has more than one hot entry", j)
				}
				label = i
			default:
				return nil, errors.NewValueErrorf("OneHotEncoder.Decode", "column %d has non one-hot value %g at row %d", j, v, i)
			}
		}
		if label < 0 {
			return nil, errors.NewValueErrorf("OneHotEncoder.Decode", "column %d has no hot entry", j)
		}
		labels[j] = label
	}
	return labels, nil
}

// String はエンコーダーの文字列表現を返す
func (e *OneHotEncoder) String() string {
	return fmt.Sprintf("OneHotEncoder(classes=%d)", e.Classes)
}
