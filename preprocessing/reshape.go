package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

// Flatten は行列を行優先 (row 0 の左から右、次に row 1 ...) で
// 長さ rows*cols の列ベクトルに変換する
func Flatten(X mat.Matrix) *mat.VecDense {
	r, c := X.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, X.At(i, j))
		}
	}
	return mat.NewVecDense(len(data), data)
}

// Reshape は行優先で平坦化されたベクトルを rows × cols の行列に戻す
// Flatten の逆変換。
func Reshape(v mat.Vector, rows, cols int) (*mat.Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.NewValidationError("shape", "rows and cols must be positive", [2]int{rows, cols})
	}
	if n := v.Len(); n != rows*cols {
		return nil, errors.NewDimensionError("Reshape", rows*cols, n, 0)
	}

	result := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.Set(i, j, v.AtVec(i*cols+j))
		}
	}
	return result, nil
}
