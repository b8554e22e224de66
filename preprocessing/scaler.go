package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mnistexport/core/model"
	"github.com/YuminosukeSato/mnistexport/pkg/errors"
)

var _ model.InverseTransformer = (*PixelScaler)(nil)

// MaxIntensity はグレースケール画素の最大輝度
const MaxIntensity = 255.0

// PixelScaler は画素輝度を [0, 1] に正規化するスケーラー
// データ範囲は [0, MaxIntensity] に固定されているため学習(Fit)を必要としない。
// 各要素を MaxIntensity で割るだけで、クリッピングは行わない。
type PixelScaler struct {
	// MaxIntensity は割る値 (デフォルト: 255.0)
	MaxIntensity float64
}

// NewPixelScaler は新しいPixelScalerを作成する
//
// パラメータ:
//   - maxIntensity: 入力の最大輝度。0以下の場合はエラー
//
// 使用例:
//
//	scaler, err := preprocessing.NewPixelScaler(255)
//	normalized, err := scaler.Transform(sample.Matrix())
func NewPixelScaler(maxIntensity float64) (*PixelScaler, error) {
	if maxIntensity <= 0 {
		return nil, errors.NewValidationError("max_intensity", "must be positive", maxIntensity)
	}
	return &PixelScaler{MaxIntensity: maxIntensity}, nil
}

// NewPixelScalerDefault は255で割るPixelScalerを作成する
func NewPixelScalerDefault() *PixelScaler {
	return &PixelScaler{MaxIntensity: MaxIntensity}
}

// Transform は各要素を MaxIntensity で割った新しい行列を返す
//
// パラメータ:
//   - X: 生の輝度値を持つ行列
//
// 戻り値:
//   - *mat.Dense: 正規化された行列 (Xと同じ形状)
//   - error: 空の行列が渡された場合
func (s *PixelScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "PixelScaler.Transform")
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)/s.MaxIntensity)
		}
	}
	return result, nil
}

// InverseTransform は正規化された行列を元の輝度に戻す
func (s *PixelScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "PixelScaler.InverseTransform")
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.MaxIntensity)
		}
	}
	return result, nil
}

// NormalizePixels は生の画素列を正規化した新しいスライスを返す
// 大きな行列を組み立てる際に中間行列を作らないための補助関数
func (s *PixelScaler) NormalizePixels(pixels []uint8) []float64 {
	out := make([]float64, len(pixels))
	for i, p := range pixels {
		out[i] = float64(p) / s.MaxIntensity
	}
	return out
}

// String はスケーラーの文字列表現を返す
func (s *PixelScaler) String() string {
	return fmt.Sprintf("PixelScaler(max_intensity=%g)", s.MaxIntensity)
}
