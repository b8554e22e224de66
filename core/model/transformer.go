package model

import "gonum.org/v1/gonum/mat"

// Transformer はデータ変換のインターフェース
// 学習済みパラメータを持たない固定の変換を表す
type Transformer interface {
	// Transform は入力を変更せず、変換後の新しい行列を返す
	Transform(X mat.Matrix) (*mat.Dense, error)
}

// InverseTransformer は逆変換を持つTransformer
type InverseTransformer interface {
	Transformer

	// InverseTransform はTransformの結果を元のスケールに戻す
	InverseTransform(X mat.Matrix) (*mat.Dense, error)
}

// LabelEncoder はクラスラベル列と行列表現を相互に変換する
type LabelEncoder interface {
	// Encode はラベル列をクラス数×サンプル数の行列にする
	Encode(labels []int) (*mat.Dense, error)

	// Decode はEncodeの結果からラベル列を復元する
	Decode(Y mat.Matrix) ([]int, error)
}
