// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// データセットの読み込み、ラベルのエンコード、ファイル書き出しの各段階で
// 発生する失敗を構造化されたエラー型として表現します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("mnistexport-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler は警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが設定されている場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DuplicateDrawWarning は復元抽出で同じインデックスが再度選ばれた場合の警告です。
// 動作は変わりません。重複したサンプルもそのまま書き出されます。
type DuplicateDrawWarning struct {
	Index     int
	Draw      int
	FirstDraw int
}

func (w *DuplicateDrawWarning) Error() string {
	return fmt.Sprintf("index %d drawn again at draw %d (first drawn at draw %d)", w.Index, w.Draw, w.FirstDraw)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DuplicateDrawWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Int("index", w.Index).
		Int("draw", w.Draw).
		Int("first_draw", w.FirstDraw).
		Str("type", "DuplicateDrawWarning")
}

// NewDuplicateDrawWarning は新しいDuplicateDrawWarningを作成します。
func NewDuplicateDrawWarning(index, draw, firstDraw int) *DuplicateDrawWarning {
	return &DuplicateDrawWarning{Index: index, Draw: draw, FirstDraw: firstDraw}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// DatasetLoadError はデータセットの読み込みに失敗した場合のエラーです。
// ファイルが存在しない、マジックナンバーが不正、ペイロードが途中で切れている等。
type DatasetLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DatasetLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mnistexport: dataset load failed for %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("mnistexport: dataset load failed for %s: %s", e.Path, e.Reason)
}

func (e *DatasetLoadError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DatasetLoadError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("reason", e.Reason).
		Str("type", "DatasetLoadError")
}

// NewDatasetLoadError は新しいDatasetLoadErrorを作成し、スタックトレースを付与します。
func NewDatasetLoadError(path, reason string, err error) error {
	return errors.WithStack(&DatasetLoadError{Path: path, Reason: reason, Err: err})
}

// LabelOutOfRangeError はラベルがクラス数の範囲外にある場合のエラーです。
type LabelOutOfRangeError struct {
	Index   int
	Label   int
	Classes int
}

func (e *LabelOutOfRangeError) Error() string {
	return fmt.Sprintf("mnistexport: label %d of sample %d is out of range [0,%d]", e.Label, e.Index, e.Classes-1)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *LabelOutOfRangeError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("index", e.Index).
		Int("label", e.Label).
		Int("classes", e.Classes).
		Str("type", "LabelOutOfRangeError")
}

// NewLabelOutOfRangeError は新しいLabelOutOfRangeErrorを作成し、スタックトレースを付与します。
func NewLabelOutOfRangeError(index, label, classes int) error {
	return errors.WithStack(&LabelOutOfRangeError{Index: index, Label: label, Classes: classes})
}

// WriteError はファイルシステムへの書き出し（ディレクトリ作成、CSV、JPEG描画、クローズ）に
// 失敗した場合のエラーです。
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("mnistexport: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *WriteError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("op", e.Op).
		Str("type", "WriteError")
}

// NewWriteError は新しいWriteErrorを作成し、スタックトレースを付与します。
func NewWriteError(op, path string, err error) error {
	return errors.WithStack(&WriteError{Path: path, Op: op, Err: err})
}

// DimensionError は行列の形状が期待値と異なる場合のエラーです。
// Row は列数の不足が見つかった行番号で、行数自体の不足の場合は -1 です。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
	Row      int
}

func (e *DimensionError) Error() string {
	if e.Axis == 1 && e.Row >= 0 {
		return fmt.Sprintf("mnistexport: %s: not enough columns at row %d. Expected %d, got %d", e.Op, e.Row, e.Expected, e.Got)
	}
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("mnistexport: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Int("row", e.Row).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis, Row: -1})
}

// NewRowDimensionError は特定の行で列数が不足している場合のDimensionErrorを作成します。
func NewRowDimensionError(op string, row, expected, got int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: 1, Row: row})
}

// ParseError はCSVのセルが数値として解釈できない場合のエラーです。
type ParseError struct {
	Path  string
	Row   int
	Col   int
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mnistexport: non-numeric value %q found in %s at row %d, column %d", e.Value, e.Path, e.Row, e.Col)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Int("row", e.Row).
		Int("col", e.Col).
		Str("value", e.Value).
		Str("type", "ParseError")
}

// NewParseError は新しいParseErrorを作成し、スタックトレースを付与します。
func NewParseError(path string, row, col int, value string) error {
	return errors.WithStack(&ParseError{Path: path, Row: row, Col: col, Value: value})
}

// ValidationError は設定値の検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mnistexport: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は値が不正な場合に発生するエラーです。
// 例えば、one-hot行列の列に1が2つ含まれている場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("mnistexport: %s: %s", e.Op, e.Message)
}

// NewValueErrorf はフォーマット済みメッセージでValueErrorを作成します。
func NewValueErrorf(op, format string, args ...interface{}) error {
	return errors.WithStack(&ValueError{Op: op, Message: fmt.Sprintf(format, args...)})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// CombineErrors は2つのエラーを結合します。
// 片方がnilの場合はもう片方をそのまま返し、両方ある場合は err を主エラーとして
// other を副次的なエラーとして保持します。
func CombineErrors(err, other error) error {
	return errors.CombineErrors(err, other)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")
)
