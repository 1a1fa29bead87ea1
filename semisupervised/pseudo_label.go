// Package semisupervised は半教師あり学習のためのデータ拡張器を提供します。
// 中核となる PseudoLabeler は、ラベル付きデータで学習した分類器の確率出力を使い、
// 未ラベルプールから最も確信度の高い例を疑似ラベル付きで採用します。
package semisupervised

import (
	"gonum.org/v1/gonum/mat"

	"github.com/semigo-ml/semigo/core/model"
	"github.com/semigo-ml/semigo/pkg/errors"
	"github.com/semigo-ml/semigo/pkg/log"
)

// PseudoLabeler は二値分類器の確率出力に基づく疑似ラベル拡張器です。
//
// 1回の Augment 呼び出しで以下を行います:
//  1. 注入された分類器をラベル付きデータで学習
//  2. 未ラベルプール全体の予測ラベルとクラス確率を取得
//  3. クラス0またはクラス1の確率がバッチ内最大値に一致する行を選択
//     （同値はすべて選択されます。top-Kではありません）
//  4. 選択行を予測ラベル付きでラベル付きデータに連結し、
//     残余行を予測ラベルと対にして返却
//
// PseudoLabeler自体は乱数を使用しません。分類器が決定的であれば
// 同一入力に対する結果も決定的です。
type PseudoLabeler struct {
	logger log.Logger
}

// PseudoLabelerOption はPseudoLabelerの振る舞いを設定する関数型オプションです。
type PseudoLabelerOption func(*PseudoLabeler)

// WithPLLogger は拡張処理の構造化ログ出力先を設定します。
// 未設定の場合、ログは破棄されます。
func WithPLLogger(logger log.Logger) PseudoLabelerOption {
	return func(p *PseudoLabeler) {
		p.logger = logger
	}
}

// NewPseudoLabeler は新しいPseudoLabelerを作成します。
func NewPseudoLabeler(opts ...PseudoLabelerOption) *PseudoLabeler {
	p := &PseudoLabeler{
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AugmentResult は1回の疑似ラベル拡張パスの結果です。
type AugmentResult struct {
	// XAugmented はラベル付き特徴行列に選択行を連結したものです。
	// 行順は元のラベル付きデータ、その後にプール内の出現順で選択行が続きます。
	XAugmented *mat.Dense

	// YAugmented はXAugmentedに対応するラベル列ベクトルです。
	// 選択行のラベルは分類器のPredictが返したハードラベルをそのまま使用します。
	YAugmented *mat.Dense

	// XResidual は選択されなかったプール行です。プール全体が選択された場合はnilです。
	XResidual *mat.Dense

	// YResidualPred はXResidualに対する分類器の予測ラベルです。
	// XResidualがnilの場合はnilです。
	YResidualPred *mat.Dense

	// SelectedIndices は選択されたプール行のインデックス（昇順）です。
	SelectedIndices []int
}

// Augment は分類器をラベル付きデータで学習させ、未ラベルプールから
// クラスごとの最大確率を達成する例を疑似ラベル付きで採用します。
//
// X はラベル付き特徴行列 (n_labeled x n_features)、y は {0, 1} のラベル
// 列ベクトル、XUnlabeled は未ラベルプール (n_pool x n_features) です。
// 分類器のPredictProbaはちょうど2列の確率行列を返す必要があります。
//
// すべてのプール行が同一の確率を返す場合（較正不良な分類器）、選択は
// プール全体に退化します。この場合DegenerateSelectionWarningを発行した上で
// 全件を採用し、XResidualはnilになります。
//
// 分類器内部のpanicは回復され、エラーとして返されます。
func (p *PseudoLabeler) Augment(clf model.ProbabilisticClassifier, X, y, XUnlabeled mat.Matrix) (result *AugmentResult, err error) {
	const op = "PseudoLabeler.Augment"
	defer errors.Recover(&err, op)

	if clf == nil {
		return nil, errors.NewValueError(op, "classifier must not be nil")
	}

	nLabeled, nFeatures, nPool, err := p.validateInputs(op, X, y, XUnlabeled)
	if err != nil {
		return nil, err
	}

	logger := p.logger.With(
		log.ModelNameKey, "PseudoLabeler",
		log.ComponentKey, "semisupervised",
		log.OperationKey, log.OperationAugment,
	)
	logger.Debug("Fitting classifier on labeled data",
		log.LabeledSizeKey, nLabeled,
		log.FeaturesKey, nFeatures,
	)

	if err := clf.Fit(X, y); err != nil {
		logger.Error("Classifier fit failed",
			log.ErrorCodeKey, log.ErrorClassifier,
			log.ErrAttr(err),
		)
		return nil, errors.NewModelError(op, "classifier fit failed", err)
	}

	preds, err := clf.Predict(XUnlabeled)
	if err != nil {
		logger.Error("Classifier predict failed",
			log.ErrorCodeKey, log.ErrorClassifier,
			log.ErrAttr(err),
		)
		return nil, errors.NewModelError(op, "classifier predict failed", err)
	}
	if r, c := preds.Dims(); r != nPool || c != 1 {
		return nil, errors.NewDimensionError(op, nPool, r, 0)
	}

	proba, err := clf.PredictProba(XUnlabeled)
	if err != nil {
		logger.Error("Classifier predict_proba failed",
			log.ErrorCodeKey, log.ErrorClassifier,
			log.ErrAttr(err),
		)
		return nil, errors.NewModelError(op, "classifier predict_proba failed", err)
	}
	probaRows, probaCols := proba.Dims()
	if probaRows != nPool {
		return nil, errors.NewDimensionError(op, nPool, probaRows, 0)
	}
	if probaCols != 2 {
		return nil, errors.NewValueError(op, "classifier must produce exactly 2 probability columns")
	}
	if err := errors.CheckMatrix(op, proba, probaRows, probaCols, 0); err != nil {
		return nil, err
	}

	selected := p.selectBatchMaxima(proba, nPool)
	nSelected := len(selected)
	nResidual := nPool - nSelected

	if nSelected == nPool {
		warn := errors.NewDegenerateSelectionWarning(nSelected, nPool)
		errors.Warn(warn)
		logger.Warn("Selection degenerated to the whole pool",
			log.PoolSizeKey, nPool,
			log.SelectedKey, nSelected,
		)
	}

	result = &AugmentResult{
		SelectedIndices: selected,
	}
	result.XAugmented, result.YAugmented = p.buildAugmented(X, y, XUnlabeled, preds, selected, nLabeled, nFeatures)
	if nResidual > 0 {
		result.XResidual, result.YResidualPred = p.buildResidual(XUnlabeled, preds, selected, nResidual, nFeatures)
	}

	logger.Info("Pseudo-label augmentation finished",
		log.LabeledSizeKey, nLabeled,
		log.PoolSizeKey, nPool,
		log.SelectedKey, nSelected,
		log.ResidualKey, nResidual,
	)

	return result, nil
}

// validateInputs は形状とラベル値を検証し、(n_labeled, n_features, n_pool) を返します。
func (p *PseudoLabeler) validateInputs(op string, X, y, XUnlabeled mat.Matrix) (int, int, int, error) {
	if X == nil || y == nil || XUnlabeled == nil {
		return 0, 0, 0, errors.NewValueError(op, "input matrices must not be nil")
	}

	nLabeled, nFeatures := X.Dims()
	yRows, yCols := y.Dims()
	nPool, poolFeatures := XUnlabeled.Dims()

	if nLabeled == 0 {
		return 0, 0, 0, errors.NewModelError(op, "labeled set is empty", errors.ErrEmptyData)
	}
	if nPool == 0 {
		return 0, 0, 0, errors.NewModelError(op, "unlabeled pool is empty", errors.ErrEmptyData)
	}
	if yRows != nLabeled {
		return 0, 0, 0, errors.NewDimensionError(op, nLabeled, yRows, 0)
	}
	if yCols != 1 {
		return 0, 0, 0, errors.NewValueError(op, "y must be a column vector")
	}
	if poolFeatures != nFeatures {
		return 0, 0, 0, errors.NewDimensionError(op, nFeatures, poolFeatures, 1)
	}

	for i := 0; i < nLabeled; i++ {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return 0, 0, 0, errors.Wrapf(errors.ErrNonBinaryLabels,
				"semigo: %s: row %d has label %v", op, i, v)
		}
	}

	return nLabeled, nFeatures, nPool, nil
}

// selectBatchMaxima はクラス0またはクラス1の確率がバッチ内最大値と
// 厳密に一致する行のインデックスを昇順で返します。
func (p *PseudoLabeler) selectBatchMaxima(proba mat.Matrix, nPool int) []int {
	max0 := proba.At(0, 0)
	max1 := proba.At(0, 1)
	for i := 1; i < nPool; i++ {
		if p0 := proba.At(i, 0); p0 > max0 {
			max0 = p0
		}
		if p1 := proba.At(i, 1); p1 > max1 {
			max1 = p1
		}
	}

	selected := make([]int, 0, 1)
	for i := 0; i < nPool; i++ {
		if proba.At(i, 0) == max0 || proba.At(i, 1) == max1 {
			selected = append(selected, i)
		}
	}
	return selected
}

// buildAugmented はラベル付きデータの後ろに選択行とその予測ラベルを連結します。
func (p *PseudoLabeler) buildAugmented(X, y, XUnlabeled, preds mat.Matrix, selected []int, nLabeled, nFeatures int) (*mat.Dense, *mat.Dense) {
	nAug := nLabeled + len(selected)
	XAug := mat.NewDense(nAug, nFeatures, nil)
	yAug := mat.NewDense(nAug, 1, nil)

	for i := 0; i < nLabeled; i++ {
		for j := 0; j < nFeatures; j++ {
			XAug.Set(i, j, X.At(i, j))
		}
		yAug.Set(i, 0, y.At(i, 0))
	}
	for k, idx := range selected {
		row := nLabeled + k
		for j := 0; j < nFeatures; j++ {
			XAug.Set(row, j, XUnlabeled.At(idx, j))
		}
		yAug.Set(row, 0, preds.At(idx, 0))
	}

	return XAug, yAug
}

// buildResidual は選択されなかったプール行とその予測ラベルを出現順で返します。
func (p *PseudoLabeler) buildResidual(XUnlabeled, preds mat.Matrix, selected []int, nResidual, nFeatures int) (*mat.Dense, *mat.Dense) {
	isSelected := make(map[int]bool, len(selected))
	for _, idx := range selected {
		isSelected[idx] = true
	}

	XRes := mat.NewDense(nResidual, nFeatures, nil)
	yRes := mat.NewDense(nResidual, 1, nil)

	nPool, _ := XUnlabeled.Dims()
	row := 0
	for i := 0; i < nPool; i++ {
		if isSelected[i] {
			continue
		}
		for j := 0; j < nFeatures; j++ {
			XRes.Set(row, j, XUnlabeled.At(i, j))
		}
		yRes.Set(row, 0, preds.At(i, 0))
		row++
	}

	return XRes, yRes
}
