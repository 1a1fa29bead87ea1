// Package metrics は分類モデルの評価指標を提供する
package metrics

import (
	"github.com/semigo-ml/semigo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Accuracy は正解率（予測ラベルが真のラベルと一致する割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	// Accuracy = (1/n) * Σ 1{yTrue == yPred}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// AccuracyMatrix は行列形式（n×1列ベクトル）の入力に対して正解率を計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	// 入力検証
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("AccuracyMatrix", "empty matrix")
	}

	if rTrue != rPred || cTrue != cPred {
		return 0, errors.NewDimensionError("AccuracyMatrix", rTrue, rPred, 0)
	}

	if cTrue != 1 {
		return 0, errors.NewValueError("AccuracyMatrix", "must be a column vector (n×1 matrix)")
	}

	// VecDenseに変換してAccuracyを計算
	yTrueVec := mat.NewVecDense(rTrue, nil)
	yPredVec := mat.NewVecDense(rPred, nil)

	for i := 0; i < rTrue; i++ {
		yTrueVec.SetVec(i, yTrue.At(i, 0))
		yPredVec.SetVec(i, yPred.At(i, 0))
	}

	return Accuracy(yTrueVec, yPredVec)
}

// ErrorRate は誤分類率（1 - Accuracy）を計算する
func ErrorRate(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}
