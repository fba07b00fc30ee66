package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/scigo-ml/rfa/pkg/errors"
)

// Accuracy は正解率を計算する。予測値は最も近いクラスラベルに丸めず、
// 完全一致で比較するため、分類器は離散ラベルを返すこと。
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix は行列形式の入力に対して正解率を計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := columnVec("AccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := columnVec("AccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(tv, pv)
}
