package anomaly

import (
	"fmt"
	"math"
	"strconv"

	"github.com/packagewjx/energy-anomaly/internal/classify"
	"github.com/packagewjx/energy-anomaly/pkg/core"
	"github.com/pkg/errors"
)

var ErrZeroInputEnergy = fmt.Errorf(core.MessageZeroInputEnergy)

var ErrNonFiniteFeature = fmt.Errorf("percentage difference is not a finite number")

type Reading struct {
	InputEnergy  float64
	OutputEnergy float64
}

type Result struct {
	Reading
	PercentageDifference float64 // 已保留两位小数
	Class                classify.Class
	Status               core.Status
}

func (r *Result) Response() *core.PredictResponse {
	return &core.PredictResponse{
		InputEnergy:          r.InputEnergy,
		OutputEnergy:         r.OutputEnergy,
		PercentageDifference: r.PercentageDifference,
		Status:               r.Status,
	}
}

// PercentageDifference 计算输入与输出能量之间损失的百分比。inputEnergy为0时返回ErrZeroInputEnergy。
func PercentageDifference(inputEnergy, outputEnergy float64) (float64, error) {
	if inputEnergy == 0 {
		return 0, ErrZeroInputEnergy
	}
	return ((inputEnergy - outputEnergy) / inputEnergy) * 100, nil
}

// Round2 按精确的二进制值保留两位小数，恰好处于中间时取偶数。不经过乘法，不会溢出。
func Round2(f float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	return rounded
}

func StatusOf(class classify.Class) core.Status {
	switch class {
	case 0:
		return core.StatusNormal
	case 1:
		return core.StatusSuspicious
	default:
		return core.StatusAnomaly
	}
}

type Assessor struct {
	model classify.Model
}

func NewAssessor(model classify.Model) *Assessor {
	return &Assessor{model: model}
}

// Assess 对一条读数分类。模型使用未取整的特征值。
func (a *Assessor) Assess(reading Reading) (*Result, error) {
	diff, err := PercentageDifference(reading.InputEnergy, reading.OutputEnergy)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(diff) || math.IsInf(diff, 0) {
		return nil, ErrNonFiniteFeature
	}

	class, err := a.model.Classify(diff)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("模型预测出错，特征值为%f", diff))
	}

	return &Result{
		Reading:              reading,
		PercentageDifference: Round2(diff),
		Class:                class,
		Status:               StatusOf(class),
	}, nil
}
