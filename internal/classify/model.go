package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// 模型输出的原始类别
type Class int

// 预训练分类模型。加载后只读，可被多个请求并发使用。
type Model interface {
	Classify(feature float64) (Class, error)
}

type ModelFormat string

const (
	Linear   = ModelFormat("linear")
	Centroid = ModelFormat("centroid")
)

const DefaultModelFile = "svm_ev_anomaly_model.json"

var ErrUnknownFormat = fmt.Errorf("未知的模型格式")

// Load 从文件中读取模型。仅在启动时调用一次。
func Load(format ModelFormat, fileName string) (Model, error) {
	fin, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("打开模型文件%s出错", fileName))
	}
	defer fin.Close()

	model, err := LoadFrom(format, fin)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("读取模型文件%s出错", fileName))
	}
	return model, nil
}

func LoadFrom(format ModelFormat, input io.Reader) (Model, error) {
	switch format {
	case Linear:
		return loadLinear(input)
	case Centroid:
		return loadCentroid(input)
	default:
		return nil, errors.Wrap(ErrUnknownFormat, string(format))
	}
}

// 一对多线性决策函数，取决策值最大的类别
type linearModel struct {
	Classes   []Class   `json:"classes"`
	Coef      []float64 `json:"coef"`
	Intercept []float64 `json:"intercept"`
}

var _ Model = &linearModel{}

func loadLinear(input io.Reader) (*linearModel, error) {
	m := &linearModel{}
	if err := json.NewDecoder(input).Decode(m); err != nil {
		return nil, errors.Wrap(err, "解析线性模型JSON出错")
	}

	if len(m.Classes) == 0 {
		return nil, fmt.Errorf("线性模型没有任何类别")
	}
	if len(m.Coef) != len(m.Classes) || len(m.Intercept) != len(m.Classes) {
		return nil, fmt.Errorf("线性模型参数数量不一致，classes为%d，coef为%d，intercept为%d",
			len(m.Classes), len(m.Coef), len(m.Intercept))
	}
	for i := range m.Classes {
		if !isFinite(m.Coef[i]) || !isFinite(m.Intercept[i]) {
			return nil, fmt.Errorf("线性模型第%d个类别的参数不是有限数", i)
		}
	}

	return m, nil
}

func (m *linearModel) Classify(feature float64) (Class, error) {
	if !isFinite(feature) {
		return 0, fmt.Errorf("特征值%v不是有限数", feature)
	}

	best := 0
	bestScore := m.Coef[0]*feature + m.Intercept[0]
	for i := 1; i < len(m.Classes); i++ {
		score := m.Coef[i]*feature + m.Intercept[i]
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return m.Classes[best], nil
}

// 最近中心分类。每行为 class,center
type centroidModel struct {
	classes []Class
	centers []float64
}

var _ Model = &centroidModel{}

func loadCentroid(input io.Reader) (*centroidModel, error) {
	data, err := NewDataLoader(CSV).Load(input, nil)
	if err != nil {
		return nil, errors.Wrap(err, "读取中心数据出错")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("没有读取到任何中心数据")
	}

	m := &centroidModel{
		classes: make([]Class, len(data)),
		centers: make([]float64, len(data)),
	}
	for i, datum := range data {
		if len(datum) != 2 {
			return nil, fmt.Errorf("第%d行中心数据应为2列，现在为%d列", i+1, len(datum))
		}
		if datum[0] != math.Trunc(datum[0]) {
			return nil, fmt.Errorf("第%d行的类别%v不是整数", i+1, datum[0])
		}
		m.classes[i] = Class(datum[0])
		m.centers[i] = datum[1]
	}

	return m, nil
}

func (m *centroidModel) Classify(feature float64) (Class, error) {
	if !isFinite(feature) {
		return 0, fmt.Errorf("特征值%v不是有限数", feature)
	}

	best := 0
	bestDist := math.Abs(feature - m.centers[0])
	for i := 1; i < len(m.centers); i++ {
		if dist := math.Abs(feature - m.centers[i]); dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return m.classes[best], nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
