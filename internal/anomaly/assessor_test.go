package anomaly

import (
	"fmt"
	"math"
	"testing"

	"github.com/packagewjx/energy-anomaly/internal/classify"
	"github.com/packagewjx/energy-anomaly/pkg/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	class    classify.Class
	err      error
	features []float64
}

func (f *fakeModel) Classify(feature float64) (classify.Class, error) {
	f.features = append(f.features, feature)
	return f.class, f.err
}

func TestPercentageDifference(t *testing.T) {
	cases := []struct {
		input, output, expect float64
	}{
		{100, 90, 10},
		{50, 50, 0},
		{-20, 10, 150},
		{3, 2, 100.0 / 3},
		{10, 25, -150},
	}
	for _, c := range cases {
		diff, err := PercentageDifference(c.input, c.output)
		assert.NoError(t, err)
		assert.InDelta(t, c.expect, diff, 1e-9, "input %v output %v", c.input, c.output)
	}

	_, err := PercentageDifference(0, 5)
	assert.Equal(t, ErrZeroInputEnergy, err)
	assert.Equal(t, core.MessageZeroInputEnergy, err.Error())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 150.0, Round2(150))
	assert.Equal(t, -12.35, Round2(-12.349))

	// 恰好处于中间的值取偶数
	ties := []struct {
		input, expect float64
	}{
		{0.125, 0.12},
		{0.375, 0.38},
		{-0.125, -0.12},
		{2.5, 2.5},
	}
	for _, c := range ties {
		assert.Equal(t, c.expect, Round2(c.input), "input %v", c.input)
	}

	diff, err := PercentageDifference(800, 799)
	assert.NoError(t, err)
	assert.Equal(t, 0.12, Round2(diff))
}

func TestRound2Large(t *testing.T) {
	assert.Equal(t, 1.7e308, Round2(1.7e308))
	assert.Equal(t, math.MaxFloat64, Round2(math.MaxFloat64))
	assert.False(t, math.IsInf(Round2(-math.MaxFloat64), 0))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, core.StatusNormal, StatusOf(0))
	assert.Equal(t, core.StatusSuspicious, StatusOf(1))
	assert.Equal(t, core.StatusAnomaly, StatusOf(2))
	assert.Equal(t, core.StatusAnomaly, StatusOf(7))
	assert.Equal(t, core.StatusAnomaly, StatusOf(-1))
	assert.Equal(t, "Suspecious", string(core.StatusSuspicious))
}

func TestAssessorAssess(t *testing.T) {
	model := &fakeModel{class: 1}
	assessor := NewAssessor(model)

	result, err := assessor.Assess(Reading{InputEnergy: 3, OutputEnergy: 2})
	require.NoError(t, err)
	assert.Equal(t, 33.33, result.PercentageDifference)
	assert.Equal(t, core.StatusSuspicious, result.Status)
	assert.Equal(t, classify.Class(1), result.Class)
	// 模型收到未取整的特征值
	assert.Equal(t, []float64{100.0 / 3}, model.features)

	response := result.Response()
	assert.Equal(t, 3.0, response.InputEnergy)
	assert.Equal(t, 2.0, response.OutputEnergy)
}

func TestAssessorZeroInputSkipsModel(t *testing.T) {
	model := &fakeModel{}
	_, err := NewAssessor(model).Assess(Reading{InputEnergy: 0, OutputEnergy: 5})
	assert.Equal(t, ErrZeroInputEnergy, err)
	assert.Empty(t, model.features)
}

func TestAssessorNonFiniteFeature(t *testing.T) {
	model := &fakeModel{}
	_, err := NewAssessor(model).Assess(Reading{InputEnergy: math.SmallestNonzeroFloat64, OutputEnergy: -math.MaxFloat64})
	assert.Equal(t, ErrNonFiniteFeature, err)
	assert.Empty(t, model.features)
}

func TestAssessorModelError(t *testing.T) {
	modelErr := fmt.Errorf("broken")
	_, err := NewAssessor(&fakeModel{err: modelErr}).Assess(Reading{InputEnergy: 100, OutputEnergy: 90})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, modelErr))
}

func TestAssessorIdempotent(t *testing.T) {
	assessor := NewAssessor(&fakeModel{class: 2})
	first, err := assessor.Assess(Reading{InputEnergy: -20, OutputEnergy: 10})
	require.NoError(t, err)
	second, err := assessor.Assess(Reading{InputEnergy: -20, OutputEnergy: 10})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 150.0, first.PercentageDifference)
	assert.Equal(t, core.StatusAnomaly, first.Status)
}
