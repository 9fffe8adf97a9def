package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputResult(t *testing.T) {
	builder := &strings.Builder{}
	data := [][]float64{
		{100, 90, 10, 0},
		{50, 50, 0, 0},
		{-20, 10, 150, 2},
	}
	err := OutputResult(data, builder, 2)
	assert.NoError(t, err)
	assert.Equal(t, "100.00,90.00,10.00,0.00\n50.00,50.00,0.00,0.00\n-20.00,10.00,150.00,2.00\n", builder.String())
}
